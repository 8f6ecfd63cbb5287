package youtube

import (
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
)

// Kind classifies how a channel URL identifies its channel.
type Kind string

const (
	KindChannelID Kind = "channel_id"
	KindUsername  Kind = "username"
	KindHandle    Kind = "handle"
)

// Identifier is a parsed channel reference.
type Identifier struct {
	Kind  Kind
	Value string
}

// ErrInvalidURL indicates a URL whose path shape is not a channel reference.
var ErrInvalidURL = apperrors.New(
	apperrors.CodeInvalidChannelURL,
	"Please enter a valid YouTube channel URL (e.g., https://www.youtube.com/channel/UC...)",
)

// ParseChannelURL classifies the path of a channel URL:
// /channel/<id>, /c/<name>, or /@handle.
func ParseChannelURL(raw string) (Identifier, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return Identifier{}, ErrInvalidURL
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return Identifier{}, ErrInvalidURL
	}

	parts := make([]string, 0, 2)
	for _, part := range strings.Split(parsed.Path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return Identifier{}, ErrInvalidURL
	}

	switch {
	case parts[0] == "channel" && len(parts) > 1:
		return Identifier{Kind: KindChannelID, Value: parts[1]}, nil
	case parts[0] == "c" && len(parts) > 1:
		return Identifier{Kind: KindUsername, Value: parts[1]}, nil
	case strings.HasPrefix(parts[0], "@") && len(parts[0]) > 1:
		return Identifier{Kind: KindHandle, Value: parts[0]}, nil
	default:
		return Identifier{}, ErrInvalidURL
	}
}
