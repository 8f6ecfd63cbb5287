// Package youtube resolves channel URLs to public channel metadata through
// the YouTube Data API.
package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	platformotel "github.com/louisbranch/inpact/internal/platform/otel"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the YouTube Data API v3 root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// FetchFailedMessage is shown for any lookup failure other than not found.
const FetchFailedMessage = "Could not fetch channel data."

const maxResponseBytes = 1 << 20

// ErrChannelNotFound indicates the API returned no channel for the identifier.
var ErrChannelNotFound = apperrors.New(apperrors.CodeChannelNotFound, "No channel found for this URL.")

// Channel is the metadata copied into the wizard's YouTube details.
type Channel struct {
	ID              string
	Title           string
	ThumbnailURL    string
	SubscriberCount string
}

// Config configures the Data API endpoint and HTTP behavior.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client looks up channels by id, legacy username, or handle.
type Client struct {
	cfg    Config
	tracer trace.Tracer
}

// NewClient builds a Data API client.
func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return &Client{cfg: cfg, tracer: platformotel.Tracer("youtube")}
}

// LookupURL parses raw and looks up the channel it names.
func (c *Client) LookupURL(ctx context.Context, raw string) (Channel, error) {
	identifier, err := ParseChannelURL(raw)
	if err != nil {
		return Channel{}, err
	}
	return c.Lookup(ctx, identifier)
}

// Lookup resolves identifier to channel metadata. A handle takes two hops:
// a search for the channel id, then a lookup by that id, because search
// results do not carry statistics.
func (c *Client) Lookup(ctx context.Context, identifier Identifier) (Channel, error) {
	ctx, span := c.tracer.Start(ctx, "youtube.Lookup", trace.WithAttributes(
		attribute.String("youtube.identifier_kind", string(identifier.Kind)),
	))
	defer span.End()

	channel, err := c.lookup(ctx, identifier)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Channel{}, err
	}
	return channel, nil
}

func (c *Client) lookup(ctx context.Context, identifier Identifier) (Channel, error) {
	value := strings.TrimSpace(identifier.Value)
	if value == "" {
		return Channel{}, ErrInvalidURL
	}

	query := url.Values{}
	endpoint := "channels"
	switch identifier.Kind {
	case KindChannelID:
		query.Set("part", "snippet,statistics")
		query.Set("id", value)
	case KindUsername:
		query.Set("part", "snippet,statistics")
		query.Set("forUsername", value)
	case KindHandle:
		endpoint = "search"
		query.Set("part", "snippet")
		query.Set("type", "channel")
		query.Set("q", value)
	default:
		return Channel{}, ErrInvalidURL
	}

	body, err := c.get(ctx, endpoint, query)
	if err != nil {
		return Channel{}, fetchFailed(err)
	}
	items := gjson.GetBytes(body, "items")
	if !items.IsArray() || len(items.Array()) == 0 {
		return Channel{}, ErrChannelNotFound
	}
	first := items.Array()[0]

	if identifier.Kind == KindHandle {
		channelID := first.Get("snippet.channelId").String()
		if channelID == "" {
			channelID = first.Get("id.channelId").String()
		}
		if channelID != "" {
			return c.lookup(ctx, Identifier{Kind: KindChannelID, Value: channelID})
		}
	}
	return parseChannel(first), nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if key := strings.TrimSpace(c.cfg.APIKey); key != "" {
		query.Set("key", key)
	}
	requestURL := c.cfg.BaseURL + "/" + endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		message := gjson.GetBytes(body, "error.message").String()
		if message == "" {
			message = strings.TrimSpace(string(body))
			if len(message) > 4096 {
				message = message[:4096]
			}
		}
		return nil, fmt.Errorf("%s request status %d: %s", endpoint, res.StatusCode, message)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s response is not valid json", endpoint)
	}
	return body, nil
}

func parseChannel(item gjson.Result) Channel {
	id := item.Get("id").String()
	if item.Get("id").IsObject() {
		id = item.Get("id.channelId").String()
	}
	return Channel{
		ID:              id,
		Title:           item.Get("snippet.title").String(),
		ThumbnailURL:    item.Get("snippet.thumbnails.default.url").String(),
		SubscriberCount: item.Get("statistics.subscriberCount").String(),
	}
}

func fetchFailed(err error) error {
	return apperrors.Wrap(apperrors.CodeChannelFetchFailed, FetchFailedMessage, err)
}

// UserMessage returns the field-scoped message for a lookup error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidChannelURL, apperrors.CodeChannelNotFound:
		return apperrors.Message(err, FetchFailedMessage)
	default:
		return FetchFailedMessage
	}
}
