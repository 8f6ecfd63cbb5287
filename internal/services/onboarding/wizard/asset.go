package wizard

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
)

// MaxAssetBytes is the largest accepted profile image or logo.
const MaxAssetBytes = 3 << 20

var (
	// ErrAssetTooLarge indicates an image over MaxAssetBytes.
	ErrAssetTooLarge = apperrors.New(apperrors.CodeAssetTooLarge, "Profile image must be less than 3 MB.")
	// ErrAssetInvalidType indicates a non-image upload.
	ErrAssetInvalidType = apperrors.New(apperrors.CodeAssetInvalidType, "Please upload an image file.")
)

// Asset is a selected image held until submission.
type Asset struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// NewAsset validates an uploaded image.
func NewAsset(filename, contentType string, data []byte) (*Asset, error) {
	if len(data) > MaxAssetBytes {
		return nil, ErrAssetTooLarge
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !strings.HasPrefix(contentType, "image/") || len(data) == 0 {
		return nil, ErrAssetInvalidType
	}
	return &Asset{
		Filename:    filepath.Base(strings.TrimSpace(filename)),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Ext returns the file extension used in the object path.
func (a *Asset) Ext() string {
	if a == nil {
		return ""
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(a.Filename)), "."); ext != "" {
		return ext
	}
	sub := strings.TrimPrefix(a.ContentType, "image/")
	switch sub {
	case "jpeg":
		return "jpg"
	case "svg+xml":
		return "svg"
	case "":
		return "img"
	default:
		return sub
	}
}

// ObjectPath returns "<userID>/<base>.<ext>".
func (a *Asset) ObjectPath(userID, base string) string {
	return fmt.Sprintf("%s/%s.%s", userID, base, a.Ext())
}
