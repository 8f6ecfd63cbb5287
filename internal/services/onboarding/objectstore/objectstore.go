// Package objectstore defines the public object storage used for profile
// pictures and brand logos.
package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
)

const (
	// BucketProfilePictures holds creator profile images.
	BucketProfilePictures = "profile-pictures"
	// BucketBrandLogos holds brand logos.
	BucketBrandLogos = "brand-logos"
)

// RoutePrefix is where the web server serves stored objects.
const RoutePrefix = "/storage/"

// ErrNotFound indicates a missing object.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "object not found")

// Object is one stored blob.
type Object struct {
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"data"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store uploads objects with overwrite semantics and resolves their public
// URLs.
type Store interface {
	Upload(ctx context.Context, bucket, path, contentType string, data []byte) error
	Get(ctx context.Context, bucket, path string) (Object, error)
	PublicURL(bucket, path string) string
}

// Buckets lists the buckets a store accepts.
func Buckets() []string {
	return []string{BucketProfilePictures, BucketBrandLogos}
}

// ValidBucket reports whether bucket is a known namespace.
func ValidBucket(bucket string) bool {
	for _, known := range Buckets() {
		if bucket == known {
			return true
		}
	}
	return false
}

// CleanPath validates an object path. Paths are relative, slash separated
// and may not climb out of their bucket.
func CleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("object path is required")
	}
	if strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("object path must be relative")
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("object path %q is invalid", path)
		}
	}
	return path, nil
}

// PublicURL joins baseURL with the storage route for bucket and path.
// An empty baseURL yields a root-relative URL.
func PublicURL(baseURL, bucket, path string) string {
	segments := strings.Split(path, "/")
	for idx, segment := range segments {
		segments[idx] = url.PathEscape(segment)
	}
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + RoutePrefix + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
