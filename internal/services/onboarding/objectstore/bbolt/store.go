// Package bbolt stores public objects in a BoltDB file, one bucket per
// object namespace.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/services/onboarding/objectstore"
	"go.etcd.io/bbolt"
)

// Store provides a BoltDB-backed object store.
type Store struct {
	db      *bbolt.DB
	baseURL string
	now     func() time.Time
}

// Open opens a BoltDB-backed object store at path. baseURL prefixes the
// public URLs it hands out.
func Open(path, baseURL string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open object store db: %w", err)
	}

	store := &Store{db: db, baseURL: baseURL, now: time.Now}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Upload writes data at bucket/path, replacing any existing object.
func (s *Store) Upload(ctx context.Context, bucket, path, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if !objectstore.ValidBucket(bucket) {
		return fmt.Errorf("unknown bucket %q", bucket)
	}
	key, err := objectstore.CleanPath(path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("object data is required")
	}

	payload, err := json.Marshal(objectstore.Object{
		ContentType: strings.TrimSpace(contentType),
		Data:        data,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal object: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return fmt.Errorf("%s bucket is missing", bucket)
		}
		return b.Put([]byte(key), payload)
	})
}

// Get reads one object.
func (s *Store) Get(ctx context.Context, bucket, path string) (objectstore.Object, error) {
	if err := ctx.Err(); err != nil {
		return objectstore.Object{}, err
	}
	if s == nil || s.db == nil {
		return objectstore.Object{}, fmt.Errorf("storage is not configured")
	}
	if !objectstore.ValidBucket(bucket) {
		return objectstore.Object{}, objectstore.ErrNotFound
	}
	key, err := objectstore.CleanPath(path)
	if err != nil {
		return objectstore.Object{}, objectstore.ErrNotFound
	}

	var object objectstore.Object
	err = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return fmt.Errorf("%s bucket is missing", bucket)
		}
		payload := b.Get([]byte(key))
		if payload == nil {
			return objectstore.ErrNotFound
		}
		if err := json.Unmarshal(payload, &object); err != nil {
			return fmt.Errorf("unmarshal object: %w", err)
		}
		return nil
	})
	if err != nil {
		return objectstore.Object{}, err
	}
	return object, nil
}

// PublicURL returns the URL the web server serves bucket/path from.
func (s *Store) PublicURL(bucket, path string) string {
	baseURL := ""
	if s != nil {
		baseURL = s.baseURL
	}
	return objectstore.PublicURL(baseURL, bucket, path)
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range objectstore.Buckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("create %s bucket: %w", bucket, err)
			}
		}
		return nil
	})
}
