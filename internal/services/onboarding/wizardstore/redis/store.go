// Package redis keeps wizard state in Redis as JSON values with a sliding
// TTL, so any server instance can continue a session's wizard.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
)

const (
	defaultPrefix = "inpact:wizard:"
	// maxUpdateAttempts bounds optimistic retries when a concurrent writer
	// touches the same key.
	maxUpdateAttempts = 8
)

// Store is a Redis-backed wizard store. Keys look like
//
//	<prefix><session id>:<flow>  => JSON-encoded wizard.State
type Store struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// New returns a store using client. An empty prefix uses "inpact:wizard:";
// ttl <= 0 uses wizardstore.DefaultTTL.
func New(client *goredis.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = wizardstore.DefaultTTL
	}
	return &Store{client: client, prefix: prefix, ttl: ttl, now: time.Now}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (s *Store) key(key wizardstore.Key) string {
	return s.prefix + key.String()
}

// Load returns the saved state.
func (s *Store) Load(ctx context.Context, key wizardstore.Key) (*wizard.State, error) {
	if err := s.ready(key); err != nil {
		return nil, err
	}
	return s.load(ctx, s.client, key)
}

// Save replaces the state for key and refreshes its TTL.
func (s *Store) Save(ctx context.Context, key wizardstore.Key, state *wizard.State) error {
	if err := s.ready(key); err != nil {
		return err
	}
	payload, err := s.encode(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(key), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET wizard state: %w", err)
	}
	return nil
}

// Update runs fn inside a WATCH/MULTI transaction, retrying when another
// writer changes the key first.
func (s *Store) Update(ctx context.Context, key wizardstore.Key, fn func(*wizard.State) error) error {
	if err := s.ready(key); err != nil {
		return err
	}
	redisKey := s.key(key)

	txf := func(tx *goredis.Tx) error {
		state, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		payload, err := s.encode(state)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, redisKey, payload, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, redisKey)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update wizard state: too many concurrent writers")
}

// Delete removes the state for key.
func (s *Store) Delete(ctx context.Context, key wizardstore.Key) error {
	if err := s.ready(key); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis DEL wizard state: %w", err)
	}
	return nil
}

func (s *Store) ready(key wizardstore.Key) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("wizard store is not configured")
	}
	return key.Validate()
}

// getter is the read half shared by *goredis.Client and *goredis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func (s *Store) load(ctx context.Context, cmd getter, key wizardstore.Key) (*wizard.State, error) {
	payload, err := cmd.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, wizardstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET wizard state: %w", err)
	}
	var state wizard.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode wizard state: %w", err)
	}
	return &state, nil
}

func (s *Store) encode(state *wizard.State) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("wizard state is required")
	}
	state.UpdatedAt = s.now().UTC()
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode wizard state: %w", err)
	}
	return payload, nil
}
