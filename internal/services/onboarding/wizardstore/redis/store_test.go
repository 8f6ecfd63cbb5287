package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/louisbranch/inpact/internal/services/onboarding/wizard"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore"
	"github.com/louisbranch/inpact/internal/services/onboarding/wizardstore/wizardstoretest"
	"github.com/louisbranch/inpact/internal/testkit/containers"
)

const prefix = "inpact:test:wizard:"

type RedisStoreTestSuite struct {
	suite.Suite
	endpoint string
	client   *goredis.Client
	store    *Store
}

func TestRedisStoreTestSuite(t *testing.T) {
	testsuite := new(RedisStoreTestSuite)
	testsuite.endpoint = containers.RedisAddr(t)
	suite.Run(t, testsuite)
}

func (r *RedisStoreTestSuite) SetupSuite() {
	client, err := Dial(context.Background(), r.endpoint, "")
	r.Require().NoError(err, "dial redis")
	r.client = client
	r.store = New(client, prefix, time.Hour)
}

func (r *RedisStoreTestSuite) TearDownSuite() {
	if r.client != nil {
		_ = r.client.Close()
	}
}

func (r *RedisStoreTestSuite) SetupTest() {
	ctx := context.Background()
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		r.NoError(r.client.Del(ctx, iter.Val()).Err(), "redis DEL %q", iter.Val())
	}
	r.NoError(iter.Err(), "redis SCAN failed")
}

func (r *RedisStoreTestSuite) TestContract() {
	wizardstoretest.Run(r.T(), r.store)
}

func (r *RedisStoreTestSuite) TestSaveSetsTTL() {
	ctx := context.Background()
	key := wizardstore.Key{SessionID: "sess-ttl", Flow: wizard.FlowCreator}
	r.Require().NoError(r.store.Save(ctx, key, wizard.New(wizard.FlowCreator)))

	ttl, err := r.client.TTL(ctx, prefix+key.String()).Result()
	r.Require().NoError(err)
	r.Greater(ttl, 59*time.Minute)
	r.LessOrEqual(ttl, time.Hour)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	store := New(nil, "", 0)
	if store.prefix != defaultPrefix {
		t.Fatalf("prefix = %q, want %q", store.prefix, defaultPrefix)
	}
	if store.ttl != wizardstore.DefaultTTL {
		t.Fatalf("ttl = %v, want %v", store.ttl, wizardstore.DefaultTTL)
	}
	key := wizardstore.Key{SessionID: "sess-1", Flow: wizard.FlowCreator}
	if _, err := store.Load(context.Background(), key); err == nil {
		t.Fatal("expected not configured error")
	}
}
