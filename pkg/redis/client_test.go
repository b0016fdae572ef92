package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hazolabs/storefront-backend/pkg/config"
)

type fakeStore struct {
	counts  map[string]int64
	expires map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeStore) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeStore) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires[key] = ttl
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.counts, k)
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestFixedWindowAllow(t *testing.T) {
	store := newFakeStore()
	client := &Client{store: store}

	for i := 0; i < 3; i++ {
		allowed, _, err := client.FixedWindowAllow(context.Background(), "login:ip:1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, count, err := client.FixedWindowAllow(context.Background(), "login:ip:1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("fourth attempt should be blocked")
	}
	if count != 4 {
		t.Fatalf("expected count 4, got %d", count)
	}

	key := client.RateLimitKey("login:ip:1.2.3.4")
	if store.expires[key] != time.Minute {
		t.Fatalf("expected ttl set on first increment, got %s", store.expires[key])
	}
}

func TestBuildKeyNamespacing(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("login"); got != "sf:rate_limit:login" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := client.CounterKey("orders"); got != "sf:counter:orders" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 5})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("unexpected pool size %d", opts.PoolSize)
	}
}
