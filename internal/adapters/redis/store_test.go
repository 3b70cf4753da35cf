package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/transparentlyai/adkflow-sub012/internal/adapters/redis"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
)

func newTestClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_Contract(t *testing.T) {
	store := redis.NewFromClient(newTestClient(t))
	ports.RunProjectStoreContract(t, store)
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	client := newTestClient(t)
	a := redis.NewFromClient(client, redis.WithPrefix("tenant-a:"))
	b := redis.NewFromClient(client, redis.WithPrefix("tenant-b:"))
	ctx := context.Background()

	if err := a.Save(ctx, "proj", manifest.New("alpha")); err != nil {
		t.Fatal(err)
	}

	ids, err := b.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("tenant-b sees tenant-a projects: %v", ids)
	}
}

func TestRedisStore_TTLExpiresFromIndex(t *testing.T) {
	client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	if err := store.Save(ctx, "ephemeral", manifest.New("short-lived")); err != nil {
		t.Fatal(err)
	}

	// The index score is save-time + TTL; once that moment has passed,
	// List must lazily prune the entry even if the key itself lingers.
	time.Sleep(1100 * time.Millisecond)

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range ids {
		if id == "ephemeral" {
			t.Error("expired project still listed")
		}
	}
}
