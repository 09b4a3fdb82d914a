package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/credential-service/internal/core/domain"
)

// unreachableClient points at a port nothing listens on so every command
// fails fast.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestProfileCache_Key(t *testing.T) {
	c := NewProfileCache(nil, 0)
	if got := c.key("abc"); got != "profile:abc" {
		t.Fatalf("unexpected key %q", got)
	}
	if c.ttl != defaultProfileTTL {
		t.Fatalf("expected default ttl, got %v", c.ttl)
	}
}

func TestProfileCache_UnreachableServer(t *testing.T) {
	c := NewProfileCache(unreachableClient(t), time.Minute)
	ctx := context.Background()

	account, err := c.Get(ctx, "abc")
	if err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	if account != nil {
		t.Fatalf("expected nil account, got %+v", account)
	}

	if err := c.Set(ctx, &domain.Account{ID: "abc", Email: "a@x.com"}); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}

	if err := c.Delete(ctx, "abc"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	if _, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 100 * time.Millisecond}); err == nil {
		t.Fatalf("expected connect error")
	}
}
