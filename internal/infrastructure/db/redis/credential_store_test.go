package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

func newTestStore(t *testing.T) (*CredentialStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCredentialStore(client), mr
}

func TestCredentialStore_RoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Load(ctx); err != domain.ErrNoCredential {
		t.Fatalf("expected ErrNoCredential on empty store, got %v", err)
	}

	if err := store.Save(ctx, "T"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "T" {
		t.Fatalf("expected T, got %q", got)
	}
	if ttl := mr.TTL(CredentialKey); ttl != 0 {
		t.Fatalf("credential must not expire, ttl=%v", ttl)
	}

	if err := store.Save(ctx, "U"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.Load(ctx); got != "U" {
		t.Fatalf("expected overwrite to U, got %q", got)
	}
}

func TestCredentialStore_Clear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}
	_ = store.Save(ctx, "T")
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists(CredentialKey) {
		t.Fatalf("key still present after clear")
	}
	if _, err := store.Load(ctx); err != domain.ErrNoCredential {
		t.Fatalf("expected ErrNoCredential after clear, got %v", err)
	}
}

func TestCredentialStore_ConnectionError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	if _, err := store.Load(context.Background()); err == nil || err == domain.ErrNoCredential {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping failure against a stopped server")
	}
}
