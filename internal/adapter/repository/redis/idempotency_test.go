package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyCheckAndSetNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, existing, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatalf("expected new key, got existing value %s", existing)
	}
}

func TestIdempotencyCheckAndSetExistingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", []byte("response"), time.Minute); err != nil {
		t.Fatalf("first check failed: %v", err)
	}

	exists, existing, err := store.CheckAndSet(ctx, "key-1", []byte("other"), time.Minute)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected key to exist")
	}
	if string(existing) != "response" {
		t.Fatalf("expected original response, got %s", existing)
	}
}

func TestIdempotencyUpdate(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if err := store.Update(ctx, "key-1", []byte("final"), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, existing, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil || !exists {
		t.Fatalf("expected existing key, got exists=%v err=%v", exists, err)
	}
	if string(existing) != "final" {
		t.Fatalf("expected final response, got %s", existing)
	}
}
