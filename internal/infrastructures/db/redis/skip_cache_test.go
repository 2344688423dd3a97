package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

func TestSkipsKey(t *testing.T) {
	got := skipsKey(models.Location{Postcode: " nr32", Area: "Lowestoft "})
	if got != "skips:NR32:lowestoft" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestSetSkips_ZeroTTLSkipsWrite(t *testing.T) {
	repo := NewSkipCacheRepository(nil)

	err := repo.SetSkips(context.Background(), models.Location{Postcode: "NR32", Area: "Lowestoft"}, []models.Skip{{ID: 1}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetSkips_UnreachableRedisIsNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	_, err := NewSkipCacheRepository(client).GetSkips(context.Background(), models.Location{Postcode: "NR32", Area: "Lowestoft"})
	if err == nil {
		t.Fatal("expected error for unreachable redis")
	}
	if errors.Is(err, derr.ErrCacheMiss) {
		t.Fatalf("connection errors must not be reported as cache misses: %v", err)
	}
}
