package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ozzus/skip-hire/internal/domain/booking"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/shopspring/decimal"
)

var start = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

func newStore(ttl time.Duration, now *time.Time) *SessionStore {
	store := NewSessionStore(ttl, 0)
	store.now = func() time.Time { return *now }
	return store
}

func TestSessionStore_CreateGet(t *testing.T) {
	now := start
	store := newStore(time.Hour, &now)
	session := booking.NewSession(uuid.New(), now)

	if err := store.Create(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != session.ID || got.State != booking.StateBrowsing {
		t.Fatalf("unexpected session: %+v", got)
	}

	got.State = booking.StateConfirmed
	again, _ := store.Get(context.Background(), session.ID)
	if again.State != booking.StateBrowsing {
		t.Fatalf("stored session mutated through returned copy")
	}
}

func TestSessionStore_GetUnknown(t *testing.T) {
	now := start
	store := newStore(time.Hour, &now)

	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, derr.ErrSessionNotFound) {
		t.Fatalf("unexpected error: got %v want %v", err, derr.ErrSessionNotFound)
	}
}

func TestSessionStore_UpdateDiscardsFailedChanges(t *testing.T) {
	now := start
	store := newStore(time.Hour, &now)
	session := booking.NewSession(uuid.New(), now)
	_ = store.Create(context.Background(), session)

	skip := models.Skip{ID: 1, SizeYards: 4, PriceBeforeVAT: decimal.NewFromInt(278), VATPercent: 20}
	_, err := store.Update(context.Background(), session.ID, func(s *booking.Session) error {
		if err := s.Select(skip); err != nil {
			return err
		}
		return s.SetPaymentMethod("cash")
	})
	if !errors.Is(err, derr.ErrInvalidPaymentMethod) {
		t.Fatalf("unexpected error: got %v want %v", err, derr.ErrInvalidPaymentMethod)
	}

	got, _ := store.Get(context.Background(), session.ID)
	if got.State != booking.StateBrowsing || got.Selected != nil {
		t.Fatalf("failed update leaked into store: %+v", got)
	}

	updated, err := store.Update(context.Background(), session.ID, func(s *booking.Session) error {
		return s.Select(skip)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.State != booking.StateSelected {
		t.Fatalf("unexpected state: got %s want %s", updated.State, booking.StateSelected)
	}
}

func TestSessionStore_ExpiresIdleSessions(t *testing.T) {
	now := start
	store := newStore(30*time.Minute, &now)
	idle := booking.NewSession(uuid.New(), now)
	_ = store.Create(context.Background(), idle)

	now = start.Add(20 * time.Minute)
	active := booking.NewSession(uuid.New(), now)
	_ = store.Create(context.Background(), active)

	now = start.Add(31 * time.Minute)
	if _, err := store.Get(context.Background(), idle.ID); !errors.Is(err, derr.ErrSessionNotFound) {
		t.Fatalf("expected idle session to be expired, got %v", err)
	}

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("unexpected removed count: got %d want 1", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("unexpected store size: got %d want 1", store.Len())
	}
	if _, err := store.Get(context.Background(), active.ID); err != nil {
		t.Fatalf("active session should survive sweep: %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	now := start
	store := newStore(0, &now)
	session := booking.NewSession(uuid.New(), now)
	_ = store.Create(context.Background(), session)

	if err := store.Delete(context.Background(), session.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(context.Background(), session.ID); !errors.Is(err, derr.ErrSessionNotFound) {
		t.Fatalf("unexpected error: got %v want %v", err, derr.ErrSessionNotFound)
	}
}

func TestSessionStore_ReadsKeepSessionAlive(t *testing.T) {
	now := start
	store := newStore(30*time.Minute, &now)
	session := booking.NewSession(uuid.New(), now)
	_ = store.Create(context.Background(), session)

	for _, offset := range []time.Duration{20 * time.Minute, 45 * time.Minute, 70 * time.Minute} {
		now = start.Add(offset)
		got, err := store.Get(context.Background(), session.ID)
		if err != nil {
			t.Fatalf("session expired while polled at +%v: %v", offset, err)
		}
		if !got.UpdatedAt.Equal(start) {
			t.Fatalf("read changed updated_at: got %v want %v", got.UpdatedAt, start)
		}
	}

	now = start.Add(101 * time.Minute)
	if _, err := store.Get(context.Background(), session.ID); !errors.Is(err, derr.ErrSessionNotFound) {
		t.Fatalf("unexpected error: got %v want %v", err, derr.ErrSessionNotFound)
	}
}

func TestSessionStore_Limit(t *testing.T) {
	now := start
	store := NewSessionStore(30*time.Minute, 2)
	store.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if err := store.Create(context.Background(), booking.NewSession(uuid.New(), now)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	err := store.Create(context.Background(), booking.NewSession(uuid.New(), now))
	if !errors.Is(err, derr.ErrSessionLimitReached) {
		t.Fatalf("unexpected error: got %v want %v", err, derr.ErrSessionLimitReached)
	}
	if store.Len() != 2 {
		t.Fatalf("unexpected store size: got %d want 2", store.Len())
	}

	now = start.Add(31 * time.Minute)
	if err := store.Create(context.Background(), booking.NewSession(uuid.New(), now)); err != nil {
		t.Fatalf("expired sessions should free capacity: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("unexpected store size: got %d want 1", store.Len())
	}
}
