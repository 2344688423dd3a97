package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ozzus/skip-hire/internal/domain/booking"
	"github.com/ozzus/skip-hire/internal/domain/models"
)

// SkipSource returns the skips offered for the configured location, in the
// order the upstream lists them.
type SkipSource interface {
	FetchSkips(ctx context.Context) ([]models.Skip, error)
}

// OriginSkipSource is a SkipSource that can serve substitute data and says
// when it did.
type OriginSkipSource interface {
	SkipSource
	FetchSkipsWithOrigin(ctx context.Context) ([]models.Skip, models.SkipOrigin, error)
}

type SkipCache interface {
	GetSkips(ctx context.Context, location models.Location) ([]models.Skip, error)
	SetSkips(ctx context.Context, location models.Location, skips []models.Skip, ttl time.Duration) error
}

type SessionStore interface {
	Create(ctx context.Context, session *booking.Session) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Session, error)
	// Update runs fn against the stored session and keeps the changes only
	// when fn returns nil.
	Update(ctx context.Context, id uuid.UUID, fn func(*booking.Session) error) (*booking.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
