package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ozzus/skip-hire/internal/domain/booking"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/ports"
	"github.com/ozzus/skip-hire/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type SkipCatalog interface {
	List(ctx context.Context, criteria models.FilterCriteria) (models.Listing, error)
	Get(ctx context.Context, id models.SkipID) (models.Skip, error)
}

// FormUpdate carries the booking fields a client wants to change. Nil fields
// are left as they are.
type FormUpdate struct {
	PermitAcknowledged *bool
	DeliveryDate       *time.Time
	PaymentMethod      *booking.PaymentMethod
}

type BookingService struct {
	log            *zap.Logger
	catalog        SkipCatalog
	store          ports.SessionStore
	deliveryWindow int
	now            func() time.Time
}

func NewBookingService(log *zap.Logger, catalog SkipCatalog, store ports.SessionStore, deliveryWindow int) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	if deliveryWindow <= 0 {
		deliveryWindow = booking.DefaultDeliveryWindowDays
	}

	return &BookingService{
		log:            log,
		catalog:        catalog,
		store:          store,
		deliveryWindow: deliveryWindow,
		now:            time.Now,
	}
}

func (s *BookingService) StartSession(ctx context.Context) (*booking.Session, error) {
	const op = "service.StartSession"
	ctx, span := s.start(ctx, op, uuid.Nil)
	defer span.End()

	session := booking.NewSession(uuid.New(), s.now().UTC())
	if err := s.store.Create(ctx, session); err != nil {
		s.log.Error("failed to store session", zap.String("op", op), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "store session")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("session started", zap.String("op", op), zap.Stringer("session_id", session.ID))
	return session.Clone(), nil
}

func (s *BookingService) GetSession(ctx context.Context, id uuid.UUID) (*booking.Session, error) {
	return s.store.Get(ctx, id)
}

func (s *BookingService) SetCriteria(ctx context.Context, id uuid.UUID, criteria models.FilterCriteria) (*booking.Session, error) {
	return s.transition(ctx, "filter", id, func(session *booking.Session) error {
		return session.SetCriteria(criteria)
	})
}

// ListForSession filters the catalog with the criteria stored on the session.
func (s *BookingService) ListForSession(ctx context.Context, id uuid.UUID) (models.Listing, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	return s.catalog.List(ctx, session.Criteria)
}

func (s *BookingService) Select(ctx context.Context, id uuid.UUID, skipID models.SkipID) (*booking.Session, error) {
	skip, err := s.catalog.Get(ctx, skipID)
	if err != nil {
		metrics.ObserveTransition("select", err)
		return nil, err
	}
	return s.transition(ctx, "select", id, func(session *booking.Session) error {
		return session.Select(skip)
	})
}

func (s *BookingService) Back(ctx context.Context, id uuid.UUID) (*booking.Session, error) {
	return s.transition(ctx, "back", id, func(session *booking.Session) error {
		return session.Back()
	})
}

// UpdateForm applies every field of update or none of them.
func (s *BookingService) UpdateForm(ctx context.Context, id uuid.UUID, update FormUpdate) (*booking.Session, error) {
	today := s.now().UTC()
	return s.transition(ctx, "update_form", id, func(session *booking.Session) error {
		if update.PermitAcknowledged != nil {
			if err := session.SetPermit(*update.PermitAcknowledged); err != nil {
				return err
			}
		}
		if update.DeliveryDate != nil {
			if !booking.IsDeliveryDateAvailable(*update.DeliveryDate, today, s.deliveryWindow) {
				return fmt.Errorf("%w: %s", derr.ErrInvalidDeliveryDate, update.DeliveryDate.Format(booking.DateLayout))
			}
			if err := session.SetDeliveryDate(*update.DeliveryDate); err != nil {
				return err
			}
		}
		if update.PaymentMethod != nil {
			if err := session.SetPaymentMethod(*update.PaymentMethod); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BookingService) Confirm(ctx context.Context, id uuid.UUID) (booking.Confirmation, error) {
	var confirmation booking.Confirmation
	_, err := s.transition(ctx, "confirm", id, func(session *booking.Session) error {
		c, err := session.Confirm(s.now().UTC())
		if err != nil {
			return err
		}
		confirmation = c
		return nil
	})
	if err != nil {
		return booking.Confirmation{}, err
	}

	metrics.BookingsConfirmed.Inc()
	s.log.Info("booking confirmed",
		zap.String("op", "service.Confirm"),
		zap.Stringer("session_id", id),
		zap.Int64("skip_id", int64(confirmation.SkipID)),
		zap.Int64("final_price", confirmation.FinalPrice),
	)
	return confirmation, nil
}

func (s *BookingService) DeliveryDates() []time.Time {
	return booking.AvailableDeliveryDates(s.now().UTC(), s.deliveryWindow)
}

func (s *BookingService) transition(ctx context.Context, name string, id uuid.UUID, fn func(*booking.Session) error) (*booking.Session, error) {
	op := "service.Session." + name
	ctx, span := s.start(ctx, op, id)
	defer span.End()

	logger := s.log.With(zap.String("op", op), zap.Stringer("session_id", id))

	now := s.now().UTC()
	session, err := s.store.Update(ctx, id, func(session *booking.Session) error {
		if err := fn(session); err != nil {
			return err
		}
		session.UpdatedAt = now
		return nil
	})
	metrics.ObserveTransition(name, err)
	if err != nil {
		logger.Info("session transition rejected", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "transition rejected")
		return nil, err
	}

	span.SetAttributes(attribute.String("session.state", string(session.State)))
	logger.Debug("session transition applied", zap.String("state", string(session.State)))
	return session, nil
}

func (s *BookingService) start(ctx context.Context, op string, id uuid.UUID) (context.Context, trace.Span) {
	ctx, span := otel.Tracer("skip-hire/service").Start(ctx, op)
	if id != uuid.Nil {
		span.SetAttributes(attribute.String("session.id", id.String()))
	}
	return ctx, span
}
