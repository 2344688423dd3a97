package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ozzus/skip-hire/internal/application/service"
	"github.com/ozzus/skip-hire/internal/domain/booking"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"go.uber.org/zap"
)

type Sessions interface {
	StartSession(ctx context.Context) (*booking.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*booking.Session, error)
	SetCriteria(ctx context.Context, id uuid.UUID, criteria models.FilterCriteria) (*booking.Session, error)
	ListForSession(ctx context.Context, id uuid.UUID) (models.Listing, error)
	Select(ctx context.Context, id uuid.UUID, skipID models.SkipID) (*booking.Session, error)
	Back(ctx context.Context, id uuid.UUID) (*booking.Session, error)
	UpdateForm(ctx context.Context, id uuid.UUID, update service.FormUpdate) (*booking.Session, error)
	Confirm(ctx context.Context, id uuid.UUID) (booking.Confirmation, error)
	DeliveryDates() []time.Time
}

type SessionHandler struct {
	log      *zap.Logger
	sessions Sessions
	timeout  time.Duration
}

type filtersRequest struct {
	Search          string `json:"search"`
	RoadAllowedOnly bool   `json:"road_allowed_only"`
	HeavyWasteOnly  bool   `json:"heavy_waste_only"`
	MaxPrice        *int64 `json:"max_price"`
}

type selectRequest struct {
	SkipID int64 `json:"skip_id"`
}

type bookingRequest struct {
	PermitAcknowledged *bool   `json:"permit_acknowledged"`
	DeliveryDate       *string `json:"delivery_date"`
	PaymentMethod      *string `json:"payment_method"`
}

func NewSessionHandler(log *zap.Logger, sessions Sessions, timeout time.Duration) *SessionHandler {
	return &SessionHandler{log: log, sessions: sessions, timeout: timeout}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.sessions.StartSession(ctx)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	w.Header().Set("Location", "/v1/sessions/"+session.ID.String())
	writeJSON(w, http.StatusCreated, mapSession(session))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.sessions.GetSession(ctx, id)
	h.respondSession(w, session, err)
}

func (h *SessionHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req filtersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	criteria := models.FilterCriteria{
		SearchText:      req.Search,
		RoadAllowedOnly: req.RoadAllowedOnly,
		HeavyWasteOnly:  req.HeavyWasteOnly,
		MaxPrice:        models.DefaultMaxPrice,
	}
	if req.MaxPrice != nil {
		criteria.MaxPrice = *req.MaxPrice
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.sessions.SetCriteria(ctx, id, criteria)
	h.respondSession(w, session, err)
}

func (h *SessionHandler) ListSkips(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	listing, err := h.sessions.ListForSession(ctx, id)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, mapListing(listing))
}

func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil || req.SkipID <= 0 {
		writeError(w, http.StatusBadRequest, "skip_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.sessions.Select(ctx, id, models.SkipID(req.SkipID))
	h.respondSession(w, session, err)
}

func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.sessions.Back(ctx, id)
	h.respondSession(w, session, err)
}

func (h *SessionHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req bookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := service.FormUpdate{PermitAcknowledged: req.PermitAcknowledged}
	if req.DeliveryDate != nil {
		date, err := booking.ParseDate(strings.TrimSpace(*req.DeliveryDate))
		if err != nil {
			writeError(w, http.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
			return
		}
		update.DeliveryDate = &date
	}
	if req.PaymentMethod != nil {
		method, err := booking.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			writeDomainError(w, h.log, err)
			return
		}
		update.PaymentMethod = &method
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.sessions.UpdateForm(ctx, id, update)
	h.respondSession(w, session, err)
}

func (h *SessionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	confirmation, err := h.sessions.Confirm(ctx, id)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, mapConfirmation(confirmation))
}

func (h *SessionHandler) DeliveryDates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dates":           mapDeliveryDates(h.sessions.DeliveryDates()),
		"payment_methods": paymentMethodOptions(),
	})
}

func (h *SessionHandler) respondSession(w http.ResponseWriter, session *booking.Session, err error) {
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSession(session))
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func paymentMethodOptions() []map[string]string {
	methods := booking.PaymentMethods()
	out := make([]map[string]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, map[string]string{"value": string(m), "label": m.Label()})
	}
	return out
}
