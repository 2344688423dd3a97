// Package booking holds the per-client selection and checkout state. A
// session is only changed through its transition methods.
package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/pricing"
)

type State string

const (
	StateBrowsing  State = "browsing"
	StateSelected  State = "selected"
	StateConfirmed State = "confirmed"
)

type Form struct {
	PermitAcknowledged bool          `json:"permit_acknowledged"`
	DeliveryDate       *time.Time    `json:"delivery_date,omitempty"`
	PaymentMethod      PaymentMethod `json:"payment_method,omitempty"`
}

func (f Form) Valid() bool {
	return len(f.Missing()) == 0
}

// Missing names the form fields still required before confirmation.
func (f Form) Missing() []string {
	var missing []string
	if !f.PermitAcknowledged {
		missing = append(missing, "permit_acknowledged")
	}
	if f.DeliveryDate == nil {
		missing = append(missing, "delivery_date")
	}
	if !f.PaymentMethod.Valid() {
		missing = append(missing, "payment_method")
	}
	return missing
}

type Confirmation struct {
	SkipID        models.SkipID `json:"skip_id"`
	SizeYards     int           `json:"size"`
	DeliveryDate  time.Time     `json:"delivery_date"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	FinalPrice    int64         `json:"final_price"`
	ConfirmedAt   time.Time     `json:"confirmed_at"`
}

type Session struct {
	ID           uuid.UUID             `json:"id"`
	State        State                 `json:"state"`
	Criteria     models.FilterCriteria `json:"criteria"`
	Selected     *models.Skip          `json:"selected,omitempty"`
	Form         Form                  `json:"form"`
	Confirmation *Confirmation         `json:"confirmation,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func NewSession(id uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateBrowsing,
		Criteria:  models.DefaultFilterCriteria(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Select replaces any prior selection and starts a blank form.
func (s *Session) Select(skip models.Skip) error {
	if s.State == StateConfirmed {
		return fmt.Errorf("%w: select after confirmation", derr.ErrInvalidTransition)
	}
	selected := skip
	s.Selected = &selected
	s.Form = Form{}
	s.State = StateSelected
	return nil
}

// Back returns to browsing and drops the selection, the form and the
// criteria. Calling it while browsing changes nothing.
func (s *Session) Back() error {
	switch s.State {
	case StateConfirmed:
		return fmt.Errorf("%w: back after confirmation", derr.ErrInvalidTransition)
	case StateBrowsing:
		return nil
	}
	s.Selected = nil
	s.Form = Form{}
	s.Criteria = models.DefaultFilterCriteria()
	s.State = StateBrowsing
	return nil
}

func (s *Session) SetCriteria(criteria models.FilterCriteria) error {
	if s.State == StateConfirmed {
		return fmt.Errorf("%w: filter after confirmation", derr.ErrInvalidTransition)
	}
	if criteria.MaxPrice < 0 {
		return fmt.Errorf("%w: max price must not be negative", derr.ErrInvalidCriteria)
	}
	s.Criteria = criteria
	return nil
}

func (s *Session) SetPermit(acknowledged bool) error {
	if err := s.requireSelected(); err != nil {
		return err
	}
	s.Form.PermitAcknowledged = acknowledged
	return nil
}

func (s *Session) SetDeliveryDate(date time.Time) error {
	if err := s.requireSelected(); err != nil {
		return err
	}
	day := truncateDay(date)
	s.Form.DeliveryDate = &day
	return nil
}

func (s *Session) SetPaymentMethod(method PaymentMethod) error {
	if err := s.requireSelected(); err != nil {
		return err
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", derr.ErrInvalidPaymentMethod, method)
	}
	s.Form.PaymentMethod = method
	return nil
}

func (s *Session) Confirm(now time.Time) (Confirmation, error) {
	if err := s.requireSelected(); err != nil {
		return Confirmation{}, err
	}
	if missing := s.Form.Missing(); len(missing) > 0 {
		return Confirmation{}, fmt.Errorf("%w: missing %v", derr.ErrBookingIncomplete, missing)
	}

	c := Confirmation{
		SkipID:        s.Selected.ID,
		SizeYards:     s.Selected.SizeYards,
		DeliveryDate:  *s.Form.DeliveryDate,
		PaymentMethod: s.Form.PaymentMethod,
		FinalPrice:    pricing.FinalPrice(*s.Selected),
		ConfirmedAt:   now,
	}
	s.Confirmation = &c
	s.State = StateConfirmed
	return c, nil
}

// Clone returns a deep copy safe to hand out of a store.
func (s *Session) Clone() *Session {
	c := *s
	if s.Selected != nil {
		selected := *s.Selected
		c.Selected = &selected
	}
	if s.Form.DeliveryDate != nil {
		date := *s.Form.DeliveryDate
		c.Form.DeliveryDate = &date
	}
	if s.Confirmation != nil {
		confirmation := *s.Confirmation
		c.Confirmation = &confirmation
	}
	return &c
}

func (s *Session) requireSelected() error {
	switch s.State {
	case StateBrowsing:
		return derr.ErrNoSelection
	case StateConfirmed:
		return fmt.Errorf("%w: booking already confirmed", derr.ErrInvalidTransition)
	}
	return nil
}
