package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
	delivery = time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
)

func fourYard() models.Skip {
	return models.Skip{
		ID:             17933,
		SizeYards:      4,
		HirePeriodDays: 14,
		PriceBeforeVAT: decimal.NewFromInt(278),
		VATPercent:     20,
		AllowedOnRoad:  true,
	}
}

func sixYard() models.Skip {
	s := fourYard()
	s.ID = 17934
	s.SizeYards = 6
	s.PriceBeforeVAT = decimal.NewFromInt(305)
	return s
}

func selectedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(uuid.New(), now)
	require.NoError(t, s.Select(fourYard()))
	return s
}

func completeForm(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetPermit(true))
	require.NoError(t, s.SetDeliveryDate(delivery))
	require.NoError(t, s.SetPaymentMethod(PaymentDebitCard))
}

func TestNewSession(t *testing.T) {
	s := NewSession(uuid.New(), now)

	assert.Equal(t, StateBrowsing, s.State)
	assert.Equal(t, models.DefaultFilterCriteria(), s.Criteria)
	assert.Nil(t, s.Selected)
	assert.Nil(t, s.Confirmation)
}

func TestSelect_ReplacesSelectionAndResetsForm(t *testing.T) {
	s := selectedSession(t)
	require.NoError(t, s.SetPermit(true))
	require.NoError(t, s.SetPaymentMethod(PaymentCreditCard))

	require.NoError(t, s.Select(sixYard()))

	assert.Equal(t, StateSelected, s.State)
	assert.Equal(t, models.SkipID(17934), s.Selected.ID)
	assert.Equal(t, Form{}, s.Form)
}

func TestBack_ClearsSelectionFormAndCriteria(t *testing.T) {
	s := NewSession(uuid.New(), now)
	require.NoError(t, s.SetCriteria(models.FilterCriteria{SearchText: "6", MaxPrice: 500}))
	require.NoError(t, s.Select(fourYard()))
	completeForm(t, s)

	require.NoError(t, s.Back())

	assert.Equal(t, StateBrowsing, s.State)
	assert.Nil(t, s.Selected)
	assert.Equal(t, Form{}, s.Form)
	assert.Equal(t, models.DefaultFilterCriteria(), s.Criteria)
}

func TestBack_WhileBrowsingIsNoop(t *testing.T) {
	s := NewSession(uuid.New(), now)
	criteria := models.FilterCriteria{SearchText: "8", MaxPrice: 900}
	require.NoError(t, s.SetCriteria(criteria))

	require.NoError(t, s.Back())

	assert.Equal(t, StateBrowsing, s.State)
	assert.Equal(t, criteria, s.Criteria)
}

func TestFormSetters_RequireSelection(t *testing.T) {
	s := NewSession(uuid.New(), now)

	assert.ErrorIs(t, s.SetPermit(true), derr.ErrNoSelection)
	assert.ErrorIs(t, s.SetDeliveryDate(delivery), derr.ErrNoSelection)
	assert.ErrorIs(t, s.SetPaymentMethod(PaymentBankTransfer), derr.ErrNoSelection)
	_, err := s.Confirm(now)
	assert.ErrorIs(t, err, derr.ErrNoSelection)
}

func TestSetPaymentMethod_RejectsUnknown(t *testing.T) {
	s := selectedSession(t)

	err := s.SetPaymentMethod(PaymentMethod("cash"))

	assert.ErrorIs(t, err, derr.ErrInvalidPaymentMethod)
	assert.Equal(t, PaymentNone, s.Form.PaymentMethod)
}

func TestSetCriteria_RejectsNegativeMaxPrice(t *testing.T) {
	s := NewSession(uuid.New(), now)

	err := s.SetCriteria(models.FilterCriteria{MaxPrice: -1})

	assert.ErrorIs(t, err, derr.ErrInvalidCriteria)
	assert.Equal(t, models.DefaultFilterCriteria(), s.Criteria)
}

func TestConfirm_RejectsIncompleteForm(t *testing.T) {
	tests := []struct {
		name    string
		fill    func(s *Session)
		missing string
	}{
		{"no permit", func(s *Session) {
			_ = s.SetDeliveryDate(delivery)
			_ = s.SetPaymentMethod(PaymentCreditCard)
		}, "permit_acknowledged"},
		{"permit withdrawn", func(s *Session) {
			_ = s.SetPermit(true)
			_ = s.SetPermit(false)
			_ = s.SetDeliveryDate(delivery)
			_ = s.SetPaymentMethod(PaymentCreditCard)
		}, "permit_acknowledged"},
		{"no date", func(s *Session) {
			_ = s.SetPermit(true)
			_ = s.SetPaymentMethod(PaymentCreditCard)
		}, "delivery_date"},
		{"no payment", func(s *Session) {
			_ = s.SetPermit(true)
			_ = s.SetDeliveryDate(delivery)
		}, "payment_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := selectedSession(t)
			tt.fill(s)

			_, err := s.Confirm(now)

			assert.ErrorIs(t, err, derr.ErrBookingIncomplete)
			assert.Equal(t, []string{tt.missing}, s.Form.Missing())
			assert.Equal(t, StateSelected, s.State)
			assert.Nil(t, s.Confirmation)
		})
	}
}

func TestConfirm(t *testing.T) {
	s := selectedSession(t)
	completeForm(t, s)

	c, err := s.Confirm(now)
	require.NoError(t, err)

	assert.Equal(t, StateConfirmed, s.State)
	assert.Equal(t, Confirmation{
		SkipID:        17933,
		SizeYards:     4,
		DeliveryDate:  delivery,
		PaymentMethod: PaymentDebitCard,
		FinalPrice:    334,
		ConfirmedAt:   now,
	}, c)
	assert.Equal(t, &c, s.Confirmation)
}

func TestConfirmed_IsTerminal(t *testing.T) {
	s := selectedSession(t)
	completeForm(t, s)
	_, err := s.Confirm(now)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Select(sixYard()), derr.ErrInvalidTransition)
	assert.ErrorIs(t, s.Back(), derr.ErrInvalidTransition)
	assert.ErrorIs(t, s.SetPermit(false), derr.ErrInvalidTransition)
	assert.ErrorIs(t, s.SetCriteria(models.DefaultFilterCriteria()), derr.ErrInvalidTransition)
	_, err = s.Confirm(now)
	assert.ErrorIs(t, err, derr.ErrInvalidTransition)
	assert.Equal(t, models.SkipID(17933), s.Selected.ID)
}

func TestClone_IsDeep(t *testing.T) {
	s := selectedSession(t)
	completeForm(t, s)

	c := s.Clone()
	c.Selected.SizeYards = 99
	*c.Form.DeliveryDate = delivery.AddDate(0, 0, 1)

	assert.Equal(t, 4, s.Selected.SizeYards)
	assert.Equal(t, delivery, *s.Form.DeliveryDate)
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		raw  string
		want PaymentMethod
	}{
		{"credit_card", PaymentCreditCard},
		{"Debit Card", PaymentDebitCard},
		{" bank transfer ", PaymentBankTransfer},
		{"BANK_TRANSFER", PaymentBankTransfer},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePaymentMethod(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.Label())
		})
	}

	_, err := ParsePaymentMethod("cheque")
	assert.ErrorIs(t, err, derr.ErrInvalidPaymentMethod)
}
