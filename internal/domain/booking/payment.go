package booking

import (
	"fmt"
	"strings"

	derr "github.com/ozzus/skip-hire/internal/domain/errors"
)

type PaymentMethod string

const (
	PaymentNone         PaymentMethod = ""
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCreditCard:   "Credit Card",
	PaymentDebitCard:    "Debit Card",
	PaymentBankTransfer: "Bank Transfer",
}

// PaymentMethods lists the accepted methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer}
}

func (m PaymentMethod) Label() string {
	return paymentLabels[m]
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentLabels[m]
	return ok
}

// ParsePaymentMethod accepts either the code ("debit_card") or the display
// label ("Debit Card"), case-insensitively.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	value := strings.TrimSpace(raw)
	for m, label := range paymentLabels {
		if strings.EqualFold(value, string(m)) || strings.EqualFold(value, label) {
			return m, nil
		}
	}
	return PaymentNone, fmt.Errorf("%w: %q", derr.ErrInvalidPaymentMethod, raw)
}
