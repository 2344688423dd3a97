package errors

import "errors"

var (
	ErrDataFetchFailure     = errors.New("skip data fetch failed")
	ErrCacheMiss            = errors.New("skips not cached")
	ErrCatalogNotLoaded     = errors.New("skip catalog not loaded yet")
	ErrSkipNotFound         = errors.New("skip not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionLimitReached  = errors.New("too many active sessions")
	ErrNoSelection          = errors.New("no skip selected")
	ErrInvalidTransition    = errors.New("invalid session transition")
	ErrBookingIncomplete    = errors.New("booking form incomplete")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidDeliveryDate  = errors.New("delivery date not available")
	ErrInvalidCriteria      = errors.New("invalid filter criteria")
)
