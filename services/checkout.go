package services

import "context"

// CheckoutSession is the provider-neutral view of a hosted checkout session.
// AmountTotal is in minor units, as reported by the provider.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

const PaymentStatusPaid = "paid"

// CreateSessionParams carries everything needed to open a hosted checkout.
type CreateSessionParams struct {
	AmountMinorUnits int64
	Currency         string
	ProductName      string
	SuccessURL       string
	CancelURL        string
	Metadata         map[string]string
}

// CheckoutProvider abstracts the hosted checkout service. The server never
// receives pushes from the provider; session state is always pulled via
// RetrieveSession.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
