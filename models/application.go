package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fee status is monotonic: Unpaid until a checkout session for the
// application reports paid, then Paid forever.
const (
	FeeStatusUnpaid = "Unpaid"
	FeeStatusPaid   = "Paid"
)

type Application struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	LoanID         string             `json:"loanId" bson:"loanId" binding:"required"`
	UserEmail      string             `json:"userEmail" bson:"userEmail" binding:"required,email"`
	Status         string             `json:"status" bson:"status"`
	FeeStatus      string             `json:"feeStatus" bson:"feeStatus"`
	PaymentDetails *PaymentDetails    `json:"paymentDetails,omitempty" bson:"paymentDetails,omitempty"`
}

// PaymentDetails is the snapshot of a verified checkout session. Amount is in
// major units (the provider reports minor units).
type PaymentDetails struct {
	SessionID string    `json:"sessionId" bson:"sessionId"`
	Amount    float64   `json:"amount" bson:"amount"`
	Currency  string    `json:"currency" bson:"currency"`
	PaidAt    time.Time `json:"paidAt" bson:"paidAt"`
}
