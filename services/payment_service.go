package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"loanlink-backend/models"
	"loanlink-backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Loan application fee charged through hosted checkout.
const (
	applicationFeeMinorUnits = 1000
	applicationFeeCurrency   = "usd"
	applicationFeeProduct    = "Loan Application Fee"
)

// ServiceError carries the HTTP status a failure should map to.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// VerifyResult is the outcome of a payment verification.
type VerifyResult struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message,omitempty"`
	Result  *repository.UpdateResult `json:"result,omitempty"`
}

// PaymentService orchestrates the checkout handshake: session creation for an
// application's fee and the pull-based verification that marks the fee paid.
type PaymentService struct {
	apps      repository.ApplicationRepo
	checkout  CheckoutProvider
	appOrigin string
	logger    *zap.Logger
}

func NewPaymentService(apps repository.ApplicationRepo, checkout CheckoutProvider, appOrigin string, logger *zap.Logger) *PaymentService {
	return &PaymentService{apps: apps, checkout: checkout, appOrigin: appOrigin, logger: logger}
}

// Initiate opens a new checkout session for the application's fee. Each call
// creates an independent session; any of them can later mark the application
// paid. The application must exist.
func (s *PaymentService) Initiate(ctx context.Context, applicationID string) (*CheckoutSession, error) {
	id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid application id"}
	}

	if _, err := s.apps.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Application not found"}
		}
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
	}

	sess, err := s.checkout.CreateSession(ctx, CreateSessionParams{
		AmountMinorUnits: applicationFeeMinorUnits,
		Currency:         applicationFeeCurrency,
		ProductName:      applicationFeeProduct,
		SuccessURL:       fmt.Sprintf("%s/payment-success?session_id={CHECKOUT_SESSION_ID}&application_id=%s", s.appOrigin, applicationID),
		CancelURL:        fmt.Sprintf("%s/payment-cancel?application_id=%s", s.appOrigin, applicationID),
		Metadata:         map[string]string{"applicationId": applicationID},
	})
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("application_id", applicationID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: err.Error()}
	}

	s.logger.Info("checkout session created",
		zap.String("application_id", applicationID), zap.String("session_id", sess.ID))
	return sess, nil
}

// Verify pulls the session's status from the provider and, if paid, records
// the paid fee status and a payment snapshot on the application. Re-verifying
// an already-paid application re-applies the same terminal state.
func (s *PaymentService) Verify(ctx context.Context, sessionID, applicationID string) (*VerifyResult, error) {
	id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid application id"}
	}

	sess, err := s.checkout.RetrieveSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("checkout session lookup failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: err.Error()}
	}

	if sess.PaymentStatus != PaymentStatusPaid {
		return &VerifyResult{Success: false, Message: "Payment not completed"}, nil
	}

	updates := bson.M{
		"feeStatus": models.FeeStatusPaid,
		"paymentDetails": models.PaymentDetails{
			SessionID: sess.ID,
			Amount:    float64(sess.AmountTotal) / 100,
			Currency:  sess.Currency,
			PaidAt:    time.Now().UTC(),
		},
	}
	result, err := s.apps.UpdateByID(ctx, id, updates)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
	}
	if result.MatchedCount == 0 {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Application not found"}
	}

	s.logger.Info("application fee paid",
		zap.String("application_id", applicationID), zap.String("session_id", sess.ID))
	return &VerifyResult{Success: true, Result: result}, nil
}
