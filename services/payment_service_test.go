package services_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"loanlink-backend/models"
	"loanlink-backend/repository"
	"loanlink-backend/services"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ---- in-memory application repo ----

type mockAppRepo struct {
	apps map[string]*models.Application
}

func newMockAppRepo() *mockAppRepo {
	return &mockAppRepo{apps: make(map[string]*models.Application)}
}

func (m *mockAppRepo) add(app *models.Application) primitive.ObjectID {
	if app.ID.IsZero() {
		app.ID = primitive.NewObjectID()
	}
	m.apps[app.ID.Hex()] = app
	return app.ID
}

func (m *mockAppRepo) Find(_ context.Context, filter bson.M) ([]models.Application, error) {
	var result []models.Application
	for _, app := range m.apps {
		result = append(result, *app)
	}
	return result, nil
}

func (m *mockAppRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Application, error) {
	app, ok := m.apps[id.Hex()]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return app, nil
}

func (m *mockAppRepo) Create(_ context.Context, app *models.Application) (primitive.ObjectID, error) {
	return m.add(app), nil
}

func (m *mockAppRepo) UpdateByID(_ context.Context, id primitive.ObjectID, updates bson.M) (*repository.UpdateResult, error) {
	app, ok := m.apps[id.Hex()]
	if !ok {
		return &repository.UpdateResult{}, nil
	}
	if fee, ok := updates["feeStatus"].(string); ok {
		app.FeeStatus = fee
	}
	if pd, ok := updates["paymentDetails"].(models.PaymentDetails); ok {
		app.PaymentDetails = &pd
	}
	return &repository.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// ---- mock checkout provider ----

type mockCheckout struct {
	sessions    map[string]*services.CheckoutSession
	created     []services.CreateSessionParams
	paymentStat string
	createErr   error
	retrieveErr error
}

func newMockCheckout(paymentStatus string) *mockCheckout {
	return &mockCheckout{
		sessions:    make(map[string]*services.CheckoutSession),
		paymentStat: paymentStatus,
	}
}

func (m *mockCheckout) CreateSession(_ context.Context, p services.CreateSessionParams) (*services.CheckoutSession, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, p)
	id := fmt.Sprintf("cs_test_%d", len(m.created))
	sess := &services.CheckoutSession{
		ID:            id,
		URL:           "https://checkout.stripe.test/" + id,
		PaymentStatus: m.paymentStat,
		AmountTotal:   p.AmountMinorUnits,
		Currency:      p.Currency,
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *mockCheckout) RetrieveSession(_ context.Context, sessionID string) (*services.CheckoutSession, error) {
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session: %s", sessionID)
	}
	return sess, nil
}

// ---- helpers ----

func newTestService(repo *mockAppRepo, checkout *mockCheckout) *services.PaymentService {
	logger, _ := zap.NewDevelopment()
	return services.NewPaymentService(repo, checkout, "http://localhost:5173", logger)
}

func pendingApplication() *models.Application {
	return &models.Application{
		LoanID:    "L1",
		UserEmail: "a@x.com",
		Status:    "pending",
		FeeStatus: models.FeeStatusUnpaid,
	}
}

// ---- tests ----

func TestInitiate_UnknownApplication(t *testing.T) {
	repo := newMockAppRepo()
	svc := newTestService(repo, newMockCheckout("unpaid"))

	_, err := svc.Initiate(context.Background(), primitive.NewObjectID().Hex())

	var svcErr *services.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestInitiate_MalformedID(t *testing.T) {
	svc := newTestService(newMockAppRepo(), newMockCheckout("unpaid"))

	_, err := svc.Initiate(context.Background(), "not-an-object-id")

	var svcErr *services.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestInitiate_CreatesSessionWithRedirectsAndMetadata(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("unpaid")
	svc := newTestService(repo, checkout)

	sess, err := svc.Initiate(context.Background(), id.Hex())

	assert.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.NotEmpty(t, sess.URL)

	created := checkout.created[0]
	assert.Equal(t, int64(1000), created.AmountMinorUnits)
	assert.Equal(t, "usd", created.Currency)
	assert.Equal(t, id.Hex(), created.Metadata["applicationId"])
	assert.Contains(t, created.SuccessURL, "http://localhost:5173/payment-success")
	assert.Contains(t, created.SuccessURL, "application_id="+id.Hex())
	assert.Contains(t, created.CancelURL, "http://localhost:5173/payment-cancel")
	assert.Contains(t, created.CancelURL, "application_id="+id.Hex())
}

func TestInitiate_TwiceYieldsDistinctSessions(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("paid")
	svc := newTestService(repo, checkout)

	first, err := svc.Initiate(context.Background(), id.Hex())
	assert.NoError(t, err)
	second, err := svc.Initiate(context.Background(), id.Hex())
	assert.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	// Either session independently verifies the application to paid.
	result, err := svc.Verify(context.Background(), second.ID, id.Hex())
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.FeeStatusPaid, repo.apps[id.Hex()].FeeStatus)
}

func TestInitiate_ProviderError(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("unpaid")
	checkout.createErr = fmt.Errorf("stripe: rate limited")
	svc := newTestService(repo, checkout)

	_, err := svc.Initiate(context.Background(), id.Hex())

	var svcErr *services.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadGateway, svcErr.StatusCode)
}

func TestVerify_UnpaidLeavesFeeStatusUnchanged(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("unpaid")
	svc := newTestService(repo, checkout)

	sess, err := svc.Initiate(context.Background(), id.Hex())
	assert.NoError(t, err)

	result, err := svc.Verify(context.Background(), sess.ID, id.Hex())

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Payment not completed", result.Message)
	assert.Equal(t, models.FeeStatusUnpaid, repo.apps[id.Hex()].FeeStatus)
	assert.Nil(t, repo.apps[id.Hex()].PaymentDetails)
}

func TestVerify_PaidMarksApplication(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("paid")
	svc := newTestService(repo, checkout)

	sess, err := svc.Initiate(context.Background(), id.Hex())
	assert.NoError(t, err)

	result, err := svc.Verify(context.Background(), sess.ID, id.Hex())

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(1), result.Result.MatchedCount)

	app := repo.apps[id.Hex()]
	assert.Equal(t, models.FeeStatusPaid, app.FeeStatus)
	assert.Equal(t, sess.ID, app.PaymentDetails.SessionID)
	assert.Equal(t, 10.0, app.PaymentDetails.Amount)
	assert.Equal(t, "usd", app.PaymentDetails.Currency)
	assert.False(t, app.PaymentDetails.PaidAt.IsZero())
}

func TestVerify_IsIdempotentOnPaidState(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("paid")
	svc := newTestService(repo, checkout)

	sess, _ := svc.Initiate(context.Background(), id.Hex())

	for i := 0; i < 3; i++ {
		result, err := svc.Verify(context.Background(), sess.ID, id.Hex())
		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, models.FeeStatusPaid, repo.apps[id.Hex()].FeeStatus)
	}
}

func TestVerify_UnknownApplication(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("paid")
	svc := newTestService(repo, checkout)

	sess, _ := svc.Initiate(context.Background(), id.Hex())

	_, err := svc.Verify(context.Background(), sess.ID, primitive.NewObjectID().Hex())

	var svcErr *services.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestVerify_ProviderLookupError(t *testing.T) {
	repo := newMockAppRepo()
	id := repo.add(pendingApplication())
	checkout := newMockCheckout("paid")
	checkout.retrieveErr = fmt.Errorf("stripe: no such session")
	svc := newTestService(repo, checkout)

	_, err := svc.Verify(context.Background(), "cs_test_bogus", id.Hex())

	var svcErr *services.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadGateway, svcErr.StatusCode)
}
