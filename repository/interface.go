package repository

import (
	"context"

	"loanlink-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateResult reports how many documents a partial update matched and changed.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount,omitempty"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// LoanRepo defines the operations the loan handlers use.
type LoanRepo interface {
	Find(ctx context.Context, filter bson.M, limit int64) ([]models.Loan, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error)
	Create(ctx context.Context, loan *models.Loan) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}

// UserRepo defines the operations the user handlers use. Email is the
// natural lookup key; users are never deleted.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateByEmail(ctx context.Context, email string, updates bson.M) (*UpdateResult, error)
	UpsertRoleByEmail(ctx context.Context, email, role string) (*UpdateResult, error)
}

// ApplicationRepo defines the operations the application handlers and the
// payment verification flow use.
type ApplicationRepo interface {
	Find(ctx context.Context, filter bson.M) ([]models.Application, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	Create(ctx context.Context, app *models.Application) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*UpdateResult, error)
}
