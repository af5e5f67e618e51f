package repository

import (
	"context"

	"loanlink-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoanRepository struct {
	collection *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{collection: db.Collection("loans")}
}

func (r *LoanRepository) Find(ctx context.Context, filter bson.M, limit int64) ([]models.Loan, error) {
	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	loans := []models.Loan{}
	if err = cursor.All(ctx, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error) {
	var loan models.Loan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&loan)
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, loan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *LoanRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*UpdateResult, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return nil, err
	}
	return &UpdateResult{MatchedCount: result.MatchedCount, ModifiedCount: result.ModifiedCount}, nil
}

func (r *LoanRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: result.DeletedCount}, nil
}
