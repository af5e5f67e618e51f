package repository

import (
	"context"

	"loanlink-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ApplicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{collection: db.Collection("applications")}
}

func (r *ApplicationRepository) Find(ctx context.Context, filter bson.M) ([]models.Application, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	apps := []models.Application{}
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *ApplicationRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*UpdateResult, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return nil, err
	}
	return &UpdateResult{MatchedCount: result.MatchedCount, ModifiedCount: result.ModifiedCount}, nil
}
