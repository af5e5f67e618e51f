package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Loan struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	InterestRate float64            `json:"interestRate" bson:"interestRate"`
	Category     string             `json:"category" bson:"category"`
	MaxLoan      float64            `json:"maxLoan" bson:"maxLoan"`
	Image        string             `json:"image" bson:"image"`
	CreatedBy    string             `json:"createdBy" bson:"createdBy"`
}
