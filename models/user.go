package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email" binding:"required,email"`
	Role     string             `json:"role" bson:"role"`
	Name     string             `json:"name,omitempty" bson:"name,omitempty"`
	PhotoURL string             `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
}
