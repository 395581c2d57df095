package auth_models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminCollection is the MongoDB collection holding admin credentials
const AdminCollection = "admins"

// Admin represents the single dashboard operator. Created by the seed
// command and never mutated by the API.
type Admin struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Password string             `json:"-" bson:"password"` // bcrypt hash, not exposed in JSON
}

// NewAdmin creates a new Admin instance from an already hashed password
func NewAdmin(username, passwordHash string) *Admin {
	return &Admin{
		Username: username,
		Password: passwordHash,
	}
}
