package model

import (
	"time"
)

// UserModel is a document in the users collection.
type UserModel struct {
	ID        string    `bson:"_id" json:"id"`
	UserName  string    `bson:"user_name" json:"user_name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	FullName  string    `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      string    `bson:"role" json:"role"`
	GoogleID  *string   `bson:"google_id,omitempty" json:"-"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
