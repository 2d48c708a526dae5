package model

import "time"

type RefreshTokenModel struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user_id" json:"user_id"`

	// HMAC of the token, never the token itself
	TokenHash string `bson:"token_hash" json:"-"`

	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	UserAgent string    `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	IP        string    `bson:"ip,omitempty" json:"ip,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
