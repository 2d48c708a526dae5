package model

import "time"

type TokenBlacklistModel struct {
	Token     string    `bson:"token" json:"token"`
	ExpiredAt time.Time `bson:"expired_at" json:"expired_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
