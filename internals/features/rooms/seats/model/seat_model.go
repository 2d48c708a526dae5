package model

import "time"

const (
	TypeRegular = "regular"
	TypeCabin   = "cabin"
	TypePremium = "premium"

	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

var Statuses = []string{StatusAvailable, StatusOccupied, StatusMaintenance}

type SeatModel struct {
	ID        string    `bson:"_id" json:"id"`
	Number    string    `bson:"number" json:"number"`
	Section   string    `bson:"section,omitempty" json:"section,omitempty"`
	Type      string    `bson:"type" json:"type"`
	Status    string    `bson:"status" json:"status"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
