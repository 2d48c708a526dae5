package model

import "time"

// DefaultID is the _id of the single settings document.
const DefaultID = "default"

type SettingsModel struct {
	ID           string    `bson:"_id,omitempty" json:"-"`
	RoomName     string    `bson:"room_name" json:"room_name"`
	OpeningTime  string    `bson:"opening_time" json:"opening_time"`
	ClosingTime  string    `bson:"closing_time" json:"closing_time"`
	Currency     string    `bson:"currency" json:"currency"`
	ContactPhone string    `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	UpdatedBy    string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func Defaults(now time.Time) *SettingsModel {
	return &SettingsModel{
		ID:          DefaultID,
		RoomName:    "Reading Room",
		OpeningTime: "08:00",
		ClosingTime: "22:00",
		Currency:    "IDR",
		UpdatedAt:   now,
	}
}
