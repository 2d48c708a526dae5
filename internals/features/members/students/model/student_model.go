package model

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type StudentModel struct {
	ID        string     `bson:"_id" json:"id"`
	FullName  string     `bson:"full_name" json:"full_name"`
	Email     string     `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string     `bson:"address,omitempty" json:"address,omitempty"`
	Status    string     `bson:"status" json:"status"`
	JoinedAt  *time.Time `bson:"joined_at,omitempty" json:"joined_at,omitempty"`
	Note      string     `bson:"note,omitempty" json:"note,omitempty"`
	HasPhoto  bool       `bson:"has_photo" json:"has_photo"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// StudentPhotoModel shares its _id with the student it belongs to.
type StudentPhotoModel struct {
	StudentID   string    `bson:"_id"`
	Content     []byte    `bson:"content"`
	ContentType string    `bson:"content_type"`
	UpdatedAt   time.Time `bson:"updated_at"`
}
