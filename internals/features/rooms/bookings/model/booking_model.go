package model

import "time"

const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
	ShiftFullDay = "full_day"

	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var Statuses = []string{StatusActive, StatusCompleted, StatusCancelled}

type BookingModel struct {
	ID        string    `bson:"_id" json:"id"`
	StudentID string    `bson:"student_id" json:"student_id"`
	SeatID    string    `bson:"seat_id" json:"seat_id"`
	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`
	Shift     string    `bson:"shift" json:"shift"`
	Status    string    `bson:"status" json:"status"`
	Amount    float64   `bson:"amount" json:"amount"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
