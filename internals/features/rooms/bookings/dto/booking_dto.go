package dto

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"readingroom_backend/internals/features/rooms/bookings/model"
	helper "readingroom_backend/internals/helpers"
)

type CreateBookingRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	SeatID    string  `json:"seat_id" validate:"required,uuid"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Shift     string  `json:"shift" validate:"omitempty,oneof=morning evening full_day"`
	Status    string  `json:"status" validate:"omitempty,oneof=active completed cancelled"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	Note      string  `json:"note" validate:"omitempty,max=500"`
}

// ToModel parses the dates; a bad date or an inverted range is a FieldErrors.
func (r CreateBookingRequest) ToModel(id string, now time.Time) (*model.BookingModel, error) {
	start, end, err := parseRange(r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}
	b := &model.BookingModel{
		ID:        id,
		StudentID: strings.ToLower(r.StudentID),
		SeatID:    strings.ToLower(r.SeatID),
		StartDate: start,
		EndDate:   end,
		Shift:     r.Shift,
		Status:    r.Status,
		Amount:    r.Amount,
		Note:      strings.TrimSpace(r.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if b.Shift == "" {
		b.Shift = model.ShiftFullDay
	}
	if b.Status == "" {
		b.Status = model.StatusActive
	}
	return b, nil
}

type UpdateBookingRequest struct {
	StudentID *string  `json:"student_id" validate:"omitempty,uuid"`
	SeatID    *string  `json:"seat_id" validate:"omitempty,uuid"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Shift     *string  `json:"shift" validate:"omitempty,oneof=morning evening full_day"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active completed cancelled"`
	Amount    *float64 `json:"amount" validate:"omitempty,gte=0"`
	Note      *string  `json:"note" validate:"omitempty,max=500"`
}

// ToPatch applies the request on top of current so the date range can be
// checked against the stored bounds.
func (r UpdateBookingRequest) ToPatch(current *model.BookingModel) (bson.M, error) {
	patch := bson.M{}

	// omitempty lets "" through the uuid tag; a booking cannot lose its refs
	fe := helper.FieldErrors{}
	if r.StudentID != nil && strings.TrimSpace(*r.StudentID) == "" {
		fe.Add("student_id", "student_id must not be empty")
	}
	if r.SeatID != nil && strings.TrimSpace(*r.SeatID) == "" {
		fe.Add("seat_id", "seat_id must not be empty")
	}
	if len(fe) > 0 {
		return nil, fe
	}

	startRaw := current.StartDate.Format(time.RFC3339)
	endRaw := current.EndDate.Format(time.RFC3339)
	if r.StartDate != nil {
		startRaw = *r.StartDate
	}
	if r.EndDate != nil {
		endRaw = *r.EndDate
	}
	if r.StartDate != nil || r.EndDate != nil {
		start, end, err := parseRange(startRaw, endRaw)
		if err != nil {
			return nil, err
		}
		patch["start_date"] = start
		patch["end_date"] = end
	}

	if r.StudentID != nil {
		patch["student_id"] = strings.ToLower(*r.StudentID)
	}
	if r.SeatID != nil {
		patch["seat_id"] = strings.ToLower(*r.SeatID)
	}
	if r.Shift != nil {
		patch["shift"] = *r.Shift
	}
	if r.Status != nil {
		patch["status"] = *r.Status
	}
	if r.Amount != nil {
		patch["amount"] = *r.Amount
	}
	if r.Note != nil {
		patch["note"] = strings.TrimSpace(*r.Note)
	}
	return patch, nil
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	fe := helper.FieldErrors{}
	start, err := helper.ParseDate(startRaw)
	if err != nil {
		fe.Add("start_date", "start_date must be a date (YYYY-MM-DD)")
	}
	end, err := helper.ParseDate(endRaw)
	if err != nil {
		fe.Add("end_date", "end_date must be a date (YYYY-MM-DD)")
	}
	if len(fe) == 0 && end.Before(start) {
		fe.Add("end_date", "end_date must not be before start_date")
	}
	if len(fe) > 0 {
		return time.Time{}, time.Time{}, fe
	}
	return start, end, nil
}
