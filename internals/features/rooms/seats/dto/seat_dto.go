package dto

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"readingroom_backend/internals/features/rooms/seats/model"
)

type CreateSeatRequest struct {
	Number  string `json:"number" validate:"required,max=20"`
	Section string `json:"section" validate:"omitempty,max=50"`
	Type    string `json:"type" validate:"omitempty,oneof=regular cabin premium"`
	Status  string `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	Note    string `json:"note" validate:"omitempty,max=500"`
}

func (r CreateSeatRequest) ToModel(id string, now time.Time) *model.SeatModel {
	seat := &model.SeatModel{
		ID:        id,
		Number:    strings.TrimSpace(r.Number),
		Section:   strings.TrimSpace(r.Section),
		Type:      r.Type,
		Status:    r.Status,
		Note:      strings.TrimSpace(r.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if seat.Type == "" {
		seat.Type = model.TypeRegular
	}
	if seat.Status == "" {
		seat.Status = model.StatusAvailable
	}
	return seat
}

type UpdateSeatRequest struct {
	Number  *string `json:"number" validate:"omitempty,min=1,max=20"`
	Section *string `json:"section" validate:"omitempty,max=50"`
	Type    *string `json:"type" validate:"omitempty,oneof=regular cabin premium"`
	Status  *string `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	Note    *string `json:"note" validate:"omitempty,max=500"`
}

func (r UpdateSeatRequest) ToPatch() bson.M {
	patch := bson.M{}
	if r.Number != nil {
		patch["number"] = strings.TrimSpace(*r.Number)
	}
	if r.Section != nil {
		patch["section"] = strings.TrimSpace(*r.Section)
	}
	if r.Type != nil {
		patch["type"] = *r.Type
	}
	if r.Status != nil {
		patch["status"] = *r.Status
	}
	if r.Note != nil {
		patch["note"] = strings.TrimSpace(*r.Note)
	}
	return patch
}
