package dto

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"readingroom_backend/internals/features/members/students/model"
)

type CreateStudentRequest struct {
	FullName string     `json:"full_name" validate:"required,min=2,max=100"`
	Email    string     `json:"email" validate:"omitempty,email"`
	Phone    string     `json:"phone" validate:"omitempty,max=30"`
	Address  string     `json:"address" validate:"omitempty,max=255"`
	Status   string     `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinedAt *time.Time `json:"joined_at"`
	Note     string     `json:"note" validate:"omitempty,max=500"`
}

func (r CreateStudentRequest) ToModel(id string, now time.Time) *model.StudentModel {
	status := r.Status
	if status == "" {
		status = model.StatusActive
	}
	joined := r.JoinedAt
	if joined == nil {
		t := now
		joined = &t
	}
	return &model.StudentModel{
		ID:        id,
		FullName:  strings.TrimSpace(r.FullName),
		Email:     strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:     strings.TrimSpace(r.Phone),
		Address:   strings.TrimSpace(r.Address),
		Status:    status,
		JoinedAt:  joined,
		Note:      strings.TrimSpace(r.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type UpdateStudentRequest struct {
	FullName *string    `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string    `json:"email" validate:"omitempty,email"`
	Phone    *string    `json:"phone" validate:"omitempty,max=30"`
	Address  *string    `json:"address" validate:"omitempty,max=255"`
	Status   *string    `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinedAt *time.Time `json:"joined_at"`
	Note     *string    `json:"note" validate:"omitempty,max=500"`
}

func (r UpdateStudentRequest) ToPatch() bson.M {
	patch := bson.M{}
	if r.FullName != nil {
		patch["full_name"] = strings.TrimSpace(*r.FullName)
	}
	if r.Email != nil {
		patch["email"] = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Phone != nil {
		patch["phone"] = strings.TrimSpace(*r.Phone)
	}
	if r.Address != nil {
		patch["address"] = strings.TrimSpace(*r.Address)
	}
	if r.Status != nil {
		patch["status"] = *r.Status
	}
	if r.JoinedAt != nil {
		patch["joined_at"] = *r.JoinedAt
	}
	if r.Note != nil {
		patch["note"] = strings.TrimSpace(*r.Note)
	}
	return patch
}
