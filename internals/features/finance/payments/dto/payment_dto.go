package dto

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"readingroom_backend/internals/features/finance/payments/model"
)

type CreatePaymentRequest struct {
	StudentID string     `json:"student_id" validate:"required,uuid"`
	BookingID string     `json:"booking_id" validate:"omitempty,uuid"`
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Method    string     `json:"method" validate:"omitempty,oneof=cash transfer midtrans"`
	Status    string     `json:"status" validate:"omitempty,oneof=pending paid expired cancelled failed"`
	PaidAt    *time.Time `json:"paid_at"`
	Note      string     `json:"note" validate:"omitempty,max=500"`
}

func (r CreatePaymentRequest) ToModel(id string, now time.Time) *model.PaymentModel {
	p := &model.PaymentModel{
		ID:        id,
		StudentID: strings.ToLower(r.StudentID),
		BookingID: strings.ToLower(r.BookingID),
		Amount:    r.Amount,
		Method:    r.Method,
		Status:    r.Status,
		PaidAt:    r.PaidAt,
		Note:      strings.TrimSpace(r.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Method == "" {
		p.Method = model.MethodCash
	}
	if p.Status == "" {
		p.Status = model.StatusPending
	}
	if p.Status == model.StatusPaid && p.PaidAt == nil {
		t := now
		p.PaidAt = &t
	}
	return p
}

type UpdatePaymentRequest struct {
	BookingID *string    `json:"booking_id" validate:"omitempty,uuid"`
	Amount    *float64   `json:"amount" validate:"omitempty,gt=0"`
	Method    *string    `json:"method" validate:"omitempty,oneof=cash transfer midtrans"`
	Status    *string    `json:"status" validate:"omitempty,oneof=pending paid expired cancelled failed"`
	PaidAt    *time.Time `json:"paid_at"`
	Note      *string    `json:"note" validate:"omitempty,max=500"`
}

func (r UpdatePaymentRequest) ToPatch(now time.Time) bson.M {
	patch := bson.M{}
	if r.BookingID != nil {
		patch["booking_id"] = strings.ToLower(*r.BookingID)
	}
	if r.Amount != nil {
		patch["amount"] = *r.Amount
	}
	if r.Method != nil {
		patch["method"] = *r.Method
	}
	if r.Status != nil {
		patch["status"] = *r.Status
		if *r.Status == model.StatusPaid && r.PaidAt == nil {
			patch["paid_at"] = now
		}
	}
	if r.PaidAt != nil {
		patch["paid_at"] = *r.PaidAt
	}
	if r.Note != nil {
		patch["note"] = strings.TrimSpace(*r.Note)
	}
	return patch
}

// MidtransNotification is the subset of the Midtrans HTTP notification we use.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}
