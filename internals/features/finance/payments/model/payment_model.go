package model

import "time"

const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodMidtrans = "midtrans"

	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

var (
	Methods  = []string{MethodCash, MethodTransfer, MethodMidtrans}
	Statuses = []string{StatusPending, StatusPaid, StatusExpired, StatusCancelled, StatusFailed}
)

type PaymentModel struct {
	ID          string     `bson:"_id" json:"id"`
	StudentID   string     `bson:"student_id" json:"student_id"`
	BookingID   string     `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Amount      float64    `bson:"amount" json:"amount"`
	Method      string     `bson:"method" json:"method"`
	Status      string     `bson:"status" json:"status"`
	OrderID     string     `bson:"order_id,omitempty" json:"order_id,omitempty"`
	SnapToken   string     `bson:"snap_token,omitempty" json:"snap_token,omitempty"`
	RedirectURL string     `bson:"redirect_url,omitempty" json:"redirect_url,omitempty"`
	PaidAt      *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	Note        string     `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
