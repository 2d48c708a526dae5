package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"readingroom_backend/internals/features/finance/payments/dto"
	"readingroom_backend/internals/features/finance/payments/model"
	"readingroom_backend/internals/features/finance/payments/repository"
)

var (
	ErrInvalidNotification = errors.New("invalid notification payload")
	ErrBadSignature        = errors.New("notification signature mismatch")
)

// MapTransactionStatus turns a Midtrans transaction_status (and fraud_status for
// card captures) into a payment status. ok is false for statuses we ignore.
func MapTransactionStatus(txStatus, fraudStatus string) (status string, ok bool) {
	switch txStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return model.StatusPending, true
		}
		return model.StatusPaid, true
	case "settlement":
		return model.StatusPaid, true
	case "pending":
		return model.StatusPending, true
	case "expire":
		return model.StatusExpired, true
	case "cancel":
		return model.StatusCancelled, true
	case "deny", "failure":
		return model.StatusFailed, true
	default:
		return "", false
	}
}

// Signature is sha512(order_id + status_code + gross_amount + server_key), hex.
func Signature(n dto.MidtransNotification, serverKey string) string {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func VerifySignature(n dto.MidtransNotification, serverKey string) bool {
	want := Signature(n, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(n.SignatureKey)) == 1
}

type WebhookService struct {
	Repo      repository.PaymentRepository
	ServerKey string
	Now       func() time.Time
	Log       *zap.Logger
}

func NewWebhookService(repo repository.PaymentRepository, serverKey string, log *zap.Logger) *WebhookService {
	return &WebhookService{
		Repo:      repo,
		ServerKey: serverKey,
		Now:       func() time.Time { return time.Now().UTC() },
		Log:       log,
	}
}

// Handle applies one notification. The signature is only checked when a
// server key is configured. A paid payment is never moved back.
func (s *WebhookService) Handle(ctx context.Context, n dto.MidtransNotification) (*model.PaymentModel, error) {
	if n.OrderID == "" || n.TransactionStatus == "" {
		return nil, ErrInvalidNotification
	}
	if s.ServerKey != "" && !VerifySignature(n, s.ServerKey) {
		return nil, ErrBadSignature
	}

	payment, err := s.Repo.FindByOrderID(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}

	status, ok := MapTransactionStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		s.Log.Info("midtrans status ignored", zap.String("order_id", n.OrderID), zap.String("status", n.TransactionStatus))
		return payment, nil
	}
	if payment.Status == model.StatusPaid || payment.Status == status {
		return payment, nil
	}

	now := s.Now()
	patch := bson.M{"status": status, "updated_at": now}
	if status == model.StatusPaid {
		patch["paid_at"] = now
	}
	s.Log.Info("payment status changed",
		zap.String("payment_id", payment.ID),
		zap.String("from", payment.Status),
		zap.String("to", status),
	)
	return s.Repo.Update(ctx, payment.ID, patch)
}
