package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var ErrGatewayDisabled = errors.New("payment gateway is not configured")

// CheckoutOrder is what the gateway needs to open a transaction.
type CheckoutOrder struct {
	OrderID       string
	Amount        int64
	ItemName      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type CheckoutResult struct {
	Token       string
	RedirectURL string
}

type Gateway interface {
	CreateCheckout(order CheckoutOrder) (*CheckoutResult, error)
}

// SnapGateway creates Midtrans Snap transactions.
type SnapGateway struct {
	client snap.Client
}

// InitMidtrans returns a Snap gateway, or nil when no server key is configured.
func InitMidtrans(serverKey string, useProd bool) *SnapGateway {
	if strings.TrimSpace(serverKey) == "" {
		return nil
	}
	env := midtrans.Sandbox
	if useProd {
		env = midtrans.Production
	}
	g := &SnapGateway{}
	g.client.New(serverKey, env)
	return g
}

func (g *SnapGateway) CreateCheckout(order CheckoutOrder) (*CheckoutResult, error) {
	if g == nil {
		return nil, ErrGatewayDisabled
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderID,
			GrossAmt: order.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.CustomerName,
			Email: order.CustomerEmail,
			Phone: order.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    order.OrderID,
			Name:  truncate(order.ItemName, 50),
			Price: order.Amount,
			Qty:   1,
		}},
	}

	resp, mErr := g.client.CreateTransaction(req)
	if mErr != nil {
		return nil, fmt.Errorf("midtrans snap: %s", mErr.Message)
	}
	return &CheckoutResult{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// NewOrderID builds a gateway order id; a fresh one is used on every checkout
// so an expired transaction can be retried.
func NewOrderID(paymentID string, now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(paymentID, "-", ""))
	if len(short) > 12 {
		short = short[:12]
	}
	return fmt.Sprintf("RR-%s-%d", short, now.Unix())
}

// GrossAmount converts a stored amount to the whole-unit integer Midtrans expects.
func GrossAmount(amount float64) int64 {
	return int64(math.Round(amount))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
