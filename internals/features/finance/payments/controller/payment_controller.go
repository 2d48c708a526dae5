package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/finance/payments/dto"
	"readingroom_backend/internals/features/finance/payments/model"
	"readingroom_backend/internals/features/finance/payments/repository"
	"readingroom_backend/internals/features/finance/payments/service"
	studentModel "readingroom_backend/internals/features/members/students/model"
	helper "readingroom_backend/internals/helpers"
)

type StudentFinder interface {
	FindByID(ctx context.Context, id string) (*studentModel.StudentModel, error)
}

type Existence interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type OutcomeRecorder interface {
	WebhookOutcome(outcome string)
}

type PaymentController struct {
	Repo     repository.PaymentRepository
	Students StudentFinder
	Bookings Existence
	Gateway  service.Gateway
	Webhook  *service.WebhookService
	Outcomes OutcomeRecorder
	Log      *zap.Logger
}

func (pc *PaymentController) outcome(o string) {
	if pc.Outcomes != nil {
		pc.Outcomes.WebhookOutcome(o)
	}
}

func paymentError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Payment not found")
	}
	if errors.Is(err, database.ErrDuplicate) {
		return fiber.NewError(fiber.StatusConflict, "Order id already used")
	}
	return err
}

func (pc *PaymentController) checkRefs(ctx context.Context, studentID, bookingID string) error {
	fe := helper.FieldErrors{}
	if studentID != "" {
		if _, err := pc.Students.FindByID(ctx, studentID); err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				return err
			}
			fe.Add("student_id", "student not found")
		}
	}
	if bookingID != "" {
		ok, err := pc.Bookings.Exists(ctx, bookingID)
		if err != nil {
			return err
		}
		if !ok {
			fe.Add("booking_id", "booking not found")
		}
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

func (pc *PaymentController) Create(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	payment := req.ToModel(helper.NewID(), time.Now().UTC())
	if err := pc.checkRefs(c.UserContext(), payment.StudentID, payment.BookingID); err != nil {
		return err
	}
	if err := pc.Repo.Create(c.UserContext(), payment); err != nil {
		return paymentError(err)
	}
	return helper.JsonCreated(c, "Payment created", payment)
}

// GET /api/payments?student_id=&booking_id=&status=&method=
func (pc *PaymentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.DefaultPerPage, helper.MaxPerPage)
	items, total, err := pc.Repo.List(c.UserContext(), repository.ListFilter{
		StudentID: strings.ToLower(strings.TrimSpace(c.Query("student_id"))),
		BookingID: strings.ToLower(strings.TrimSpace(c.Query("booking_id"))),
		Status:    strings.TrimSpace(c.Query("status")),
		Method:    strings.TrimSpace(c.Query("method")),
		Offset:    p.Offset,
		Limit:     p.Limit,
	})
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, p, len(items)))
}

func (pc *PaymentController) Get(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	payment, err := pc.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return paymentError(err)
	}
	return helper.JsonOK(c, "ok", payment)
}

func (pc *PaymentController) Update(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePaymentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	now := time.Now().UTC()
	patch := req.ToPatch(now)
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}
	if bookingID, _ := patch["booking_id"].(string); bookingID != "" {
		if err := pc.checkRefs(c.UserContext(), "", bookingID); err != nil {
			return err
		}
	}
	patch["updated_at"] = now

	payment, err := pc.Repo.Update(c.UserContext(), id, patch)
	if err != nil {
		return paymentError(err)
	}
	return helper.JsonUpdated(c, "Payment updated", payment)
}

func (pc *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	if err := pc.Repo.Delete(c.UserContext(), id); err != nil {
		return paymentError(err)
	}
	return helper.JsonDeleted(c, "Payment deleted", fiber.Map{"id": id})
}

// POST /api/payments/:id/checkout opens a Midtrans Snap transaction.
func (pc *PaymentController) Checkout(c *fiber.Ctx) error {
	if pc.Gateway == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Online payment is not configured")
	}
	id, err := helper.IDParam(c, "id")
	if err != nil {
		return err
	}
	payment, err := pc.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return paymentError(err)
	}
	if payment.Status != model.StatusPending && payment.Status != model.StatusExpired {
		return fiber.NewError(fiber.StatusConflict, "Only pending or expired payments can be checked out")
	}
	student, err := pc.Students.FindByID(c.UserContext(), payment.StudentID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Student for this payment no longer exists")
		}
		return err
	}

	now := time.Now().UTC()
	orderID := service.NewOrderID(payment.ID, now)
	res, err := pc.Gateway.CreateCheckout(service.CheckoutOrder{
		OrderID:       orderID,
		Amount:        service.GrossAmount(payment.Amount),
		ItemName:      "Reading room payment",
		CustomerName:  student.FullName,
		CustomerEmail: student.Email,
		CustomerPhone: student.Phone,
	})
	if err != nil {
		pc.Log.Error("checkout failed", zap.String("payment_id", payment.ID), zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Payment gateway error")
	}

	updated, err := pc.Repo.Update(c.UserContext(), payment.ID, bson.M{
		"method":       model.MethodMidtrans,
		"status":       model.StatusPending,
		"order_id":     orderID,
		"snap_token":   res.Token,
		"redirect_url": res.RedirectURL,
		"updated_at":   now,
	})
	if err != nil {
		return paymentError(err)
	}
	return helper.JsonOK(c, "Checkout created", updated)
}

// POST /api/payments/notification is called by Midtrans, without a user token.
func (pc *PaymentController) Notification(c *fiber.Ctx) error {
	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification body")
	}

	payment, err := pc.Webhook.Handle(c.UserContext(), n)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidNotification):
			pc.outcome("invalid")
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBadSignature):
			pc.outcome("bad_signature")
			pc.Log.Warn("midtrans notification rejected", zap.String("order_id", n.OrderID))
			return fiber.NewError(fiber.StatusForbidden, "Invalid signature")
		case errors.Is(err, database.ErrNotFound):
			pc.outcome("unknown_order")
			return fiber.NewError(fiber.StatusNotFound, "Payment not found for order_id")
		}
		pc.outcome("error")
		return err
	}
	pc.outcome(payment.Status)
	return helper.JsonOK(c, "Notification processed", fiber.Map{
		"order_id": payment.OrderID,
		"status":   payment.Status,
	})
}
