package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/features/finance/financial/repository"
	paymentModel "readingroom_backend/internals/features/finance/payments/model"
	helper "readingroom_backend/internals/helpers"
)

type FinancialController struct {
	Repo repository.FinancialRepository
}

func NewFinancialController(repo repository.FinancialRepository) *FinancialController {
	return &FinancialController{Repo: repo}
}

// GET /api/financial/summary?from=&to=
func (fc *FinancialController) Summary(c *fiber.Ctx) error {
	from, to, err := helper.DateRangeQuery(c.Query("from"), c.Query("to"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	byMethod, err := fc.Repo.PaidTotalsByMethod(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	counts, err := fc.Repo.CountsByStatus(c.UserContext(), from, to)
	if err != nil {
		return err
	}

	var paid repository.Totals
	methods := map[string]repository.Totals{}
	for _, m := range paymentModel.Methods {
		methods[m] = repository.Totals{}
	}
	for m, t := range byMethod {
		methods[m] = t
		paid.Amount += t.Amount
		paid.Count += t.Count
	}
	byStatus := map[string]int64{}
	for _, s := range paymentModel.Statuses {
		byStatus[s] = 0
	}
	for s, n := range counts {
		byStatus[s] = n
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"from":       from,
		"to":         to,
		"paid_total": paid.Amount,
		"paid_count": paid.Count,
		"by_method":  methods,
		"by_status":  byStatus,
	})
}

type monthRow struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// GET /api/financial/monthly?year=2025
func (fc *FinancialController) Monthly(c *fiber.Ctx) error {
	year := time.Now().UTC().Year()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2100 {
			return fiber.NewError(fiber.StatusBadRequest, "year must be between 2000 and 2100")
		}
		year = y
	}

	totals, err := fc.Repo.PaidTotalsByMonth(c.UserContext(), year)
	if err != nil {
		return err
	}

	months := make([]monthRow, 0, 12)
	var sum float64
	for m := 1; m <= 12; m++ {
		t := totals[m]
		months = append(months, monthRow{Month: m, Amount: t.Amount, Count: t.Count})
		sum += t.Amount
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"year":   year,
		"total":  sum,
		"months": months,
	})
}
