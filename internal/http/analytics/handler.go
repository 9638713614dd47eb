// Package analytics exposes the dashboard aggregates over HTTP. Each
// endpoint retrieves the full working set once and derives its view from
// that snapshot.
package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fmorais/spendly/internal/analytics"
	"github.com/fmorais/spendly/internal/expense"
	"github.com/fmorais/spendly/internal/http/respond"
)

type Handler struct {
	svc *expense.Service
	now func() time.Time
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/categories", h.categories)
	r.Get("/timeseries", h.timeseries)
}

type summaryResponse struct {
	TotalSpending     float64 `json:"totalSpending"`
	MonthlySpending   float64 `json:"monthlySpending"`
	MonthlyCount      int     `json:"monthlyCount"`
	TopCategory       string  `json:"topCategory"`
	TopCategoryAmount float64 `json:"topCategoryAmount"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.Query(r.Context(), expense.QueryParams{})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	s := analytics.Summarize(expenses, h.now())

	respond.JSON(w, http.StatusOK, summaryResponse{
		TotalSpending:     s.TotalSpending.InexactFloat64(),
		MonthlySpending:   s.MonthlySpending.InexactFloat64(),
		MonthlyCount:      s.MonthlyCount,
		TopCategory:       s.TopCategory,
		TopCategoryAmount: s.TopCategoryAmount.InexactFloat64(),
	})
}

type categoryTotalResponse struct {
	Category expense.Category `json:"category"`
	Total    float64          `json:"total"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.Query(r.Context(), expense.QueryParams{})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	totals := analytics.CategoryTotals(expenses)

	resp := make([]categoryTotalResponse, len(totals))
	for i, ct := range totals {
		resp[i] = categoryTotalResponse{Category: ct.Category, Total: ct.Total.InexactFloat64()}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type pointResponse struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

func (h *Handler) timeseries(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.Query(r.Context(), expense.QueryParams{})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	series := analytics.TimeSeries(expenses, h.now())

	resp := make([]pointResponse, len(series))
	for i, p := range series {
		resp[i] = pointResponse{Date: p.Date, Amount: p.Amount.InexactFloat64()}
	}

	respond.JSON(w, http.StatusOK, resp)
}
