// Package export serves the CSV download. It accepts the same retrieval
// and filter parameters as the expense listing, so the downloaded file
// matches what the caller is looking at.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fmorais/spendly/internal/expense"
	"github.com/fmorais/spendly/internal/export"
	expenseHandler "github.com/fmorais/spendly/internal/http/expense"
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
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	params, err := expenseHandler.QueryFromRequest(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	criteria, err := expenseHandler.CriteriaFromRequest(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	expenses, err := h.svc.Query(r.Context(), params)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	if !criteria.IsZero() {
		expenses = expense.Filter(expenses, criteria)
	}

	payload, err := export.CSV(expenses)
	if err != nil {
		if errors.Is(err, export.ErrNoExpenses) {
			respond.Error(w, http.StatusNotFound, "no expenses to export")
			return
		}

		respond.DomainError(w, err)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))

	if _, err := w.Write([]byte(payload)); err != nil {
		slog.Error("failed to write csv response", "error", err)
	}
}
