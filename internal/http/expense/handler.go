package expense

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fmorais/spendly/internal/expense"
	"github.com/fmorais/spendly/internal/http/respond"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// QueryFromRequest parses the retrieval constraints consumed by the query
// planner: optional inclusive date bounds and an optional category.
func QueryFromRequest(r *http.Request) (expense.QueryParams, error) {
	var params expense.QueryParams

	for _, q := range []struct {
		name string
		dest *string
	}{
		{name: "startDate", dest: &params.StartDate},
		{name: "endDate", dest: &params.EndDate},
	} {
		s := r.URL.Query().Get(q.name)
		if s == "" {
			continue
		}

		if _, err := time.Parse(time.DateOnly, s); err != nil {
			return params, &expense.ValidationError{Field: q.name, Reason: "must be a YYYY-MM-DD day"}
		}

		*q.dest = s
	}

	if s := r.URL.Query().Get("category"); s != "" {
		c, err := expense.ParseCategory(s)
		if err != nil {
			return params, err
		}

		params.Category = &c
	}

	return params, nil
}

// CriteriaFromRequest parses the client-side filter criteria: free-text
// search, a comma-separated category set and an inclusive day range.
func CriteriaFromRequest(r *http.Request) (expense.Criteria, error) {
	c := expense.Criteria{
		Search:   r.URL.Query().Get("search"),
		DateFrom: r.URL.Query().Get("dateFrom"),
		DateTo:   r.URL.Query().Get("dateTo"),
	}

	if s := r.URL.Query().Get("categories"); s != "" {
		for _, name := range strings.Split(s, ",") {
			category, err := expense.ParseCategory(strings.TrimSpace(name))
			if err != nil {
				return c, err
			}

			c.Categories = append(c.Categories, category)
		}
	}

	return c, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params, err := QueryFromRequest(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	criteria, err := CriteriaFromRequest(r)
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

	respond.JSON(w, http.StatusOK, toListResponse(expenses))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

type expenseRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func (req expenseRequest) params() expense.Params {
	return expense.Params{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    expense.Category(req.Category),
		Description: req.Description,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

type deleteResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, deleteResponse{Message: "expense deleted", ID: id})
}
