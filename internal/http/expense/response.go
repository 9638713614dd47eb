package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/fmorais/spendly/internal/expense"
)

type expenseResponse struct {
	ID          uuid.UUID        `json:"id"`
	Date        string           `json:"date"`
	Amount      float64          `json:"amount"`
	Category    expense.Category `json:"category"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty"`
}

type listResponse struct {
	Expenses []expenseResponse `json:"expenses"`
	Count    int               `json:"count"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Amount:      e.Amount.InexactFloat64(),
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toListResponse(expenses []*expense.Expense) listResponse {
	resp := listResponse{
		Expenses: make([]expenseResponse, len(expenses)),
		Count:    len(expenses),
	}

	for i, e := range expenses {
		resp.Expenses[i] = toResponse(e)
	}

	return resp
}
