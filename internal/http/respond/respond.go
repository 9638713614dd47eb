// Package respond holds the JSON response and error-mapping helpers shared
// by the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fmorais/spendly/internal/expense"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Error writes a structured error body.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{Error: message})
}

// DomainError maps the error taxonomy onto HTTP statuses: validation
// failures are the caller's fault, missing records are 404, a store
// transport failure is a bad gateway. Anything else stays an opaque 500.
func DomainError(w http.ResponseWriter, err error) {
	var verr *expense.ValidationError
	if errors.As(err, &verr) {
		Error(w, http.StatusBadRequest, verr.Error())
		return
	}

	if errors.Is(err, expense.ErrNotFound) {
		Error(w, http.StatusNotFound, "expense not found")
		return
	}

	if errors.Is(err, expense.ErrStoreUnavailable) {
		slog.Error("expense store unavailable", "error", err)
		Error(w, http.StatusBadGateway, "expense store unavailable")

		return
	}

	slog.Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}
