package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the fixed set of expense categories.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryOther,
}

// ParseCategory validates s against the closed category set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}

	return "", &ValidationError{Field: "category", Reason: "must be one of: " + categoryList()}
}

func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}

	return strings.Join(names, ", ")
}

// MaxDescriptionLength is the limit on a trimmed description.
const MaxDescriptionLength = 500

// Expense represents a single expense record. Date is a canonical
// YYYY-MM-DD day string; comparing dates lexicographically is therefore
// equivalent to comparing calendar days.
type Expense struct {
	ID          uuid.UUID
	Date        string
	Amount      decimal.Decimal
	Category    Category
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Day parses the record's date at day granularity.
func (e *Expense) Day() (time.Time, error) {
	return time.Parse(time.DateOnly, e.Date)
}

var (
	// ErrNotFound is returned when no record exists for an id.
	ErrNotFound = errors.New("expense not found")

	// ErrStoreUnavailable indicates a retrieval or mutation failed at the
	// store transport. It is never retried internally.
	ErrStoreUnavailable = errors.New("expense store unavailable")
)

// ValidationError reports the first violated field of a create/update
// payload. Validation failures never reach the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Params carries the caller-supplied fields of a create or full-replacement
// update.
type Params struct {
	Date        string
	Amount      decimal.Decimal
	Category    Category
	Description string
}

// Validate checks params against the record invariants and returns the first
// violation, in field order: date, amount, category, description.
func (p Params) Validate() error {
	if p.Date == "" {
		return &ValidationError{Field: "date", Reason: "is required"}
	}

	if _, err := time.Parse(time.DateOnly, p.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD day"}
	}

	if !p.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}

	if _, err := ParseCategory(string(p.Category)); err != nil {
		return err
	}

	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}

	if len(desc) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be %d characters or less", MaxDescriptionLength)}
	}

	return nil
}
