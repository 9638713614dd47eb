package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=expense

// Store is the capability contract over the record store: point lookup,
// range query on the secondary date index, filtered bulk scan, and
// upsert/delete by id. Returned sequences carry no ordering guarantee.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Expense, error)

	// RangeByDate queries the date index with inclusive bounds. An empty
	// bound is unbounded on that side; callers supply at least one.
	RangeByDate(ctx context.Context, from, to string) ([]*Expense, error)

	// ScanAll reads every record, optionally narrowed by exact category
	// equality at the store level.
	ScanAll(ctx context.Context, category *Category) ([]*Expense, error)

	Put(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// QueryParams are the optional retrieval constraints. Empty date strings
// mean unbounded; a nil category means no category restriction.
type QueryParams struct {
	StartDate string
	EndDate   string
	Category  *Category
}

// Query retrieves the records satisfying all supplied constraints. When
// either date bound is present it takes the indexed range path and applies
// the category as a post-filter; otherwise it falls back to a full scan
// with the category pushed into the scan predicate. Store failures surface
// to the caller after a single attempt.
func (s *Service) Query(ctx context.Context, params QueryParams) ([]*Expense, error) {
	if params.StartDate == "" && params.EndDate == "" {
		expenses, err := s.store.ScanAll(ctx, params.Category)
		if err != nil {
			return nil, fmt.Errorf("scanning expenses: %w", err)
		}

		return expenses, nil
	}

	expenses, err := s.store.RangeByDate(ctx, params.StartDate, params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("querying expenses by date: %w", err)
	}

	if params.Category == nil {
		return expenses, nil
	}

	matched := make([]*Expense, 0, len(expenses))

	for _, e := range expenses {
		if e.Category == *params.Category {
			matched = append(matched, e)
		}
	}

	return matched, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.store.Get(ctx, id)
}

// Create validates params, assigns a fresh id and stores the record.
func (s *Service) Create(ctx context.Context, params Params) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	e := &Expense{
		ID:          uuid.New(),
		Date:        params.Date,
		Amount:      params.Amount,
		Category:    params.Category,
		Description: strings.TrimSpace(params.Description),
	}

	if err := s.store.Put(ctx, e); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	return e, nil
}

// Update replaces every mutable field of the record. The id and creation
// time never change. Partial patches are not supported.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Date = params.Date
	e.Amount = params.Amount
	e.Category = params.Category
	e.Description = strings.TrimSpace(params.Description)

	if err := s.store.Put(ctx, e); err != nil {
		return nil, fmt.Errorf("updating expense: %w", err)
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if !found {
		return ErrNotFound
	}

	return nil
}
