// Package postgres implements the expense store on PostgreSQL. The
// (owner_id, date) index backs the range path; dates are stored as
// canonical YYYY-MM-DD text so the index order matches calendar order.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fmorais/spendly/internal/expense"
)

type Store struct {
	db    *sql.DB
	owner string
}

func New(db *sql.DB, owner string) *Store {
	return &Store{db: db, owner: owner}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectExpenseColumns = `
	id, date, amount, category, description, created_at, updated_at
`

// scanExpense reads an expense row from the scanner.
// Expected column order: id, date, amount, category, description, created_at, updated_at
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var category string

	if err := s.Scan(
		&e.ID, &e.Date, &e.Amount, &category, &e.Description,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Category = expense.Category(category)

	return &e, nil
}

// unavailable tags a transport failure so callers can match it with
// errors.Is while keeping the driver error in the chain.
func unavailable(err error) error {
	return errors.Join(expense.ErrStoreUnavailable, err)
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = $1 AND id = $2`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, s.owner, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", unavailable(err))
	}

	return e, nil
}

func (s *Store) RangeByDate(ctx context.Context, from, to string) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = $1`

	args := []any{s.owner}
	argIdx := 2

	if from != "" {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, from)
		argIdx++
	}

	if to != "" {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, to)
	}

	return s.queryExpenses(ctx, query, args...)
}

func (s *Store) ScanAll(ctx context.Context, category *expense.Category) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = $1`

	args := []any{s.owner}

	if category != nil {
		query += " AND category = $2"

		args = append(args, *category)
	}

	return s.queryExpenses(ctx, query, args...)
}

func (s *Store) queryExpenses(ctx context.Context, query string, args ...any) ([]*expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", unavailable(err))
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", unavailable(err))
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", unavailable(err))
	}

	return expenses, nil
}

// Put upserts the record by id. Timestamps are maintained server-side:
// created_at on first insert, updated_at on every replacement.
func (s *Store) Put(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (id, owner_id, date, amount, category, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			amount = EXCLUDED.amount,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.ID,
		s.owner,
		e.Date,
		e.Amount,
		e.Category,
		e.Description,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("storing expense: %w", unavailable(err))
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM expenses WHERE owner_id = $1 AND id = $2`

	res, err := s.db.ExecContext(ctx, query, s.owner, id)
	if err != nil {
		return false, fmt.Errorf("deleting expense: %w", unavailable(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", unavailable(err))
	}

	return affected > 0, nil
}
