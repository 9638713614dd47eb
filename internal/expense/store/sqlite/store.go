// Package sqlite implements the expense store on a local SQLite file. It
// is the fallback backend when no Postgres instance is configured and
// carries the same capability contract and schema semantics as the remote
// store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fmorais/spendly/internal/expense"
)

type Store struct {
	db    *sql.DB
	owner string
}

// Open opens (creating if needed) the database file, runs migrations and
// returns a ready store.
func Open(dbPath, owner string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, owner: owner}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

const selectExpenseColumns = `
	id, date, amount, category, description, created_at, updated_at
`

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

func unavailable(err error) error {
	return errors.Join(expense.ErrStoreUnavailable, err)
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = ? AND id = ?`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, s.owner, id.String()))
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
		WHERE owner_id = ?`

	args := []any{s.owner}

	if from != "" {
		query += " AND date >= ?"

		args = append(args, from)
	}

	if to != "" {
		query += " AND date <= ?"

		args = append(args, to)
	}

	return s.queryExpenses(ctx, query, args...)
}

func (s *Store) ScanAll(ctx context.Context, category *expense.Category) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE owner_id = ?`

	args := []any{s.owner}

	if category != nil {
		query += " AND category = ?"

		args = append(args, string(*category))
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

// Put upserts the record by id. Timestamps are set client side:
// created_at survives the first insert, updated_at changes on every
// replacement.
func (s *Store) Put(ctx context.Context, e *expense.Expense) error {
	now := time.Now().UTC()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	} else {
		e.UpdatedAt = &now
	}

	query := `
		INSERT INTO expenses (id, owner_id, date, amount, category, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			date = excluded.date,
			amount = excluded.amount,
			category = excluded.category,
			description = excluded.description,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID.String(),
		s.owner,
		e.Date,
		e.Amount,
		string(e.Category),
		e.Description,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("storing expense: %w", unavailable(err))
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM expenses WHERE owner_id = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query, s.owner, id.String())
	if err != nil {
		return false, fmt.Errorf("deleting expense: %w", unavailable(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", unavailable(err))
	}

	return affected > 0, nil
}
