package mysql

import (
	"context"
	"database/sql"
	"errors"

	"staff_reviews/internal/domain"
)

// Store persists review rows. Statements are parameterized only; values never
// get interpolated into SQL text.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) CreateSchema(ctx context.Context) error {
	// Parent table first so the foreign key can bind.
	if _, err := s.db.ExecContext(ctx, createEmployeesSQL); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, createReviewsSQL)
	return err
}

func (s *Store) DropSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, dropReviewsSQL)
	return err
}

func (s *Store) Insert(ctx context.Context, row domain.ReviewRow) (int64, error) {
	res, err := s.db.ExecContext(ctx, insertReviewSQL, row.Year, row.Summary, row.EmployeeID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) Update(ctx context.Context, row domain.ReviewRow) error {
	_, err := s.db.ExecContext(ctx, updateReviewSQL, row.Year, row.Summary, row.EmployeeID, row.ID)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, deleteReviewSQL, id)
	return err
}

func (s *Store) GetByID(ctx context.Context, id int64) (domain.ReviewRow, error) {
	var row domain.ReviewRow
	err := s.db.QueryRowContext(ctx, getReviewSQL, id).
		Scan(&row.ID, &row.Year, &row.Summary, &row.EmployeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReviewRow{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ReviewRow{}, err
	}
	return row, nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.ReviewRow, error) {
	rows, err := s.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewRow
	for rows.Next() {
		var row domain.ReviewRow
		if err := rows.Scan(&row.ID, &row.Year, &row.Summary, &row.EmployeeID); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
