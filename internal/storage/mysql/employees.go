package mysql

import (
	"context"
	"database/sql"
	"errors"

	"staff_reviews/internal/domain"
)

// Directory resolves employee ids against the employees table. The review
// manager only needs the existence check; the employee entity itself is
// another service's concern.
type Directory struct{ db *sql.DB }

func NewDirectory(db *sql.DB) *Directory { return &Directory{db: db} }

func (d *Directory) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	var e domain.Employee
	err := d.db.QueryRowContext(ctx, getEmployeeSQL, id).Scan(&e.ID, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}
