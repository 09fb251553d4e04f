package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Review is an employee performance review. Fields are unexported so every
// mutation runs through a validating setter; a zero id means the review has
// not been persisted yet.
type Review struct {
	id         int64
	year       int
	summary    string
	employeeID int64
}

// NewReview validates all attributes and returns an unsaved review. The
// employee reference is checked against the directory, same as any later
// reassignment.
func NewReview(ctx context.Context, year int, summary string, employeeID int64, dir EmployeeDirectory) (*Review, error) {
	r := &Review{}
	if err := r.SetYear(year); err != nil {
		return nil, err
	}
	if err := r.SetSummary(summary); err != nil {
		return nil, err
	}
	if err := r.SetEmployeeID(ctx, employeeID, dir); err != nil {
		return nil, err
	}
	return r, nil
}

// HydrateReview rebuilds a review from a persisted row. Year and summary are
// re-checked; the employee reference is trusted because the row was written
// under the foreign key, so no directory round trip happens here.
func HydrateReview(id int64, year int, summary string, employeeID int64) (*Review, error) {
	r := &Review{employeeID: employeeID}
	if err := r.SetYear(year); err != nil {
		return nil, err
	}
	if err := r.SetSummary(summary); err != nil {
		return nil, err
	}
	r.id = id
	return r, nil
}

func (r *Review) ID() int64         { return r.id }
func (r *Review) Year() int         { return r.year }
func (r *Review) Summary() string   { return r.summary }
func (r *Review) EmployeeID() int64 { return r.employeeID }

// Persisted reports whether the review is backed by a row.
func (r *Review) Persisted() bool { return r.id != 0 }

func (r *Review) SetYear(year int) error {
	if year < 2000 {
		return &ValidationError{Field: "year", Reason: "must be 2000 or later"}
	}
	r.year = year
	return nil
}

func (r *Review) SetSummary(summary string) error {
	if strings.TrimSpace(summary) == "" {
		return &ValidationError{Field: "summary", Reason: "must be a non-empty string"}
	}
	r.summary = summary
	return nil
}

// SetEmployeeID reassigns the reviewed employee after the directory confirms
// the id refers to a stored employee.
func (r *Review) SetEmployeeID(ctx context.Context, id int64, dir EmployeeDirectory) error {
	if _, err := dir.FindByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ValidationError{Field: "employee_id", Reason: fmt.Sprintf("employee %d does not exist", id)}
		}
		return err
	}
	r.employeeID = id
	return nil
}

// Rehydrate overwrites the attributes from a persisted row, re-running the
// local validators. Used when the identity registry already holds the live
// instance for that row.
func (r *Review) Rehydrate(year int, summary string, employeeID int64) error {
	if err := r.SetYear(year); err != nil {
		return err
	}
	if err := r.SetSummary(summary); err != nil {
		return err
	}
	r.employeeID = employeeID
	return nil
}

// MarkSaved stamps the backend-generated row id after an insert.
func (r *Review) MarkSaved(id int64) { r.id = id }

// MarkDeleted clears the row id after the backing row is removed.
func (r *Review) MarkDeleted() { r.id = 0 }

// Row snapshots the review for the persistence layer.
func (r *Review) Row() ReviewRow {
	return ReviewRow{ID: r.id, Year: r.year, Summary: r.summary, EmployeeID: r.employeeID}
}
