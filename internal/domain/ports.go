package domain

import "context"

// ReviewRow is the persisted shape of a review, one row per entry.
type ReviewRow struct {
	ID         int64
	Year       int
	Summary    string
	EmployeeID int64
}

type ReviewStore interface {
	// Write paths
	Insert(ctx context.Context, row ReviewRow) (int64, error)
	Update(ctx context.Context, row ReviewRow) error
	Delete(ctx context.Context, id int64) error

	// Read paths
	GetByID(ctx context.Context, id int64) (ReviewRow, error)
	ListAll(ctx context.Context) ([]ReviewRow, error)

	// Schema management; both are idempotent.
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
}

// Employee is the slice of the employee record the review manager needs.
// The full employee entity lives in another service.
type Employee struct {
	ID   int64
	Name string
}

// EmployeeDirectory is the existence-check collaborator for employee_id
// validation. Absent ids yield ErrNotFound.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id int64) (Employee, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
