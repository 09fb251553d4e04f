package app

import (
	"context"
	"fmt"

	"staff_reviews/internal/domain"
)

// RecordService owns review validation, statement issuing, and the identity
// registry. Every operation is synchronous and issues at most one backend
// statement; backend errors propagate untouched.
type RecordService struct {
	store domain.ReviewStore
	dir   domain.EmployeeDirectory
	reg   *Registry
}

func NewRecordService(store domain.ReviewStore, dir domain.EmployeeDirectory) *RecordService {
	return &RecordService{store: store, dir: dir, reg: NewRegistry()}
}

// Registry exposes the identity map, mainly for tests and teardown.
func (s *RecordService) Registry() *Registry { return s.reg }

// Create constructs a validated review and immediately persists it.
func (s *RecordService) Create(ctx context.Context, year int, summary string, employeeID int64) (*domain.Review, error) {
	r, err := domain.NewReview(ctx, year, summary, employeeID, s.dir)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Save inserts an unsaved review and registers it under the generated id.
// A review that already has an id is routed to Update instead.
func (s *RecordService) Save(ctx context.Context, r *domain.Review) error {
	if r.Persisted() {
		return s.Update(ctx, r)
	}
	id, err := s.store.Insert(ctx, r.Row())
	if err != nil {
		return err
	}
	r.MarkSaved(id)
	s.reg.Store(id, r)
	return nil
}

// Update writes all mutable columns keyed by id.
func (s *RecordService) Update(ctx context.Context, r *domain.Review) error {
	if !r.Persisted() {
		return domain.ErrNotPersisted
	}
	return s.store.Update(ctx, r.Row())
}

// Delete removes the backing row, then clears the instance id and evicts the
// registry entry. Row removal happens first; there is no rollback if the
// process dies between the two steps.
func (s *RecordService) Delete(ctx context.Context, r *domain.Review) error {
	if !r.Persisted() {
		return domain.ErrNotPersisted
	}
	id := r.ID()
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	r.MarkDeleted()
	s.reg.Evict(id)
	return nil
}

// SetEmployee reassigns the review's employee, running the existence check.
func (s *RecordService) SetEmployee(ctx context.Context, r *domain.Review, employeeID int64) error {
	return r.SetEmployeeID(ctx, employeeID, s.dir)
}

// FindByID fetches at most one row. Absent rows yield domain.ErrNotFound.
func (s *RecordService) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.materialize(row)
}

// All scans the whole table in the backend's natural order.
func (s *RecordService) All(ctx context.Context) ([]*domain.Review, error) {
	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Review, 0, len(rows))
	for _, row := range rows {
		r, err := s.materialize(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Reset drops every registry entry, typically between test runs or on
// teardown.
func (s *RecordService) Reset() { s.reg.Reset() }

// materialize turns a stored row into the one live instance for its id. A
// registry hit is rehydrated in place so existing holders observe the stored
// values; a miss is constructed and registered.
func (s *RecordService) materialize(row domain.ReviewRow) (*domain.Review, error) {
	if r, ok := s.reg.Lookup(row.ID); ok {
		if err := r.Rehydrate(row.Year, row.Summary, row.EmployeeID); err != nil {
			return nil, fmt.Errorf("rehydrate review %d: %w", row.ID, err)
		}
		return r, nil
	}
	r, err := domain.HydrateReview(row.ID, row.Year, row.Summary, row.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("hydrate review %d: %w", row.ID, err)
	}
	s.reg.Store(row.ID, r)
	return r, nil
}
