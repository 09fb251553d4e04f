package app

import (
	"context"
	"fmt"

	"staff_reviews/internal/domain"
)

// CachedDirectory memoizes positive employee lookups so repeated employee_id
// validations don't hammer the employees table. Absence is never cached: an
// employee hired after a failed check must be visible on the next call.
type CachedDirectory struct {
	next   domain.EmployeeDirectory
	cache  domain.Cache
	ttlSec int
}

func NewCachedDirectory(next domain.EmployeeDirectory, cache domain.Cache, ttlSec int) *CachedDirectory {
	return &CachedDirectory{next: next, cache: cache, ttlSec: ttlSec}
}

func (d *CachedDirectory) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	key := fmt.Sprintf("employee:%d", id)
	var e domain.Employee
	if ok, _ := d.cache.Get(ctx, key, &e); ok {
		return e, nil
	}
	e, err := d.next.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	_ = d.cache.Set(ctx, key, e, d.ttlSec)
	return e, nil
}
