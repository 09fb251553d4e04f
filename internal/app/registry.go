package app

import (
	"sync"

	"staff_reviews/internal/domain"
)

// Registry is the identity map from persisted row id to the single live
// *domain.Review for that row. It is owned by a RecordService, grows for the
// service's lifetime, and only shrinks via Evict or Reset. The mutex exists
// because the HTTP adapter calls into the service concurrently.
type Registry struct {
	mu   sync.Mutex
	byID map[int64]*domain.Review
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[int64]*domain.Review)}
}

func (g *Registry) Lookup(id int64) (*domain.Review, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.byID[id]
	return r, ok
}

func (g *Registry) Store(id int64, r *domain.Review) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byID[id] = r
}

func (g *Registry) Evict(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.byID, id)
}

func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.byID)
}

// Reset empties the registry. Instances handed out earlier stay valid but are
// no longer deduplicated against future materializations.
func (g *Registry) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byID = make(map[int64]*domain.Review)
}
