// Package memory holds the process-lifetime stores. State starts empty and
// is discarded on exit; there is no persistence layer behind it.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bookling/bookling"
	"github.com/bookling/bookling/slug"
)

// Registry is the in-memory business store, keyed by slug.
type Registry struct {
	mu     sync.Mutex
	bySlug map[string]bookling.Business
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		bySlug: make(map[string]bookling.Business),
	}
}

var _ bookling.Registry = (*Registry)(nil)

// Register derives a slug from the business name (owner name as fallback),
// resolves collisions and inserts, all under one lock. Two racing signups
// with the same name always come out with distinct slugs.
func (r *Registry) Register(ctx context.Context, nb bookling.NewBusiness) (bookling.Business, error) {
	base := slug.Normalize(nb.BusinessName)
	if base == "" {
		base = slug.Normalize(nb.OwnerName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := slug.Uniquify(base, func(candidate string) bool {
		_, taken := r.bySlug[candidate]
		return taken
	})

	b := bookling.Business{
		Slug:         s,
		OwnerName:    nb.OwnerName,
		BusinessName: nb.BusinessName,
		OwnerEmail:   nb.OwnerEmail,
		Phone:        nb.Phone,
		CreatedAt:    time.Now().UTC(),
	}

	r.bySlug[s] = b
	r.order = append(r.order, s)

	return b, nil
}

// FindBySlug is an exact, case-sensitive lookup.
func (r *Registry) FindBySlug(ctx context.Context, s string) (bookling.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bySlug[s]
	if !ok {
		return bookling.Business{}, bookling.ErrBusinessNotFound
	}
	return b, nil
}

// All returns every registered business in insertion order.
func (r *Registry) All(ctx context.Context) []bookling.Business {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]bookling.Business, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, r.bySlug[s])
	}
	return out
}
