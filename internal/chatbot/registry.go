package chatbot

import (
	"context"
	"sync"
	"time"

	"StorefrontAPI/internal/model"
)

// Catalog is the read surface the registry loads product snapshots from.
type Catalog interface {
	List(ctx context.Context, limit int) ([]model.Product, error)
}

// Registry hands out one engine per session key. Engines live entirely
// in memory; a restart starts every conversation over.
type Registry struct {
	mu         sync.Mutex
	engines    map[string]*Engine
	catalog    Catalog
	replyDelay time.Duration
}

func NewRegistry(catalog Catalog, replyDelay time.Duration) *Registry {
	return &Registry{
		engines:    make(map[string]*Engine),
		catalog:    catalog,
		replyDelay: replyDelay,
	}
}

// Engine returns the session's engine, creating it with a fresh
// catalog snapshot on first use.
func (r *Registry) Engine(ctx context.Context, sessionID string) (*Engine, error) {
	r.mu.Lock()
	if e, ok := r.engines[sessionID]; ok {
		r.mu.Unlock()
		return e, nil
	}
	r.mu.Unlock()

	products, err := r.catalog.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.engines[sessionID]; ok {
		return e, nil
	}
	e := NewEngine(products, r.replyDelay)
	r.engines[sessionID] = e
	return e, nil
}
