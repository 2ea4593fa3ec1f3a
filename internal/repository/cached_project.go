package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// CachedProjectRepo is a read-through cache in front of another store.
// Documents are cached in encoded form so every Load hands out a private
// copy that callers may mutate.
type CachedProjectRepo struct {
	next  ProjectRepo
	cache *gocache.Cache
}

func NewCachedProjectRepo(next ProjectRepo, ttl time.Duration) *CachedProjectRepo {
	return &CachedProjectRepo{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (r *CachedProjectRepo) Save(ctx context.Context, p *domain.Project) error {
	r.cache.Delete(p.EventID)
	if err := r.next.Save(ctx, p); err != nil {
		return err
	}
	if doc, err := encodeProject(p); err == nil {
		r.cache.SetDefault(p.EventID, doc)
	}
	return nil
}

func (r *CachedProjectRepo) Load(ctx context.Context, id string) (*domain.Project, error) {
	if cached, ok := r.cache.Get(id); ok {
		if p, err := decodeProject(cached.([]byte)); err == nil {
			return p, nil
		}
		r.cache.Delete(id)
	}
	p, err := r.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc, err := encodeProject(p); err == nil {
		r.cache.SetDefault(id, doc)
	}
	return p, nil
}

func (r *CachedProjectRepo) ListRecent(ctx context.Context, limit int) ([]domain.ProjectSummary, error) {
	return r.next.ListRecent(ctx, limit)
}

// Len reports how many documents are cached.
func (r *CachedProjectRepo) Len() int {
	return r.cache.ItemCount()
}
