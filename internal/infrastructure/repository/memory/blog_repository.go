package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/blog"
)

type BlogRepository struct {
	mu    sync.RWMutex
	items map[string]blog.Post
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{items: make(map[string]blog.Post)}
}

func (r *BlogRepository) GetByID(_ context.Context, postID string) (blog.Post, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[postID]
	return p, ok, nil
}

func (r *BlogRepository) GetBySlug(_ context.Context, slug string) (blog.Post, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.Slug == slug {
			return p, true, nil
		}
	}
	return blog.Post{}, false, nil
}

// List orders newest first.
func (r *BlogRepository) List(_ context.Context, publishedOnly bool) ([]blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]blog.Post, 0, len(r.items))
	for _, p := range r.items {
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BlogRepository) Create(_ context.Context, p blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Slug == p.Slug {
			return fmt.Errorf("slug %q already exists", p.Slug)
		}
	}
	r.items[p.ID] = p
	return nil
}

func (r *BlogRepository) Update(_ context.Context, p blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return fmt.Errorf("post %s not found", p.ID)
	}
	r.items[p.ID] = p
	return nil
}

func (r *BlogRepository) Delete(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, postID)
	return nil
}
