package blog

import "context"

type Repository interface {
	GetByID(ctx context.Context, postID string) (Post, bool, error)
	GetBySlug(ctx context.Context, slug string) (Post, bool, error)
	List(ctx context.Context, publishedOnly bool) ([]Post, error)
	Create(ctx context.Context, p Post) error
	Update(ctx context.Context, p Post) error
	Delete(ctx context.Context, postID string) error
}
