package rest

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/blog"
)

type BlogRepository struct {
	client *Client
}

func NewBlogRepository(client *Client) *BlogRepository {
	return &BlogRepository{client: client}
}

func (r *BlogRepository) GetByID(ctx context.Context, postID string) (blog.Post, bool, error) {
	return r.first(ctx, Eq("id", postID))
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (blog.Post, bool, error) {
	return r.first(ctx, Eq("slug", slug))
}

func (r *BlogRepository) first(ctx context.Context, filter Filter) (blog.Post, bool, error) {
	var rows []blogPostRow
	if err := r.client.Select(ctx, From("blog_posts").Select("*").Where(filter).Limit(1), &rows); err != nil {
		return blog.Post{}, false, fmt.Errorf("get post: %w", err)
	}
	if len(rows) == 0 {
		return blog.Post{}, false, nil
	}
	return blogPostFromRow(rows[0]), true, nil
}

func (r *BlogRepository) List(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	q := From("blog_posts").Select("*").Order("created_at.desc", "id.asc")
	if publishedOnly {
		q = q.Where(Is("published", true))
	}
	var rows []blogPostRow
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	out := make([]blog.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, blogPostFromRow(row))
	}
	return out, nil
}

func (r *BlogRepository) Create(ctx context.Context, p blog.Post) error {
	if err := r.client.Insert(ctx, From("blog_posts"), blogPostToRow(p), nil); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, p blog.Post) error {
	var rows []blogPostRow
	if err := r.client.Update(ctx, From("blog_posts").Where(Eq("id", p.ID)), blogPostToRow(p), &rows); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("update post %s: not found", p.ID)
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, postID string) error {
	if err := r.client.Delete(ctx, From("blog_posts").Where(Eq("id", postID)), nil); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func blogPostFromRow(row blogPostRow) blog.Post {
	return blog.Post{
		ID:          row.ID,
		Slug:        row.Slug,
		Title:       row.Title,
		Body:        row.Body,
		AuthorID:    row.AuthorID,
		Published:   row.Published,
		PublishedAt: utcPtr(row.PublishedAt),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func blogPostToRow(p blog.Post) blogPostRow {
	return blogPostRow{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Body:        p.Body,
		AuthorID:    p.AuthorID,
		Published:   p.Published,
		PublishedAt: utcPtr(p.PublishedAt),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}
