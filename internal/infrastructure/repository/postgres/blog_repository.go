package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/blog"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type BlogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) GetByID(ctx context.Context, postID string) (blog.Post, bool, error) {
	return r.get(ctx, "get post", qb.Eq("id", postID))
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (blog.Post, bool, error) {
	return r.get(ctx, "get post by slug", qb.Eq("slug", slug))
}

func (r *BlogRepository) get(ctx context.Context, op string, cond qb.Condition) (blog.Post, bool, error) {
	query, args, err := qb.Select("*").From("blog_posts").Where(cond).ToSQL()
	if err != nil {
		return blog.Post{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row blogPostTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return blog.Post{}, false, nil
		}
		return blog.Post{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return blogPostFromRow(row), true, nil
}

func (r *BlogRepository) List(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	builder := qb.Select("*").From("blog_posts").OrderBy("created_at DESC", "id")
	if publishedOnly {
		builder = builder.Where(qb.Eq("published", true))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list posts query: %w", err)
	}

	var rows []blogPostTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	out := make([]blog.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, blogPostFromRow(row))
	}
	return out, nil
}

func (r *BlogRepository) Create(ctx context.Context, p blog.Post) error {
	query, args, err := qb.InsertModel("blog_posts", blogPostToRow(p))
	if err != nil {
		return fmt.Errorf("build create post query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, p blog.Post) error {
	row := blogPostToRow(p)
	query, args, err := qb.Update("blog_posts").
		Set("slug", row.Slug).
		Set("title", row.Title).
		Set("body", row.Body).
		Set("published", row.Published).
		Set("published_at", row.PublishedAt).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update post query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireAffected(res, "update post")
}

func (r *BlogRepository) Delete(ctx context.Context, postID string) error {
	query, args, err := qb.DeleteFrom("blog_posts").Where(qb.Eq("id", postID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete post query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func blogPostFromRow(row blogPostTableModel) blog.Post {
	return blog.Post{
		ID:          row.ID,
		Slug:        row.Slug,
		Title:       row.Title,
		Body:        row.Body,
		AuthorID:    row.AuthorID,
		Published:   row.Published,
		PublishedAt: nullTimeToTimePtr(row.PublishedAt),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func blogPostToRow(p blog.Post) blogPostTableModel {
	return blogPostTableModel{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Body:        p.Body,
		AuthorID:    p.AuthorID,
		Published:   p.Published,
		PublishedAt: timePtrToNullTime(p.PublishedAt),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
