package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/blog"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type BlogPostInput struct {
	Title     string
	Slug      string
	Body      string
	Published bool
}

type BlogService struct {
	repo   blog.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewBlogService(repo blog.Repository, idGen idgen.Generator, logger *logging.Logger) *BlogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BlogService{repo: repo, idGen: idGen, logger: logger, now: time.Now}
}

func (s *BlogService) List(ctx context.Context, includeDrafts bool) ([]blog.Post, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlogService.List")
	defer span.End()

	posts, err := s.repo.List(ctx, !includeDrafts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetBySlug hides drafts unless includeDrafts is set.
func (s *BlogService) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (blog.Post, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlogService.GetBySlug")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return blog.Post{}, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	p, ok, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return blog.Post{}, fmt.Errorf("get post: %w", err)
	}
	if !ok || (!p.Published && !includeDrafts) {
		return blog.Post{}, fmt.Errorf("%w: post=%s", ErrNotFound, slug)
	}
	return p, nil
}

func (s *BlogService) Create(ctx context.Context, authorID string, input BlogPostInput) (_ blog.Post, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlogService.Create")
	defer endUsecaseSpan(span, &err)

	postID, err := s.idGen.NewID()
	if err != nil {
		return blog.Post{}, fmt.Errorf("generate post id: %w", err)
	}
	now := s.now().UTC()
	p := blog.Post{
		ID:        postID,
		AuthorID:  authorID,
		CreatedAt: now,
	}
	p = s.apply(p, input, now)
	if err := p.Validate(); err != nil {
		return blog.Post{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureSlugFree(ctx, p); err != nil {
		return blog.Post{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return blog.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.logger.InfoContext(ctx, "post created", "post_id", p.ID, "slug", p.Slug, "published", p.Published)
	return p, nil
}

func (s *BlogService) Update(ctx context.Context, postID string, input BlogPostInput) (_ blog.Post, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlogService.Update")
	defer endUsecaseSpan(span, &err)

	current, ok, err := s.repo.GetByID(ctx, strings.TrimSpace(postID))
	if err != nil {
		return blog.Post{}, fmt.Errorf("get post: %w", err)
	}
	if !ok {
		return blog.Post{}, fmt.Errorf("%w: post=%s", ErrNotFound, postID)
	}

	next := s.apply(current, input, s.now().UTC())
	if err := next.Validate(); err != nil {
		return blog.Post{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if next.Slug != current.Slug {
		if err := s.ensureSlugFree(ctx, next); err != nil {
			return blog.Post{}, err
		}
	}
	if err := s.repo.Update(ctx, next); err != nil {
		return blog.Post{}, fmt.Errorf("update post: %w", err)
	}
	return next, nil
}

// Publish marks a draft as published. Publishing twice keeps the first
// PublishedAt.
func (s *BlogService) Publish(ctx context.Context, postID string) (blog.Post, error) {
	current, ok, err := s.repo.GetByID(ctx, strings.TrimSpace(postID))
	if err != nil {
		return blog.Post{}, fmt.Errorf("get post: %w", err)
	}
	if !ok {
		return blog.Post{}, fmt.Errorf("%w: post=%s", ErrNotFound, postID)
	}
	return s.Update(ctx, current.ID, BlogPostInput{
		Title:     current.Title,
		Slug:      current.Slug,
		Body:      current.Body,
		Published: true,
	})
}

func (s *BlogService) Delete(ctx context.Context, postID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BlogService.Delete")
	defer span.End()

	postID = strings.TrimSpace(postID)
	_, ok, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: post=%s", ErrNotFound, postID)
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *BlogService) apply(p blog.Post, input BlogPostInput, now time.Time) blog.Post {
	p.Title = strings.TrimSpace(input.Title)
	p.Body = input.Body
	p.Slug = strings.TrimSpace(input.Slug)
	if p.Slug == "" {
		p.Slug = blog.Slugify(p.Title)
	}
	if input.Published && !p.Published {
		p.PublishedAt = &now
	}
	if !input.Published {
		p.PublishedAt = nil
	}
	p.Published = input.Published
	p.UpdatedAt = now
	return p
}

func (s *BlogService) ensureSlugFree(ctx context.Context, p blog.Post) error {
	existing, ok, err := s.repo.GetBySlug(ctx, p.Slug)
	if err != nil {
		return fmt.Errorf("get post by slug: %w", err)
	}
	if ok && existing.ID != p.ID {
		return fmt.Errorf("%w: slug %q is taken", ErrConflict, p.Slug)
	}
	return nil
}
