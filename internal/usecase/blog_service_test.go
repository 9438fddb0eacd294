package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlogService(t *testing.T) *BlogService {
	t.Helper()
	svc := NewBlogService(memory.NewBlogRepository(), &sequenceIDs{}, logging.NewNop())
	svc.now = func() time.Time { return fixtureNow }
	return svc
}

func TestBlogService_CreateSlugifiesTitle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newBlogService(t)

	post, err := svc.Create(ctx, "admin-1", BlogPostInput{Title: "Week One Preview", Body: "Lines are out."})
	require.NoError(t, err)
	assert.Equal(t, "week-one-preview", post.Slug)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)

	_, err = svc.Create(ctx, "admin-1", BlogPostInput{Title: "Week one preview!", Body: "Again."})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, "admin-1", BlogPostInput{Title: "No body"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlogService_DraftsStayHidden(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newBlogService(t)
	draft, err := svc.Create(ctx, "admin-1", BlogPostInput{Title: "Bowl Picks", Body: "Soon."})
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, draft.Slug, false)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetBySlug(ctx, draft.Slug, true)
	require.NoError(t, err)

	public, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, public)

	published, err := svc.Publish(ctx, draft.ID)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, published.PublishedAt.Equal(fixtureNow))

	svc.now = func() time.Time { return fixtureNow.Add(time.Hour) }
	again, err := svc.Publish(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, again.PublishedAt.Equal(fixtureNow))

	public, err = svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestBlogService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newBlogService(t)
	first, err := svc.Create(ctx, "admin-1", BlogPostInput{Title: "First", Body: "one", Published: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "admin-1", BlogPostInput{Title: "Second", Body: "two"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, first.ID, BlogPostInput{Title: "First", Slug: "second", Body: "one", Published: true})
	require.ErrorIs(t, err, ErrConflict)

	updated, err := svc.Update(ctx, first.ID, BlogPostInput{Title: "First, revised", Slug: "first", Body: "one more", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "First, revised", updated.Title)

	require.NoError(t, svc.Delete(ctx, first.ID))
	require.ErrorIs(t, svc.Delete(ctx, first.ID), ErrNotFound)
}
