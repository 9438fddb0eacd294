package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/domain/blog"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func blogPostsToDTO(posts []blog.Post) []blogPostDTO {
	out := make([]blogPostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, blogPostToDTO(p))
	}
	return out
}

func (h *Handler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPublishedPosts")
	defer span.End()

	posts, err := h.blogService.List(ctx, false)
	if err != nil {
		h.fail(ctx, w, "list posts failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, blogPostsToDTO(posts))
}

func (h *Handler) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAllPosts")
	defer span.End()

	posts, err := h.blogService.List(ctx, true)
	if err != nil {
		h.fail(ctx, w, "list posts failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, blogPostsToDTO(posts))
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPost")
	defer span.End()

	post, err := h.blogService.GetBySlug(ctx, r.PathValue("slug"), false)
	if err != nil {
		h.fail(ctx, w, "get post failed", err, "slug", r.PathValue("slug"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, blogPostToDTO(post))
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePost")
	defer span.End()

	member, err := currentMember(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req blogPostRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	post, err := h.blogService.Create(ctx, member.ID, usecase.BlogPostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		h.fail(ctx, w, "create post failed", err, "author_id", member.ID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, blogPostToDTO(post))
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePost")
	defer span.End()

	var req blogPostRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	post, err := h.blogService.Update(ctx, r.PathValue("postID"), usecase.BlogPostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		h.fail(ctx, w, "update post failed", err, "post_id", r.PathValue("postID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, blogPostToDTO(post))
}

func (h *Handler) PublishPost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishPost")
	defer span.End()

	post, err := h.blogService.Publish(ctx, r.PathValue("postID"))
	if err != nil {
		h.fail(ctx, w, "publish post failed", err, "post_id", r.PathValue("postID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, blogPostToDTO(post))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePost")
	defer span.End()

	if err := h.blogService.Delete(ctx, r.PathValue("postID")); err != nil {
		h.fail(ctx, w, "delete post failed", err, "post_id", r.PathValue("postID"))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
