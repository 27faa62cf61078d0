package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/IliyaMhz/PersonalBlog/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BlogService is what the blog endpoints need from the service layer.
type BlogService interface {
	ListAll(ctx context.Context) ([]models.BlogResponse, error)
	ListPublished(ctx context.Context) ([]models.BlogResponse, error)
	ListUnpublished(ctx context.Context) ([]models.BlogResponse, error)
	Search(ctx context.Context, term string) ([]models.BlogResponse, error)
	GetByID(ctx context.Context, id int64) (models.BlogResponse, error)
	Create(ctx context.Context, in models.CreateBlogInput) (models.BlogResponse, error)
	Update(ctx context.Context, id int64, in models.UpdateBlogInput) (models.BlogResponse, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type blogHandler struct {
	responder   Responder
	logger      zerolog.Logger
	blogService BlogService
	blogURL     func(id int64) string
}

func newBlogHandler(blogService BlogService, blogURL func(id int64) string) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		blogService: blogService,
		blogURL:     blogURL,
	}
}

// getAllBlogs retrieves every blog post, newest first
// @Summary Get all blogs
// @Tags Blogs
// @Produce json
// @Success 200 {array} models.BlogResponse
// @Failure 500 {object} InternalErrorResponse
// @Router /blogs [get]
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogService.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, blogs)
	}
}

// getPublishedBlogs
// @Summary Get published blogs
// @Tags Blogs
// @Produce json
// @Success 200 {array} models.BlogResponse
// @Router /blogs/published [get]
func (h blogHandler) getPublishedBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogService.ListPublished(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, blogs)
	}
}

// getUnpublishedBlogs
// @Summary Get unpublished blogs
// @Tags Blogs
// @Produce json
// @Success 200 {array} models.BlogResponse
// @Router /blogs/unpublished [get]
func (h blogHandler) getUnpublishedBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogService.ListUnpublished(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, blogs)
	}
}

// searchBlogs matches searchTerm against title, content and summary
// @Summary Search blogs
// @Tags Blogs
// @Produce json
// @Param searchTerm query string true "Substring to look for"
// @Success 200 {array} models.BlogResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Search term is required"
// @Router /blogs/search [get]
func (h blogHandler) searchBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogService.Search(r.Context(), r.URL.Query().Get("searchTerm"))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, blogs)
	}
}

// getBlog retrieves a specific blog post by ID
// @Summary Get blog
// @Tags Blogs
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} models.BlogResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogID"
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /blogs/{blogID} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := blogIDParam(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		blog, err := h.blogService.GetByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, blog)
	}
}

// createBlog creates a new blog post
// @Summary Create blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blog body models.CreateBlogInput true "Blog data"
// @Success 201 {object} models.BlogResponse
// @Header 201 {string} Location "URL of the created blog"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog data"
// @Failure 413 {object} ErrorResponse "Request body too large"
// @Router /blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.CreateBlogInput
		if err := decodeJSONBody(r, &in); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to decode create blog request body")
			h.responder.WriteError(w, r, err)
			return
		}

		if violations := in.Validate(); len(violations) > 0 {
			h.responder.WriteError(w, r, errs.NewValidationError(violations))
			return
		}

		blog, err := h.blogService.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		w.Header().Set("Location", h.blogURL(blog.ID))
		h.responder.WriteJSON(w, http.StatusCreated, blog)
	}
}

// updateBlog applies a partial update to an existing blog post
// @Summary Update blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blogID path int true "Blog ID"
// @Param blog body models.UpdateBlogInput true "Fields to change"
// @Success 200 {object} models.BlogResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog data"
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /blogs/{blogID} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := blogIDParam(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		var in models.UpdateBlogInput
		if err := decodeJSONBody(r, &in); err != nil {
			h.logger.Debug().Err(err).Int64("blogID", blogID).Msg("Failed to decode update blog request body")
			h.responder.WriteError(w, r, err)
			return
		}

		if violations := in.Validate(); len(violations) > 0 {
			h.responder.WriteError(w, r, errs.NewValidationError(violations))
			return
		}

		blog, err := h.blogService.Update(r.Context(), blogID, in)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, blog)
	}
}

// deleteBlog deletes a blog post by ID
// @Summary Delete blog
// @Tags Blogs
// @Param blogID path int true "Blog ID"
// @Success 204
// @Failure 400 {object} ErrorResponse "Bad Request - Failed to delete the blog"
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /blogs/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := blogIDParam(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		removed, err := h.blogService.Delete(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		if !removed {
			h.responder.WriteError(w, r, errs.NewApiErr(http.StatusBadRequest, "Failed to delete the blog"))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

func blogIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "blogID")
	if raw == "" {
		return 0, errs.NewBadRequestError("missing blogID")
	}

	blogID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || blogID <= 0 {
		return 0, errs.NewInvalidFieldError("blogID", "must be a positive integer")
	}
	return blogID, nil
}

// decodeJSONBody decodes the request body into dst. The body size is capped
// by the max body middleware.
func decodeJSONBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}
