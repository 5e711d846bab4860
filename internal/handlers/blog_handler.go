package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

// BlogsRepository is the interface that wraps methods for blog data access.
type BlogsRepository interface {
	GetAll(ctx context.Context) ([]models.Blog, error)
	GetByID(ctx context.Context, id int) (*models.Blog, error)
	Create(ctx context.Context, draft store.Fields) (*models.Blog, error)
	Update(ctx context.Context, id int, draft store.Fields) (*models.Blog, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// BlogsHandler handles HTTP requests for blog posts
type BlogsHandler struct {
	BaseHandler
	repository BlogsRepository
}

// NewBlogsHandler creates a new blog handler
func NewBlogsHandler(repo BlogsRepository, logger *zap.Logger) *BlogsHandler {
	return &BlogsHandler{
		repository:  repo,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all blog handler routes
func (h *BlogsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/blogs", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /api/v1/blogs
// @Summary Get all blog posts
// @Tags blogs
// @Produce json
// @Success 200 {array} models.Blog
// @Failure 500 {object} map[string]string
// @Router /api/v1/blogs [get]
func (h *BlogsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.repository.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to get all blogs", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get blogs")
		return
	}

	h.respondJSON(w, http.StatusOK, blogs)
}

// GetByID handles GET /api/v1/blogs/{id}
// @Summary Get blog post by ID
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} models.Blog
// @Failure 404 {object} map[string]string
// @Router /api/v1/blogs/{id} [get]
func (h *BlogsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	blog, err := h.repository.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to get blog")
		return
	}

	h.respondJSON(w, http.StatusOK, blog)
}

// Create handles POST /api/v1/blogs
// @Summary Create blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Success 201 {object} models.Blog
// @Failure 400 {object} map[string]string
// @Router /api/v1/blogs [post]
func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	blog, err := h.repository.Create(r.Context(), draft)
	if err != nil {
		h.logger.Error("failed to create blog", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create blog")
		return
	}

	h.respondJSON(w, http.StatusCreated, blog)
}

// Update handles PATCH /api/v1/blogs/{id}
// @Summary Update blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} models.Blog
// @Failure 404 {object} map[string]string
// @Router /api/v1/blogs/{id} [patch]
func (h *BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	draft, err := decodeDraft(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	blog, err := h.repository.Update(r.Context(), id, draft)
	if err != nil {
		h.respondStoreError(w, err, "failed to update blog")
		return
	}

	h.respondJSON(w, http.StatusOK, blog)
}

// Delete handles DELETE /api/v1/blogs/{id}
// @Summary Delete blog post
// @Tags blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /api/v1/blogs/{id} [delete]
func (h *BlogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	deleted, err := h.repository.Delete(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to delete blog")
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "record not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
