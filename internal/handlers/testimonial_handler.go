package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

// TestimonialsRepository is the interface that wraps methods for testimonial data access.
type TestimonialsRepository interface {
	GetAll(ctx context.Context) ([]models.Testimonial, error)
	GetByID(ctx context.Context, id int) (*models.Testimonial, error)
	Create(ctx context.Context, draft store.Fields) (*models.Testimonial, error)
	Update(ctx context.Context, id int, draft store.Fields) (*models.Testimonial, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// TestimonialsHandler handles HTTP requests for testimonials
type TestimonialsHandler struct {
	BaseHandler
	repository TestimonialsRepository
}

// NewTestimonialsHandler creates a new testimonial handler
func NewTestimonialsHandler(repo TestimonialsRepository, logger *zap.Logger) *TestimonialsHandler {
	return &TestimonialsHandler{
		repository:  repo,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all testimonial handler routes
func (h *TestimonialsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/testimonials", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /api/v1/testimonials
// @Summary Get all testimonials
// @Tags testimonials
// @Produce json
// @Success 200 {array} models.Testimonial
// @Router /api/v1/testimonials [get]
func (h *TestimonialsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.repository.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to get all testimonials", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get testimonials")
		return
	}

	h.respondJSON(w, http.StatusOK, testimonials)
}

// GetByID handles GET /api/v1/testimonials/{id}
// @Summary Get testimonial by ID
// @Tags testimonials
// @Produce json
// @Param id path int true "Testimonial ID"
// @Success 200 {object} models.Testimonial
// @Router /api/v1/testimonials/{id} [get]
func (h *TestimonialsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	testimonial, err := h.repository.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to get testimonial")
		return
	}

	h.respondJSON(w, http.StatusOK, testimonial)
}

// Create handles POST /api/v1/testimonials
// @Summary Create testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Success 201 {object} models.Testimonial
// @Router /api/v1/testimonials [post]
func (h *TestimonialsHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	testimonial, err := h.repository.Create(r.Context(), draft)
	if err != nil {
		h.logger.Error("failed to create testimonial", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create testimonial")
		return
	}

	h.respondJSON(w, http.StatusCreated, testimonial)
}

// Update handles PATCH /api/v1/testimonials/{id}
// @Summary Update testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Param id path int true "Testimonial ID"
// @Success 200 {object} models.Testimonial
// @Router /api/v1/testimonials/{id} [patch]
func (h *TestimonialsHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	testimonial, err := h.repository.Update(r.Context(), id, draft)
	if err != nil {
		h.respondStoreError(w, err, "failed to update testimonial")
		return
	}

	h.respondJSON(w, http.StatusOK, testimonial)
}

// Delete handles DELETE /api/v1/testimonials/{id}
// @Summary Delete testimonial
// @Tags testimonials
// @Produce json
// @Param id path int true "Testimonial ID"
// @Success 200 {object} map[string]bool
// @Router /api/v1/testimonials/{id} [delete]
func (h *TestimonialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	deleted, err := h.repository.Delete(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to delete testimonial")
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "record not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
