package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

// CoursesRepository is the interface that wraps methods for course data access.
type CoursesRepository interface {
	// Method GetAll retrieve a list of all courses with their curriculum attached.
	//
	// Curriculum fetches that fail leave the course with an empty curriculum;
	// only a failure of the course listing itself is returned as an error.
	GetAll(ctx context.Context) ([]models.Course, error)
	// Method GetByID retrieve one course with its curriculum attached.
	//
	// "id" parameter is used to identify the course.
	// A missing course yields an error wrapping store.ErrNotFound.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// Method Create insert a new course together with its curriculum drafts.
	//
	// "draft" may use legacy or canonical field names; incomplete curriculum
	// drafts (missing a title or a url) are skipped.
	Create(ctx context.Context, draft store.Fields) (*models.Course, error)
	// Method Update patch the fields present on the draft and, when the draft
	// carries a curriculum key, replace the whole curriculum.
	Update(ctx context.Context, id int, draft store.Fields) (*models.Course, error)
	// Method Delete remove a course and its curriculum.
	//
	// The returned flag reports whether the course row itself was deleted.
	Delete(ctx context.Context, id int) (bool, error)
}

// CoursesHandler handles HTTP requests for courses
type CoursesHandler struct {
	BaseHandler
	repository CoursesRepository
}

// NewCoursesHandler creates a new course handler
func NewCoursesHandler(repo CoursesRepository, logger *zap.Logger) *CoursesHandler {
	return &CoursesHandler{
		repository:  repo,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CoursesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/courses", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /api/v1/courses
// @Summary Get all courses
// @Description Get a list of all courses with their curriculum
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses [get]
func (h *CoursesHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	courses, err := h.repository.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to get all courses", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get courses")
		return
	}

	h.respondJSON(w, http.StatusOK, courses)
}

// GetByID handles GET /api/v1/courses/{id}
// @Summary Get course by ID
// @Description Get a course and its curriculum by ID
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses/{id} [get]
func (h *CoursesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	course, err := h.repository.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to get course")
		return
	}

	h.respondJSON(w, http.StatusOK, course)
}

// Create handles POST /api/v1/courses
// @Summary Create course
// @Description Create a course together with its curriculum items
// @Tags courses
// @Accept json
// @Produce json
// @Param course body object true "Course draft, curriculum items under the curriculum key"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses [post]
func (h *CoursesHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.repository.Create(r.Context(), draft)
	if err != nil {
		h.logger.Error("failed to create course", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create course")
		return
	}

	h.respondJSON(w, http.StatusCreated, course)
}

// Update handles PATCH /api/v1/courses/{id}
// @Summary Update course
// @Description Patch a course; a curriculum key on the body replaces the whole curriculum
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param course body object true "Course patch"
// @Success 200 {object} models.Course
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses/{id} [patch]
func (h *CoursesHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	course, err := h.repository.Update(r.Context(), id, draft)
	if err != nil {
		h.respondStoreError(w, err, "failed to update course")
		return
	}

	h.respondJSON(w, http.StatusOK, course)
}

// Delete handles DELETE /api/v1/courses/{id}
// @Summary Delete course
// @Description Delete a course and its curriculum
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses/{id} [delete]
func (h *CoursesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	deleted, err := h.repository.Delete(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to delete course")
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "record not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
