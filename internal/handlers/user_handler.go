package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

// UsersRepository is the interface that wraps methods for user data access.
type UsersRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, draft store.Fields) (*models.User, error)
	Update(ctx context.Context, id int, draft store.Fields) (*models.User, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// UsersHandler handles HTTP requests for users
type UsersHandler struct {
	BaseHandler
	repository UsersRepository
}

// NewUsersHandler creates a new user handler
func NewUsersHandler(repo UsersRepository, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		repository:  repo,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all user handler routes
func (h *UsersHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /api/v1/users
func (h *UsersHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	// An email query narrows the listing to a single account lookup.
	if email := r.URL.Query().Get("email"); email != "" {
		user, err := h.repository.GetByEmail(r.Context(), email)
		if err != nil {
			h.respondStoreError(w, err, "failed to get user by email")
			return
		}
		h.respondJSON(w, http.StatusOK, []models.User{*user})
		return
	}

	users, err := h.repository.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to get all users", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get users")
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// GetByID handles GET /api/v1/users/{id}
func (h *UsersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	user, err := h.repository.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to get user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// Create handles POST /api/v1/users
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.repository.Create(r.Context(), draft)
	if err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	h.respondJSON(w, http.StatusCreated, user)
}

// Update handles PATCH /api/v1/users/{id}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.repository.Update(r.Context(), id, draft)
	if err != nil {
		h.respondStoreError(w, err, "failed to update user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/v1/users/{id}
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	deleted, err := h.repository.Delete(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to delete user")
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "record not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
