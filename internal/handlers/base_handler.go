package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondStoreError maps a repository error to 404 for missing records and
// 500 for everything else.
func (h *BaseHandler) respondStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "record not found")
		return
	}
	h.logger.Error(message, zap.Error(err))
	h.respondError(w, http.StatusInternalServerError, message)
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int, error) {
	idParam := chi.URLParam(r, "id")
	if idParam == "" {
		return 0, errors.New("id parameter is required")
	}
	return strconv.Atoi(idParam)
}

// decodeDraft reads the request body as a loosely typed draft. The field
// names inside may be legacy or canonical; the repositories normalize them.
func decodeDraft(r *http.Request) (store.Fields, error) {
	var draft store.Fields
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		return nil, err
	}
	return draft, nil
}
