package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pizzeria-system/internal/apperr"
	"pizzeria-system/internal/logger"
)

// Handler serves the CRUD endpoints for one catalog.
type Handler[T any, PT Entry[T]] struct {
	service *Service[T, PT]
	logger  *logger.Logger
}

// NewHandler creates a catalog handler.
func NewHandler[T any, PT Entry[T]](service *Service[T, PT], log *logger.Logger) *Handler[T, PT] {
	return &Handler[T, PT]{service: service, logger: log}
}

// Register mounts the catalog routes under base, e.g. "/pizzas".
func (h *Handler[T, PT]) Register(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+base, h.list)
	mux.HandleFunc("POST "+base, h.create)
	mux.HandleFunc("GET "+base+"/{id}", h.get)
	mux.HandleFunc("PUT "+base+"/{id}", h.update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.remove)
}

func (h *Handler[T, PT]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.FindAll()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler[T, PT]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, err := h.service.FindOne(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

func (h *Handler[T, PT]) create(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decode(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(item)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler[T, PT]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, ok := h.decode(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(id, item)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler[T, PT]) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s deleted", h.service.Kind()),
	})
}

func (h *Handler[T, PT]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var item T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&item); err != nil {
		h.writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON format")
		return item, false
	}
	return item, true
}

func (h *Handler[T, PT]) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		h.writeErrorMessage(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler[T, PT]) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := logger.RequestIDFrom(r.Context())

	var validationErr *apperr.ValidationError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		h.writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr):
		h.writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("catalog_request_failed", "Catalog operation failed", requestID, err, map[string]interface{}{
			"catalog": h.service.Kind(),
			"path":    r.URL.Path,
		})
		h.writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *Handler[T, PT]) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

func (h *Handler[T, PT]) writeErrorMessage(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
