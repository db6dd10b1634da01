package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pizzeria-system/internal/apperr"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
)

// Handler handles HTTP requests for the order service.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the order and health routes.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /orders", h.List)
	mux.HandleFunc("POST /orders", h.Create)
	mux.HandleFunc("GET /orders/{id}", h.Get)
	mux.HandleFunc("PUT /orders/{id}", h.Update)
	mux.HandleFunc("DELETE /orders/{id}", h.Delete)
	mux.HandleFunc("PATCH /orders/{id}/processed", h.MarkProcessed)
	mux.HandleFunc("GET /health", h.HealthCheck)
}

// Create handles POST /orders requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFrom(r.Context())

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"pizzas": req.Pizzas,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	created, err := h.service.Create(&req, requestID)
	if err != nil {
		h.writeError(w, err, requestID, "order_creation_failed", "Failed to create order")
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// List handles GET /orders requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFrom(r.Context())

	orders, err := h.service.List()
	if err != nil {
		h.writeError(w, err, requestID, "order_list_failed", "Failed to list orders")
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /orders/{id} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFrom(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	found, err := h.service.Get(id)
	if err != nil {
		h.writeError(w, err, requestID, "order_get_failed", "Failed to get order")
		return
	}
	h.writeJSON(w, http.StatusOK, found)
}

// Update handles PUT /orders/{id} requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFrom(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	updated, err := h.service.Update(id, &req, requestID)
	if err != nil {
		h.writeError(w, err, requestID, "order_update_failed", "Failed to update order")
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// MarkProcessed handles PATCH /orders/{id}/processed requests.
func (h *Handler) MarkProcessed(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFrom(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	processed, err := h.service.MarkProcessed(id, requestID)
	if err != nil {
		h.writeError(w, err, requestID, "order_process_failed", "Failed to mark order as processed")
		return
	}
	h.writeJSON(w, http.StatusOK, processed)
}

// Delete handles DELETE /orders/{id} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFrom(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	if err := h.service.Delete(id, requestID); err != nil {
		h.writeError(w, err, requestID, "order_delete_failed", "Failed to delete order")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

// HealthCheck handles GET /health requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	healthy := h.service.HealthCheck()

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizzeria-system",
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	h.writeJSON(w, status, response)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, requestID string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		h.writeErrorResponse(w, http.StatusBadRequest, "id must be a positive integer", requestID)
		return 0, false
	}
	return id, true
}

// writeError maps engine errors onto HTTP statuses: not-found to 404,
// bad selections and unavailable items to 400, everything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, err error, requestID, action, message string) {
	var validationErr *apperr.ValidationError
	var unavailableErr *apperr.UnavailableItemsError

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, err.Error(), requestID)
	case errors.As(err, &validationErr), errors.As(err, &unavailableErr):
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
	default:
		h.logger.Error(action, message, requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format.
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
