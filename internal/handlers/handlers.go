package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tasklist/internal/app"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	app    *app.App
	logger *zap.Logger
}

// New creates a new Handlers instance.
func New(a *app.App, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		app:    a,
		logger: logger,
	}
}

// parseID extracts and parses an integer ID from URL parameters.
func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

// formValue reads field from a JSON body or, failing that, from form data.
func formValue(r *http.Request, field string) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return "", errors.New("invalid json")
		}
		return payload[field], nil
	}

	if err := r.ParseForm(); err != nil {
		return "", errors.New("invalid form data")
	}
	return r.FormValue(field), nil
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func (h *Handlers) respondServerError(w http.ResponseWriter, err error) {
	h.logger.Error("internal server error", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handlers) respondJSON(w http.ResponseWriter, code int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.respondServerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

// Health reports whether the initial task list has arrived.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Err(); err != nil {
		h.respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"loaded": false,
			"error":  err.Error(),
		})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"loaded": h.app.Loaded()})
}
