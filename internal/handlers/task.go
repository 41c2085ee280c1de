package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tasklist/internal/models"
)

// ListTasks returns the current view. The q parameter overrides the search
// term for this request only.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	if q, ok := r.URL.Query()["q"]; ok {
		h.respondJSON(w, http.StatusOK, h.app.ViewFor(q[0]))
		return
	}
	h.respondJSON(w, http.StatusOK, h.app.View())
}

// CreateTask appends a pending task.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	title, err := formValue(r, "title")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.app.Store().Add(title)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondServerError(w, err)
		return
	}

	h.logger.Debug("task added", zap.Int64("id", task.ID))
	h.respondJSON(w, http.StatusCreated, task)
}

// ToggleTask flips a task between pending and completed.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, ok := h.app.Store().Toggle(id)
	if !ok {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if !h.app.Store().Remove(id) {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	w.WriteHeader(http.StatusOK)
}
