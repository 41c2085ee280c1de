package handlers

import "net/http"

// SetSearch stores the search term and returns the filtered view.
func (h *Handlers) SetSearch(w http.ResponseWriter, r *http.Request) {
	term, err := formValue(r, "term")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.app.SetSearchTerm(term)
	h.respondJSON(w, http.StatusOK, h.app.View())
}
