package httpapi

import "net/http"

// ListUsers returns every account. Password digests are never serialized.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Users.List(r.Context())
	if err != nil {
		storageError(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
