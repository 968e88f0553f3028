package httpapi

import (
	"net/http"
	"strings"

	"movieCatalog/models"
)

type directorInput struct {
	Name        *string `json:"name"`
	Nationality *string `json:"nationality"`
	BirthYear   *int    `json:"birth_year"`
}

func (in directorInput) director() (models.Director, string) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return models.Director{}, "name is required"
	}
	return models.Director{
		Name:        strings.TrimSpace(*in.Name),
		Nationality: in.Nationality,
		BirthYear:   in.BirthYear,
	}, ""
}

func (h *Handler) ListDirectors(w http.ResponseWriter, r *http.Request) {
	list, err := h.Directors.List(r.Context())
	if err != nil {
		storageError(w, r, "list directors", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.Directors.GetByID(r.Context(), id)
	if err != nil {
		storageError(w, r, "get director", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "director not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var in directorInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, msg := in.director()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := h.Directors.Create(r.Context(), &d)
	if err != nil {
		storageError(w, r, "create director", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in directorInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, msg := in.director()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	d.ID = id
	n, err := h.Directors.Update(r.Context(), &d)
	if err != nil {
		storageError(w, r, "update director", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "director not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := h.Directors.Delete(r.Context(), id)
	if err != nil {
		storageError(w, r, "delete director", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "director not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
