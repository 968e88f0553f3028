package httpapi

import (
	"net/http"
	"strings"

	"movieCatalog/models"
)

type movieInput struct {
	Title    *string `json:"title"`
	Director *string `json:"director"`
	Year     *int    `json:"year"`
}

// movie validates the input and returns the entity it describes.
// The returned message is empty when the input is complete.
func (in movieInput) movie() (models.Movie, string) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return models.Movie{}, "title is required"
	}
	if in.Director == nil || strings.TrimSpace(*in.Director) == "" {
		return models.Movie{}, "director is required"
	}
	if in.Year == nil || *in.Year == 0 {
		return models.Movie{}, "year is required"
	}
	return models.Movie{
		Title:    strings.TrimSpace(*in.Title),
		Director: strings.TrimSpace(*in.Director),
		Year:     *in.Year,
	}, ""
}

func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	list, err := h.Movies.List(r.Context())
	if err != nil {
		storageError(w, r, "list movies", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.Movies.GetByID(r.Context(), id)
	if err != nil {
		storageError(w, r, "get movie", err)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GetMovieByTitle looks a movie up by exact title, ignoring case.
func (h *Handler) GetMovieByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := pathText(r, "title")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.Movies.FindByTitle(r.Context(), title)
	if err != nil {
		storageError(w, r, "find movie by title", err)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) ListMoviesByDirector(w http.ResponseWriter, r *http.Request) {
	director, err := pathText(r, "director")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.Movies.ListByDirector(r.Context(), director)
	if err != nil {
		storageError(w, r, "list movies by director", err)
		return
	}
	if len(list) == 0 {
		writeError(w, http.StatusNotFound, "no movies found for director")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var in movieInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, msg := in.movie()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := h.Movies.Create(r.Context(), &m)
	if err != nil {
		storageError(w, r, "create movie", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in movieInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, msg := in.movie()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	m.ID = id
	n, err := h.Movies.Update(r.Context(), &m)
	if err != nil {
		storageError(w, r, "update movie", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := h.Movies.Delete(r.Context(), id)
	if err != nil {
		storageError(w, r, "delete movie", err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
