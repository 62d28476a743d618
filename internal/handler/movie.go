package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

// GET /api/movies
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context(), r.URL.Query().Get("genre"))
	if err != nil {
		internalError(w, r, err, "list movies failed")
		return
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	writeJSON(w, http.StatusOK, MoviesResponse{Success: true, Movies: movies})
}

// GET /api/movies/{movieID}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := positiveIDParam(r, "movieID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie_id parameter")
		return
	}

	details, err := h.service.MovieDetails(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "movie_not_found",
				fmt.Sprintf("Movie with ID %d does not exist", movieID))
			return
		}
		internalError(w, r, err, "movie details failed")
		return
	}
	writeJSON(w, http.StatusOK, MovieResponse{Success: true, Movie: details})
}

// POST /api/movies
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &domain.Movie{
		IMDbID:      req.IMDbID,
		Title:       req.Title,
		Year:        req.Year,
		Genre:       req.Genre,
		Description: req.Description,
		Actors:      req.Actors,
		PosterURL:   req.PosterURL,
		IMDbRating:  req.IMDbRating,
		RTRating:    req.RTRating,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMovie) {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		internalError(w, r, err, "create movie failed")
		return
	}
	writeJSON(w, http.StatusCreated, CreatedMovieResponse{Success: true, Movie: movie})
}

// GET /api/movies/search?title=
func (h *Handler) SearchMovie(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "title is required")
		return
	}

	movie, err := h.service.SearchMovie(r.Context(), title)
	if err != nil {
		internalError(w, r, err, "movie search failed")
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Success: true, Movie: movie})
}

// GET /api/stats/genres
func (h *Handler) GenreStats(w http.ResponseWriter, r *http.Request) {
	averages, err := h.service.GenreAverages(r.Context())
	if err != nil {
		internalError(w, r, err, "genre stats failed")
		return
	}
	total, err := h.service.CountMovies(r.Context())
	if err != nil {
		internalError(w, r, err, "count movies failed")
		return
	}
	writeJSON(w, http.StatusOK, GenreStatsResponse{Success: true, Averages: averages, TotalMovies: total})
}
