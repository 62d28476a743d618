package handler

import (
	"context"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
)

// Service is implemented by *service.Service.
type Service interface {
	GetRecommendations(ctx context.Context, userID int64, mood string) *domain.RecommendationResult
	RecommendForGenres(ctx context.Context, genres []string, mood string) *domain.RecommendationResult
	GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error)
	AddRating(ctx context.Context, userID, movieID int64, value float64) error
	CountUserRatings(ctx context.Context, userID int64) (int, error)
	UserRatings(ctx context.Context, userID int64) ([]domain.RatedMovie, error)
	RecentRatings(ctx context.Context, userID int64) ([]domain.RatedMovie, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	ListMovies(ctx context.Context, genre string) ([]domain.Movie, error)
	MovieDetails(ctx context.Context, movieID int64) (*domain.MovieDetails, error)
	CreateMovie(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	CountMovies(ctx context.Context) (int, error)
	GenreAverages(ctx context.Context) (map[string]float64, error)
	SearchMovie(ctx context.Context, title string) (*domain.Movie, error)
}

type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(svc Service) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{service: svc, validate: validate}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Str("component", "http").Err(err).Msg("encode response failed")
	}
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error:   errCode,
		Message: message,
	})
}

// positiveIDParam reads a chi URL parameter that must be a positive integer.
func positiveIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.Ctx(r.Context()).Error().Str("component", "http").Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}
