package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

const maxBodyBytes = 1 << 16

// POST /api/rate
func (h *Handler) RateMovie(w http.ResponseWriter, r *http.Request) {
	var req RateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	err := h.service.AddRating(r.Context(), req.UserID, req.MovieID, *req.Rating)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Rating saved"})
	case errors.Is(err, domain.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found",
			fmt.Sprintf("User with ID %d does not exist", req.UserID))
	case errors.Is(err, domain.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, "movie_not_found",
			fmt.Sprintf("Movie with ID %d does not exist", req.MovieID))
	default:
		internalError(w, r, err, "save rating failed")
	}
}

// GET /api/user/{userID}/ratings/count
func (h *Handler) CountUserRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := positiveIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	count, err := h.service.CountUserRatings(r.Context(), userID)
	if err != nil {
		internalError(w, r, err, "count ratings failed")
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Success: true, Count: count})
}

// GET /api/user/{userID}/ratings
func (h *Handler) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	h.writeRatings(w, r, h.service.UserRatings)
}

// GET /api/user/{userID}/recent-ratings
func (h *Handler) GetRecentRatings(w http.ResponseWriter, r *http.Request) {
	h.writeRatings(w, r, h.service.RecentRatings)
}

func (h *Handler) writeRatings(w http.ResponseWriter, r *http.Request,
	list func(context.Context, int64) ([]domain.RatedMovie, error)) {
	userID, ok := positiveIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	ratings, err := list(r.Context(), userID)
	if err != nil {
		internalError(w, r, err, "list ratings failed")
		return
	}
	if ratings == nil {
		ratings = []domain.RatedMovie{}
	}
	writeJSON(w, http.StatusOK, RatingsResponse{Success: true, Ratings: ratings})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
