package handler

import (
	"net/http"
	"strings"
)

// GET /api/recommendations/{userID}
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := positiveIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	result := h.service.GetRecommendations(r.Context(), userID, r.URL.Query().Get("mood"))

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Success:         true,
		Type:            result.Type,
		Message:         result.Message,
		Recommendations: result.Items,
	})
}

// GET /api/recommendations/genres?genres=a,b&mood=
func (h *Handler) GetGenreRecommendations(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("genres")
	if strings.TrimSpace(raw) == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "At least one genre is required")
		return
	}

	result := h.service.RecommendForGenres(r.Context(), strings.Split(raw, ","), r.URL.Query().Get("mood"))

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Success:         true,
		Type:            result.Type,
		Message:         result.Message,
		Recommendations: result.Items,
	})
}
