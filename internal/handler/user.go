package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

// GET /api/user/{userID}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := positiveIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user_not_found",
			fmt.Sprintf("User with ID %d does not exist", userID))
		return
	}
	if err != nil {
		internalError(w, r, err, "load user failed")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
}
