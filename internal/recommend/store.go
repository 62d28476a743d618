package recommend

import (
	"context"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/model"
)

// RatingStore is the read side of the ratings and catalogue database. The
// engine never writes through it.
type RatingStore interface {
	RatingsForUser(ctx context.Context, userID int64) ([]domain.Rating, error)
	MovieByID(ctx context.Context, movieID int64) (*domain.Movie, error)
	AllMoviesSortedByRatingDesc(ctx context.Context, limit int) ([]domain.Movie, error)
	MoviesExcludingRatedByUser(ctx context.Context, genre string, userID int64, limit int) ([]domain.Movie, error)
}

// Completer sends a prompt to a chat-completion endpoint and returns the
// message text.
type Completer interface {
	Complete(ctx context.Context, req model.CompletionRequest) (string, error)
}
