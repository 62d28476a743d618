package recommend

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

// Deterministic ranks catalogue movies by critic rating, restricted to the
// user's favourite genre once a history exists.
type Deterministic struct {
	store RatingStore
}

func NewDeterministic(store RatingStore) *Deterministic {
	return &Deterministic{store: store}
}

// Recommend returns the top limit movies. With no history, or a history
// without any genre, it ranks the whole catalogue; otherwise it ranks unrated
// movies of the favourite genre. An empty result is valid.
func (d *Deterministic) Recommend(ctx context.Context, userID int64, history []domain.Movie, limit int) ([]domain.Movie, error) {
	genre := FavoriteGenre(history)
	if genre == "" {
		movies, err := d.store.AllMoviesSortedByRatingDesc(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("fetch top rated movies: %w", err)
		}
		return movies, nil
	}

	movies, err := d.store.MoviesExcludingRatedByUser(ctx, genre, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch unrated %q movies for user %d: %w", genre, userID, err)
	}
	return movies, nil
}
