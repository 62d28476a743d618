package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

const foreignKeyViolation = "23503"

// RatingsForUser returns the user's ratings, newest first.
func (r *Repository) RatingsForUser(ctx context.Context, userID int64) ([]domain.Rating, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, movie_id, rating::float8, created_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ratings for user %d: %w", userID, err)
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.MovieID, &rt.Value, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// RatedMovies returns the user's ratings joined with their movies, newest
// first. A limit of 0 returns every rating.
func (r *Repository) RatedMovies(ctx context.Context, userID int64, limit int) ([]domain.RatedMovie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.user_id, r.movie_id, r.rating::float8, r.created_at, `+movieColumns+`
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT NULLIF($2::int, 0)`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query rated movies for user %d: %w", userID, err)
	}
	defer rows.Close()

	rated := []domain.RatedMovie{}
	for rows.Next() {
		var rm domain.RatedMovie
		m := &rm.Movie
		if err := rows.Scan(&rm.ID, &rm.UserID, &rm.MovieID, &rm.Value, &rm.CreatedAt,
			&m.ID, &m.IMDbID, &m.Title, &m.Genre, &m.Description, &m.Actors,
			&m.PosterURL, &m.IMDbRating, &m.RTRating, &m.Year); err != nil {
			return nil, fmt.Errorf("scan rated movie: %w", err)
		}
		rated = append(rated, rm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rated movies: %w", err)
	}
	return rated, nil
}

// AddRating inserts or replaces the (user, movie) rating.
func (r *Repository) AddRating(ctx context.Context, userID, movieID int64, value float64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ratings (user_id, movie_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET rating = EXCLUDED.rating, created_at = now()`,
		userID, movieID, value,
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		if strings.Contains(pgErr.ConstraintName, "user") {
			return domain.ErrUserNotFound
		}
		return domain.ErrMovieNotFound
	}
	return fmt.Errorf("upsert rating user=%d movie=%d: %w", userID, movieID, err)
}

func (r *Repository) CountUserRatings(ctx context.Context, userID int64) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ratings WHERE user_id = $1`, userID,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count ratings for user %d: %w", userID, err)
	}
	return total, nil
}
