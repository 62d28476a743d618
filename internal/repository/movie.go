package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

func (r *Repository) MovieByID(ctx context.Context, movieID int64) (*domain.Movie, error) {
	m := &domain.Movie{}
	err := scanMovie(r.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM movies m WHERE m.id = $1`, movieID,
	), m)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("query movie id=%d: %w", movieID, err)
	}
	return m, nil
}

func (r *Repository) AllMovies(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+movieColumns+` FROM movies m ORDER BY m.title, m.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	return collectMovies(rows)
}

func (r *Repository) MoviesByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+movieColumns+` FROM movies m
		WHERE m.genre = $1
		ORDER BY m.imdb_rating DESC, m.id`, genre,
	)
	if err != nil {
		return nil, fmt.Errorf("query movies for genre %q: %w", genre, err)
	}
	return collectMovies(rows)
}

func (r *Repository) AllMoviesSortedByRatingDesc(ctx context.Context, limit int) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+movieColumns+` FROM movies m
		ORDER BY m.imdb_rating DESC, m.id
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top rated movies: %w", err)
	}
	return collectMovies(rows)
}

// MoviesExcludingRatedByUser ranks movies of genre that userID has not rated.
func (r *Repository) MoviesExcludingRatedByUser(ctx context.Context, genre string, userID int64, limit int) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+movieColumns+` FROM movies m
		WHERE m.genre = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM ratings r WHERE r.movie_id = m.id AND r.user_id = $2
		  )
		ORDER BY m.imdb_rating DESC, m.id
		LIMIT $3`, genre, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query unrated %q movies for user %d: %w", genre, userID, err)
	}
	return collectMovies(rows)
}

// MovieAverageRating returns 0 for a movie nobody rated.
func (r *Repository) MovieAverageRating(ctx context.Context, movieID int64) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0)::float8 FROM ratings WHERE movie_id = $1`, movieID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating for movie %d: %w", movieID, err)
	}
	return avg, nil
}

func (r *Repository) AverageRatingsByGenre(ctx context.Context) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.genre, AVG(r.rating)::float8
		FROM movies m
		JOIN ratings r ON r.movie_id = m.id
		GROUP BY m.genre`,
	)
	if err != nil {
		return nil, fmt.Errorf("query genre averages: %w", err)
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var genre string
		var avg float64
		if err := rows.Scan(&genre, &avg); err != nil {
			return nil, fmt.Errorf("scan genre average: %w", err)
		}
		averages[genre] = avg
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre averages: %w", err)
	}
	return averages, nil
}

// CreateMovie inserts m and returns its new id.
func (r *Repository) CreateMovie(ctx context.Context, m *domain.Movie) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO movies (imdb_id, title, genre, description, actors, poster_url,
			imdb_rating, rotten_tomatoes_rating, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		m.IMDbID, m.Title, m.Genre, m.Description, m.Actors, m.PosterURL,
		m.IMDbRating, m.RTRating, m.Year,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert movie %q: %w", m.Title, err)
	}
	return id, nil
}

func (r *Repository) CountMovies(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}
