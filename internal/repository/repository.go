package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const movieColumns = `m.id, m.imdb_id, m.title, m.genre, m.description, m.actors,
	m.poster_url, m.imdb_rating, m.rotten_tomatoes_rating, m.year`

func scanMovie(row pgx.Row, m *domain.Movie) error {
	return row.Scan(&m.ID, &m.IMDbID, &m.Title, &m.Genre, &m.Description, &m.Actors,
		&m.PosterURL, &m.IMDbRating, &m.RTRating, &m.Year)
}

func collectMovies(rows pgx.Rows) ([]domain.Movie, error) {
	defer rows.Close()

	items := []domain.Movie{}
	for rows.Next() {
		var m domain.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over movies: %w", err)
	}
	return items, nil
}
