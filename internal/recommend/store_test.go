package recommend

import (
	"cmp"
	"context"
	"slices"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/model"
)

var _ RatingStore = (*fakeStore)(nil)

// fakeStore is an in-memory RatingStore.
type fakeStore struct {
	movies  []domain.Movie
	ratings []domain.Rating
	err     error
}

func (s *fakeStore) RatingsForUser(_ context.Context, userID int64) ([]domain.Rating, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Rating
	for _, r := range s.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) MovieByID(_ context.Context, movieID int64) (*domain.Movie, error) {
	for _, m := range s.movies {
		if m.ID == movieID {
			return &m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (s *fakeStore) AllMoviesSortedByRatingDesc(_ context.Context, limit int) ([]domain.Movie, error) {
	if s.err != nil {
		return nil, s.err
	}
	return topRated(slices.Clone(s.movies), limit), nil
}

func (s *fakeStore) MoviesExcludingRatedByUser(_ context.Context, genre string, userID int64, limit int) ([]domain.Movie, error) {
	if s.err != nil {
		return nil, s.err
	}
	rated := make(map[int64]bool)
	for _, r := range s.ratings {
		if r.UserID == userID {
			rated[r.MovieID] = true
		}
	}
	var out []domain.Movie
	for _, m := range s.movies {
		if m.Genre == genre && !rated[m.ID] {
			out = append(out, m)
		}
	}
	return topRated(out, limit), nil
}

func topRated(movies []domain.Movie, limit int) []domain.Movie {
	slices.SortStableFunc(movies, func(a, b domain.Movie) int {
		return cmp.Compare(b.IMDbRating, a.IMDbRating)
	})
	if len(movies) > limit {
		movies = movies[:limit]
	}
	return movies
}

// stubCompleter returns canned content and records prompts.
type stubCompleter struct {
	content string
	err     error
	calls   int
	prompts []string
	request model.CompletionRequest
}

func (c *stubCompleter) Complete(_ context.Context, req model.CompletionRequest) (string, error) {
	c.calls++
	c.prompts = append(c.prompts, req.Prompt)
	c.request = req
	return c.content, c.err
}

func testCatalogue() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "The Godfather", Year: 1972, Genre: "Drama", IMDbRating: 9.2},
		{ID: 2, Title: "Moonlight", Year: 2016, Genre: "Drama", IMDbRating: 7.4},
		{ID: 3, Title: "Whiplash", Year: 2014, Genre: "Drama", IMDbRating: 8.5},
		{ID: 4, Title: "Alien", Year: 1979, Genre: "Sci-Fi", IMDbRating: 8.5},
		{ID: 5, Title: "Arrival", Year: 2016, Genre: "Sci-Fi", IMDbRating: 7.9},
		{ID: 6, Title: "Hot Fuzz", Year: 2007, Genre: "Comedy", IMDbRating: 7.8},
	}
}
