package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

func TestDeterministicNoHistory(t *testing.T) {
	store := &fakeStore{movies: testCatalogue()}
	d := NewDeterministic(store)

	movies, err := d.Recommend(context.Background(), 1, nil, 3)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("expected 3 movies, got %d", len(movies))
	}
	if movies[0].Title != "The Godfather" {
		t.Errorf("expected top rated first, got %s", movies[0].Title)
	}
	for i := 1; i < len(movies); i++ {
		if movies[i-1].IMDbRating < movies[i].IMDbRating {
			t.Errorf("not sorted: %f < %f", movies[i-1].IMDbRating, movies[i].IMDbRating)
		}
	}
}

func TestDeterministicFavoriteGenreExcludesRated(t *testing.T) {
	store := &fakeStore{
		movies: testCatalogue(),
		ratings: []domain.Rating{
			{UserID: 7, MovieID: 4, Value: 9},
			{UserID: 7, MovieID: 1, Value: 6},
		},
	}
	history := []domain.Movie{testCatalogue()[3], testCatalogue()[3], testCatalogue()[0]}

	movies, err := NewDeterministic(store).Recommend(context.Background(), 7, history, 10)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Arrival" {
		t.Errorf("expected only Arrival, got %+v", movies)
	}
}

func TestDeterministicExhaustedGenre(t *testing.T) {
	catalogue := testCatalogue()
	store := &fakeStore{
		movies: catalogue,
		ratings: []domain.Rating{
			{UserID: 3, MovieID: 1},
			{UserID: 3, MovieID: 2},
			{UserID: 3, MovieID: 3},
		},
	}
	history := []domain.Movie{catalogue[0], catalogue[1], catalogue[2]}

	movies, err := NewDeterministic(store).Recommend(context.Background(), 3, history, 10)
	if err != nil {
		t.Fatalf("exhausted genre must not fail: %v", err)
	}
	if len(movies) != 0 {
		t.Errorf("expected no movies, got %+v", movies)
	}
}

func TestDeterministicHistoryWithoutGenres(t *testing.T) {
	store := &fakeStore{movies: testCatalogue()}
	history := []domain.Movie{{ID: 90, Title: "Untagged"}, {ID: 91, Title: "Also Untagged"}}

	movies, err := NewDeterministic(store).Recommend(context.Background(), 2, history, 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected top rated fallback with 2 movies, got %+v", movies)
	}
	if movies[0].Title != "The Godfather" {
		t.Errorf("expected The Godfather first, got %s", movies[0].Title)
	}
}

func TestDeterministicStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}

	if _, err := NewDeterministic(store).Recommend(context.Background(), 1, nil, 5); err == nil {
		t.Error("expected store error to be returned")
	}
}
