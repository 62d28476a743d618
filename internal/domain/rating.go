package domain

import "time"

const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Rating is unique per (UserID, MovieID); a later rating replaces the earlier one.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Value     float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidRating(v float64) bool {
	return v >= MinRating && v <= MaxRating
}

// RatedMovie is a rating together with the movie it was given to.
type RatedMovie struct {
	Rating
	Movie Movie `json:"movie"`
}
