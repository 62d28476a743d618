package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMovieNotFound = errors.New("movie not found")
	ErrInvalidRating = errors.New("rating must be between 0 and 10")
	ErrInvalidMovie  = errors.New("movie title is required")
)
