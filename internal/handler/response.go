package handler

import "github.com/actuallystonmai/movie-recommendation-service/internal/domain"

type RecommendationResponse struct {
	Success         bool                        `json:"success"`
	Type            domain.RecommendationType   `json:"type"`
	Message         string                      `json:"message"`
	Recommendations []domain.RecommendationItem `json:"recommendations"`
}

type RateRequest struct {
	UserID  int64    `json:"user_id" validate:"required,gt=0"`
	MovieID int64    `json:"movie_id" validate:"required,gt=0"`
	Rating  *float64 `json:"rating" validate:"required,gte=0,lte=10"`
}

type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required"`
	IMDbID      string  `json:"imdb_id"`
	Year        int     `json:"year" validate:"gte=0,lte=3000"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	Actors      string  `json:"actors"`
	PosterURL   string  `json:"poster_url" validate:"omitempty,url"`
	IMDbRating  float64 `json:"imdb_rating" validate:"gte=0,lte=10"`
	RTRating    float64 `json:"rotten_tomatoes_rating" validate:"gte=0,lte=100"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type CountResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type RatingsResponse struct {
	Success bool                `json:"success"`
	Ratings []domain.RatedMovie `json:"ratings"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type MoviesResponse struct {
	Success bool           `json:"success"`
	Movies  []domain.Movie `json:"movies"`
}

type MovieResponse struct {
	Success bool                 `json:"success"`
	Movie   *domain.MovieDetails `json:"movie"`
}

type CreatedMovieResponse struct {
	Success bool          `json:"success"`
	Movie   *domain.Movie `json:"movie"`
}

type SearchResponse struct {
	Success bool          `json:"success"`
	Movie   *domain.Movie `json:"movie"`
}

type GenreStatsResponse struct {
	Success     bool               `json:"success"`
	Averages    map[string]float64 `json:"averages"`
	TotalMovies int                `json:"total_movies"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
