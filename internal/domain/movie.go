package domain

// Movie is a catalogue entry. ID is zero for candidates that were never
// persisted (for example catalogue search results).
type Movie struct {
	ID          int64   `json:"id,omitempty"`
	IMDbID      string  `json:"imdb_id,omitempty"`
	Title       string  `json:"title"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"` // may list several, comma separated
	Description string  `json:"description,omitempty"`
	Actors      string  `json:"actors,omitempty"`
	PosterURL   string  `json:"poster_url,omitempty"`
	IMDbRating  float64 `json:"imdb_rating"`            // 0-10, 0 means unknown
	RTRating    float64 `json:"rotten_tomatoes_rating"` // 0-100, 0 means unknown
	Demo        bool    `json:"demo,omitempty"`
}

type MovieDetails struct {
	Movie
	AverageUserRating float64 `json:"average_user_rating"`
}
