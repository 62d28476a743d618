package domain

import "strconv"

// Recommendation is an AI or curated suggestion. Title is free text and is
// not guaranteed to exist in the catalogue.
type Recommendation struct {
	Title   string `json:"title"`
	Reason  string `json:"reason"`
	Mood    string `json:"mood"`
	Country string `json:"country,omitempty"`
	Year    string `json:"year,omitempty"`
	Genre   string `json:"genre,omitempty"`
}

type RecommendationType string

const (
	TypeGeneral RecommendationType = "general"
	TypeAI      RecommendationType = "ai"
)

// RecommendationItem is either a catalogue movie (general results) or an AI
// recommendation, optionally enriched with catalogue data.
type RecommendationItem struct {
	ID         int64   `json:"id,omitempty"`
	Title      string  `json:"title"`
	Genre      string  `json:"genre,omitempty"`
	Year       int     `json:"year,omitempty"`
	IMDbRating float64 `json:"imdb_rating,omitempty"`
	PosterURL  string  `json:"poster_url,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Mood       string  `json:"mood,omitempty"`
	Country    string  `json:"country,omitempty"`
}

func ItemFromMovie(m Movie) RecommendationItem {
	return RecommendationItem{
		ID:         m.ID,
		Title:      m.Title,
		Genre:      m.Genre,
		Year:       m.Year,
		IMDbRating: m.IMDbRating,
		PosterURL:  m.PosterURL,
	}
}

func ItemFromRecommendation(r Recommendation) RecommendationItem {
	item := RecommendationItem{
		Title:   r.Title,
		Reason:  r.Reason,
		Mood:    r.Mood,
		Country: r.Country,
		Genre:   r.Genre,
	}
	if year, err := strconv.Atoi(r.Year); err == nil && year > 0 {
		item.Year = year
	}
	return item
}

type RecommendationResult struct {
	Type    RecommendationType   `json:"type"`
	Message string               `json:"message"`
	Items   []RecommendationItem `json:"recommendations"`

	// Engine bookkeeping, kept out of responses.
	State    string `json:"-"`
	Failure  string `json:"-"`
	CacheHit bool   `json:"-"`
}

type BatchUserResult struct {
	UserID          int64                `json:"user_id"`
	Type            RecommendationType   `json:"type"`
	Recommendations []RecommendationItem `json:"recommendations"`
	Status          string               `json:"status"`
}

const StatusSuccess = "success"

type BatchSummary struct {
	GeneralCount     int   `json:"general_count"`
	AICount          int   `json:"ai_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}
