package recommend

import (
	"fmt"
	"slices"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

var curatedFallbacks = []domain.Recommendation{
	{Title: "Parasite", Reason: "Korean social thriller that dissects inequality with precision", Mood: "reflexivo", Country: "South Korea", Year: "2019", Genre: "Thriller"},
	{Title: "Spirited Away", Reason: "Magical Japanese animation about growing up and courage", Mood: "curioso", Country: "Japan", Year: "2001", Genre: "Animation"},
	{Title: "The Grand Budapest Hotel", Reason: "Stylized comedy-drama with a singular sense of humor", Mood: "alegre", Country: "USA", Year: "2014", Genre: "Comedy"},
	{Title: "Pan's Labyrinth", Reason: "Dark Spanish fantasy where reality and magic collide", Mood: "aventureiro", Country: "Mexico/Spain", Year: "2006", Genre: "Fantasy"},
	{Title: "Amélie", Reason: "Charming French romance about finding beauty in small things", Mood: "feliz", Country: "France", Year: "2001", Genre: "Romance"},
	{Title: "City of God", Reason: "Intense Brazilian drama about growing up in Rio's favelas", Mood: "intenso", Country: "Brazil", Year: "2002", Genre: "Drama"},
	{Title: "Eternal Sunshine of the Spotless Mind", Reason: "Romantic sci-fi about memory and relationships", Mood: "emocional", Country: "USA", Year: "2004", Genre: "Sci-Fi"},
	{Title: "Mad Max: Fury Road", Reason: "Australian post-apocalyptic action with stunning set pieces", Mood: "energético", Country: "Australia", Year: "2015", Genre: "Action"},
}

// Fallback answers when AI recommendations are unavailable.
type Fallback struct {
	rng  *Rand
	pool []domain.Recommendation
}

func NewFallback(rng *Rand) *Fallback {
	return newFallback(rng, curatedFallbacks)
}

func newFallback(rng *Rand, pool []domain.Recommendation) *Fallback {
	if len(pool) < RecommendationCount {
		panic(fmt.Sprintf("recommend: fallback pool needs at least %d entries, has %d", RecommendationCount, len(pool)))
	}
	return &Fallback{rng: rng, pool: pool}
}

// Pick returns RecommendationCount distinct entries in random order.
func (f *Fallback) Pick() []domain.Recommendation {
	picked := slices.Clone(f.pool)
	f.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:RecommendationCount:RecommendationCount]
}
