package recommend

import (
	"fmt"
	"strings"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

// RecommendationCount is how many titles the model is asked for.
const RecommendationCount = 3

// overusedTitles are the answers models fall back to when left alone.
var overusedTitles = []string{
	"Inception",
	"The Shawshank Redemption",
	"Pulp Fiction",
	"The Dark Knight",
	"Forrest Gump",
}

// referenceExamples illustrate the expected spread and are excluded from
// the answer.
var referenceExamples = []string{
	"Parasite (South Korea, 2019) - social thriller",
	"Amélie (France, 2001) - fantasy romance",
	"Spirited Away (Japan, 2001) - animation",
	"City of God (Brazil, 2002) - urban drama",
	"Pan's Labyrinth (Mexico/Spain, 2006) - dark fantasy",
	"Mad Max: Fury Road (Australia, 2015) - post-apocalyptic action",
}

type PromptBuilder struct {
	moods *MoodResolver
}

func NewPromptBuilder(moods *MoodResolver) *PromptBuilder {
	return &PromptBuilder{moods: moods}
}

// Build renders the recommendation request for history and mood. The JSON
// contract at the end is what ParseRecommendations expects back.
func (p *PromptBuilder) Build(history []domain.Movie, mood string) string {
	var b strings.Builder

	b.WriteString("You are a film expert with deep knowledge of movies from every era, country and style. ")
	fmt.Fprintf(&b, "Your task is to recommend %d movies that are genuinely diverse and interesting.\n\n", RecommendationCount)

	if len(history) > 0 {
		fmt.Fprintf(&b, "USER HISTORY (%d movies):\n", len(history))
		for _, m := range history {
			fmt.Fprintf(&b, "- %s (%d) - %s", m.Title, m.Year, m.Genre)
			if m.IMDbRating > 0 {
				fmt.Fprintf(&b, " - rated %.1f/10", m.IMDbRating)
			}
			b.WriteString("\n")
		}

		if insights := AnalyzePreferences(history); len(insights) > 0 {
			b.WriteString("\nDETECTED PATTERNS:\n")
			for _, insight := range insights {
				fmt.Fprintf(&b, "* %s\n", insight)
			}
		}
		b.WriteString("\n")
	}

	variant := p.moods.Variant(mood)
	if mood == "" {
		b.WriteString("REQUESTED MOOD: any")
	} else {
		fmt.Fprintf(&b, "REQUESTED MOOD: %s", mood)
		if variant != mood {
			fmt.Fprintf(&b, " (variant: %s)", variant)
		}
	}
	b.WriteString("\n\n")

	b.WriteString("DIVERSITY RULES:\n")
	fmt.Fprintf(&b, "1. AVOID the obvious picks (%s)\n", strings.Join(overusedTitles, ", "))
	b.WriteString("2. Include at least ONE movie from outside the US or not in English\n")
	b.WriteString("3. Spread the eras: one recent movie (last 10 years), one classic (before 2000) and one in between\n")
	b.WriteString("4. Use a different genre for each recommendation\n")
	b.WriteString("5. Prefer lesser-known but accessible movies when possible\n\n")

	b.WriteString("DIVERSE EXAMPLES FOR REFERENCE (DO NOT RECOMMEND THESE):\n")
	for _, ex := range referenceExamples {
		fmt.Fprintf(&b, "- %s\n", ex)
	}
	b.WriteString("\n")

	moodField := variant
	if moodField == "" {
		moodField = "one word describing the mood"
	}

	b.WriteString("REQUIRED RESPONSE FORMAT (JSON ONLY, NO OTHER TEXT):\n")
	b.WriteString("{\n")
	b.WriteString("  \"recommendations\": [\n")
	b.WriteString("    {\n")
	b.WriteString("      \"title\": \"Original English title\",\n")
	b.WriteString("      \"reason\": \"Why this movie fits the user, written in Brazilian Portuguese\",\n")
	fmt.Fprintf(&b, "      \"mood\": %q,\n", moodField)
	b.WriteString("      \"country\": \"Country of origin\",\n")
	b.WriteString("      \"year\": 0000,\n")
	b.WriteString("      \"genre\": \"Main genre\"\n")
	b.WriteString("    }\n")
	b.WriteString("  ]\n")
	b.WriteString("}\n\n")

	b.WriteString("IMPORTANT: be creative and diverse, and do not repeat movies you have recommended before.")

	return b.String()
}
