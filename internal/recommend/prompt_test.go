package recommend

import (
	"slices"
	"strings"
	"testing"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

func TestMoodVariantKnownMood(t *testing.T) {
	resolver := NewMoodResolver(NewRand(7))

	for mood, options := range moodVariants {
		for range 20 {
			got := resolver.Variant(mood)
			if !slices.Contains(options, got) {
				t.Fatalf("variant %q is not a synonym of %q", got, mood)
			}
		}
	}
}

func TestMoodVariantUnknownMood(t *testing.T) {
	resolver := NewMoodResolver(NewRand(7))

	for _, mood := range []string{"", "nervoso", "FELIZ"} {
		if got := resolver.Variant(mood); got != mood {
			t.Errorf("expected %q unchanged, got %q", mood, got)
		}
	}
}

func TestMoodVariantSeeded(t *testing.T) {
	a := NewMoodResolver(NewRand(99))
	b := NewMoodResolver(NewRand(99))

	for range 10 {
		if a.Variant("triste") != b.Variant("triste") {
			t.Fatal("same seed should produce the same variants")
		}
	}
}

func TestMoodVariantEmptyList(t *testing.T) {
	resolver := &MoodResolver{rng: NewRand(1), variants: map[string][]string{"vazio": {}}}
	if got := resolver.Variant("vazio"); got != "vazio" {
		t.Errorf("expected input back for empty synonym list, got %q", got)
	}
}

func TestPromptSectionsInOrder(t *testing.T) {
	builder := NewPromptBuilder(NewMoodResolver(NewRand(3)))
	history := []domain.Movie{
		{Title: "Alien", Year: 1979, Genre: "Sci-Fi, Horror", IMDbRating: 8.5},
		{Title: "Unrated Gem", Year: 2001, Genre: "Drama"},
	}

	prompt := builder.Build(history, "curioso")

	sections := []string{
		"You are a film expert",
		"USER HISTORY (2 movies):",
		"- Alien (1979) - Sci-Fi, Horror - rated 8.5/10",
		"DETECTED PATTERNS:",
		"REQUESTED MOOD: curioso (variant: ",
		"DIVERSITY RULES:",
		"DO NOT RECOMMEND THESE",
		"REQUIRED RESPONSE FORMAT",
		`"recommendations": [`,
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(prompt, s)
		if i < 0 {
			t.Fatalf("prompt is missing %q", s)
		}
		if i < last {
			t.Errorf("section %q is out of order", s)
		}
		last = i
	}

	if !strings.Contains(prompt, "- Unrated Gem (2001) - Drama\n") {
		t.Error("unrated movie should be listed without a rating")
	}
	for _, field := range []string{`"title"`, `"reason"`, `"mood"`, `"country"`, `"year"`, `"genre"`} {
		if !strings.Contains(prompt, field) {
			t.Errorf("output contract is missing %s", field)
		}
	}
	for _, title := range overusedTitles {
		if !strings.Contains(prompt, title) {
			t.Errorf("overused title %q not listed", title)
		}
	}
}

func TestPromptDirectives(t *testing.T) {
	prompt := NewPromptBuilder(NewMoodResolver(NewRand(3))).Build(nil, "feliz")

	for i := 1; i <= 5; i++ {
		if !strings.Contains(prompt, string(rune('0'+i))+". ") {
			t.Errorf("directive %d missing", i)
		}
	}
	if strings.Contains(prompt, "6. ") {
		t.Error("expected exactly five directives")
	}
}

func TestPromptEmptyHistoryAndMood(t *testing.T) {
	prompt := NewPromptBuilder(NewMoodResolver(NewRand(3))).Build(nil, "")

	if strings.Contains(prompt, "USER HISTORY") {
		t.Error("empty history should not render a history section")
	}
	if !strings.Contains(prompt, "REQUESTED MOOD: any") {
		t.Error("empty mood should render as any")
	}
}
