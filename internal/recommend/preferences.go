package recommend

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

const (
	genreInsightPrefix  = "Preferred genre: "
	decadeInsightPrefix = "Preferred decade: "
)

// AnalyzePreferences reduces a rating history to at most two insight lines:
// the most frequent genre and the most frequent decade. Genre fields are
// split on commas. Movies without a year only count towards genres.
func AnalyzePreferences(history []domain.Movie) []string {
	genres := make(map[string]int)
	decades := make(map[int]int)

	for _, m := range history {
		for _, g := range splitGenres(m.Genre) {
			genres[g]++
		}
		if m.Year > 0 {
			decades[(m.Year/10)*10]++
		}
	}

	var insights []string
	if g, ok := mostFrequent(genres); ok {
		insights = append(insights, genreInsightPrefix+g)
	}
	if d, ok := mostFrequent(decades); ok {
		insights = append(insights, fmt.Sprintf("%s%ds", decadeInsightPrefix, d))
	}
	return insights
}

// FavoriteGenre returns the most frequent whole genre field in history,
// without splitting. Movies without a genre are not counted; "" means no
// history movie has one.
func FavoriteGenre(history []domain.Movie) string {
	counts := make(map[string]int)
	for _, m := range history {
		if m.Genre == "" {
			continue
		}
		counts[m.Genre]++
	}
	g, _ := mostFrequent(counts)
	return g
}

func splitGenres(field string) []string {
	var out []string
	for _, g := range strings.Split(field, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// mostFrequent walks keys in ascending order and keeps the first strict
// maximum, so ties resolve to the smallest key.
func mostFrequent[K cmp.Ordered](counts map[K]int) (K, bool) {
	var best K
	if len(counts) == 0 {
		return best, false
	}

	keys := make([]K, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	bestCount := -1
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best, true
}
