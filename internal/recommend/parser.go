package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tailscale/hujson"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/metrics"
)

var errNoRecommendationsField = errors.New("recommendations array not found")

// ParseRecommendations extracts recommendations from raw model output. It
// sanitizes first, so fenced or prose-wrapped answers are accepted. Entries
// without title, reason or mood are dropped one by one; an unparseable
// document yields an empty result.
func ParseRecommendations(text string) []domain.Recommendation {
	recs, err := parseRecommendations(text)
	if err != nil {
		logging.With("engine").Warn().Err(err).Msg("discarding unparseable model output")
		return nil
	}
	return recs
}

func parseRecommendations(text string) ([]domain.Recommendation, error) {
	cleaned := Sanitize(text)
	if cleaned == "" {
		return nil, errors.New("empty content after sanitizing")
	}

	doc, err := standardize(cleaned)
	if err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, errNoRecommendationsField
	}
	entries, ok := obj["recommendations"].([]any)
	if !ok {
		return nil, errNoRecommendationsField
	}

	log := logging.With("engine")
	recs := make([]domain.Recommendation, 0, len(entries))
	for i, entry := range entries {
		rec, ok := toRecommendation(entry)
		if !ok {
			metrics.RecommendationEntriesSkipped.Inc()
			log.Warn().Int("index", i).Msg("skipping recommendation with missing fields")
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// standardize turns relaxed JSON (comments, trailing commas) into standard
// JSON. Prose after the first top-level value is tolerated.
func standardize(text string) ([]byte, error) {
	doc, err := hujson.Standardize([]byte(text))
	if err == nil {
		return doc, nil
	}

	if end := valueEnd(text); end > 0 && end < len(text) {
		if doc, retryErr := hujson.Standardize([]byte(text[:end])); retryErr == nil {
			return doc, nil
		}
	}
	return nil, err
}

// valueEnd returns the offset just past the object or array that opens text,
// or -1 if it never closes. Brackets inside strings and comments are ignored.
func valueEnd(text string) int {
	if text == "" || (text[0] != '{' && text[0] != '[') {
		return -1
	}

	depth := 0
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '"':
			for i++; i < len(text) && text[i] != '"'; i++ {
				if text[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 >= len(text) {
				return -1
			}
			switch text[i+1] {
			case '/':
				j := strings.IndexByte(text[i:], '\n')
				if j < 0 {
					return -1
				}
				i += j
			case '*':
				j := strings.Index(text[i+2:], "*/")
				if j < 0 {
					return -1
				}
				i += j + 3
			}
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func toRecommendation(entry any) (domain.Recommendation, bool) {
	fields, ok := entry.(map[string]any)
	if !ok {
		return domain.Recommendation{}, false
	}

	title, ok1 := stringField(fields, "title")
	reason, ok2 := stringField(fields, "reason")
	mood, ok3 := stringField(fields, "mood")
	if !ok1 || !ok2 || !ok3 {
		return domain.Recommendation{}, false
	}

	rec := domain.Recommendation{Title: title, Reason: reason, Mood: mood}
	rec.Country, _ = stringField(fields, "country")
	rec.Year, _ = stringField(fields, "year")
	rec.Genre, _ = stringField(fields, "genre")
	return rec, true
}

// stringField reports whether key is present with a scalar value and
// renders that value as text.
func stringField(fields map[string]any, key string) (string, bool) {
	v, present := fields[key]
	if !present {
		return "", false
	}

	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
