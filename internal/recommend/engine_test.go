package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/model"
)

const validAnswer = "```json\n" + `{"recommendations":[
	{"title":"Stalker","reason":"slow and hypnotic","mood":"sereno","country":"USSR","year":1979,"genre":"Sci-Fi"},
	{"title":"Paprika","reason":"dreamlike","mood":"curioso"}
]}` + "\n```"

func newTestEngine(store RatingStore, completer Completer) *Engine {
	return NewEngine(store, completer, NewRand(11), Options{Model: "test-model", Temperature: 0.8, MaxTokens: 1500, Limit: 10})
}

func storeWithHistory() *fakeStore {
	return &fakeStore{
		movies: testCatalogue(),
		ratings: []domain.Rating{
			{UserID: 1, MovieID: 4, Value: 9},
			{UserID: 1, MovieID: 5, Value: 8},
		},
	}
}

func TestRecommendNoHistoryIgnoresKey(t *testing.T) {
	completer := &stubCompleter{content: validAnswer}

	for _, c := range []Completer{nil, completer} {
		result := newTestEngine(&fakeStore{movies: testCatalogue()}, c).Recommend(context.Background(), 99, "feliz")

		if result.Type != domain.TypeGeneral {
			t.Errorf("expected general, got %s", result.Type)
		}
		if result.State != string(StateNoHistory) {
			t.Errorf("expected no_history, got %s", result.State)
		}
		if result.Message != MessagePopular {
			t.Errorf("unexpected message %q", result.Message)
		}
		if len(result.Items) != len(testCatalogue()) || result.Items[0].Title != "The Godfather" {
			t.Errorf("expected catalogue by rating, got %+v", result.Items)
		}
	}
	if completer.calls != 0 {
		t.Errorf("completion endpoint must not be called without history, got %d calls", completer.calls)
	}
}

func TestRecommendHistoryNoKey(t *testing.T) {
	result := newTestEngine(storeWithHistory(), nil).Recommend(context.Background(), 1, "")

	if result.Type != domain.TypeGeneral || result.State != string(StateHistoryNoKey) {
		t.Fatalf("expected general/history_no_key, got %s/%s", result.Type, result.State)
	}
	if result.Message != MessageHistory {
		t.Errorf("unexpected message %q", result.Message)
	}
	if len(result.Items) != 0 {
		t.Errorf("user rated every Sci-Fi movie, expected none, got %+v", result.Items)
	}
}

func TestRecommendAllDramaRated(t *testing.T) {
	store := &fakeStore{
		movies: testCatalogue(),
		ratings: []domain.Rating{
			{UserID: 2, MovieID: 1}, {UserID: 2, MovieID: 2}, {UserID: 2, MovieID: 3},
		},
	}

	result := newTestEngine(store, nil).Recommend(context.Background(), 2, "")
	if result.Type != domain.TypeGeneral {
		t.Errorf("expected general, got %s", result.Type)
	}
	if result.Items == nil || len(result.Items) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", result.Items)
	}
}

func TestRecommendAIParsed(t *testing.T) {
	completer := &stubCompleter{content: validAnswer}

	result := newTestEngine(storeWithHistory(), completer).Recommend(context.Background(), 1, "relaxado")

	if result.Type != domain.TypeAI || result.State != string(StateParsed) {
		t.Fatalf("expected ai/parsed, got %s/%s", result.Type, result.State)
	}
	if result.Failure != "" {
		t.Errorf("unexpected failure %q", result.Failure)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Title != "Stalker" || result.Items[0].Country != "USSR" || result.Items[0].Reason != "slow and hypnotic" {
		t.Errorf("unexpected first item %+v", result.Items[0])
	}

	if completer.calls != 1 {
		t.Fatalf("expected one completion call, got %d", completer.calls)
	}
	if completer.request.Model != "test-model" || completer.request.MaxTokens != 1500 || completer.request.Temperature != 0.8 {
		t.Errorf("unexpected completion request %+v", completer.request)
	}
	prompt := completer.prompts[0]
	if !strings.Contains(prompt, "Alien (1979)") || !strings.Contains(prompt, "Arrival (2016)") {
		t.Error("prompt should list the user's history")
	}
	if !strings.Contains(prompt, "REQUESTED MOOD: relaxado") {
		t.Error("prompt should carry the requested mood")
	}
}

func TestRecommendAIFailuresFallBack(t *testing.T) {
	cases := []struct {
		name    string
		content string
		err     error
		want    Failure
	}{
		{"no json", "no json here", nil, FailureParse},
		{"transport", "", &model.ModelInferenceError{Msg: "dial tcp: refused"}, FailureTransport},
		{"timeout", "", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), FailureTransport},
		{"empty completion", "", model.ErrEmptyCompletion, FailureEmptyResponse},
		{"empty string", "", nil, FailureEmptyResponse},
		{"no valid entries", `{"recommendations":[{"title":"only title"}]}`, nil, FailureNoEntries},
		{"empty array", `{"recommendations":[]}`, nil, FailureNoEntries},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			completer := &stubCompleter{content: tc.content, err: tc.err}
			result := newTestEngine(storeWithHistory(), completer).Recommend(context.Background(), 1, "triste")

			if result.Type != domain.TypeAI {
				t.Errorf("expected ai type, got %s", result.Type)
			}
			if result.State != string(StateFailed) {
				t.Errorf("expected failed state, got %s", result.State)
			}
			if result.Failure != string(tc.want) {
				t.Errorf("expected failure %s, got %s", tc.want, result.Failure)
			}
			if len(result.Items) != 3 {
				t.Fatalf("expected 3 fallback items, got %d", len(result.Items))
			}
			for _, item := range result.Items {
				if !inCuratedList(domain.Recommendation{
					Title: item.Title, Reason: item.Reason, Mood: item.Mood,
					Country: item.Country, Genre: item.Genre, Year: yearOf(item.Title),
				}) {
					t.Errorf("%q is not a curated fallback", item.Title)
				}
			}
			if completer.calls != 1 {
				t.Errorf("expected exactly one attempt, got %d", completer.calls)
			}
		})
	}
}

func TestRecommendStoreFailureDegrades(t *testing.T) {
	completer := &stubCompleter{content: validAnswer}
	store := &fakeStore{movies: testCatalogue(), err: errors.New("connection reset")}

	result := newTestEngine(store, completer).Recommend(context.Background(), 1, "")

	if result.Type != domain.TypeGeneral {
		t.Errorf("expected general when history cannot be read, got %s", result.Type)
	}
	if len(result.Items) != 0 {
		t.Errorf("expected empty list on store failure, got %+v", result.Items)
	}
	if completer.calls != 0 {
		t.Error("completion must not be called when history is unavailable")
	}
}

func TestRecommendSkipsMissingMovies(t *testing.T) {
	store := storeWithHistory()
	store.ratings = append(store.ratings, domain.Rating{UserID: 1, MovieID: 404})

	history := newTestEngine(store, nil).History(context.Background(), 1)
	if len(history) != 2 {
		t.Errorf("expected dangling rating to be skipped, got %d movies", len(history))
	}
}

func TestRecommendForGenres(t *testing.T) {
	completer := &stubCompleter{content: validAnswer}
	result := newTestEngine(&fakeStore{}, completer).RecommendForGenres(context.Background(), []string{"Horror", "Western"}, "aventureiro")

	if result.Type != domain.TypeAI || result.State != string(StateParsed) {
		t.Fatalf("expected ai/parsed, got %s/%s", result.Type, result.State)
	}
	if !strings.Contains(completer.prompts[0], "Horror movie") || !strings.Contains(completer.prompts[0], "Preferred genre: Horror") {
		t.Error("prompt should contain the synthetic history and its insights")
	}
}

func TestRecommendForGenresWithoutKey(t *testing.T) {
	result := newTestEngine(&fakeStore{}, nil).RecommendForGenres(context.Background(), []string{"Drama"}, "")

	if result.State != string(StateFailed) || result.Failure != string(FailureNoKey) {
		t.Errorf("expected failed/no_key, got %s/%s", result.State, result.Failure)
	}
	if len(result.Items) != 3 {
		t.Errorf("expected 3 fallback items, got %d", len(result.Items))
	}
}

func yearOf(title string) string {
	for _, c := range curatedFallbacks {
		if c.Title == title {
			return c.Year
		}
	}
	return ""
}
