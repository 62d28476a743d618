// Package recommend picks movies for a user. A request with no rating
// history, or with no completion key configured, is answered from the
// catalogue by critic rating. Otherwise a prompt built from the history is
// sent to a chat-completion model and its answer is parsed. Any failure on
// that path answers with a curated list instead. Recommend never returns an
// error.
//
//	no_history     -> deterministic (top rated)           terminal
//	history_no_key -> deterministic (favourite genre)     terminal
//	calling        -> parsed (>= 1 entry)                 terminal
//	calling        -> failed -> curated fallback          terminal
package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/movie-recommendation-service/internal/model"
)

type State string

const (
	StateNoHistory    State = "no_history"
	StateHistoryNoKey State = "history_no_key"
	StateCalling      State = "calling"
	StateParsed       State = "parsed"
	StateFailed       State = "failed"
)

// Failure says why the AI path gave way to the curated fallback.
type Failure string

const (
	FailureNoKey         Failure = "no_key"
	FailureTransport     Failure = "transport"
	FailureEmptyResponse Failure = "empty_response"
	FailureParse         Failure = "parse"
	FailureNoEntries     Failure = "no_entries"
)

const (
	MessagePopular = "Recommendations based on popularity"
	MessageHistory = "Recommendations based on your history"
	MessageAI      = "Personalized AI recommendations"
)

const DefaultLimit = 10

type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// Limit caps deterministic results. Default DefaultLimit.
	Limit int
}

type Engine struct {
	store         RatingStore
	completer     Completer
	prompts       *PromptBuilder
	fallback      *Fallback
	deterministic *Deterministic
	opts          Options
	log           *zerolog.Logger
}

// NewEngine wires the engine. A nil completer means no completion key is
// configured; rng is shared by mood variants and fallback shuffling.
func NewEngine(store RatingStore, completer Completer, rng *Rand, opts Options) *Engine {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return &Engine{
		store:         store,
		completer:     completer,
		prompts:       NewPromptBuilder(NewMoodResolver(rng)),
		fallback:      NewFallback(rng),
		deterministic: NewDeterministic(store),
		opts:          opts,
		log:           logging.With("engine"),
	}
}

func (e *Engine) AIEnabled() bool {
	return e.completer != nil
}

// Recommend answers a recommendation request for userID.
func (e *Engine) Recommend(ctx context.Context, userID int64, mood string) domain.RecommendationResult {
	history := e.History(ctx, userID)

	var result domain.RecommendationResult
	switch {
	case len(history) == 0:
		result = e.general(ctx, userID, nil, StateNoHistory, MessagePopular)
	case e.completer == nil:
		result = e.general(ctx, userID, history, StateHistoryNoKey, MessageHistory)
	default:
		result = e.ai(ctx, history, mood)
	}

	metrics.RecommendationRequests.WithLabelValues(string(result.Type), result.State).Inc()
	logging.Ctx(ctx).Info().
		Str("component", "engine").
		Int64("user_id", userID).
		Str("type", string(result.Type)).
		Str("state", result.State).
		Str("failure", result.Failure).
		Int("count", len(result.Items)).
		Msg("recommendations ready")
	return result
}

// RecommendForGenres runs the AI path with a synthetic history holding one
// placeholder movie per genre.
func (e *Engine) RecommendForGenres(ctx context.Context, genres []string, mood string) domain.RecommendationResult {
	history := make([]domain.Movie, 0, len(genres))
	for _, g := range genres {
		history = append(history, domain.Movie{Title: g + " movie", Genre: g})
	}

	result := e.ai(ctx, history, mood)
	metrics.RecommendationRequests.WithLabelValues(string(result.Type), result.State).Inc()
	return result
}

// History loads the movies userID has rated. Store errors are logged and
// read as an empty history; ratings pointing at missing movies are skipped.
func (e *Engine) History(ctx context.Context, userID int64) []domain.Movie {
	ratings, err := e.store.RatingsForUser(ctx, userID)
	if err != nil {
		e.log.Error().Err(err).Int64("user_id", userID).Msg("load ratings failed, treating as no history")
		return nil
	}

	history := make([]domain.Movie, 0, len(ratings))
	for _, r := range ratings {
		m, err := e.store.MovieByID(ctx, r.MovieID)
		if err != nil {
			if !errors.Is(err, domain.ErrMovieNotFound) {
				e.log.Warn().Err(err).Int64("movie_id", r.MovieID).Msg("load rated movie failed")
			}
			continue
		}
		history = append(history, *m)
	}
	return history
}

func (e *Engine) general(ctx context.Context, userID int64, history []domain.Movie, state State, message string) domain.RecommendationResult {
	movies, err := e.deterministic.Recommend(ctx, userID, history, e.opts.Limit)
	if err != nil {
		e.log.Error().Err(err).Int64("user_id", userID).Msg("deterministic recommendations failed")
	}

	items := make([]domain.RecommendationItem, 0, len(movies))
	for _, m := range movies {
		items = append(items, domain.ItemFromMovie(m))
	}
	return domain.RecommendationResult{
		Type:    domain.TypeGeneral,
		Message: message,
		Items:   items,
		State:   string(state),
	}
}

func (e *Engine) ai(ctx context.Context, history []domain.Movie, mood string) domain.RecommendationResult {
	recs, failure := e.callModel(ctx, history, mood)

	state := StateParsed
	if failure != "" {
		state = StateFailed
		metrics.RecommendationFallbacks.WithLabelValues(string(failure)).Inc()
		e.log.Warn().Str("reason", string(failure)).Msg("using curated fallback recommendations")
		recs = e.fallback.Pick()
	}

	items := make([]domain.RecommendationItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, domain.ItemFromRecommendation(r))
	}
	return domain.RecommendationResult{
		Type:    domain.TypeAI,
		Message: MessageAI,
		Items:   items,
		State:   string(state),
		Failure: string(failure),
	}
}

// callModel runs prompt -> completion -> sanitize -> parse. A non-empty
// Failure means the caller must fall back.
func (e *Engine) callModel(ctx context.Context, history []domain.Movie, mood string) ([]domain.Recommendation, Failure) {
	if e.completer == nil {
		return nil, FailureNoKey
	}

	prompt := e.prompts.Build(history, mood)
	e.log.Debug().Str("state", string(StateCalling)).Int("prompt_len", len(prompt)).Msg("calling completion endpoint")

	start := time.Now()
	content, err := e.completer.Complete(ctx, model.CompletionRequest{
		Model:       e.opts.Model,
		Prompt:      prompt,
		Temperature: e.opts.Temperature,
		MaxTokens:   e.opts.MaxTokens,
	})
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, model.ErrEmptyCompletion) {
			return nil, FailureEmptyResponse
		}
		e.log.Warn().Err(err).Msg("completion request failed")
		return nil, FailureTransport
	}
	if content == "" {
		return nil, FailureEmptyResponse
	}

	recs, err := parseRecommendations(content)
	if err != nil {
		e.log.Warn().Err(err).Msg("model output did not parse")
		return nil, FailureParse
	}
	if len(recs) == 0 {
		return nil, FailureNoEntries
	}
	return recs, ""
}
