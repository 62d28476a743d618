package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
)

const (
	batchConcurrency   = 10
	recentRatingsLimit = 6
)

// Store is the ratings and catalogue database.
type Store interface {
	AddRating(ctx context.Context, userID, movieID int64, value float64) error
	CountUserRatings(ctx context.Context, userID int64) (int, error)
	RatedMovies(ctx context.Context, userID int64, limit int) ([]domain.RatedMovie, error)
	UserByID(ctx context.Context, userID int64) (*domain.User, error)
	AllMovies(ctx context.Context) ([]domain.Movie, error)
	MoviesByGenre(ctx context.Context, genre string) ([]domain.Movie, error)
	MovieByID(ctx context.Context, movieID int64) (*domain.Movie, error)
	MovieAverageRating(ctx context.Context, movieID int64) (float64, error)
	CreateMovie(ctx context.Context, m *domain.Movie) (int64, error)
	CountMovies(ctx context.Context) (int, error)
	AverageRatingsByGenre(ctx context.Context) (map[string]float64, error)
	GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}

type Recommender interface {
	Recommend(ctx context.Context, userID int64, mood string) domain.RecommendationResult
	RecommendForGenres(ctx context.Context, genres []string, mood string) domain.RecommendationResult
}

type Catalog interface {
	SearchMovie(ctx context.Context, title string) (*domain.Movie, error)
}

// Cache is optional; a nil Cache disables caching.
type Cache interface {
	GetRecommendations(ctx context.Context, userID int64) (*domain.RecommendationResult, error)
	SetRecommendations(ctx context.Context, userID int64, result *domain.RecommendationResult) error
	ClearUserCache(ctx context.Context, userID int64) error
	GetMovie(ctx context.Context, title string) (*domain.Movie, error)
	SetMovie(ctx context.Context, title string, movie *domain.Movie) error
}

type Service struct {
	store       Store
	recommender Recommender
	catalog     Catalog
	cache       Cache
}

func NewService(store Store, recommender Recommender, catalog Catalog, cache Cache) *Service {
	return &Service{
		store:       store,
		recommender: recommender,
		catalog:     catalog,
		cache:       cache,
	}
}

func (s *Service) log(ctx context.Context) *zerolog.Logger {
	l := logging.Ctx(ctx).With().Str("component", "service").Logger()
	return &l
}

// GetRecommendations never fails: the engine degrades to general or curated
// results on its own.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, mood string) *domain.RecommendationResult {
	log := s.log(ctx)

	// Check Cache
	if s.cache != nil {
		cached, err := s.cache.GetRecommendations(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Int64("user_id", userID).Msg("cache get error")
		}
		if cached != nil {
			cached.CacheHit = true
			return cached
		}
	}

	result := s.recommender.Recommend(ctx, userID, mood)

	switch result.Type {
	case domain.TypeGeneral:
		if s.cache != nil {
			if err := s.cache.SetRecommendations(ctx, userID, &result); err != nil {
				log.Warn().Err(err).Int64("user_id", userID).Msg("cache set error")
			}
		}
	case domain.TypeAI:
		s.enrich(ctx, result.Items)
	}
	return &result
}

func (s *Service) RecommendForGenres(ctx context.Context, genres []string, mood string) *domain.RecommendationResult {
	cleaned := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			cleaned = append(cleaned, g)
		}
	}

	result := s.recommender.RecommendForGenres(ctx, cleaned, mood)
	s.enrich(ctx, result.Items)
	return &result
}

// enrich fills catalogue fields of AI items in place. Demo data and lookup
// failures leave the item untouched.
func (s *Service) enrich(ctx context.Context, items []domain.RecommendationItem) {
	for i := range items {
		movie, err := s.SearchMovie(ctx, items[i].Title)
		if err != nil || movie == nil || movie.Demo {
			continue
		}

		item := &items[i]
		if item.PosterURL == "" {
			item.PosterURL = movie.PosterURL
		}
		if item.Year == 0 {
			item.Year = movie.Year
		}
		if item.Genre == "" {
			item.Genre = movie.Genre
		}
		item.IMDbRating = movie.IMDbRating
	}
}

// SearchMovie looks a title up in the external catalogue. Only real
// (non-demo) results are cached.
func (s *Service) SearchMovie(ctx context.Context, title string) (*domain.Movie, error) {
	log := s.log(ctx)

	if s.cache != nil {
		cached, err := s.cache.GetMovie(ctx, title)
		if err != nil {
			log.Warn().Err(err).Str("title", title).Msg("cache get error")
		}
		if cached != nil {
			return cached, nil
		}
	}

	movie, err := s.catalog.SearchMovie(ctx, title)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && !movie.Demo {
		if err := s.cache.SetMovie(ctx, title, movie); err != nil {
			log.Warn().Err(err).Str("title", title).Msg("cache set error")
		}
	}
	return movie, nil
}

// Add a rating and clear the user's cached recommendations
func (s *Service) AddRating(ctx context.Context, userID, movieID int64, value float64) error {
	if !domain.ValidRating(value) {
		return domain.ErrInvalidRating
	}
	if err := s.store.AddRating(ctx, userID, movieID, value); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.ClearUserCache(ctx, userID); err != nil {
			s.log(ctx).Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation error")
		}
	}
	return nil
}

func (s *Service) CountUserRatings(ctx context.Context, userID int64) (int, error) {
	return s.store.CountUserRatings(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.store.UserByID(ctx, userID)
}

// UserRatings returns every rating of the user with its movie, newest first.
func (s *Service) UserRatings(ctx context.Context, userID int64) ([]domain.RatedMovie, error) {
	return s.store.RatedMovies(ctx, userID, 0)
}

func (s *Service) RecentRatings(ctx context.Context, userID int64) ([]domain.RatedMovie, error) {
	return s.store.RatedMovies(ctx, userID, recentRatingsLimit)
}

// ListMovies returns the whole catalogue, or only genre when it is set.
func (s *Service) ListMovies(ctx context.Context, genre string) ([]domain.Movie, error) {
	if genre = strings.TrimSpace(genre); genre != "" {
		return s.store.MoviesByGenre(ctx, genre)
	}
	return s.store.AllMovies(ctx)
}

func (s *Service) MovieDetails(ctx context.Context, movieID int64) (*domain.MovieDetails, error) {
	movie, err := s.store.MovieByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	avg, err := s.store.MovieAverageRating(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("fetch average rating: %w", err)
	}
	return &domain.MovieDetails{Movie: *movie, AverageUserRating: avg}, nil
}

// CreateMovie adds m to the catalogue and sets its id.
func (s *Service) CreateMovie(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return nil, domain.ErrInvalidMovie
	}

	id, err := s.store.CreateMovie(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id

	s.log(ctx).Info().Int64("movie_id", id).Str("title", m.Title).Msg("movie created")
	return m, nil
}

func (s *Service) CountMovies(ctx context.Context) (int, error) {
	return s.store.CountMovies(ctx)
}

func (s *Service) GenreAverages(ctx context.Context) (map[string]float64, error) {
	return s.store.AverageRatingsByGenre(ctx)
}

func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	// Fetch paginated user IDs
	userIDs, err := s.store.GetUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}

	// Fetch total user
	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count user: %w", err)
	}

	// Process users concurrently with bounded worker pool
	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	// summary
	summary := domain.BatchSummary{}
	for _, r := range results {
		switch r.Type {
		case domain.TypeGeneral:
			summary.GeneralCount++
		case domain.TypeAI:
			summary.AICount++
		}
	}
	summary.ProcessingTimeMs = time.Since(start).Milliseconds()

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary:    summary,
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	result := s.GetRecommendations(ctx, userID, "")
	return domain.BatchUserResult{
		UserID:          userID,
		Type:            result.Type,
		Recommendations: result.Items,
		Status:          domain.StatusSuccess,
	}
}
