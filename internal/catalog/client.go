// Package catalog looks movies up in the OMDb catalogue. Lookups never fail
// for a non-empty title: without a key, or when OMDb cannot answer, a demo
// movie flagged Demo is returned instead.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
)

const (
	maxResponseBytes = 1 << 20
	notAvailable     = "N/A"
	rottenTomatoes   = "Rotten Tomatoes"
	placeholderURL   = "https://via.placeholder.com/300x450?text="
)

var ErrEmptyTitle = errors.New("title must not be empty")

var (
	demoGenres = []string{"Action", "Comedy", "Drama", "Science Fiction", "Horror", "Romance", "Thriller"}
	demoActors = []string{"Main Actor", "Supporting Actress", "Villain", "Comic Relief", "Love Interest"}
)

// Rand is the subset of recommend.Rand the demo generator needs.
type Rand interface {
	Intn(n int) int
}

type Config struct {
	URL     string
	APIKey  string // empty means demo data only
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	rng        Rand
}

func NewClient(cfg Config, rng Rand) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		rng:        rng,
	}
}

type omdbRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type omdbMovie struct {
	Response   string       `json:"Response"`
	Error      string       `json:"Error"`
	Title      string       `json:"Title"`
	Year       string       `json:"Year"`
	Genre      string       `json:"Genre"`
	Actors     string       `json:"Actors"`
	Plot       string       `json:"Plot"`
	Poster     string       `json:"Poster"`
	IMDbRating string       `json:"imdbRating"`
	IMDbID     string       `json:"imdbID"`
	Ratings    []omdbRating `json:"Ratings"`
}

// SearchMovie looks title up by exact name.
func (c *Client) SearchMovie(ctx context.Context, title string) (*domain.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	log := logging.Ctx(ctx).With().Str("component", "catalog").Str("title", title).Logger()

	if c.apiKey == "" {
		log.Warn().Msg("no catalogue key configured, using demo data")
		return c.demoMovie(title), nil
	}

	movie, err := c.lookup(ctx, title)
	if err != nil {
		log.Warn().Err(err).Msg("catalogue lookup failed, using demo data")
		return c.demoMovie(title), nil
	}
	log.Debug().Int("year", movie.Year).Msg("catalogue lookup succeeded")
	return movie, nil
}

func (c *Client) lookup(ctx context.Context, title string) (*domain.Movie, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	q.Set("plot", "full")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalogue request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalogue request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalogue returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalogue response: %w", err)
	}

	var raw omdbMovie
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode catalogue response: %w", err)
	}
	if raw.Response == "False" {
		return nil, fmt.Errorf("movie not found: %s", raw.Error)
	}

	return toMovie(raw, title), nil
}

func toMovie(raw omdbMovie, title string) *domain.Movie {
	m := &domain.Movie{
		IMDbID:      available(raw.IMDbID),
		Title:       available(raw.Title),
		Year:        parseYear(raw.Year),
		Genre:       available(raw.Genre),
		Actors:      available(raw.Actors),
		Description: available(raw.Plot),
		PosterURL:   available(raw.Poster),
		IMDbRating:  parseFloat(raw.IMDbRating),
	}
	if m.Title == "" {
		m.Title = title
	}
	for _, r := range raw.Ratings {
		if r.Source == rottenTomatoes {
			m.RTRating = parseFloat(strings.TrimSuffix(r.Value, "%"))
			break
		}
	}
	return m
}

func available(s string) string {
	if s == notAvailable {
		return ""
	}
	return s
}

// parseYear reads the leading four digits, so "2010–2014" gives 2010.
func parseYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return year
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func (c *Client) demoMovie(title string) *domain.Movie {
	first := c.rng.Intn(len(demoActors))
	return &domain.Movie{
		Title:       title,
		Year:        2000 + c.rng.Intn(24),
		IMDbRating:  6.0 + float64(c.rng.Intn(40))/10.0,
		RTRating:    50 + float64(c.rng.Intn(50)),
		PosterURL:   placeholderURL + url.QueryEscape(title),
		Genre:       demoGenres[c.rng.Intn(len(demoGenres))],
		Actors:      demoActors[first] + ", " + demoActors[(first+1)%len(demoActors)],
		Description: "A compelling story about " + title + " that explores deep themes and features memorable characters.",
		Demo:        true,
	}
}
