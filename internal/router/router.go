package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/actuallystonmai/movie-recommendation-service/internal/handler"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

type Options struct {
	CORSAllowedOrigins []string
	// RateLimitRequests per RateLimitWindow and client IP on the
	// recommendation routes. Zero disables the limit.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func Setup(h *handler.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestID)
	r.Use(instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(60 * time.Second))

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// each call may spend completion quota
			r.Use(rateLimit(opts))
			r.Get("/recommendations/genres", h.GetGenreRecommendations)
			r.Get("/recommendations/{userID}", h.GetRecommendations)
		})

		r.Post("/rate", h.RateMovie)
		r.Get("/user/{userID}", h.GetUser)
		r.Get("/user/{userID}/ratings", h.GetUserRatings)
		r.Get("/user/{userID}/ratings/count", h.CountUserRatings)
		r.Get("/user/{userID}/recent-ratings", h.GetRecentRatings)

		r.Get("/movies", h.ListMovies)
		r.Post("/movies", h.CreateMovie)
		r.Get("/movies/search", h.SearchMovie)
		r.Get("/movies/{movieID}", h.GetMovie)
		r.Get("/stats/genres", h.GenreStats)
	})
	r.Get("/recommendations/batch", h.GetBatchRecommendations)
	r.Get("/health", healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func rateLimit(opts Options) func(http.Handler) http.Handler {
	if opts.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		opts.RateLimitRequests,
		opts.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"error":"rate_limited","message":"Too many requests, please try again later"}`))
		}),
	)
}

// requestID reuses an incoming X-Request-ID or generates one, and stores it
// in the request context for logging.Ctx.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// instrument records request metrics and an access log line. Routes are
// labelled by their chi pattern to keep cardinality bounded.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		logging.Ctx(r.Context()).Info().
			Str("component", "http").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("request")
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
