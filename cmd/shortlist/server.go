package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/shortlist"
	"github.com/poiesic/shortlist/catalog"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/prompt"
	"github.com/poiesic/shortlist/recommend"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/time/rate"
)

const (
	serviceName       = "Zomato AI Recommendation API"
	maxRequestBytes   = 1 << 20
	shutdownTimeout   = 10 * time.Second
	missingPreference = "Please provide at least a 'place' or 'cuisine' to get a recommendation."
)

// recommendSchema describes the recommend request body. A request must carry
// a non-blank place or at least one cuisine.
const recommendSchema = `{
	"type": "object",
	"properties": {
		"place": {"type": ["string", "null"]},
		"cuisines": {"type": ["array", "null"], "items": {"type": "string"}},
		"price_range": {"type": ["string", "number", "null"]},
		"min_rating": {"type": ["string", "number", "null"]}
	},
	"anyOf": [
		{"required": ["place"], "properties": {"place": {"type": "string", "pattern": "\\S"}}},
		{"required": ["cuisines"], "properties": {"cuisines": {"type": "array", "minItems": 1}}}
	]
}`

type serverConfig struct {
	fallback   bool
	rate       float64
	burst      int
	corsOrigin string
}

type server struct {
	recommender *recommend.Recommender
	facets      catalog.FacetSet
	etag        string
	records     int
	schema      *gojsonschema.Schema
	config      serverConfig
	logger      *slog.Logger
}

func newServer(recommender *recommend.Recommender, dataset *catalog.Dataset, config serverConfig, logger *slog.Logger) (*server, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recommendSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling request schema: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.corsOrigin == "" {
		config.corsOrigin = "*"
	}
	return &server{
		recommender: recommender,
		facets:      catalog.Facets(dataset),
		etag:        `"` + dataset.Fingerprint() + `"`,
		records:     dataset.Len(),
		schema:      schema,
		config:      config,
		logger:      logger.With("component", "server"),
	}, nil
}

func (s *server) routes() http.Handler {
	var recommendHandler http.Handler = http.HandlerFunc(s.handleRecommend)
	if s.config.rate > 0 {
		limiter := rate.NewLimiter(rate.Limit(s.config.rate), max(s.config.burst, 1))
		recommendHandler = RateLimit(limiter)(recommendHandler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/filters", s.handleFilters)
	mux.Handle("POST /api/v1/recommend", recommendHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	return Chain(mux,
		Recover(s.logger),
		Logger(s.logger),
		CORS(s.config.corsOrigin),
		OTel("shortlist"),
	)
}

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Records  int    `json:"records"`
	Snapshot string `json:"snapshot"`
}

type filtersResponse struct {
	Success  bool      `json:"success"`
	Places   []string  `json:"places"`
	Cuisines []string  `json:"cuisines"`
	Prices   []float64 `json:"prices"`
}

// looseString accepts a JSON string or number.
type looseString string

func (v *looseString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = looseString(s)
		return nil
	}
	*v = looseString(b)
	return nil
}

type recommendRequest struct {
	Place      string      `json:"place"`
	Cuisines   []string    `json:"cuisines"`
	PriceRange looseString `json:"price_range"`
	MinRating  looseString `json:"min_rating"`
}

type recommendResponse struct {
	Success        bool     `json:"success"`
	Recommendation string   `json:"recommendation"`
	ContextUsed    []string `json:"context_used"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Service:  serviceName,
		Records:  s.records,
		Snapshot: strings.Trim(s.etag, `"`),
	})
}

// handleFilters serves the facets with the snapshot fingerprint as ETag.
func (s *server) handleFilters(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", s.etag)
	if r.Header.Get("If-None-Match") == s.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{
		Success:  true,
		Places:   s.facets.Places,
		Cuisines: s.facets.Cuisines,
		Prices:   s.facets.Costs,
	})
}

func (s *server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		s.badRequest(w, "Could not read request body", err.Error())
		return
	}

	prefs, reqErr := s.parseRequest(body)
	if reqErr != nil {
		s.badRequest(w, reqErr.message, reqErr.details...)
		return
	}

	result, err := s.recommender.Recommend(r.Context(), prefs)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrInvalidPreferences):
		s.badRequest(w, err.Error())
		return
	case errors.Is(err, recommend.ErrBackendUnavailable):
		s.backendUnavailable(w, r, prefs, err)
		return
	default:
		s.logger.Error("recommendation failed", "err", err)
		RecommendationsTotal.WithLabelValues(outcomeInternalError).Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error", Details: []string{err.Error()}})
		return
	}

	outcome := outcomeGenerated
	if !result.Generated() {
		outcome = outcomeNoResults
	}
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	CandidatesReturned.Observe(float64(len(result.Candidates)))

	writeJSON(w, http.StatusOK, recommendResponse{
		Success:        true,
		Recommendation: result.Text,
		ContextUsed:    candidateNames(result.Candidates),
	})
}

// requestError is a client error reported with status 400.
type requestError struct {
	message string
	details []string
}

func (e *requestError) Error() string {
	return e.message
}

// parseRequest validates body against recommendSchema and converts it to
// preferences.
func (s *server) parseRequest(body []byte) (*core.Preferences, *requestError) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &requestError{message: "Request body must be a JSON object", details: []string{err.Error()}}
	}

	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &requestError{message: "Invalid request", details: []string{err.Error()}}
	}
	if !result.Valid() {
		reqErr := &requestError{message: "Invalid request"}
		for _, desc := range result.Errors() {
			reqErr.details = append(reqErr.details, desc.String())
			if desc.Type() == "number_any_of" {
				reqErr.message = missingPreference
			}
		}
		return nil, reqErr
	}

	var req recommendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &requestError{message: "Invalid request", details: []string{err.Error()}}
	}

	band, err := core.ParsePriceBand(string(req.PriceRange))
	if err != nil {
		return nil, &requestError{message: "Invalid price_range", details: []string{err.Error()}}
	}

	var minRating float64
	if v := strings.TrimSpace(string(req.MinRating)); v != "" {
		if minRating, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, &requestError{message: "Invalid min_rating", details: []string{err.Error()}}
		}
	}

	cuisines := make([]string, 0, len(req.Cuisines))
	for _, c := range req.Cuisines {
		if c = strings.TrimSpace(c); c != "" {
			cuisines = append(cuisines, c)
		}
	}

	return core.NewPreferences(strings.TrimSpace(req.Place), cuisines, band, minRating), nil
}

// backendUnavailable answers with the fallback table when enabled, or 502.
func (s *server) backendUnavailable(w http.ResponseWriter, r *http.Request, prefs *core.Preferences, cause error) {
	if s.config.fallback {
		dry, err := s.recommender.Prompt(r.Context(), prefs)
		if err == nil {
			s.logger.Warn("generation failed, serving fallback table", "err", cause)
			RecommendationsTotal.WithLabelValues(outcomeFallback).Inc()
			writeJSON(w, http.StatusOK, recommendResponse{
				Success:        true,
				Recommendation: prompt.FallbackTable(dry.Candidates),
				ContextUsed:    candidateNames(dry.Candidates),
			})
			return
		}
		s.logger.Error("fallback search failed", "err", err)
	}

	RecommendationsTotal.WithLabelValues(outcomeBackendError).Inc()
	writeJSON(w, http.StatusBadGateway, errorResponse{
		Error:   "Recommendation backend unavailable",
		Details: []string{cause.Error()},
	})
}

func (s *server) badRequest(w http.ResponseWriter, message string, details ...string) {
	RecommendationsTotal.WithLabelValues(outcomeInvalidRequest).Inc()
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Details: details})
}

func candidateNames(candidates []core.Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Restaurant.Name
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing response", "err", err)
	}
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []shortlist.Option{shortlist.WithAIConfig(aiConfig(c))}
	if n := c.Int("max-retries"); n > 1 {
		opts = append(opts, shortlist.WithGenerationRetries(n, c.Duration("retry-delay")))
	}

	sl, err := shortlist.Open(ctx, c.String("db"), opts...)
	if err != nil {
		return err
	}
	defer sl.Close()

	ds, err := sl.LoadDataset(ctx)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		slog.Warn("snapshot is empty, run ingest first", "db", c.String("db"))
	}
	DatasetRecords.Set(float64(ds.Len()))

	recommender, err := sl.NewRecommender(ds, searchOptions(c), recommend.WithObserver(generationObserver{}))
	if err != nil {
		return err
	}

	srv, err := newServer(recommender, ds, serverConfig{
		fallback:   c.Bool("fallback"),
		rate:       c.Float64("rate"),
		burst:      c.Int("burst"),
		corsOrigin: c.String("cors-origin"),
	}, slog.Default())
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.String("addr"),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpServer.Addr, "records", ds.Len())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
