// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/shortlist"
	"github.com/poiesic/shortlist/ai"
	"github.com/poiesic/shortlist/catalog"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/ingestion"
	"github.com/poiesic/shortlist/prompt"
	"github.com/poiesic/shortlist/search"
	"github.com/poiesic/shortlist/storage/badger"
	"github.com/poiesic/shortlist/vector"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

const serveDescription = "When the generation backend fails, /api/v1/recommend answers 502 Bad Gateway. " +
	"Pass --fallback to answer 200 with a markdown table of the filtered candidates instead."

func newApp() *cli.App {
	return &cli.App{
		Name:  "shortlist",
		Usage: "Restaurant recommendations from the Zomato Bangalore dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: ".env",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Clean a dataset export and store it as the snapshot",
				Action: ingestCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Dataset export to read (JSON or CSV)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Input format (json, csv); detected from the file extension when empty",
					},
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Delete the existing snapshot before storing",
						Value: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of cleaning workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records written per batch",
						Value: 1000,
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report cleaning progress on stderr",
						Value: true,
					},
				},
			},
			{
				Name:   "facets",
				Usage:  "Print the places, cuisines and costs present in the snapshot as JSON",
				Action: facetsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "recommend",
				Usage:  "Recommend restaurants for the given preferences",
				Action: recommendCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "place",
						Aliases: []string{"p"},
						Usage:   "Location substring, e.g. Koramangala",
					},
					&cli.StringSliceFlag{
						Name:    "cuisine",
						Aliases: []string{"c"},
						Usage:   "Cuisine to look for (repeatable)",
					},
					&cli.StringFlag{
						Name:  "budget",
						Usage: "Price band (any, budget, standard, luxury)",
						Value: "any",
					},
					&cli.Float64Flag{
						Name:  "min-rating",
						Usage: "Minimum rating between 1.0 and 5.0; 0 disables the filter",
						Value: core.DefaultMinRating,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print the prompt instead of calling the generation backend",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Report each search stage on stderr",
					},
				}, searchFlags()...),
			},
			{
				Name:        "serve",
				Usage:       "Serve the recommendation HTTP API",
				Description: serveDescription,
				Action:      serveCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8000",
						EnvVars: []string{"SHORTLIST_ADDR"},
					},
					&cli.BoolFlag{
						Name:  "fallback",
						Usage: "Answer with a markdown table instead of 502 when the generation backend fails",
					},
					&cli.Float64Flag{
						Name:  "rate",
						Usage: "Recommendation requests per second; 0 disables rate limiting",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "burst",
						Usage: "Rate limiter burst size",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per generation call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.StringFlag{
						Name:  "cors-origin",
						Usage: "Value of the Access-Control-Allow-Origin header",
						Value: "*",
					},
				}, searchFlags()...),
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
		EnvVars:  []string{"SHORTLIST_DB"},
	}
}

// searchFlags are shared by the commands that run queries.
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of candidates",
			Value: search.DefaultLimit,
		},
		&cli.IntFlag{
			Name:  "overscan",
			Usage: "Number of filtered records considered before deduplication",
			Value: search.DefaultOverscan,
		},
		&cli.BoolFlag{
			Name:  "semantic",
			Usage: "Order filtered records by similarity to the query",
		},
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "Generation backend (googleai, openai)",
			Value:   ai.ProviderGoogleAI,
			EnvVars: []string{"SHORTLIST_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Generation backend API key",
			EnvVars: []string{"SHORTLIST_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Base URL of an OpenAI-compatible service",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Generation model name",
			Value: "gemini-2.0-flash",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name, used with --remote-embeddings",
			Value: "text-embedding-004",
		},
		&cli.BoolFlag{
			Name:  "remote-embeddings",
			Usage: "Embed with the backend instead of the deterministic local embedder",
		},
		&cli.Float64Flag{
			Name:  "temperature",
			Usage: "Sampling temperature",
			Value: 0.3,
		},
	}
}

func before(c *cli.Context) error {
	if err := loadEnv(c.String("env-file")); err != nil {
		return err
	}
	return setupLogger(c)
}

// loadEnv loads path into the environment. A missing file is not an error and
// variables already set take precedence.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func aiConfig(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithProvider(c.String("provider")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithHost(c.String("host")),
		ai.WithGenerationModel(c.String("model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithTemperature(c.Float64("temperature")),
		ai.WithStubEmbedder(!c.Bool("remote-embeddings")),
	)
}

func searchOptions(c *cli.Context) []search.Option {
	return []search.Option{
		search.WithLimit(c.Int("limit")),
		search.WithOverscan(c.Int("overscan")),
		search.WithSemanticRanking(c.Bool("semantic")),
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := c.Context

	path := c.String("file")
	format := strings.ToLower(c.String("format"))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := readRows(f, format)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	repo, err := badger.NewRepository(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	opts := []ingestion.Option{
		ingestion.WithPoolSize(c.Int("pool-size")),
		ingestion.WithBatchSize(c.Int("batch-size")),
	}
	if c.Bool("progress") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter))
	}
	pipeline, err := ingestion.NewPipeline(repo, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	stats, err := pipeline.Run(ctx, rows, &ingestion.IngestOptions{Replace: c.Bool("replace")})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Read %d rows: kept %d, dropped %d\n", stats.Read, stats.Kept, stats.Dropped)
	return nil
}

func readRows(r io.Reader, format string) ([]ingestion.RawRow, error) {
	switch format {
	case "json":
		return ingestion.ReadJSON(r)
	case "csv":
		return ingestion.ReadCSV(r)
	default:
		return nil, fmt.Errorf("unsupported format %q: must be json or csv", format)
	}
}

func facetsCommand(c *cli.Context) error {
	ds, err := loadDataset(c.Context, c.String("db"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(catalog.Facets(ds))
}

func loadDataset(ctx context.Context, dbPath string) (*catalog.Dataset, error) {
	repo, err := badger.NewRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()
	return shortlist.ReadDataset(ctx, repo)
}

func preferences(c *cli.Context) (*core.Preferences, error) {
	band, err := core.ParsePriceBand(c.String("budget"))
	if err != nil {
		return nil, err
	}
	prefs := core.NewPreferences(c.String("place"), c.StringSlice("cuisine"), band, c.Float64("min-rating"))
	if strings.TrimSpace(prefs.Place) == "" && len(prefs.Cuisines) == 0 {
		return nil, errors.New("provide at least --place or --cuisine")
	}
	return prefs, nil
}

func recommendCommand(c *cli.Context) error {
	ctx := c.Context

	prefs, err := preferences(c)
	if err != nil {
		return err
	}

	opts := searchOptions(c)
	if c.Bool("explain") {
		opts = append(opts, search.WithMonitor(newExplainMonitor(c.App.ErrWriter)))
	}

	if c.Bool("dry-run") {
		return dryRun(c, prefs, opts)
	}

	sl, err := shortlist.Open(ctx, c.String("db"), shortlist.WithAIConfig(aiConfig(c)))
	if err != nil {
		return err
	}
	defer sl.Close()

	ds, err := sl.LoadDataset(ctx)
	if err != nil {
		return err
	}
	recommender, err := sl.NewRecommender(ds, opts)
	if err != nil {
		return err
	}

	result, err := recommender.Recommend(ctx, prefs)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, result.Text)
	return nil
}

// dryRun prints the prompt for prefs without creating a generation backend.
// Semantic ranking uses the deterministic local embedder.
func dryRun(c *cli.Context, prefs *core.Preferences, opts []search.Option) error {
	ds, err := loadDataset(c.Context, c.String("db"))
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher(ds, vector.NewStubEmbedder(), opts...)
	if err != nil {
		return err
	}
	candidates, err := searcher.Search(c.Context, prefs)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Fprintln(c.App.Writer, prompt.NoResultsMessage)
		return nil
	}
	fmt.Fprint(c.App.Writer, prompt.Build(candidates, prefs))
	return nil
}
