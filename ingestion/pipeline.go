package ingestion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/storage"
)

const (
	defaultChunkSize = 256
	defaultBatchSize = 1000
)

// Stats summarizes one ingestion run.
type Stats struct {
	Read    int // rows handed to Run
	Kept    int // rows cleaned and stored
	Dropped int // rows rejected by CleanRow
}

// Pipeline cleans raw rows concurrently and stores the survivors in order.
type Pipeline struct {
	repository storage.RestaurantRepository
	pool       *ants.Pool
	chunkSize  int
	batchSize  int
	progress   io.Writer
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent cleaning.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records are written to the repository per call.
// Default is 1000.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size >= 1 {
			p.batchSize = size
		}
		return nil
	}
}

// WithProgress reports cleaning progress to w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline writing to repository.
func NewPipeline(repository storage.RestaurantRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		pool:       pool,
		chunkSize:  defaultChunkSize,
		batchSize:  defaultBatchSize,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	return p, nil
}

// IngestOptions holds optional parameters for ingestion.
type IngestOptions struct {
	// Replace removes the existing snapshot once the new rows are stored.
	Replace bool
}

// Run cleans rows on the worker pool and stores the kept records in input
// order. Dropped rows are logged at debug level and counted.
func (p *Pipeline) Run(ctx context.Context, rows []RawRow, opts *IngestOptions) (Stats, error) {
	if opts == nil {
		opts = &IngestOptions{}
	}
	stats := Stats{Read: len(rows)}

	cleaned, err := p.clean(ctx, rows)
	if err != nil {
		return stats, err
	}

	kept := make([]*core.Restaurant, 0, len(cleaned))
	for i, c := range cleaned {
		if c.err != nil {
			stats.Dropped++
			p.logger.Debug("dropping row", "row", i+1, "name", rows[i].Name, "err", c.err)
			continue
		}
		kept = append(kept, &c.record)
	}
	stats.Kept = len(kept)

	if len(kept) == 0 {
		if opts.Replace {
			if err := p.repository.DeleteAll(ctx); err != nil {
				return stats, err
			}
		}
		p.logger.Info("ingestion complete", "read", stats.Read, "kept", stats.Kept, "dropped", stats.Dropped)
		return stats, nil
	}

	if err := p.store(ctx, kept); err != nil {
		return stats, err
	}

	// IDs are assigned in increasing order, so everything below the first
	// new ID belongs to the previous snapshot.
	if opts.Replace {
		if err := p.repository.DeleteRange(ctx, 0, kept[0].Id); err != nil {
			return stats, err
		}
	}

	p.logger.Info("ingestion complete", "read", stats.Read, "kept", stats.Kept, "dropped", stats.Dropped)
	return stats, nil
}

// store writes kept in batches. When a batch fails, records written earlier in
// this run are removed so the stored snapshot is left as it was.
func (p *Pipeline) store(ctx context.Context, kept []*core.Restaurant) error {
	for start := 0; start < len(kept); start += p.batchSize {
		end := min(start+p.batchSize, len(kept))
		if _, err := p.repository.AddRestaurants(ctx, kept[start:end]...); err != nil {
			first := kept[0].Id
			if first == 0 {
				return err
			}
			p.logger.Warn("storing failed, removing partial ingestion", "from", first, "err", err)
			if rbErr := p.repository.DeleteRange(context.WithoutCancel(ctx), first, 0); rbErr != nil {
				return errors.Join(err, rbErr)
			}
			return err
		}
	}
	return nil
}

type cleanResult struct {
	record core.Restaurant
	err    error
}

// clean runs CleanRow over rows in chunks on the pool. Each worker writes only
// its own slice positions, so results line up with rows without locking.
func (p *Pipeline) clean(ctx context.Context, rows []RawRow) ([]cleanResult, error) {
	results := make([]cleanResult, len(rows))

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, "Cleaning", len(rows), p.chunkSize*4)
		tracker.Start()
	}

	var wg sync.WaitGroup
	var submitErr error
	for start := 0; start < len(rows); start += p.chunkSize {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		end := min(start+p.chunkSize, len(rows))

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					results[i].err = ctx.Err()
					continue
				}
				results[i].record, results[i].err = CleanRow(rows[i])
			}
			if tracker != nil {
				tracker.Increment(end - start)
			}
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tracker != nil {
		tracker.Finish()
		p.logger.Debug("cleaning finished", "rows", len(rows), "elapsed", tracker.Elapsed())
	}
	return results, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
