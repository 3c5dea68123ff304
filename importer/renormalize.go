package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

// Progress tracks and reports progress of batch maintenance runs.
// The total is unknown up front, so it reports a running count and rate.
type Progress struct {
	writer         io.Writer
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgress creates a progress reporter.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N items
func NewProgress(writer io.Writer, reportInterval int) *Progress {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &Progress{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Increment increases the processed count by delta.
func (p *Progress) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.current += delta
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish prints the final count and a trailing newline.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.report()
	fmt.Fprintln(p.writer)
}

// report prints the current progress. Must be called with lock held.
func (p *Progress) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()
	fmt.Fprintf(p.writer, "\rProcessed: %d aliases - %.1f/s", p.current, rate)
}

// DefaultRenormalizeBatchSize is how many aliases are rewritten per
// transaction during renormalization.
const DefaultRenormalizeBatchSize = 256

// Renormalizer rewrites every stored alias so its normalized form is
// recomputed under the current normalization rules. Run it after changing
// the normalizer; stored normalized forms are derived data and go stale
// otherwise.
type Renormalizer struct {
	catalog   storage.CatalogRepository
	batchSize int
	progress  *Progress
	logger    *slog.Logger
}

// RenormalizeOption configures a Renormalizer.
type RenormalizeOption func(*Renormalizer) error

// WithBatchSize sets how many aliases are rewritten per transaction.
// Default is DefaultRenormalizeBatchSize.
func WithBatchSize(size int) RenormalizeOption {
	return func(r *Renormalizer) error {
		if size < 1 {
			size = 1
		}
		r.batchSize = size
		return nil
	}
}

// WithProgress attaches a progress reporter.
func WithProgress(progress *Progress) RenormalizeOption {
	return func(r *Renormalizer) error {
		r.progress = progress
		return nil
	}
}

// WithRenormalizeLogger sets a custom logger.
// Default is slog.Default().
func WithRenormalizeLogger(logger *slog.Logger) RenormalizeOption {
	return func(r *Renormalizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRenormalizer creates a renormalizer over the catalog repository.
func NewRenormalizer(catalog storage.CatalogRepository, opts ...RenormalizeOption) (*Renormalizer, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	r := &Renormalizer{
		catalog:   catalog,
		batchSize: DefaultRenormalizeBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run rewrites all aliases in batches and returns how many were processed.
// PutAliases recomputes the normalized form, so rewriting is sufficient.
func (r *Renormalizer) Run(ctx context.Context) (int, error) {
	if r.progress != nil {
		r.progress.Start()
	}

	var batch []*core.GlassAlias
	processed := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := r.catalog.PutAliases(ctx, batch...); err != nil {
			return err
		}
		processed += len(batch)
		if r.progress != nil {
			r.progress.Increment(len(batch))
		}
		batch = batch[:0]
		return nil
	}

	err := r.catalog.IterateAliases(ctx, func(alias *core.GlassAlias) error {
		batch = append(batch, alias)
		if len(batch) >= r.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return processed, err
	}
	if err := flush(); err != nil {
		return processed, err
	}

	if r.progress != nil {
		r.progress.Finish()
	}
	r.logger.Info("renormalization finished", "aliases", processed)
	return processed, nil
}
