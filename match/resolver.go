package match

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

// Resolver matches free-text queries against the active catalog and
// produces ranked, grouped results.
type Resolver struct {
	catalog storage.CatalogRepository
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a new resolver.
func NewResolver(catalog storage.CatalogRepository, opts ...Option) (*Resolver, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	r := &Resolver{
		catalog: catalog,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve matches the query against the active catalog.
// Returns ErrEmptyQuery for empty/whitespace-only queries; a query that
// matches nothing yields a response with Found=false and no error.
func (r *Resolver) Resolve(ctx context.Context, query string) (*core.SearchResponse, error) {
	return r.ResolveWithMonitor(ctx, query, nil)
}

// ResolveWithMonitor matches the query with monitoring. The monitor receives
// callbacks at each stage of the pipeline.
func (r *Resolver) ResolveWithMonitor(ctx context.Context, query string, monitor ResolveMonitor) (*core.SearchResponse, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	trimmed := strings.TrimSpace(query)
	if core.Normalize(query) == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(trimmed)

	// 1. Snapshot the active catalog
	corpus, err := r.catalog.ActiveCorpus(ctx)
	if err != nil {
		r.logger.Error("error loading catalog corpus", "query", trimmed, "err", err)
		return nil, err
	}
	monitor.AfterCorpusLoad(corpus)

	// 2. Scan for tiered candidates
	candidates, err := Scan(corpus, query)
	if err != nil {
		return nil, err
	}
	monitor.AfterScan(candidates)

	if len(candidates) == 0 {
		response := &core.SearchResponse{Found: false, Query: trimmed}
		monitor.Finish(response)
		return response, nil
	}

	// 3. Best match per group
	best := Aggregate(candidates)
	monitor.AfterAggregate(best)

	// 4. Fetch group metadata and rank. Groups gone inactive since the
	// snapshot drop out here.
	groupIds := make([]core.ID, 0, len(best))
	for id := range best {
		groupIds = append(groupIds, id)
	}
	groups, err := r.catalog.GetActiveGroups(ctx, groupIds...)
	if err != nil {
		r.logger.Error("error fetching group metadata", "groupCount", len(groupIds), "err", err)
		return nil, err
	}

	ranked := Rank(best, groups)
	monitor.AfterRank(ranked)

	if len(ranked) == 0 {
		response := &core.SearchResponse{Found: false, Query: trimmed}
		monitor.Finish(response)
		return response, nil
	}

	byId := make(map[core.ID]*core.GlassGroup, len(groups))
	for _, g := range groups {
		byId[g.Id] = g
	}

	results := make([]*core.GroupResult, 0, len(ranked))
	for _, id := range ranked {
		results = append(results, &core.GroupResult{
			MatchedName:       best[id].MatchedName,
			Group:             byId[id],
			CompatibleGlasses: corpus.GlassNames(id),
		})
	}

	response := &core.SearchResponse{Found: true, Query: trimmed, Results: results}
	monitor.Finish(response)
	return response, nil
}
