// Package analytics records bot usage events. Recording is best-effort:
// failures are logged and swallowed so analytics can never break a user
// interaction.
package analytics

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
)

// Recorder appends events to the event repository.
type Recorder struct {
	events storage.EventRepository
	logger *slog.Logger
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRecorder creates a recorder. A nil repository yields a recorder that
// only logs, which keeps callers free of nil checks.
func NewRecorder(events storage.EventRepository, opts ...Option) *Recorder {
	r := &Recorder{
		events: events,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Log records one event. Never returns an error.
func (r *Recorder) Log(ctx context.Context, userId int64, eventType core.EventType, payload map[string]string) {
	if r.events == nil {
		return
	}
	_, err := r.events.AddEvents(ctx, &core.BotEvent{
		UserId:  userId,
		Type:    eventType,
		Payload: payload,
	})
	if err != nil {
		r.logger.Error("error recording event",
			"userId", userId, "type", string(eventType), "err", err)
	}
}

// LogSearch records a search event carrying the query.
func (r *Recorder) LogSearch(ctx context.Context, userId int64, query string) {
	r.Log(ctx, userId, core.EventSearch, map[string]string{"query": query})
}

// LogSearchResult records the outcome of a search.
func (r *Recorder) LogSearchResult(ctx context.Context, userId int64, query string, found bool, groups int) {
	r.Log(ctx, userId, core.EventSearchResult, map[string]string{
		"query":  query,
		"found":  strconv.FormatBool(found),
		"groups": strconv.Itoa(groups),
	})
}
