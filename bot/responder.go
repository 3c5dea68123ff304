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


// Package bot is the query entry point: it receives a user's free-text
// query, resolves it against the catalog, renders for the user's access
// tier, and hands size-bounded chunks to the transport.
package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/glassmatch/analytics"
	"github.com/poiesic/glassmatch/billing"
	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/match"
	"github.com/poiesic/glassmatch/render"
	"github.com/poiesic/glassmatch/storage"
)

var (
	ErrSenderRequired   = errors.New("bot: sender is required")
	ErrResolverRequired = errors.New("bot: resolver is required")
)

// ErrInvalidQuery is the request rejection for empty queries. It never
// reaches the matcher and is distinct from a not-found result.
var ErrInvalidQuery = match.ErrEmptyQuery

// Sender delivers text chunks to one user in order. Implementations wrap
// the actual messaging transport.
type Sender interface {
	Send(ctx context.Context, userId int64, chunks []string) error
}

// Responder handles one user query end to end.
type Responder struct {
	resolver   *match.Resolver
	renderer   *render.Renderer
	sender     Sender
	users      storage.UserRepository
	billing    *billing.Service
	recorder   *analytics.Recorder
	chunkLimit int
	logger     *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithUsers enables profile upsert on every query.
func WithUsers(users storage.UserRepository) Option {
	return func(r *Responder) error {
		r.users = users
		return nil
	}
}

// WithBilling enables the premium lookup. Without it every user renders as
// free tier.
func WithBilling(service *billing.Service) Option {
	return func(r *Responder) error {
		r.billing = service
		return nil
	}
}

// WithRecorder enables analytics events.
func WithRecorder(recorder *analytics.Recorder) Option {
	return func(r *Responder) error {
		r.recorder = recorder
		return nil
	}
}

// WithChunkLimit overrides the transport chunk budget.
// Default is render.DefaultChunkLimit.
func WithChunkLimit(limit int) Option {
	return func(r *Responder) error {
		r.chunkLimit = limit
		return nil
	}
}

// NewResponder creates a responder around the resolver, renderer, and sender.
func NewResponder(resolver *match.Resolver, renderer *render.Renderer, sender Sender, opts ...Option) (*Responder, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if sender == nil {
		return nil, ErrSenderRequired
	}
	if renderer == nil {
		renderer = render.NewRenderer(render.DefaultConfig())
	}

	r := &Responder{
		resolver:   resolver,
		renderer:   renderer,
		sender:     sender,
		recorder:   analytics.NewRecorder(nil),
		chunkLimit: render.DefaultChunkLimit,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// HandleQuery resolves the user's query and sends the rendered chunks.
// Empty queries return ErrInvalidQuery without touching the catalog; a query
// that matches nothing sends the not-found render and returns nil.
func (r *Responder) HandleQuery(ctx context.Context, user *core.User, query string) error {
	if core.Normalize(query) == "" {
		return ErrInvalidQuery
	}

	if r.users != nil {
		if _, err := r.users.UpsertUser(ctx, user); err != nil {
			// Profile refresh is not worth failing the query over.
			r.logger.Error("error upserting user", "userId", user.TelegramId, "err", err)
		}
	}

	premium := false
	if r.billing != nil {
		active, err := r.billing.PremiumActive(ctx, user.TelegramId)
		if err != nil {
			r.logger.Error("error checking premium", "userId", user.TelegramId, "err", err)
		} else {
			premium = active
		}
	}

	r.recorder.LogSearch(ctx, user.TelegramId, query)

	response, err := r.resolver.Resolve(ctx, query)
	if err != nil {
		return err
	}

	blocks := r.renderer.Render(response, premium)
	chunks := render.Chunk(blocks, r.chunkLimit)
	if err := r.sender.Send(ctx, user.TelegramId, chunks); err != nil {
		return err
	}

	r.recorder.LogSearchResult(ctx, user.TelegramId, response.Query, response.Found, len(response.Results))
	return nil
}
