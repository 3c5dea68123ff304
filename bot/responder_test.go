package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/glassmatch/analytics"
	"github.com/poiesic/glassmatch/billing"
	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/match"
	"github.com/poiesic/glassmatch/render"
	"github.com/poiesic/glassmatch/storage"
	"github.com/poiesic/glassmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSender records everything sent instead of delivering it.
type captureSender struct {
	userId int64
	chunks []string
	sends  int
}

func (s *captureSender) Send(_ context.Context, userId int64, chunks []string) error {
	s.userId = userId
	s.chunks = chunks
	s.sends++
	return nil
}

type fixture struct {
	responder *Responder
	sender    *captureSender
	users     storage.UserRepository
	events    storage.EventRepository
	billing   *billing.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, users, events, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		events.Close()
		users.Close()
		catalog.Close()
		backend.Close()
	})

	ctx := context.Background()
	groups, err := catalog.AddGroups(ctx,
		&core.GlassGroup{ExternalId: "G0001", Name: "HOCO A-series", Brands: "HOCO", Active: true},
	)
	require.NoError(t, err)
	glasses, err := catalog.AddGlasses(ctx,
		&core.Glass{GroupId: groups[0].Id, Name: "Samsung A13", Active: true},
		&core.Glass{GroupId: groups[0].Id, Name: "Samsung A13 5G", Active: true},
		&core.Glass{GroupId: groups[0].Id, Name: "Samsung A13 Lite", Active: true},
		&core.Glass{GroupId: groups[0].Id, Name: "Samsung A13s", Active: true},
	)
	require.NoError(t, err)
	_, err = catalog.PutAliases(ctx, &core.GlassAlias{GlassId: glasses[0].Id, Alias: "A13"})
	require.NoError(t, err)

	resolver, err := match.NewResolver(catalog)
	require.NoError(t, err)
	billingService, err := billing.NewService(users)
	require.NoError(t, err)

	sender := &captureSender{}
	responder, err := NewResponder(resolver, render.NewRenderer(render.DefaultConfig()), sender,
		WithUsers(users),
		WithBilling(billingService),
		WithRecorder(analytics.NewRecorder(events)),
	)
	require.NoError(t, err)

	return &fixture{responder: responder, sender: sender, users: users, events: events, billing: billingService}
}

func TestResponder_FreeTierQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := &core.User{TelegramId: 42, Username: "alice"}

	require.NoError(t, f.responder.HandleQuery(ctx, user, "a13"))
	require.Equal(t, 1, f.sender.sends)
	assert.Equal(t, int64(42), f.sender.userId)

	payload := strings.Join(f.sender.chunks, "\n")
	assert.Contains(t, payload, "Samsung A13")
	// Four distinct glasses, free cap is three.
	assert.Contains(t, payload, "+ 1 more")
	assert.Contains(t, payload, "premium")

	// The query created the user profile.
	stored, err := f.users.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)

	events, err := f.events.GetUserEvents(ctx, 42, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, core.EventSearchResult, events[0].Type)
	assert.Equal(t, core.EventSearch, events[1].Type)
}

func TestResponder_PremiumQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := &core.User{TelegramId: 42, Username: "alice"}

	_, err := f.users.UpsertUser(ctx, user)
	require.NoError(t, err)
	require.NoError(t, f.users.SetPremiumUntil(ctx, 42, time.Now().AddDate(0, 1, 0)))

	require.NoError(t, f.responder.HandleQuery(ctx, user, "a13"))
	payload := strings.Join(f.sender.chunks, "\n")
	assert.Contains(t, payload, "Samsung A13s")
	assert.NotContains(t, payload, "more with premium")
	assert.NotContains(t, payload, "Upgrade to premium")
}

func TestResponder_InvalidQuery(t *testing.T) {
	f := newFixture(t)
	user := &core.User{TelegramId: 42}

	err := f.responder.HandleQuery(context.Background(), user, "   ")
	assert.ErrorIs(t, err, ErrInvalidQuery)
	// Rejection happens before any send or event.
	assert.Equal(t, 0, f.sender.sends)
	events, eventsErr := f.events.GetUserEvents(context.Background(), 42, 10)
	require.NoError(t, eventsErr)
	assert.Empty(t, events)
}

func TestResponder_NotFound(t *testing.T) {
	f := newFixture(t)
	user := &core.User{TelegramId: 42}

	require.NoError(t, f.responder.HandleQuery(context.Background(), user, "iPhone 99"))
	require.Equal(t, 1, f.sender.sends)
	payload := strings.Join(f.sender.chunks, "\n")
	assert.Contains(t, payload, `"iPhone 99"`)

	events, err := f.events.GetUserEvents(context.Background(), 42, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "false", events[0].Payload["found"])
}

func TestNewResponder_Validation(t *testing.T) {
	_, err := NewResponder(nil, nil, &captureSender{})
	assert.ErrorIs(t, err, ErrResolverRequired)

	catalog, _, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer catalog.Close()

	resolver, err := match.NewResolver(catalog)
	require.NoError(t, err)
	_, err = NewResponder(resolver, nil, nil)
	assert.ErrorIs(t, err, ErrSenderRequired)
}
