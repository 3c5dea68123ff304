package storage

import (
	"context"
	"time"

	"github.com/poiesic/glassmatch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CatalogRepository provides operations for managing glass groups, glasses,
// and aliases, and exposes the read-only corpus snapshot the match pipeline
// consumes.
type CatalogRepository interface {
	Repository

	// AddGroups adds one or more glass groups to storage.
	// For groups with ID=0, generates new IDs from sequence.
	// Sets CreatedAt if not already set.
	AddGroups(ctx context.Context, groups ...*core.GlassGroup) ([]*core.GlassGroup, error)

	// UpdateGroups updates existing groups.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any group doesn't exist.
	UpdateGroups(ctx context.Context, groups ...*core.GlassGroup) ([]*core.GlassGroup, error)

	// GetGroup retrieves a single group by ID.
	// Returns ErrNotFound if the group doesn't exist.
	GetGroup(ctx context.Context, id core.ID) (*core.GlassGroup, error)

	// GetGroupByExternalId retrieves a group by its spreadsheet key.
	// Returns ErrNotFound if no group carries the key.
	GetGroupByExternalId(ctx context.Context, externalId string) (*core.GlassGroup, error)

	// GetActiveGroups retrieves the active groups among the given IDs.
	// Inactive or missing groups are simply absent from the result, in the
	// order of the surviving input IDs. This is the group metadata provider
	// for ranking.
	GetActiveGroups(ctx context.Context, ids ...core.ID) ([]*core.GlassGroup, error)

	// AddGlasses adds one or more glasses to storage.
	// For glasses with ID=0, generates new IDs from sequence.
	AddGlasses(ctx context.Context, glasses ...*core.Glass) ([]*core.Glass, error)

	// UpdateGlasses updates existing glasses.
	// Returns ErrNotFound if any glass doesn't exist.
	UpdateGlasses(ctx context.Context, glasses ...*core.Glass) ([]*core.Glass, error)

	// GetGlass retrieves a single glass by ID.
	// Returns ErrNotFound if the glass doesn't exist.
	GetGlass(ctx context.Context, id core.ID) (*core.Glass, error)

	// GetGroupGlasses retrieves all glasses belonging to a group.
	GetGroupGlasses(ctx context.Context, groupId core.ID) ([]*core.Glass, error)

	// FindGlassByName finds a glass by exact name within a group.
	// Returns ErrNotFound if no glass matches.
	FindGlassByName(ctx context.Context, groupId core.ID, name string) (*core.Glass, error)

	// PutAliases writes aliases for a glass. Alias IDs are content-based and
	// NormalizedAlias is recomputed on every write. Existing aliases with the
	// same content are overwritten in place.
	PutAliases(ctx context.Context, aliases ...*core.GlassAlias) ([]*core.GlassAlias, error)

	// GetGlassAliases retrieves all aliases of a glass.
	GetGlassAliases(ctx context.Context, glassId core.ID) ([]*core.GlassAlias, error)

	// IterateAliases calls fn for every stored alias. Used by batch
	// renormalization. Iteration stops at the first error.
	IterateAliases(ctx context.Context, fn func(alias *core.GlassAlias) error) error

	// ActiveCorpus returns the snapshot of active aliases and glasses
	// (filtered to active groups only) that the matcher scans. Glass entries
	// are ordered by group then name so per-group item lists come out
	// name-ordered.
	ActiveCorpus(ctx context.Context) (*core.Corpus, error)
}

// UserRepository provides operations for bot users and their payments.
type UserRepository interface {
	Repository

	// UpsertUser creates the user or refreshes its profile fields.
	// PremiumUntil is preserved on update. Returns the stored user.
	UpsertUser(ctx context.Context, user *core.User) (*core.User, error)

	// GetUser retrieves a user by Telegram ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetUser(ctx context.Context, telegramId int64) (*core.User, error)

	// SetPremiumUntil updates a user's premium expiry.
	// Returns ErrNotFound if the user doesn't exist.
	SetPremiumUntil(ctx context.Context, telegramId int64, until time.Time) error

	// AddPayment records a received payment, keyed by charge ID.
	AddPayment(ctx context.Context, payment *core.StarPayment) error

	// GetPayment retrieves a payment by charge ID.
	// Returns ErrNotFound if the payment doesn't exist.
	GetPayment(ctx context.Context, chargeId string) (*core.StarPayment, error)
}

// EventRepository provides append-oriented storage for analytics events.
type EventRepository interface {
	Repository

	// AddEvents appends one or more events. For events with ID=0, generates
	// new IDs from sequence and stamps CreatedAt if not already set.
	AddEvents(ctx context.Context, events ...*core.BotEvent) ([]*core.BotEvent, error)

	// GetRecentEvents retrieves the N most recent events, newest first.
	GetRecentEvents(ctx context.Context, limit int) ([]*core.BotEvent, error)

	// GetUserEvents retrieves the N most recent events of one user, newest first.
	GetUserEvents(ctx context.Context, userId int64, limit int) ([]*core.BotEvent, error)
}
