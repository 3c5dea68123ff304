package badger

import (
	"context"
	"testing"

	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) storage.CatalogRepository {
	t.Helper()
	catalogRepo, userRepo, eventRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		eventRepo.Close()
		userRepo.Close()
		catalogRepo.Close()
		backend.Close()
	})
	return catalogRepo
}

func TestCatalogRepository_Groups(t *testing.T) {
	repo := newTestCatalog(t)
	ctx := context.Background()

	t.Run("add assigns ids and timestamps", func(t *testing.T) {
		groups, err := repo.AddGroups(ctx,
			&core.GlassGroup{ExternalId: "G0001", Name: "Universal 6.1", Active: true},
			&core.GlassGroup{Name: "iPhone 13 family", Active: true},
		)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.NotZero(t, groups[0].Id)
		assert.NotZero(t, groups[1].Id)
		assert.NotEqual(t, groups[0].Id, groups[1].Id)
		assert.False(t, groups[0].CreatedAt.IsZero())
	})

	t.Run("get by external id", func(t *testing.T) {
		group, err := repo.GetGroupByExternalId(ctx, "G0001")
		require.NoError(t, err)
		assert.Equal(t, "Universal 6.1", group.Name)

		_, err = repo.GetGroupByExternalId(ctx, "G9999")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("validation rejects empty name", func(t *testing.T) {
		_, err := repo.AddGroups(ctx, &core.GlassGroup{})
		assert.ErrorIs(t, err, core.ErrEmptyGroupName)
	})

	t.Run("update missing group", func(t *testing.T) {
		_, err := repo.UpdateGroups(ctx, &core.GlassGroup{Id: 424242, Name: "nope"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCatalogRepository_GetActiveGroups(t *testing.T) {
	repo := newTestCatalog(t)
	ctx := context.Background()

	groups, err := repo.AddGroups(ctx,
		&core.GlassGroup{Name: "active", Active: true},
		&core.GlassGroup{Name: "inactive", Active: false},
	)
	require.NoError(t, err)

	got, err := repo.GetActiveGroups(ctx, groups[0].Id, groups[1].Id, 999)
	require.NoError(t, err)
	// Inactive and missing groups are silently absent.
	require.Len(t, got, 1)
	assert.Equal(t, "active", got[0].Name)
}

func TestCatalogRepository_Aliases(t *testing.T) {
	repo := newTestCatalog(t)
	ctx := context.Background()

	groups, err := repo.AddGroups(ctx, &core.GlassGroup{Name: "G", Active: true})
	require.NoError(t, err)
	glasses, err := repo.AddGlasses(ctx, &core.Glass{GroupId: groups[0].Id, Name: "A13", Active: true})
	require.NoError(t, err)

	t.Run("normalized form recomputed on write", func(t *testing.T) {
		aliases, err := repo.PutAliases(ctx, &core.GlassAlias{
			GlassId: glasses[0].Id,
			Alias:   "  Samsung   A13 ",
		})
		require.NoError(t, err)
		assert.Equal(t, "samsung a13", aliases[0].NormalizedAlias)
		assert.NotZero(t, aliases[0].Id)
	})

	t.Run("same content overwrites in place", func(t *testing.T) {
		_, err := repo.PutAliases(ctx, &core.GlassAlias{GlassId: glasses[0].Id, Alias: "  Samsung   A13 "})
		require.NoError(t, err)

		stored, err := repo.GetGlassAliases(ctx, glasses[0].Id)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("iterate visits every alias", func(t *testing.T) {
		_, err := repo.PutAliases(ctx, &core.GlassAlias{GlassId: glasses[0].Id, Alias: "a13 5g"})
		require.NoError(t, err)

		var count int
		err = repo.IterateAliases(ctx, func(alias *core.GlassAlias) error {
			count++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestCatalogRepository_ActiveCorpus(t *testing.T) {
	repo := newTestCatalog(t)
	ctx := context.Background()

	groups, err := repo.AddGroups(ctx,
		&core.GlassGroup{Name: "live", Active: true},
		&core.GlassGroup{Name: "dead", Active: false},
	)
	require.NoError(t, err)
	live, dead := groups[0], groups[1]

	glasses, err := repo.AddGlasses(ctx,
		&core.Glass{GroupId: live.Id, Name: "B glass", Active: true},
		&core.Glass{GroupId: live.Id, Name: "A glass", Active: true},
		&core.Glass{GroupId: live.Id, Name: "hidden", Active: false},
		&core.Glass{GroupId: dead.Id, Name: "orphan", Active: true},
	)
	require.NoError(t, err)

	_, err = repo.PutAliases(ctx,
		&core.GlassAlias{GlassId: glasses[0].Id, Alias: "b1"},
		&core.GlassAlias{GlassId: glasses[2].Id, Alias: "ghost"},
		&core.GlassAlias{GlassId: glasses[3].Id, Alias: "orphaned"},
	)
	require.NoError(t, err)

	corpus, err := repo.ActiveCorpus(ctx)
	require.NoError(t, err)

	// Inactive glass and inactive group excluded entirely.
	require.Len(t, corpus.Glasses, 2)
	assert.Equal(t, "A glass", corpus.Glasses[0].Name)
	assert.Equal(t, "B glass", corpus.Glasses[1].Name)

	require.Len(t, corpus.Aliases, 1)
	assert.Equal(t, "b1", corpus.Aliases[0].Normalized)
	assert.Equal(t, "B glass", corpus.Aliases[0].GlassName)
	assert.Equal(t, live.Id, corpus.Aliases[0].GroupId)
}
