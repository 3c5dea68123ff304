package glassmatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/glassmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.CatalogRepository())
		assert.NotNil(t, db.UserRepository())
		assert.NotNil(t, db.EventRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("in-memory", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemory())
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.NoError(t, db.Close())
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create resolver", func(t *testing.T) {
		resolver, err := db.NewResolver()
		require.NoError(t, err)
		require.NotNil(t, resolver)
	})

	t.Run("can create billing service", func(t *testing.T) {
		service, err := db.NewBillingService()
		require.NoError(t, err)
		require.NotNil(t, service)
	})

	t.Run("can create recorder", func(t *testing.T) {
		require.NotNil(t, db.NewRecorder())
	})

	t.Run("can create importer", func(t *testing.T) {
		imp, err := db.NewImporter()
		require.NoError(t, err)
		require.NotNil(t, imp)
		imp.Release()
	})

	t.Run("can create renormalizer", func(t *testing.T) {
		renorm, err := db.NewRenormalizer()
		require.NoError(t, err)
		require.NotNil(t, renorm)
	})
}

func TestDatabase_EndToEnd(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	catalog := db.CatalogRepository()

	groups, err := catalog.AddGroups(ctx,
		&core.GlassGroup{ExternalId: "G0001", Name: "HOCO A-series", Brands: "HOCO", Active: true},
	)
	require.NoError(t, err)
	glasses, err := catalog.AddGlasses(ctx,
		&core.Glass{GroupId: groups[0].Id, Name: "Samsung A13", Active: true},
	)
	require.NoError(t, err)
	_, err = catalog.PutAliases(ctx, &core.GlassAlias{GlassId: glasses[0].Id, Alias: "A13"})
	require.NoError(t, err)

	resolver, err := db.NewResolver()
	require.NoError(t, err)

	response, err := resolver.Resolve(ctx, "a13")
	require.NoError(t, err)
	require.True(t, response.Found)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "Samsung A13", response.Results[0].MatchedName)
}
