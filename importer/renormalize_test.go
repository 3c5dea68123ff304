package importer

import (
	"bytes"
	"context"
	"testing"

	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenormalizer_Run(t *testing.T) {
	catalog, _, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer catalog.Close()

	ctx := context.Background()
	groups, err := catalog.AddGroups(ctx, &core.GlassGroup{Name: "G", Active: true})
	require.NoError(t, err)
	glasses, err := catalog.AddGlasses(ctx, &core.Glass{GroupId: groups[0].Id, Name: "Samsung A13", Active: true})
	require.NoError(t, err)

	_, err = catalog.PutAliases(ctx,
		&core.GlassAlias{GlassId: glasses[0].Id, Alias: "  Galaxy   A13 "},
		&core.GlassAlias{GlassId: glasses[0].Id, Alias: "A13"},
	)
	require.NoError(t, err)

	var out bytes.Buffer
	renorm, err := NewRenormalizer(catalog,
		WithBatchSize(1),
		WithProgress(NewProgress(&out, 1)),
	)
	require.NoError(t, err)

	processed, err := renorm.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Contains(t, out.String(), "Processed: 2 aliases")

	aliases, err := catalog.GetGlassAliases(ctx, glasses[0].Id)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	for _, a := range aliases {
		assert.Equal(t, core.Normalize(a.Alias), a.NormalizedAlias)
	}
}

func TestNewRenormalizer_NilCatalog(t *testing.T) {
	_, err := NewRenormalizer(nil)
	assert.ErrorIs(t, err, ErrCatalogRequired)
}
