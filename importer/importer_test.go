package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/glassmatch/core"
	"github.com/poiesic/glassmatch/storage"
	"github.com/poiesic/glassmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `external_id,group_name,brands,description,glass_name,aliases
G0001,HOCO A-series,HOCO,Tempered 2.5D,Samsung A13,a13|galaxy a13
G0001,HOCO A-series,HOCO,Tempered 2.5D,Samsung A13 5G,a13 5g
G0002,Universal 6.1,"Shared, Budget",Fits most 6.1-inch phones,Universal 6.1,
`

func newImporter(t *testing.T) (*Importer, storage.CatalogRepository) {
	t.Helper()
	catalog, _, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		catalog.Close()
		backend.Close()
	})

	imp, err := NewImporter(catalog, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(imp.Release)
	return imp, catalog
}

func TestImporter_ImportCSV(t *testing.T) {
	imp, catalog := newImporter(t)
	ctx := context.Background()

	stats, err := imp.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GroupsCreated)
	assert.Equal(t, 3, stats.GlassesCreated)
	assert.Equal(t, 3, stats.AliasesWritten)

	group, err := catalog.GetGroupByExternalId(ctx, "G0001")
	require.NoError(t, err)
	assert.Equal(t, "HOCO A-series", group.Name)
	assert.True(t, group.Active)

	glasses, err := catalog.GetGroupGlasses(ctx, group.Id)
	require.NoError(t, err)
	require.Len(t, glasses, 2)

	glass, err := catalog.FindGlassByName(ctx, group.Id, "Samsung A13")
	require.NoError(t, err)
	aliases, err := catalog.GetGlassAliases(ctx, glass.Id)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	for _, a := range aliases {
		assert.Equal(t, core.Normalize(a.Alias), a.NormalizedAlias)
	}
}

func TestImporter_Reimport(t *testing.T) {
	imp, catalog := newImporter(t)
	ctx := context.Background()

	_, err := imp.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Re-importing the same file creates nothing new.
	stats, err := imp.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.GroupsCreated)
	assert.Equal(t, 0, stats.GroupsUpdated)
	assert.Equal(t, 0, stats.GlassesCreated)

	// A changed description updates the group in place.
	updated := strings.Replace(sampleCSV, "Tempered 2.5D", "Tempered 3D", 2)
	stats, err = imp.ImportCSV(ctx, strings.NewReader(updated))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.GroupsCreated)
	assert.Equal(t, 1, stats.GroupsUpdated)

	group, err := catalog.GetGroupByExternalId(ctx, "G0001")
	require.NoError(t, err)
	assert.Equal(t, "Tempered 3D", group.Description)
}

func TestImporter_MissingColumns(t *testing.T) {
	imp, _ := newImporter(t)

	_, err := imp.ImportCSV(context.Background(), strings.NewReader("external_id,name\nG1,x\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestImporter_BadRow(t *testing.T) {
	imp, _ := newImporter(t)

	csv := "external_id,group_name,glass_name\nG0001,,Samsung A13\n"
	_, err := imp.ImportCSV(context.Background(), strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrBadRow)
}

func TestImporter_BOMHeader(t *testing.T) {
	imp, _ := newImporter(t)

	csv := "\ufeffexternal_id,group_name,glass_name\nG0001,Group,Glass\n"
	stats, err := imp.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GroupsCreated)
}
