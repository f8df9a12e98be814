package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/sneaker-tracker/internal/catalog"
	"github.com/codyseavey/sneaker-tracker/internal/models"
)

func customShoe(id, name, brand string) models.Shoe {
	return models.Shoe{
		ID:            id,
		Name:          name,
		Brand:         brand,
		PriceHistory:  []models.PricePoint{},
		InventoryMeta: &models.InventoryMeta{Status: models.StatusOwned, AddedAt: testStart},
	}
}

func TestCatalogGetAllMergesInOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := memStore()
	cat, err := NewCatalogService(ctx, catalog.BaseShoes(), store)
	require.NoError(t, err)

	require.NoError(t, cat.AddCustom(ctx, customShoe("custom-2", "B", "Asics")))
	require.NoError(t, cat.AddCustom(ctx, customShoe("custom-1", "A", "Adidas")))

	var ids []string
	for _, s := range cat.GetAll() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"aj1-chicago-2015", "nb-550-white-green", "af1-triple-white", "custom-2", "custom-1"}, ids)
	assert.Equal(t, 5, cat.Count())
}

func TestCatalogFindByID(t *testing.T) {
	ctx := context.Background()
	store, _ := memStore()
	cat, err := NewCatalogService(ctx, catalog.BaseShoes(), store)
	require.NoError(t, err)
	require.NoError(t, cat.AddCustom(ctx, customShoe("custom-1", "A", "Adidas")))

	shoe, err := cat.FindByID("nb-550-white-green")
	require.NoError(t, err)
	assert.Equal(t, "New Balance", shoe.Brand)

	shoe, err = cat.FindByID("custom-1")
	require.NoError(t, err)
	assert.True(t, shoe.IsCustom())

	_, err = cat.FindByID("nonexistent-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogAddCustomPersists(t *testing.T) {
	ctx := context.Background()
	store, mem := memStore()
	cat, err := NewCatalogService(ctx, catalog.BaseShoes(), store)
	require.NoError(t, err)

	require.NoError(t, cat.AddCustom(ctx, customShoe("custom-1", "A", "Adidas")))
	assert.Equal(t, 1, mem.Writes())

	reloaded, err := NewCatalogService(ctx, catalog.BaseShoes(), store)
	require.NoError(t, err)
	require.Len(t, reloaded.Custom(), 1)
	assert.Equal(t, "custom-1", reloaded.Custom()[0].ID)
}

func TestCatalogAddCustomRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	store, mem := memStore()
	cat, err := NewCatalogService(ctx, catalog.BaseShoes(), store)
	require.NoError(t, err)

	err = cat.AddCustom(ctx, customShoe("aj1-chicago-2015", "Fake", "Jordan"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	require.NoError(t, cat.AddCustom(ctx, customShoe("custom-1", "A", "Adidas")))
	err = cat.AddCustom(ctx, customShoe("custom-1", "B", "Asics"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Len(t, cat.Custom(), 1)
	assert.Equal(t, 1, mem.Writes())
}

func TestCatalogAddCustomFailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	store, _ := memStore()
	cat, err := NewCatalogService(ctx, catalog.BaseShoes(), brokenStore{store})
	require.NoError(t, err)

	err = cat.AddCustom(ctx, customShoe("custom-1", "A", "Adidas"))
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, cat.Custom())
	assert.Len(t, cat.GetAll(), 3)
}

func TestCatalogReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store, _ := memStore()
	cat, err := NewCatalogService(ctx, catalog.BaseShoes(), store)
	require.NoError(t, err)

	all := cat.GetAll()
	all[0].Name = "changed"
	all[0].PriceHistory[0].Price = 1

	shoe, err := cat.FindByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Air Jordan 1 Retro High OG 'Chicago'", shoe.Name)
	assert.Equal(t, 850.0, shoe.PriceHistory[0].Price)
}

func TestCatalogBrands(t *testing.T) {
	ctx := context.Background()
	store, _ := memStore()
	cat, err := NewCatalogService(ctx, catalog.BaseShoes(), store)
	require.NoError(t, err)
	require.NoError(t, cat.AddCustom(ctx, customShoe("custom-1", "A", "nike")))
	require.NoError(t, cat.AddCustom(ctx, customShoe("custom-2", "B", "Asics")))

	assert.Equal(t, []string{"Asics", "Jordan", "New Balance", "Nike"}, cat.Brands())
}
