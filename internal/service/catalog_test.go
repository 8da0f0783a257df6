package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/repo"
)

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	cat := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(cat).Error)
	return cat
}

func seedCatalog(t *testing.T, db *gorm.DB) (vinyl, cd *models.Category, a, b, c *models.Product) {
	t.Helper()

	vinyl = seedCategory(t, db, "Vinyl", "vinyl")
	cd = seedCategory(t, db, "CD", "cd")

	a = seedProduct(t, db, "Abbey Road", "45.00")
	b = seedProduct(t, db, "Blue Train", "30.00")
	c = seedProduct(t, db, "Charade", "20.00")

	require.NoError(t, db.Model(a).Association("Categories").Append(vinyl))
	require.NoError(t, db.Model(b).Association("Categories").Append(vinyl, cd))
	require.NoError(t, db.Model(c).Association("Categories").Append(cd))
	return
}

func newCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{Repo: &repo.GormRepo{DB: db}}
}

func TestCatalogService_ListProducts_FullCatalogOrderedByName(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	seedCatalog(t, db)
	svc := newCatalogService(db)

	items, err := svc.ListProducts(context.Background(), nil, "")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "Abbey Road", items[0].Name)
	assert.Equal(t, "Blue Train", items[1].Name)
	assert.Equal(t, "Charade", items[2].Name)
}

func TestCatalogService_ListProducts_ByCategorySlug(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	seedCatalog(t, db)
	svc := newCatalogService(db)

	items, err := svc.ListProducts(context.Background(), nil, "vinyl")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Abbey Road", items[0].Name)
	assert.Equal(t, "Blue Train", items[1].Name)
	require.NotEmpty(t, items[0].Categories, "category associations must be resolved")
}

func TestCatalogService_ListProducts_UnknownSlugIsEmptyNotError(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	seedCatalog(t, db)
	svc := newCatalogService(db)

	items, err := svc.ListProducts(context.Background(), nil, "vinyl-raro")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCatalogService_ListProducts_IdsTakePrecedenceOverCategory(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	_, _, _, _, c := seedCatalog(t, db)
	svc := newCatalogService(db)

	items, err := svc.ListProducts(context.Background(), []uint{c.ID}, "vinyl")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, c.ID, items[0].ID)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	vinyl := seedCategory(t, db, "Vinyl", "vinyl")
	svc := newCatalogService(db)

	prod, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "Kind of Blue",
		Description: "1959 studio album by Miles Davis.",
		Price:       decimal.RequireFromString("55.00"),
		Cover:       "/covers/kind-of-blue.jpg",
		CategoryIDs: []uint{vinyl.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, prod.ID)
	require.Len(t, prod.Categories, 1)
	assert.Equal(t, "vinyl", prod.Categories[0].Slug)
}

func TestCatalogService_CreateProduct_DuplicateNameConflicts(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	seedProduct(t, db, "Kind of Blue", "55.00")
	svc := newCatalogService(db)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "KIND OF BLUE",
		Price: decimal.RequireFromString("60.00"),
		Cover: "/covers/x.jpg",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict, "name match is case-insensitive")
}

func TestCatalogService_CreateProduct_NonPositivePrice(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "Freebie",
		Price: decimal.Zero,
		Cover: "/covers/freebie.jpg",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_PatchProduct(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	prod := seedProduct(t, db, "Old Name", "10.00")
	svc := newCatalogService(db)

	newName := "New Name"
	newPrice := decimal.RequireFromString("12.50")
	updated, err := svc.PatchProduct(context.Background(), prod.ID, PatchProductInput{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, prod.Cover, updated.Cover, "untouched fields survive a patch")
}

func TestCatalogService_GetProduct_Missing(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.GetProduct(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_DeleteProduct_Missing(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	svc := newCatalogService(db)

	err := svc.DeleteProduct(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
