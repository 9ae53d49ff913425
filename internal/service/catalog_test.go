package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

func newTestCatalogService(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	db := initTestDB(t)
	return &CatalogService{Repo: &repo.GormRepo{DB: db}}, db
}

func seedCatalog(t *testing.T, db *gorm.DB, n int, name func(i int) string, desc func(i int) string) []models.Product {
	t.Helper()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		p := models.Product{
			Name:        name(i),
			Description: desc(i),
			Price:       float64(i) + 0.99,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&p).Error)
		out = append(out, p)
	}
	return out
}

func TestCatalogService_ListProducts_PagesCoverAllWithoutOverlap(t *testing.T) {
	svc, db := newTestCatalogService(t)
	ctx := context.Background()

	const total = 30
	seedCatalog(t, db, total,
		func(i int) string { return fmt.Sprintf("product %02d", i) },
		func(i int) string { return "plain description" },
	)

	seen := make(map[string]bool)
	page := 1
	for {
		res, err := svc.ListProducts(ctx, "", page)
		require.NoError(t, err)
		require.EqualValues(t, total, res.Total)

		for _, p := range res.Products {
			require.False(t, seen[p.ID], "product %s appeared on two pages", p.ID)
			seen[p.ID] = true
		}

		if !res.HasNext {
			break
		}
		require.Len(t, res.Products, PageSize)
		page++
	}

	assert.Len(t, seen, total)
	assert.Equal(t, 3, page)
}

func TestCatalogService_ListProducts_NewestFirst(t *testing.T) {
	svc, db := newTestCatalogService(t)
	ctx := context.Background()

	products := seedCatalog(t, db, 5,
		func(i int) string { return fmt.Sprintf("product %d", i) },
		func(i int) string { return "plain description" },
	)

	res, err := svc.ListProducts(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, res.Products, 5)

	// seeded in ascending creation order, listed newest first
	assert.Equal(t, products[4].ID, res.Products[0].ID)
	assert.Equal(t, products[0].ID, res.Products[4].ID)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrev)
}

func TestCatalogService_ListProducts_CaseInsensitiveSubstring(t *testing.T) {
	svc, db := newTestCatalogService(t)
	ctx := context.Background()

	seedCatalog(t, db, 3,
		func(i int) string { return fmt.Sprintf("Running Shoe %d", i) },
		func(i int) string { return "footwear" },
	)
	seedCatalog(t, db, 2,
		func(i int) string { return fmt.Sprintf("Hat %d", i) },
		func(i int) string { return "SHOEmaker special" },
	)
	seedCatalog(t, db, 4,
		func(i int) string { return fmt.Sprintf("Sock %d", i) },
		func(i int) string { return "plain" },
	)

	res, err := svc.ListProducts(ctx, "shoe", 1)
	require.NoError(t, err)

	// matches in name OR description, any case
	require.EqualValues(t, 5, res.Total)
	require.Len(t, res.Products, 5)
	assert.False(t, res.HasNext)
}

func TestCatalogService_ListProducts_EmptyQueryMatchesAll(t *testing.T) {
	svc, db := newTestCatalogService(t)
	ctx := context.Background()

	seedCatalog(t, db, 13,
		func(i int) string { return fmt.Sprintf("product %02d", i) },
		func(i int) string { return "plain" },
	)

	res, err := svc.ListProducts(ctx, "", 1)
	require.NoError(t, err)
	require.EqualValues(t, 13, res.Total)
	assert.Len(t, res.Products, PageSize)
	assert.True(t, res.HasNext)

	res, err = svc.ListProducts(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, res.Products, 1)
	assert.False(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestCatalogService_ListProducts_PageNormalization(t *testing.T) {
	svc, db := newTestCatalogService(t)
	ctx := context.Background()

	seedCatalog(t, db, 3,
		func(i int) string { return fmt.Sprintf("product %d", i) },
		func(i int) string { return "plain" },
	)

	for _, page := range []int{0, -5} {
		res, err := svc.ListProducts(ctx, "", page)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Len(t, res.Products, 3)
	}
}

func TestCatalogService_ListProducts_HasNextExactBoundary(t *testing.T) {
	svc, db := newTestCatalogService(t)
	ctx := context.Background()

	// exactly two full pages: has_next true on page 1, false on page 2
	seedCatalog(t, db, PageSize*2,
		func(i int) string { return fmt.Sprintf("product %02d", i) },
		func(i int) string { return "plain" },
	)

	res, err := svc.ListProducts(ctx, "", 1)
	require.NoError(t, err)
	assert.True(t, res.HasNext)

	res, err = svc.ListProducts(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, res.Products, PageSize)
	assert.False(t, res.HasNext)

	res, err = svc.ListProducts(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, res.Products, 0)
	assert.False(t, res.HasNext)
}
