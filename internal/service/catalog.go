package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/util"
)

// PageSize is fixed for the listing page.
const PageSize = 12

type CatalogService struct {
	Repo *repo.GormRepo
}

type ProductPage struct {
	Products []models.Product
	Page     int
	Size     int
	Total    int64
	HasNext  bool
	HasPrev  bool
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

// ListProducts pages the catalog, newest first. An empty query matches all
// products; a non-positive page normalizes to 1.
func (s *CatalogService) ListProducts(ctx context.Context, q string, page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	offset, limit := util.Calculate(page, PageSize)

	total, items, err := s.Repo.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products: items,
		Page:     page,
		Size:     limit,
		Total:    total,
		HasNext:  int64(offset+limit) < total,
		HasPrev:  page > 1,
	}, nil
}
