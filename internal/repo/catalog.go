package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts runs the page query and the count query with the same
// predicate. The two must never diverge or pagination becomes inconsistent.
// Ordering is newest first with id as the stable tiebreak so pages neither
// overlap nor skip rows when creation timestamps collide.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	const match = "LOWER(name) LIKE ? OR LOWER(description) LIKE ?"

	pageQ := r.DB.WithContext(ctx).Model(&models.Product{})
	countQ := r.DB.WithContext(ctx).Model(&models.Product{})
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		pageQ = pageQ.Where(match, pattern, pattern)
		countQ = countQ.Where(match, pattern, pattern)
	}

	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := pageQ.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}
