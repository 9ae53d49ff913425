package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) FindCartByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart inserts the user's cart, tolerating a concurrent first touch:
// the insert is DO NOTHING on the user_id unique index, and the row that
// actually won is read back.
func (r *GormRepo) CreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return nil, err
		}
	}
	return &cart, nil
}

func (r *GormRepo) FindItem(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertItem is the single atomic insert-or-increment for the
// (cart_id, product_id) pair. Concurrent adds for the same pair serialize
// on the composite unique index instead of racing a read-then-write.
// On return item holds the merged row with its product preloaded.
func (r *GormRepo) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Product").Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(item).Error; err != nil {
			return err
		}
		// read into a fresh value: on the merge path the stored row keeps
		// its original id, not the one generated for this insert attempt
		var merged models.CartItem
		if err := tx.Preload("Product").
			Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).
			First(&merged).Error; err != nil {
			return err
		}
		*item = merged
		return nil
	})
}

func (r *GormRepo) DeleteItem(ctx context.Context, cartID, productID string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) ListItemsWithProduct(ctx context.Context, cartID string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.DB.WithContext(ctx).Preload("Product").
		Where("cart_id = ?", cartID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
