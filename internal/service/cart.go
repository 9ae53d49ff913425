package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

// MaxQuantityPerRequest bounds a single add. Accumulated quantity is not
// capped; the int column makes overflow unreachable in practice.
const MaxQuantityPerRequest = 1_000_000

type CartService struct {
	Repo *repo.GormRepo
}

type CartSnapshot struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// ResolveCart maps an authenticated identity to its cart, creating the cart
// on first touch. A missing user record behind a valid session is surfaced
// as ErrUserNotFound, not recovered.
func (s *CartService) ResolveCart(ctx context.Context, email string) (*models.Cart, error) {
	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user record for %q: %w", email, ErrUserNotFound)
		}
		return nil, err
	}

	cart, err := s.Repo.FindCartByUser(ctx, user.ID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.Repo.CreateCart(ctx, user.ID)
}

func (s *CartService) GetCart(ctx context.Context, cartID string) (*CartSnapshot, error) {
	items, err := s.Repo.ListItemsWithProduct(ctx, cartID)
	if err != nil {
		return nil, err
	}

	snap := &CartSnapshot{Items: items}
	for _, it := range items {
		snap.Total += float64(it.Quantity) * it.Product.Price
	}
	return snap, nil
}

// AddItem merges on duplicate: repeat adds of the same product increment the
// existing row instead of creating a second one.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*models.CartItem, error) {
	var fields []FieldViolation
	if productID == "" {
		fields = append(fields, FieldViolation{Field: "productId", Message: "Product ID is required"})
	}
	if quantity < 1 {
		fields = append(fields, FieldViolation{Field: "quantity", Message: "quantity must be a positive integer"})
	} else if quantity > MaxQuantityPerRequest {
		fields = append(fields, FieldViolation{Field: "quantity", Message: "quantity exceeds the per-request limit"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.UpsertItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes the item outright. Removing an absent item reports
// ErrItemNotFound rather than succeeding silently.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) error {
	if productID == "" {
		return &ValidationError{Fields: []FieldViolation{
			{Field: "productId", Message: "Product ID is required"},
		}}
	}

	deleted, err := s.Repo.DeleteItem(ctx, cartID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("product %s not in cart: %w", productID, ErrItemNotFound)
	}
	return nil
}
