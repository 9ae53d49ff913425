package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID    string `gorm:"primaryKey"            json:"id"`
	Email string `gorm:"uniqueIndex;not null"  json:"email"`
	Name  string `json:"name"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Cart is created lazily on the first authenticated cart interaction.
// The unique index on user_id keeps concurrent first touches from
// producing two carts for one user.
type Cart struct {
	ID     string `gorm:"primaryKey"            json:"id"`
	UserID string `gorm:"uniqueIndex;not null"  json:"user_id"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CartItem struct {
	ID        string  `gorm:"primaryKey"                             json:"id"`
	CartID    string  `gorm:"uniqueIndex:idx_cart_product;not null"  json:"cart_id"`
	ProductID string  `gorm:"uniqueIndex:idx_cart_product;not null"  json:"product_id"`
	Quantity  int     `gorm:"default:1;check:quantity>0"             json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID"     json:"product"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Product struct {
	ID          string    `gorm:"primaryKey"  json:"id"`
	Name        string    `gorm:"not null"    json:"name"`
	Description string    `gorm:"not null"    json:"description"`
	Price       float64   `gorm:"not null"    json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `gorm:"index"       json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
