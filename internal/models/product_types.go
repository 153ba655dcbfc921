package models

import "time"

// Product is the model for the 'products' table. Price is in integer
// currency units.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	ShopID      int64   `json:"shopId" db:"shop_id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Price       int64   `json:"price" db:"price"`
	Photo       *string `json:"photo,omitempty" db:"photo"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (not columns, populated manually)
	ShopName string `json:"shopName,omitempty" db:"-"`
}
