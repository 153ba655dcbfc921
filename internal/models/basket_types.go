package models

import "time"

// Basket defines the struct for the 'baskets' table. Each customer has
// at most one basket; it is created lazily on the first item add.
type Basket struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// BasketItem defines the struct for the 'basket_items' table.
type BasketItem struct {
	ID        int64     `json:"id" db:"id"`
	BasketID  int64     `json:"basketId" db:"basket_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// BasketItemView is one basket line resolved against the current
// catalog for display.
type BasketItemView struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     int64   `json:"price"`
	Photo     *string `json:"photo,omitempty"`
	Quantity  int     `json:"quantity"`
	LineTotal int64   `json:"lineTotal"`
}

// BasketView is the full display form of a basket. Total is computed
// live from current prices, never persisted. ShopID/ShopName are zero
// for an empty basket.
type BasketView struct {
	ShopID     int64            `json:"shopId,omitempty"`
	ShopName   string           `json:"shopName,omitempty"`
	Items      []BasketItemView `json:"items"`
	Total      int64            `json:"total"`
	TotalItems int              `json:"totalItems"`
}
