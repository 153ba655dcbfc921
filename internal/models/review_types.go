package models

import "time"

// Review is customer feedback tied 1:1 to a completed order. The shop
// association is derived from the order at creation time and feeds the
// shop's aggregate rating.
type Review struct {
	ID         int64     `json:"id" db:"id"`
	OrderID    int64     `json:"orderId" db:"order_id"`
	ShopID     int64     `json:"shopId" db:"shop_id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	Rating     int       `json:"rating" db:"rating"`
	ShortText  string    `json:"shortText" db:"short_text"`
	LongText   string    `json:"longText" db:"long_text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (not columns, populated manually)
	CustomerName    string `json:"customerName,omitempty" db:"-"`
	CustomerSurname string `json:"customerSurname,omitempty" db:"-"`
}
