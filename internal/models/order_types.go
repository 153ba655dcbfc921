package models

import "time"

// OrderStatus is the fixed lifecycle enumeration for orders.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in-progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known status values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ActorKind identifies which side of the marketplace a verified
// identity belongs to. It is carried in the JWT and attached to the
// request context by the auth middleware.
type ActorKind string

const (
	ActorCustomer ActorKind = "customer"
	ActorShop     ActorKind = "shop"
)

// Actor is a server-verified identity passed explicitly into workflow
// operations.
type Actor struct {
	ID   int64
	Kind ActorKind
}

// TransitionAllowed is the order state machine:
// pending -> in-progress -> completed, plus pending -> cancelled.
// An in-progress order cannot be cancelled; that is deliberate policy,
// carried over from the original business rules.
func TransitionAllowed(from, to OrderStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusCancelled
	case StatusInProgress:
		return to == StatusCompleted
	}
	return false
}

// SettableBy reports whether an actor of the given kind may ever set
// the target status: shops progress orders (in-progress, completed),
// customers may only cancel.
func SettableBy(kind ActorKind, to OrderStatus) bool {
	switch kind {
	case ActorShop:
		return to == StatusInProgress || to == StatusCompleted
	case ActorCustomer:
		return to == StatusCancelled
	}
	return false
}

// Order is an immutable snapshot of a basket at purchase time.
// Only Status, CompletionTime and UpdatedAt change after creation.
type Order struct {
	ID              int64       `json:"id" db:"id"`
	CustomerID      int64       `json:"customerId" db:"customer_id"`
	ShopID          int64       `json:"shopId" db:"shop_id"`
	DeliveryAddress string      `json:"deliveryAddress" db:"delivery_address"`
	TotalCost       int64       `json:"totalCost" db:"total_cost"`
	Status          OrderStatus `json:"status" db:"status"`
	CompletionTime  *string     `json:"completionTime,omitempty" db:"completion_time"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`

	// Joins (not columns, populated manually)
	Items        []OrderItem `json:"items,omitempty" db:"-"`
	ShopName     string      `json:"shopName,omitempty" db:"-"`
	CustomerName string      `json:"customerName,omitempty" db:"-"`
}

// OrderItem is one snapshotted line of an order. Name and UnitPrice
// are copied from the product at order time so later catalog edits or
// deletions do not rewrite history.
type OrderItem struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"orderId" db:"order_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice int64     `json:"unitPrice" db:"unit_price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OrderTotal sums unit price times quantity over the given items.
func OrderTotal(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// OrderFilter narrows order listings by status and/or creation date.
type OrderFilter struct {
	Status *OrderStatus
	From   *time.Time
	To     *time.Time
}
