package store

import (
	"context"

	"github.com/dkorolev/petalmarket/internal/models"
)

// Storage is the persistence boundary for the whole marketplace. The
// basket, order and review operations are logically atomic: every rule
// they enforce (single-shop baskets, the order status machine, the
// one-review-per-order gate) holds under concurrent calls against the
// same basket or order. Implementations return the sentinel errors
// from the models package for domain failures.
type Storage interface {
	// Customers
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error

	// Shops
	CreateShop(ctx context.Context, shop *models.Shop) error
	GetShopByEmail(ctx context.Context, email string) (*models.Shop, error)
	GetShopByID(ctx context.Context, id int64) (*models.Shop, error)
	GetShopProfile(ctx context.Context, id int64) (*models.Shop, error)
	ListShops(ctx context.Context, filter models.ShopFilter) ([]models.Shop, error)
	UpdateShop(ctx context.Context, shop *models.Shop) error
	DeleteShop(ctx context.Context, id int64) error

	// Products
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByShop(ctx context.Context, shopID int64) ([]models.Product, error)
	UpdateProduct(ctx context.Context, shopID int64, product *models.Product) error
	DeleteProduct(ctx context.Context, shopID, productID int64) error

	// Basket
	AddBasketItem(ctx context.Context, customerID, productID int64, quantity int) error
	UpdateBasketItem(ctx context.Context, customerID, productID int64, quantity int) error
	RemoveBasketItem(ctx context.Context, customerID, productID int64) error
	ClearBasket(ctx context.Context, customerID int64) error
	GetBasket(ctx context.Context, customerID int64) (*models.BasketView, error)

	// Orders
	PlaceOrder(ctx context.Context, customerID int64, deliveryAddress string) (*models.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)
	TransitionOrderStatus(ctx context.Context, orderID int64, actor models.Actor, newStatus models.OrderStatus) error
	SetCompletionTime(ctx context.Context, orderID, shopID int64, text string) error
	ListOrdersForCustomer(ctx context.Context, customerID int64, filter models.OrderFilter) ([]models.Order, error)
	ListOrdersForShop(ctx context.Context, shopID int64, filter models.OrderFilter) ([]models.Order, error)

	// Reviews
	CreateReview(ctx context.Context, customerID, orderID int64, rating int, shortText, longText string) (*models.Review, error)
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	ListReviewsByShop(ctx context.Context, shopID int64) ([]models.Review, error)
	UpdateReview(ctx context.Context, customerID, reviewID int64, rating int, shortText, longText string) (*models.Review, error)
	DeleteReview(ctx context.Context, customerID, reviewID int64) error
	ShopRating(ctx context.Context, shopID int64) (models.RatingSummary, error)
}
