package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
)

// MemoryStore implements Storage with in-memory maps guarded by a
// single mutex, which trivially serializes concurrent mutations the
// way the MySQL store's row locks do. It backs the workflow tests and
// is handy for local development without a database.
type MemoryStore struct {
	mu sync.Mutex

	customers map[int64]*models.Customer
	shops     map[int64]*models.Shop
	products  map[int64]*models.Product
	baskets   map[int64][]models.BasketItem // customerID -> ordered lines
	orders    map[int64]*models.Order
	reviews   map[int64]*models.Review

	lastID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[int64]*models.Customer),
		shops:     make(map[int64]*models.Shop),
		products:  make(map[int64]*models.Product),
		baskets:   make(map[int64][]models.BasketItem),
		orders:    make(map[int64]*models.Order),
		reviews:   make(map[int64]*models.Review),
	}
}

func (s *MemoryStore) nextID() int64 {
	s.lastID++
	return s.lastID
}

// --- Customers ---

func (s *MemoryStore) CreateCustomer(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Email == customer.Email {
			return models.ErrEmailTaken
		}
	}

	now := time.Now()
	customer.ID = s.nextID()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	clone := *customer
	s.customers[customer.ID] = &clone
	return nil
}

func (s *MemoryStore) GetCustomerByEmail(_ context.Context, email string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) GetCustomerByID(_ context.Context, id int64) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *MemoryStore) UpdateCustomer(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.customers[customer.ID]
	if !ok {
		return models.ErrNotFound
	}

	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now()
	clone := *customer
	s.customers[customer.ID] = &clone
	return nil
}

// --- Shops ---

func (s *MemoryStore) CreateShop(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sh := range s.shops {
		if sh.Email == shop.Email {
			return models.ErrEmailTaken
		}
	}

	now := time.Now()
	shop.ID = s.nextID()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	clone := *shop
	s.shops[shop.ID] = &clone
	return nil
}

func (s *MemoryStore) GetShopByEmail(_ context.Context, email string) (*models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sh := range s.shops {
		if sh.Email == email {
			clone := *sh
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) GetShopByID(_ context.Context, id int64) (*models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getShopLocked(id)
}

func (s *MemoryStore) getShopLocked(id int64) (*models.Shop, error) {
	sh, ok := s.shops[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	clone := *sh
	rating := s.shopRatingLocked(id)
	clone.AverageRating = rating.Average
	clone.ReviewCount = rating.Count
	return &clone, nil
}

func (s *MemoryStore) GetShopProfile(_ context.Context, id int64) (*models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shop, err := s.getShopLocked(id)
	if err != nil {
		return nil, err
	}
	shop.Products = s.productsByShopLocked(id)
	shop.Reviews = s.reviewsByShopLocked(id)
	return shop, nil
}

func (s *MemoryStore) ListShops(_ context.Context, filter models.ShopFilter) ([]models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shops []models.Shop
	for id, sh := range s.shops {
		if filter.Name != "" && !strings.Contains(strings.ToLower(sh.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Address != "" && !strings.Contains(strings.ToLower(sh.Address), strings.ToLower(filter.Address)) {
			continue
		}
		if filter.Category != "" && sh.Category != filter.Category {
			continue
		}

		clone := *sh
		rating := s.shopRatingLocked(id)
		clone.AverageRating = rating.Average
		clone.ReviewCount = rating.Count
		if filter.MinRating != nil && clone.AverageRating < *filter.MinRating {
			continue
		}
		shops = append(shops, clone)
	}

	sort.Slice(shops, func(i, j int) bool { return shops[i].Name < shops[j].Name })
	return shops, nil
}

func (s *MemoryStore) UpdateShop(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.shops[shop.ID]
	if !ok {
		return models.ErrNotFound
	}

	shop.CreatedAt = existing.CreatedAt
	shop.UpdatedAt = time.Now()
	clone := *shop
	clone.Products = nil
	clone.Reviews = nil
	s.shops[shop.ID] = &clone
	return nil
}

func (s *MemoryStore) DeleteShop(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shops[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.shops, id)

	// Cascade: drop the shop's products and any basket lines holding
	// them. Orders stay as historical snapshots.
	for pid, p := range s.products {
		if p.ShopID == id {
			delete(s.products, pid)
			s.dropFromBasketsLocked(pid)
		}
	}
	for rid, r := range s.reviews {
		if r.ShopID == id {
			delete(s.reviews, rid)
		}
	}
	return nil
}

func (s *MemoryStore) ShopRating(_ context.Context, shopID int64) (models.RatingSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shopRatingLocked(shopID), nil
}

func (s *MemoryStore) shopRatingLocked(shopID int64) models.RatingSummary {
	var sum, count int
	for _, r := range s.reviews {
		if r.ShopID == shopID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return models.RatingSummary{}
	}
	return models.RatingSummary{
		Average: models.RoundRating(float64(sum) / float64(count)),
		Count:   count,
	}
}

// --- Products ---

func (s *MemoryStore) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shop, ok := s.shops[product.ShopID]
	if !ok {
		return models.ErrNotFound
	}

	now := time.Now()
	product.ID = s.nextID()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.ShopName = shop.Name

	clone := *product
	s.products[product.ID] = &clone
	return nil
}

func (s *MemoryStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	clone := *p
	if sh, ok := s.shops[p.ShopID]; ok {
		clone.ShopName = sh.Name
	}
	return &clone, nil
}

func (s *MemoryStore) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []models.Product
	for _, p := range s.products {
		clone := *p
		if sh, ok := s.shops[p.ShopID]; ok {
			clone.ShopName = sh.Name
		}
		products = append(products, clone)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	return products, nil
}

func (s *MemoryStore) ListProductsByShop(_ context.Context, shopID int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productsByShopLocked(shopID), nil
}

func (s *MemoryStore) productsByShopLocked(shopID int64) []models.Product {
	var products []models.Product
	for _, p := range s.products {
		if p.ShopID != shopID {
			continue
		}
		clone := *p
		if sh, ok := s.shops[shopID]; ok {
			clone.ShopName = sh.Name
		}
		products = append(products, clone)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	return products
}

func (s *MemoryStore) UpdateProduct(_ context.Context, shopID int64, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return models.ErrNotFound
	}
	if existing.ShopID != shopID {
		return models.ErrForbidden
	}

	product.ShopID = existing.ShopID
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	clone := *product
	s.products[product.ID] = &clone
	return nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, shopID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[productID]
	if !ok {
		return models.ErrNotFound
	}
	if existing.ShopID != shopID {
		return models.ErrForbidden
	}

	delete(s.products, productID)
	s.dropFromBasketsLocked(productID)
	return nil
}

func (s *MemoryStore) dropFromBasketsLocked(productID int64) {
	for customerID, items := range s.baskets {
		kept := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		s.baskets[customerID] = kept
	}
}

// --- Basket ---

func (s *MemoryStore) AddBasketItem(_ context.Context, customerID, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return models.ErrInvalidQuantity
	}

	product, ok := s.products[productID]
	if !ok {
		return models.ErrNotFound
	}

	items := s.baskets[customerID]
	for _, it := range items {
		if existing, ok := s.products[it.ProductID]; ok && existing.ShopID != product.ShopID {
			return models.ErrCrossShopConflict
		}
	}

	now := time.Now()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			items[i].UpdatedAt = now
			s.baskets[customerID] = items
			return nil
		}
	}

	s.baskets[customerID] = append(items, models.BasketItem{
		ID:        s.nextID(),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

func (s *MemoryStore) UpdateBasketItem(_ context.Context, customerID, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return models.ErrInvalidQuantity
	}

	items := s.baskets[customerID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			items[i].UpdatedAt = time.Now()
			s.baskets[customerID] = items
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryStore) RemoveBasketItem(_ context.Context, customerID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.baskets[customerID]
	for i := range items {
		if items[i].ProductID == productID {
			s.baskets[customerID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryStore) ClearBasket(_ context.Context, customerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.baskets, customerID)
	return nil
}

func (s *MemoryStore) GetBasket(_ context.Context, customerID int64) (*models.BasketView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &models.BasketView{Items: []models.BasketItemView{}}
	for _, it := range s.baskets[customerID] {
		product, ok := s.products[it.ProductID]
		if !ok {
			continue
		}

		line := models.BasketItemView{
			ProductID: it.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Photo:     product.Photo,
			Quantity:  it.Quantity,
			LineTotal: product.Price * int64(it.Quantity),
		}
		view.Total += line.LineTotal
		view.TotalItems += it.Quantity
		view.ShopID = product.ShopID
		if sh, ok := s.shops[product.ShopID]; ok {
			view.ShopName = sh.Name
		}
		view.Items = append(view.Items, line)
	}
	return view, nil
}

// --- Orders ---

func (s *MemoryStore) PlaceOrder(_ context.Context, customerID int64, deliveryAddress string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	basket := s.baskets[customerID]
	if len(basket) == 0 {
		return nil, models.ErrEmptyBasket
	}

	now := time.Now()
	var items []models.OrderItem
	var shopID int64
	for _, it := range basket {
		product, ok := s.products[it.ProductID]
		if !ok {
			return nil, models.ErrNotFound
		}
		if shopID == 0 {
			shopID = product.ShopID
		} else if shopID != product.ShopID {
			return nil, models.ErrCrossShopConflict
		}

		items = append(items, models.OrderItem{
			ID:        s.nextID(),
			ProductID: it.ProductID,
			Name:      product.Name,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
			CreatedAt: now,
		})
	}

	order := &models.Order{
		ID:              s.nextID(),
		CustomerID:      customerID,
		ShopID:          shopID,
		DeliveryAddress: deliveryAddress,
		TotalCost:       models.OrderTotal(items),
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items

	s.orders[order.ID] = order
	delete(s.baskets, customerID)

	clone := s.cloneOrderLocked(order)
	return clone, nil
}

func (s *MemoryStore) cloneOrderLocked(o *models.Order) *models.Order {
	clone := *o
	clone.Items = append([]models.OrderItem(nil), o.Items...)
	if sh, ok := s.shops[o.ShopID]; ok {
		clone.ShopName = sh.Name
	}
	if c, ok := s.customers[o.CustomerID]; ok {
		clone.CustomerName = c.Name + " " + c.Surname
	}
	return &clone
}

func (s *MemoryStore) GetOrder(_ context.Context, orderID int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return s.cloneOrderLocked(o), nil
}

func (s *MemoryStore) TransitionOrderStatus(_ context.Context, orderID int64, actor models.Actor, newStatus models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !newStatus.Valid() {
		return models.ErrInvalidTransition
	}

	o, ok := s.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}

	switch actor.Kind {
	case models.ActorCustomer:
		if actor.ID != o.CustomerID {
			return models.ErrForbidden
		}
	case models.ActorShop:
		if actor.ID != o.ShopID {
			return models.ErrForbidden
		}
	default:
		return models.ErrForbidden
	}

	if !models.SettableBy(actor.Kind, newStatus) {
		return models.ErrForbidden
	}
	if !models.TransitionAllowed(o.Status, newStatus) {
		return models.ErrInvalidTransition
	}

	o.Status = newStatus
	o.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) SetCompletionTime(_ context.Context, orderID, shopID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	if o.ShopID != shopID {
		return models.ErrForbidden
	}
	if o.Status.Terminal() {
		return models.ErrInvalidState
	}

	o.CompletionTime = &text
	o.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) ListOrdersForCustomer(_ context.Context, customerID int64, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listOrdersLocked(func(o *models.Order) bool { return o.CustomerID == customerID }, filter), nil
}

func (s *MemoryStore) ListOrdersForShop(_ context.Context, shopID int64, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listOrdersLocked(func(o *models.Order) bool { return o.ShopID == shopID }, filter), nil
}

func (s *MemoryStore) listOrdersLocked(owns func(*models.Order) bool, filter models.OrderFilter) []models.Order {
	var orders []models.Order
	for _, o := range s.orders {
		if !owns(o) {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.From != nil && o.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.CreatedAt.After(*filter.To) {
			continue
		}
		orders = append(orders, *s.cloneOrderLocked(o))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders
}

// --- Reviews ---

func (s *MemoryStore) CreateReview(_ context.Context, customerID, orderID int64, rating int, shortText, longText string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if o.CustomerID != customerID {
		return nil, models.ErrForbidden
	}
	if o.Status != models.StatusCompleted {
		return nil, models.ErrInvalidState
	}
	for _, r := range s.reviews {
		if r.OrderID == orderID {
			return nil, models.ErrDuplicateReview
		}
	}

	now := time.Now()
	review := &models.Review{
		ID:         s.nextID(),
		OrderID:    orderID,
		ShopID:     o.ShopID,
		CustomerID: customerID,
		Rating:     rating,
		ShortText:  shortText,
		LongText:   longText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.reviews[review.ID] = review

	clone := s.cloneReviewLocked(review)
	return clone, nil
}

func (s *MemoryStore) cloneReviewLocked(r *models.Review) *models.Review {
	clone := *r
	if c, ok := s.customers[r.CustomerID]; ok {
		clone.CustomerName = c.Name
		clone.CustomerSurname = c.Surname
	}
	return &clone
}

func (s *MemoryStore) GetReview(_ context.Context, id int64) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return s.cloneReviewLocked(r), nil
}

func (s *MemoryStore) ListReviewsByShop(_ context.Context, shopID int64) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewsByShopLocked(shopID), nil
}

func (s *MemoryStore) reviewsByShopLocked(shopID int64) []models.Review {
	var reviews []models.Review
	for _, r := range s.reviews {
		if r.ShopID == shopID {
			reviews = append(reviews, *s.cloneReviewLocked(r))
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID > reviews[j].ID })
	return reviews
}

func (s *MemoryStore) UpdateReview(_ context.Context, customerID, reviewID int64, rating int, shortText, longText string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[reviewID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if r.CustomerID != customerID {
		return nil, models.ErrForbidden
	}

	r.Rating = rating
	r.ShortText = shortText
	r.LongText = longText
	r.UpdatedAt = time.Now()
	return s.cloneReviewLocked(r), nil
}

func (s *MemoryStore) DeleteReview(_ context.Context, customerID, reviewID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[reviewID]
	if !ok {
		return models.ErrNotFound
	}
	if r.CustomerID != customerID {
		return models.ErrForbidden
	}

	delete(s.reviews, reviewID)
	return nil
}
