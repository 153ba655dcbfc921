package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkorolev/petalmarket/internal/models"
)

func seedCustomer(t *testing.T, s *MemoryStore, email string) *models.Customer {
	t.Helper()
	c := &models.Customer{
		Name:         "Anna",
		Surname:      "Petrova",
		Phone:        "+100000000",
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, s.CreateCustomer(context.Background(), c))
	return c
}

func seedShop(t *testing.T, s *MemoryStore, name, email string) *models.Shop {
	t.Helper()
	sh := &models.Shop{
		Name:         name,
		Category:     "flowers",
		Email:        email,
		PasswordHash: "x",
		Address:      "1 Main St",
	}
	require.NoError(t, s.CreateShop(context.Background(), sh))
	return sh
}

func seedProduct(t *testing.T, s *MemoryStore, shopID int64, name string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{
		ShopID: shopID,
		Name:   name,
		Price:  price,
	}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}

// placeOrderWith seeds a basket with the given quantities and converts
// it into an order.
func placeOrderWith(t *testing.T, s *MemoryStore, customerID int64, lines map[int64]int) *models.Order {
	t.Helper()
	ctx := context.Background()
	for productID, qty := range lines {
		require.NoError(t, s.AddBasketItem(ctx, customerID, productID, qty))
	}
	order, err := s.PlaceOrder(ctx, customerID, "1 Delivery Lane")
	require.NoError(t, err)
	return order
}

// --- Accounts ---

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	seedCustomer(t, s, "anna@example.com")

	err := s.CreateCustomer(context.Background(), &models.Customer{
		Name: "Other", Surname: "Person", Email: "anna@example.com",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestCreateShop_DuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	seedShop(t, s, "Rosehip", "shop@example.com")

	err := s.CreateShop(context.Background(), &models.Shop{
		Name: "Other", Email: "shop@example.com",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

// --- Basket ---

func TestAddBasketItem_UnknownProduct(t *testing.T) {
	s := NewMemoryStore()
	customer := seedCustomer(t, s, "anna@example.com")

	err := s.AddBasketItem(context.Background(), customer.ID, 999, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddBasketItem_RejectsNonPositiveQuantity(t *testing.T) {
	s := NewMemoryStore()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	assert.ErrorIs(t, s.AddBasketItem(context.Background(), customer.ID, p.ID, 0), models.ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddBasketItem(context.Background(), customer.ID, p.ID, -3), models.ErrInvalidQuantity)
}

func TestAddBasketItem_IncrementsExistingLine(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	require.NoError(t, s.AddBasketItem(ctx, customer.ID, p.ID, 2))
	require.NoError(t, s.AddBasketItem(ctx, customer.ID, p.ID, 3))

	view, err := s.GetBasket(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, int64(500), view.Total)
}

func TestAddBasketItem_CrossShopConflictLeavesBasketUnchanged(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shopA := seedShop(t, s, "Rosehip", "a@example.com")
	shopB := seedShop(t, s, "Thornfield", "b@example.com")
	pA := seedProduct(t, s, shopA.ID, "Tulip bouquet", 100)
	pB := seedProduct(t, s, shopB.ID, "Orchid", 300)

	require.NoError(t, s.AddBasketItem(ctx, customer.ID, pA.ID, 1))

	err := s.AddBasketItem(ctx, customer.ID, pB.ID, 1)
	assert.ErrorIs(t, err, models.ErrCrossShopConflict)

	view, err := s.GetBasket(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, pA.ID, view.Items[0].ProductID)
	assert.Equal(t, shopA.ID, view.ShopID)
}

func TestUpdateBasketItem(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	require.NoError(t, s.AddBasketItem(ctx, customer.ID, p.ID, 2))

	require.NoError(t, s.UpdateBasketItem(ctx, customer.ID, p.ID, 7))
	view, err := s.GetBasket(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, view.Items[0].Quantity)

	assert.ErrorIs(t, s.UpdateBasketItem(ctx, customer.ID, p.ID, 0), models.ErrInvalidQuantity)
	assert.ErrorIs(t, s.UpdateBasketItem(ctx, customer.ID, 999, 1), models.ErrNotFound)
}

func TestRemoveBasketItem(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	require.NoError(t, s.AddBasketItem(ctx, customer.ID, p.ID, 2))
	require.NoError(t, s.RemoveBasketItem(ctx, customer.ID, p.ID))

	view, err := s.GetBasket(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	assert.ErrorIs(t, s.RemoveBasketItem(ctx, customer.ID, p.ID), models.ErrNotFound)
}

func TestClearBasket_Idempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	require.NoError(t, s.AddBasketItem(ctx, customer.ID, p.ID, 2))
	require.NoError(t, s.ClearBasket(ctx, customer.ID))
	// A second clear of an already-empty basket is not an error.
	require.NoError(t, s.ClearBasket(ctx, customer.ID))

	view, err := s.GetBasket(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Total)
}

// --- Orders ---

func TestPlaceOrder_TotalsAndEmptiesBasket(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p1 := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)
	p2 := seedProduct(t, s, shop.ID, "Gift card", 50)

	order := placeOrderWith(t, s, customer.ID, map[int64]int{p1.ID: 2, p2.ID: 1})

	assert.Equal(t, int64(250), order.TotalCost)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, shop.ID, order.ShopID)
	assert.Len(t, order.Items, 2)

	view, err := s.GetBasket(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestPlaceOrder_EmptyBasket(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")

	_, err := s.PlaceOrder(ctx, customer.ID, "1 Delivery Lane")
	assert.ErrorIs(t, err, models.ErrEmptyBasket)

	orders, err := s.ListOrdersForCustomer(ctx, customer.ID, models.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_SnapshotsSurvivePriceChange(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	order := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 2})
	require.Equal(t, int64(200), order.TotalCost)

	p.Price = 900
	p.Name = "Renamed"
	require.NoError(t, s.UpdateProduct(ctx, shop.ID, p))

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got.TotalCost)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Tulip bouquet", got.Items[0].Name)
	assert.Equal(t, int64(100), got.Items[0].UnitPrice)
}

func TestPlaceOrder_SnapshotsSurviveShopDeletion(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	order := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 1})

	require.NoError(t, s.DeleteShop(ctx, shop.ID))

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.TotalCost)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Tulip bouquet", got.Items[0].Name)
}

func TestTransitionOrderStatus_Table(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		kind    models.ActorKind
		wantErr error
	}{
		{"shop accepts pending", models.StatusPending, models.StatusInProgress, models.ActorShop, nil},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, models.ActorCustomer, nil},
		{"shop completes in-progress", models.StatusInProgress, models.StatusCompleted, models.ActorShop, nil},
		{"customer cannot cancel in-progress", models.StatusInProgress, models.StatusCancelled, models.ActorCustomer, models.ErrInvalidTransition},
		{"customer cannot accept", models.StatusPending, models.StatusInProgress, models.ActorCustomer, models.ErrForbidden},
		{"shop cannot cancel", models.StatusPending, models.StatusCancelled, models.ActorShop, models.ErrForbidden},
		{"shop cannot complete pending", models.StatusPending, models.StatusCompleted, models.ActorShop, models.ErrInvalidTransition},
		{"completed is terminal", models.StatusCompleted, models.StatusInProgress, models.ActorShop, models.ErrInvalidTransition},
		{"cancelled is terminal", models.StatusCancelled, models.StatusInProgress, models.ActorShop, models.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore()
			ctx := context.Background()
			customer := seedCustomer(t, s, "anna@example.com")
			shop := seedShop(t, s, "Rosehip", "shop@example.com")
			p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)
			order := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 1})

			// Walk the order into the starting state through real
			// transitions.
			switch tt.from {
			case models.StatusInProgress:
				require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, models.Actor{ID: shop.ID, Kind: models.ActorShop}, models.StatusInProgress))
			case models.StatusCompleted:
				require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, models.Actor{ID: shop.ID, Kind: models.ActorShop}, models.StatusInProgress))
				require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, models.Actor{ID: shop.ID, Kind: models.ActorShop}, models.StatusCompleted))
			case models.StatusCancelled:
				require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, models.Actor{ID: customer.ID, Kind: models.ActorCustomer}, models.StatusCancelled))
			}

			actorID := customer.ID
			if tt.kind == models.ActorShop {
				actorID = shop.ID
			}
			err := s.TransitionOrderStatus(ctx, order.ID, models.Actor{ID: actorID, Kind: tt.kind}, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				got, gerr := s.GetOrder(ctx, order.ID)
				require.NoError(t, gerr)
				assert.Equal(t, tt.from, got.Status)
			} else {
				require.NoError(t, err)
				got, gerr := s.GetOrder(ctx, order.ID)
				require.NoError(t, gerr)
				assert.Equal(t, tt.to, got.Status)
			}
		})
	}
}

func TestTransitionOrderStatus_WrongOwner(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	other := seedCustomer(t, s, "boris@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	otherShop := seedShop(t, s, "Thornfield", "other@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)
	order := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 1})

	err := s.TransitionOrderStatus(ctx, order.ID, models.Actor{ID: other.ID, Kind: models.ActorCustomer}, models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = s.TransitionOrderStatus(ctx, order.ID, models.Actor{ID: otherShop.ID, Kind: models.ActorShop}, models.StatusInProgress)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestSetCompletionTime(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	otherShop := seedShop(t, s, "Thornfield", "other@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)
	order := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 1})

	assert.ErrorIs(t, s.SetCompletionTime(ctx, order.ID, otherShop.ID, "tomorrow 14:00"), models.ErrForbidden)

	require.NoError(t, s.SetCompletionTime(ctx, order.ID, shop.ID, "tomorrow 14:00"))
	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletionTime)
	assert.Equal(t, "tomorrow 14:00", *got.CompletionTime)

	shopActor := models.Actor{ID: shop.ID, Kind: models.ActorShop}
	require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, shopActor, models.StatusInProgress))
	require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, shopActor, models.StatusCompleted))

	assert.ErrorIs(t, s.SetCompletionTime(ctx, order.ID, shop.ID, "changed"), models.ErrInvalidState)
}

func TestListOrders_Filters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	first := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 1})
	second := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 2})

	shopActor := models.Actor{ID: shop.ID, Kind: models.ActorShop}
	require.NoError(t, s.TransitionOrderStatus(ctx, first.ID, shopActor, models.StatusInProgress))

	all, err := s.ListOrdersForCustomer(ctx, customer.ID, models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, second.ID, all[0].ID)

	pending := models.StatusPending
	got, err := s.ListOrdersForShop(ctx, shop.ID, models.OrderFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)
}

// --- Reviews ---

// completedOrder walks a fresh order to the completed state.
func completedOrder(t *testing.T, s *MemoryStore, customerID, shopID, productID int64) *models.Order {
	t.Helper()
	ctx := context.Background()
	order := placeOrderWith(t, s, customerID, map[int64]int{productID: 1})
	actor := models.Actor{ID: shopID, Kind: models.ActorShop}
	require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, actor, models.StatusInProgress))
	require.NoError(t, s.TransitionOrderStatus(ctx, order.ID, actor, models.StatusCompleted))
	return order
}

func TestCreateReview_Gate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	other := seedCustomer(t, s, "boris@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	// Unknown order.
	_, err := s.CreateReview(ctx, customer.ID, 999, 5, "great", "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Order not yet completed.
	pending := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 1})
	_, err = s.CreateReview(ctx, customer.ID, pending.ID, 5, "great", "")
	assert.ErrorIs(t, err, models.ErrInvalidState)

	order := completedOrder(t, s, customer.ID, shop.ID, p.ID)

	// Somebody else's order.
	_, err = s.CreateReview(ctx, other.ID, order.ID, 5, "great", "")
	assert.ErrorIs(t, err, models.ErrForbidden)

	review, err := s.CreateReview(ctx, customer.ID, order.ID, 5, "great", "lovely arrangement")
	require.NoError(t, err)
	assert.Equal(t, shop.ID, review.ShopID)
	assert.Equal(t, 5, review.Rating)

	// One review per order.
	_, err = s.CreateReview(ctx, customer.ID, order.ID, 4, "again", "")
	assert.ErrorIs(t, err, models.ErrDuplicateReview)
}

func TestUpdateAndDeleteReview_AuthorOnly(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	other := seedCustomer(t, s, "boris@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)
	order := completedOrder(t, s, customer.ID, shop.ID, p.ID)

	review, err := s.CreateReview(ctx, customer.ID, order.ID, 5, "great", "")
	require.NoError(t, err)

	_, err = s.UpdateReview(ctx, other.ID, review.ID, 1, "bad", "")
	assert.ErrorIs(t, err, models.ErrForbidden)

	updated, err := s.UpdateReview(ctx, customer.ID, review.ID, 4, "good", "after a week it held up")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	assert.ErrorIs(t, s.DeleteReview(ctx, other.ID, review.ID), models.ErrForbidden)
	require.NoError(t, s.DeleteReview(ctx, customer.ID, review.ID))
	_, err = s.GetReview(ctx, review.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestShopRating_RoundedAverage(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	ratings := []int{5, 4, 4}
	for i, rating := range ratings {
		customer := seedCustomer(t, s, "c"+string(rune('a'+i))+"@example.com")
		order := completedOrder(t, s, customer.ID, shop.ID, p.ID)
		_, err := s.CreateReview(ctx, customer.ID, order.ID, rating, "ok", "")
		require.NoError(t, err)
	}

	summary, err := s.ShopRating(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, summary.Average)
	assert.Equal(t, 3, summary.Count)
}

// --- Directory ---

func TestListShops_Filters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rosehip := seedShop(t, s, "Rosehip Flowers", "a@example.com")
	rosehip.Address = "12 Garden Rd"
	require.NoError(t, s.UpdateShop(ctx, rosehip))
	seedShop(t, s, "Thornfield", "b@example.com")

	got, err := s.ListShops(ctx, models.ShopFilter{Name: "rosehip"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rosehip Flowers", got[0].Name)

	got, err = s.ListShops(ctx, models.ShopFilter{Address: "garden"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	minRating := 4.0
	got, err = s.ListShops(ctx, models.ShopFilter{MinRating: &minRating})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListShops_MinRating(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")

	rated := seedShop(t, s, "Rosehip", "a@example.com")
	seedShop(t, s, "Thornfield", "b@example.com")
	p := seedProduct(t, s, rated.ID, "Tulip bouquet", 100)
	order := completedOrder(t, s, customer.ID, rated.ID, p.ID)
	_, err := s.CreateReview(ctx, customer.ID, order.ID, 5, "great", "")
	require.NoError(t, err)

	minRating := 4.5
	got, err := s.ListShops(ctx, models.ShopFilter{MinRating: &minRating})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rated.ID, got[0].ID)
	assert.Equal(t, 5.0, got[0].AverageRating)
	assert.Equal(t, 1, got[0].ReviewCount)
}

func TestDeleteShop_CascadesButKeepsOrders(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	customer := seedCustomer(t, s, "anna@example.com")
	shop := seedShop(t, s, "Rosehip", "shop@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)
	order := placeOrderWith(t, s, customer.ID, map[int64]int{p.ID: 1})

	// A second customer still holds the product in their basket.
	other := seedCustomer(t, s, "boris@example.com")
	require.NoError(t, s.AddBasketItem(ctx, other.ID, p.ID, 1))

	require.NoError(t, s.DeleteShop(ctx, shop.ID))

	_, err := s.GetProductByID(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	view, err := s.GetBasket(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.TotalCost)
}

func TestDeleteProduct_OwnerGate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	shop := seedShop(t, s, "Rosehip", "a@example.com")
	other := seedShop(t, s, "Thornfield", "b@example.com")
	p := seedProduct(t, s, shop.ID, "Tulip bouquet", 100)

	assert.ErrorIs(t, s.DeleteProduct(ctx, other.ID, p.ID), models.ErrForbidden)
	require.NoError(t, s.DeleteProduct(ctx, shop.ID, p.ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, shop.ID, p.ID), models.ErrNotFound)
}
