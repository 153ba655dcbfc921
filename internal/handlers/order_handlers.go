package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dkorolev/petalmarket/internal/middleware"
	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Order Workflow Handlers ---
//

// PlaceOrderInput defines the JSON for checking out the basket.
type PlaceOrderInput struct {
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
}

// PlaceOrder is the handler for POST /api/orders (customer only).
// The store converts the basket into an order snapshot and clears it
// in one transaction; an empty basket is a 400.
func (h *Handlers) PlaceOrder(c *gin.Context) {
	actor := middleware.Actor(c)

	var input PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Store.PlaceOrder(c, actor.ID, input.DeliveryAddress)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// parseOrderFilter reads the shared ?status=&from=&to= query filters.
func parseOrderFilter(c *gin.Context) (models.OrderFilter, bool) {
	var filter models.OrderFilter

	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status value"})
			return filter, false
		}
		filter.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an RFC 3339 timestamp"})
			return filter, false
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an RFC 3339 timestamp"})
			return filter, false
		}
		filter.To = &to
	}
	return filter, true
}

// GetMyOrders is the handler for GET /api/orders (customer only)
func (h *Handlers) GetMyOrders(c *gin.Context) {
	actor := middleware.Actor(c)

	filter, ok := parseOrderFilter(c)
	if !ok {
		return
	}

	orders, err := h.Store.ListOrdersForCustomer(c, actor.ID, filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetShopOrders is the handler for GET /api/shops/me/orders (shop only)
func (h *Handlers) GetShopOrders(c *gin.Context) {
	actor := middleware.Actor(c)

	filter, ok := parseOrderFilter(c)
	if !ok {
		return
	}

	orders, err := h.Store.ListOrdersForShop(c, actor.ID, filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /api/orders/:id
// Visible only to the customer who placed the order or the shop that
// received it.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	actor := middleware.Actor(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.Store.GetOrder(c, orderID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	owns := (actor.Kind == models.ActorCustomer && order.CustomerID == actor.ID) ||
		(actor.Kind == models.ActorShop && order.ShopID == actor.ID)
	if !owns {
		// Hide the order's existence from strangers.
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatusInput defines the JSON for a status transition.
type UpdateOrderStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending in-progress completed cancelled"`
}

// UpdateOrderStatus is the handler for PATCH /api/orders/:id/status
// Shops progress their orders (pending -> in-progress -> completed);
// customers may cancel while still pending. Everything else is a 400
// or 403 from the store.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	actor := middleware.Actor(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.TransitionOrderStatus(c, orderID, actor, input.Status); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Order status updated",
		"newStatus": input.Status,
	})
}

// SetCompletionTimeInput defines the JSON for the shop's free-text
// completion estimate.
type SetCompletionTimeInput struct {
	CompletionTime string `json:"completionTime" binding:"required"`
}

// SetCompletionTime is the handler for PATCH /api/orders/:id/completion-time
// (shop only, any non-terminal status).
func (h *Handlers) SetCompletionTime(c *gin.Context) {
	actor := middleware.Actor(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input SetCompletionTimeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.SetCompletionTime(c, orderID, actor.ID, input.CompletionTime); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Completion time updated"})
}
