package handlers

import (
	"net/http"
	"strconv"

	"github.com/dkorolev/petalmarket/internal/middleware"
	"github.com/gin-gonic/gin"
)

//
// --- Basket Handlers (Customer-Only) ---
//

// AddToBasketInput defines the JSON for adding an item to the basket.
type AddToBasketInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// AddToBasket is the handler for POST /api/basket/items
// Adding a product from a second shop while the basket is non-empty is
// rejected with 409 and the basket is left unchanged.
func (h *Handlers) AddToBasket(c *gin.Context) {
	actor := middleware.Actor(c)

	var input AddToBasketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := h.Store.AddBasketItem(c, actor.ID, input.ProductID, input.Quantity); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to basket"})
}

// UpdateBasketItemInput defines the JSON for changing a line quantity.
// Zero is not a delete here; removal has its own endpoint.
type UpdateBasketItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateBasketItem is the handler for PUT /api/basket/items/:product_id
func (h *Handlers) UpdateBasketItem(c *gin.Context) {
	actor := middleware.Actor(c)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input UpdateBasketItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.UpdateBasketItem(c, actor.ID, productID, input.Quantity); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Basket item quantity updated"})
}

// DeleteBasketItem is the handler for DELETE /api/basket/items/:product_id
func (h *Handlers) DeleteBasketItem(c *gin.Context) {
	actor := middleware.Actor(c)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.Store.RemoveBasketItem(c, actor.ID, productID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Basket item removed"})
}

// ClearBasket is the handler for DELETE /api/basket (idempotent)
func (h *Handlers) ClearBasket(c *gin.Context) {
	actor := middleware.Actor(c)

	if err := h.Store.ClearBasket(c, actor.ID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Basket cleared"})
}

// GetBasket is the handler for GET /api/basket
// Items are resolved against the current catalog; the total is
// computed live and never persisted.
func (h *Handlers) GetBasket(c *gin.Context) {
	actor := middleware.Actor(c)

	view, err := h.Store.GetBasket(c, actor.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
