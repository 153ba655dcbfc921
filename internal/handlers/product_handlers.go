package handlers

import (
	"net/http"
	"strconv"

	"github.com/dkorolev/petalmarket/internal/middleware"
	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Product Catalog Handlers ---
//

// ProductInput is the payload for creating or updating a product.
// Price is in integer currency units; gt=0 rejects free or negative
// listings at the door.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       int64   `json:"price" binding:"required,gt=0"`
	Photo       *string `json:"photo,omitempty"`
}

// CreateProduct is the handler for POST /api/products (shop only)
func (h *Handlers) CreateProduct(c *gin.Context) {
	actor := middleware.Actor(c)

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		ShopID:      actor.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Photo:       input.Photo,
	}

	if err := h.Store.CreateProduct(c, product); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProduct is the handler for GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := h.Store.GetProductByID(c, productID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListProducts is the handler for GET /api/products
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.Store.ListProducts(c)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListShopProducts is the handler for GET /api/shops/:id/products
func (h *Handlers) ListShopProducts(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop id"})
		return
	}

	// 404 for an unknown shop rather than an empty list.
	if _, err := h.Store.GetShopByID(c, shopID); err != nil {
		respondStoreError(c, err)
		return
	}

	products, err := h.Store.ListProductsByShop(c, shopID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// UpdateProduct is the handler for PUT /api/products/:id (owner only)
func (h *Handlers) UpdateProduct(c *gin.Context) {
	actor := middleware.Actor(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		ID:          productID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Photo:       input.Photo,
	}

	if err := h.Store.UpdateProduct(c, actor.ID, product); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct is the handler for DELETE /api/products/:id (owner only)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	actor := middleware.Actor(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.Store.DeleteProduct(c, actor.ID, productID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
