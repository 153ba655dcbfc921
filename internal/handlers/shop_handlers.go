package handlers

import (
	"net/http"
	"strconv"

	"github.com/dkorolev/petalmarket/internal/auth"
	"github.com/dkorolev/petalmarket/internal/middleware"
	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Shop Account & Directory Handlers ---
//

// RegisterShopInput is the registration payload for a shop account.
// Category is free-form ("flowers", "hardware", ...) and replaces the
// old per-type shop entities.
type RegisterShopInput struct {
	Name               string  `json:"name" binding:"required"`
	Category           string  `json:"category" binding:"required"`
	ContactPersonName  string  `json:"contactPersonName" binding:"required"`
	RegistrationNumber string  `json:"registrationNumber" binding:"required"`
	Phone              string  `json:"phone" binding:"required"`
	Email              string  `json:"email" binding:"required,email"`
	Password           string  `json:"password" binding:"required,min=8"`
	Address            string  `json:"address" binding:"required"`
	Description        *string `json:"description,omitempty"`
	Photo              *string `json:"photo,omitempty"`
}

// RegisterShop is the handler for POST /api/shops/registration
func (h *Handlers) RegisterShop(c *gin.Context) {
	var input RegisterShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop := &models.Shop{
		Name:               input.Name,
		Category:           input.Category,
		ContactPersonName:  input.ContactPersonName,
		RegistrationNumber: input.RegistrationNumber,
		Phone:              input.Phone,
		Email:              input.Email,
		Address:            input.Address,
		Description:        input.Description,
		Photo:              input.Photo,
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	shop.PasswordHash = password.Hash

	if err := h.Store.CreateShop(c, shop); err != nil {
		respondStoreError(c, err)
		return
	}

	token, err := auth.GenerateToken(shop.ID, models.ActorShop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"shop":  shop,
	})
}

// LoginShop is the handler for POST /api/shops/login
func (h *Handlers) LoginShop(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop, err := h.Store.GetShopByEmail(c, input.Email)
	if err != nil {
		if err == models.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondStoreError(c, err)
		return
	}

	password := models.Password{Hash: shop.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(shop.ID, models.ActorShop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"shop":  shop,
	})
}

// GetMyShopProfile is the handler for GET /api/shops/auth
func (h *Handlers) GetMyShopProfile(c *gin.Context) {
	actor := middleware.Actor(c)

	shop, err := h.Store.GetShopByID(c, actor.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// ListShops is the handler for GET /api/shops
// Supported query filters: name, address, category, minRating.
// Each row carries its average rating (one decimal) and review count,
// recomputed on read.
func (h *Handlers) ListShops(c *gin.Context) {
	filter := models.ShopFilter{
		Name:     c.Query("name"),
		Address:  c.Query("address"),
		Category: c.Query("category"),
	}

	if raw := c.Query("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRating must be a number"})
			return
		}
		filter.MinRating = &minRating
	}

	shops, err := h.Store.ListShops(c, filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if shops == nil {
		shops = []models.Shop{}
	}
	c.JSON(http.StatusOK, gin.H{
		"shops": shops,
		"total": len(shops),
	})
}

// GetShop is the handler for GET /api/shops/:id
// Returns the shop with its products and reviews for the public page.
func (h *Handlers) GetShop(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop id"})
		return
	}

	shop, err := h.Store.GetShopProfile(c, shopID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// UpdateShopInput carries the editable shop fields.
type UpdateShopInput struct {
	Name               string  `json:"name" binding:"required"`
	Category           string  `json:"category" binding:"required"`
	ContactPersonName  string  `json:"contactPersonName" binding:"required"`
	RegistrationNumber string  `json:"registrationNumber" binding:"required"`
	Phone              string  `json:"phone" binding:"required"`
	Email              string  `json:"email" binding:"required,email"`
	Password           *string `json:"password,omitempty"`
	Address            string  `json:"address" binding:"required"`
	Description        *string `json:"description,omitempty"`
	Photo              *string `json:"photo,omitempty"`
}

// UpdateShop is the handler for PUT /api/shops/:id (owner only)
func (h *Handlers) UpdateShop(c *gin.Context) {
	actor := middleware.Actor(c)

	shopID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop id"})
		return
	}
	if shopID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only edit your own shop"})
		return
	}

	var input UpdateShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop, err := h.Store.GetShopByID(c, shopID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	shop.Name = input.Name
	shop.Category = input.Category
	shop.ContactPersonName = input.ContactPersonName
	shop.RegistrationNumber = input.RegistrationNumber
	shop.Phone = input.Phone
	shop.Email = input.Email
	shop.Address = input.Address
	shop.Description = input.Description
	shop.Photo = input.Photo

	if input.Password != nil {
		var password models.Password
		if err := password.Set(*input.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		shop.PasswordHash = password.Hash
	}

	if err := h.Store.UpdateShop(c, shop); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// DeleteShop is the handler for DELETE /api/shops/:id (owner only).
// The shop's catalog and related basket lines go with it; placed
// orders remain untouched as historical snapshots.
func (h *Handlers) DeleteShop(c *gin.Context) {
	actor := middleware.Actor(c)

	shopID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop id"})
		return
	}
	if shopID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only delete your own shop"})
		return
	}

	if err := h.Store.DeleteShop(c, shopID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop deleted successfully"})
}
