package handlers

import (
	"net/http"
	"strconv"

	"github.com/dkorolev/petalmarket/internal/middleware"
	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Review Handlers ---
//

// CreateReviewInput defines the JSON for leaving a review.
type CreateReviewInput struct {
	OrderID   int64  `json:"orderId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	ShortText string `json:"shortText" binding:"required"`
	LongText  string `json:"longText" binding:"required"`
}

// CreateReview is the handler for POST /api/reviews (customer only).
// The store enforces the gate: completed order, owned by the caller,
// no prior review.
func (h *Handlers) CreateReview(c *gin.Context) {
	actor := middleware.Actor(c)

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.Store.CreateReview(c, actor.ID, input.OrderID, input.Rating, input.ShortText, input.LongText)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetReview is the handler for GET /api/reviews/:id
func (h *Handlers) GetReview(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	review, err := h.Store.GetReview(c, reviewID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// ListShopReviews is the handler for GET /api/shops/:id/reviews
// Also reports the shop's aggregate rating alongside the list.
func (h *Handlers) ListShopReviews(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop id"})
		return
	}

	if _, err := h.Store.GetShopByID(c, shopID); err != nil {
		respondStoreError(c, err)
		return
	}

	reviews, err := h.Store.ListReviewsByShop(c, shopID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	rating, err := h.Store.ShopRating(c, shopID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": rating.Average,
		"reviewCount":   rating.Count,
	})
}

// UpdateReviewInput defines the JSON for editing a review.
type UpdateReviewInput struct {
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	ShortText string `json:"shortText" binding:"required"`
	LongText  string `json:"longText" binding:"required"`
}

// UpdateReview is the handler for PUT /api/reviews/:id (author only)
func (h *Handlers) UpdateReview(c *gin.Context) {
	actor := middleware.Actor(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.Store.UpdateReview(c, actor.ID, reviewID, input.Rating, input.ShortText, input.LongText)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview is the handler for DELETE /api/reviews/:id (author only)
func (h *Handlers) DeleteReview(c *gin.Context) {
	actor := middleware.Actor(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	if err := h.Store.DeleteReview(c, actor.ID, reviewID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
