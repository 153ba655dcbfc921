package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/gin-gonic/gin"
)

// respondStoreError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an infrastructure failure and is
// reported generically, never swallowed.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCrossShopConflict),
		errors.Is(err, models.ErrDuplicateReview),
		errors.Is(err, models.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmptyBasket),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
