package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dkorolev/petalmarket/internal/models"
)

func TestRespondStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err      error
		wantCode int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrCrossShopConflict, http.StatusConflict},
		{models.ErrDuplicateReview, http.StatusConflict},
		{models.ErrEmailTaken, http.StatusConflict},
		{models.ErrEmptyBasket, http.StatusBadRequest},
		{models.ErrInvalidQuantity, http.StatusBadRequest},
		{models.ErrInvalidState, http.StatusBadRequest},
		{models.ErrInvalidTransition, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			respondStoreError(c, tt.err)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
