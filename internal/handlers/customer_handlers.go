package handlers

import (
	"net/http"
	"time"

	"github.com/dkorolev/petalmarket/internal/auth"
	"github.com/dkorolev/petalmarket/internal/middleware"
	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Customer Account Handlers ---
//

// RegisterCustomerInput holds the registration payload. Kept separate
// from models.Customer so a client can never set id or timestamps.
type RegisterCustomerInput struct {
	Name        string  `json:"name" binding:"required"`
	Surname     string  `json:"surname" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	BirthDate   *string `json:"birthDate,omitempty"` // YYYY-MM-DD
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
}

// RegisterCustomer is the handler for POST /api/customers/registration
func (h *Handlers) RegisterCustomer(c *gin.Context) {
	var input RegisterCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := &models.Customer{
		Name:        input.Name,
		Surname:     input.Surname,
		Phone:       input.Phone,
		Email:       input.Email,
		Description: input.Description,
		Photo:       input.Photo,
	}

	if input.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *input.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be YYYY-MM-DD"})
			return
		}
		customer.BirthDate = &parsed
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	customer.PasswordHash = password.Hash

	if err := h.Store.CreateCustomer(c, customer); err != nil {
		respondStoreError(c, err)
		return
	}

	token, err := auth.GenerateToken(customer.ID, models.ActorCustomer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  customer,
	})
}

// LoginInput is shared by the customer and shop login handlers.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginCustomer is the handler for POST /api/customers/login
func (h *Handlers) LoginCustomer(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.Store.GetCustomerByEmail(c, input.Email)
	if err != nil {
		if err == models.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondStoreError(c, err)
		return
	}

	password := models.Password{Hash: customer.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(customer.ID, models.ActorCustomer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  customer,
	})
}

// GetMyCustomerProfile is the handler for GET /api/customers/auth
func (h *Handlers) GetMyCustomerProfile(c *gin.Context) {
	actor := middleware.Actor(c)

	customer, err := h.Store.GetCustomerByID(c, actor.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomerInput carries the editable profile fields. A nil
// password leaves the current one in place.
type UpdateCustomerInput struct {
	Name        string  `json:"name" binding:"required"`
	Surname     string  `json:"surname" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    *string `json:"password,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
}

// UpdateMyCustomerProfile is the handler for PUT /api/customers/me
func (h *Handlers) UpdateMyCustomerProfile(c *gin.Context) {
	actor := middleware.Actor(c)

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.Store.GetCustomerByID(c, actor.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	customer.Name = input.Name
	customer.Surname = input.Surname
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Description = input.Description
	customer.Photo = input.Photo

	if input.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *input.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be YYYY-MM-DD"})
			return
		}
		customer.BirthDate = &parsed
	}

	if input.Password != nil {
		var password models.Password
		if err := password.Set(*input.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		customer.PasswordHash = password.Hash
	}

	if err := h.Store.UpdateCustomer(c, customer); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
