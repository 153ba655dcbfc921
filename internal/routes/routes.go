package routes

import (
	"net/http"

	"github.com/dkorolev/petalmarket/internal/handlers"
	"github.com/dkorolev/petalmarket/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the local frontend to talk to the API during
// development.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())
	router.Static("/uploads", "./uploads")

	api := router.Group("/api")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Customer Auth Routes (Public) ---
		api.POST("/customers/registration", h.RegisterCustomer)
		api.POST("/customers/login", h.LoginCustomer)

		// --- Shop Auth Routes (Public) ---
		api.POST("/shops/registration", h.RegisterShop)
		api.POST("/shops/login", h.LoginShop)

		// --- Public Directory Routes ---
		api.GET("/shops", h.ListShops)
		api.GET("/shops/:id", h.GetShop)
		api.GET("/shops/:id/products", h.ListShopProducts)
		api.GET("/shops/:id/reviews", h.ListShopReviews)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/reviews/:id", h.GetReview)

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.POST("/upload", h.UploadFile)
			auth.GET("/orders/:id", h.GetOrderDetails)
			auth.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		}

		// --- Customer-Only Routes ---
		customer := api.Group("/")
		customer.Use(middleware.AuthMiddleware())
		customer.Use(middleware.RequireCustomer())
		{
			customer.GET("/customers/auth", h.GetMyCustomerProfile)
			customer.PUT("/customers/me", h.UpdateMyCustomerProfile)

			customer.GET("/basket", h.GetBasket)
			customer.POST("/basket/items", h.AddToBasket)
			customer.PUT("/basket/items/:product_id", h.UpdateBasketItem)
			customer.DELETE("/basket/items/:product_id", h.DeleteBasketItem)
			customer.DELETE("/basket", h.ClearBasket)

			customer.POST("/orders", h.PlaceOrder)
			customer.GET("/orders", h.GetMyOrders)

			customer.POST("/reviews", h.CreateReview)
			customer.PUT("/reviews/:id", h.UpdateReview)
			customer.DELETE("/reviews/:id", h.DeleteReview)
		}

		// --- Shop-Only Routes ---
		shop := api.Group("/")
		shop.Use(middleware.AuthMiddleware())
		shop.Use(middleware.RequireShop())
		{
			shop.GET("/shops/auth", h.GetMyShopProfile)
			shop.PUT("/shops/:id", h.UpdateShop)
			shop.DELETE("/shops/:id", h.DeleteShop)

			shop.POST("/products", h.CreateProduct)
			shop.PUT("/products/:id", h.UpdateProduct)
			shop.DELETE("/products/:id", h.DeleteProduct)

			shop.GET("/shops/me/orders", h.GetShopOrders)
			shop.PATCH("/orders/:id/completion-time", h.SetCompletionTime)
		}
	}

	return router
}
