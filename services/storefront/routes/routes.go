package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/controllers"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/middleware"
)

// RegisterRoutes mounts the customer and seller APIs under /api and the
// unauthenticated health check.
func RegisterRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	productController *controllers.ProductController,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtSecret))

	customer := api.Group("/customer")
	customer.Use(middleware.RequireRole(middleware.RoleCustomer))
	{
		customer.GET("/cart", cartController.GetCart)
		customer.POST("/cart", cartController.AddToCart)
		customer.PUT("/cart", cartController.UpdateCart)
		customer.POST("/checkout", cartController.Checkout)
		customer.GET("/orders", orderController.GetOrders)
		customer.GET("/orders/:id", orderController.GetOrderByID)
	}

	seller := api.Group("/seller")
	seller.Use(middleware.RequireRole(middleware.RoleSeller))
	{
		seller.POST("/products", productController.CreateProduct)
		seller.PUT("/products/:productId", productController.UpdateProduct)
	}
}
