package routes

import (
	"net/http"

	"bookstore-service/controllers"
	"bookstore-service/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the controllers and route-level middleware the router
// needs.
type Handlers struct {
	Auth   *controllers.AuthController
	Books  *controllers.BookController
	Carts  *controllers.CartController
	Orders *controllers.OrderController

	// Authenticate is applied to every non-public route.
	Authenticate gin.HandlerFunc
	// LoginLimiter is applied to the /auth routes; may be nil.
	LoginLimiter gin.HandlerFunc
	// Metrics serves GET /metrics; may be nil.
	Metrics http.Handler
}

// Register sets up all routes.
func Register(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "bookstore-service"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	auth := r.Group("/auth")
	if h.LoginLimiter != nil {
		auth.Use(h.LoginLimiter)
	}
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// Public catalog
	r.GET("/books", h.Books.ListBooks)
	r.GET("/books/:id", h.Books.GetBook)
	r.GET("/categories", h.Books.ListCategories)
	r.GET("/categories/:id", h.Books.GetCategory)
	r.GET("/categories/:id/books", h.Books.ListCategoryBooks)

	authed := r.Group("", h.Authenticate)

	cart := authed.Group("/cart")
	cart.GET("", h.Carts.GetCart)
	cart.POST("", h.Carts.AddItem)
	cart.PUT("/items/:itemId", h.Carts.UpdateItem)
	cart.DELETE("/items/:itemId", h.Carts.RemoveItem)

	orders := authed.Group("/orders")
	orders.POST("", h.Orders.CreateOrder)
	orders.GET("", h.Orders.GetOrders)
	orders.GET("/:orderId/items", h.Orders.GetOrderItems)
	orders.GET("/:orderId/items/:itemId", h.Orders.GetOrderItem)
	orders.PATCH("/:orderId", middleware.AdminOnly(), h.Orders.UpdateStatus)

	// Admin-only routes
	admin := authed.Group("", middleware.AdminOnly())
	admin.GET("/admin/orders", h.Orders.ListAllOrders)
	admin.POST("/books", h.Books.CreateBook)
	admin.PUT("/books/:id", h.Books.UpdateBook)
	admin.DELETE("/books/:id", h.Books.DeleteBook)
	admin.POST("/categories", h.Books.CreateCategory)
	admin.PUT("/categories/:id", h.Books.UpdateCategory)
	admin.DELETE("/categories/:id", h.Books.DeleteCategory)
}
