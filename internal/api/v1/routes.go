package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

// Handlers bundles the wired endpoint handlers for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Cart       *CartHandler
	Orders     *OrderHandler
	Coupons    *CouponHandler
}

func RegisterRoutes(rg *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	// Auth routes
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/signin", h.Auth.SignIn)
		authGroup.POST("/signout", h.Auth.SignOut)
		authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
		authGroup.POST("/reset-password", h.Auth.ResetPassword)
	}

	// Public catalog
	rg.GET("/products", h.Products.List)
	rg.GET("/products/:id", h.Products.Get)
	rg.GET("/categories", h.Categories.List)
	rg.GET("/categories/:id", h.Categories.Get)

	// Protected routes
	api := rg.Group("/")
	api.Use(auth.RequireAuth())
	{
		// User routes
		users := api.Group("/users")
		{
			users.GET("/me", h.Users.Me)
			users.GET("", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Users.List)
			users.POST("", auth.RequireRole(model.RoleAdmin), h.Users.Add)
			users.GET("/:id", h.Users.Get)
			users.PUT("/:id", h.Users.Update)
			users.PATCH("/:id/status", auth.RequireRole(model.RoleAdmin), h.Users.ToggleStatus)
			users.DELETE("/:id", auth.RequireRole(model.RoleAdmin), h.Users.Delete)
		}

		// Product management
		products := api.Group("/products")
		{
			products.POST("", auth.RequireRole(model.RoleVendor, model.RoleAdmin), h.Products.Create)
			products.GET("/mine", auth.RequireRole(model.RoleVendor, model.RoleAdmin), h.Products.ListMine)
			products.POST("/import", auth.RequireRole(model.RoleVendor, model.RoleAdmin), h.Products.ImportExcel)
			products.PUT("/:id", h.Products.Update)
			products.PATCH("/:id/status", h.Products.ToggleStatus)
			products.POST("/:id/image", h.Products.UploadImage)
			products.DELETE("/:id", h.Products.Delete)
		}

		// Category management
		categories := api.Group("/categories")
		categories.Use(auth.RequireRole(model.RoleAdmin))
		{
			categories.POST("", h.Categories.Create)
			categories.PUT("/:id", h.Categories.Update)
			categories.POST("/:id/subcategories", h.Categories.AddSubcategory)
			categories.DELETE("/:id/subcategories", h.Categories.RemoveSubcategory)
			categories.DELETE("/:id", h.Categories.Delete)
		}

		// Cart routes
		cart := api.Group("/cart")
		{
			cart.GET("", h.Cart.Get)
			cart.POST("/items", h.Cart.AddItem)
			cart.PUT("/items", h.Cart.UpdateItem)
			cart.DELETE("/items/:id", h.Cart.RemoveItem)
			cart.DELETE("", h.Cart.Clear)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", h.Orders.Create)
			orders.GET("/mine", h.Orders.ListMine)
			orders.GET("", auth.RequireRole(model.RoleAdmin), h.Orders.ListAll)
			orders.GET("/returns", auth.RequireRole(model.RoleAdmin), h.Orders.ListReturns)
			orders.GET("/:id", h.Orders.Get)
			orders.PATCH("/:id/status", auth.RequireRole(model.RoleAdmin), h.Orders.UpdateStatus)
			orders.PATCH("/:id/shipped", auth.RequireRole(model.RoleVendor), h.Orders.MarkShipped)
			orders.PATCH("/:id/delivered", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Orders.MarkDelivered)
			orders.PUT("/:id/tracking", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Orders.SetTracking)
			orders.GET("/:id/tracking", h.Orders.GetTracking)
			orders.POST("/:id/return", h.Orders.RaiseReturn)
			orders.POST("/:id/refund/approve", auth.RequireRole(model.RoleAdmin), h.Orders.ApproveRefund)
			orders.POST("/:id/refund/reject", auth.RequireRole(model.RoleAdmin), h.Orders.RejectRefund)
			orders.POST("/:id/return/complete", auth.RequireRole(model.RoleAdmin), h.Orders.CompleteReturn)
			orders.POST("/:id/review", h.Orders.LeaveReview)
			orders.DELETE("/:id", auth.RequireRole(model.RoleAdmin), h.Orders.Delete)
		}

		// Coupon routes
		coupons := api.Group("/coupons")
		{
			coupons.POST("", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Coupons.Create)
			coupons.GET("", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Coupons.List)
			coupons.PUT("/:id", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Coupons.Update)
			coupons.DELETE("/:id", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Coupons.Delete)
			coupons.GET("/usage/:code", auth.RequireRole(model.RoleAdmin, model.RoleVendor), h.Coupons.Usage)
			coupons.POST("/apply", auth.RequireRole(model.RoleCustomer), h.Coupons.Apply)
		}
	}
}
