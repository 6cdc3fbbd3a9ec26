package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// Get returns the caller's cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Cart retrieved successfully", gin.H{"cart": cart})
}

// AddItem puts a product in the cart, summing quantities for repeats.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid cart payload", gin.H{"details": err.Error()})
		return
	}
	cart, err := h.carts.AddItem(c.Request.Context(), middleware.CurrentUser(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Item added to cart", gin.H{"cart": cart})
}

// UpdateItem sets the quantity of a product already in the cart.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid cart payload", gin.H{"details": err.Error()})
		return
	}
	cart, err := h.carts.UpdateItem(c.Request.Context(), middleware.CurrentUser(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Cart item updated", gin.H{"cart": cart})
}

// RemoveItem drops a product from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid product id", gin.H{"details": err.Error()})
		return
	}
	cart, err := h.carts.RemoveItem(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Item removed from cart", gin.H{"cart": cart})
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.carts.Clear(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Cart cleared", gin.H{"cart": cart})
}
