package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

type CouponHandler struct {
	coupons *service.CouponService
}

func NewCouponHandler(coupons *service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type couponRequest struct {
	Code           string             `json:"code"`
	DiscountType   model.DiscountType `json:"discount_type"`
	DiscountValue  float64            `json:"discount_value"`
	MinOrderAmount float64            `json:"min_order_amount"`
	MaxDiscount    float64            `json:"max_discount"`
	UsageLimit     int                `json:"usage_limit"`
	ValidFrom      time.Time          `json:"valid_from"`
	ExpiresAt      time.Time          `json:"expires_at"`
}

func (r couponRequest) toInput() service.CouponInput {
	return service.CouponInput{
		Code:           r.Code,
		DiscountType:   r.DiscountType,
		DiscountValue:  r.DiscountValue,
		MinOrderAmount: r.MinOrderAmount,
		MaxDiscount:    r.MaxDiscount,
		UsageLimit:     r.UsageLimit,
		ValidFrom:      r.ValidFrom,
		ExpiresAt:      r.ExpiresAt,
	}
}

// Create adds a coupon. Admin or vendor.
func (h *CouponHandler) Create(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid coupon payload", gin.H{"details": err.Error()})
		return
	}
	coupon, err := h.coupons.Create(c.Request.Context(), middleware.CurrentUser(c), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Coupon created successfully", gin.H{"coupon": coupon})
}

// List returns every coupon. Admin or vendor.
func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Coupons retrieved successfully", gin.H{"coupons": coupons})
}

// Update edits a coupon. Owner or admin.
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid coupon id", gin.H{"details": err.Error()})
		return
	}
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid coupon payload", gin.H{"details": err.Error()})
		return
	}
	coupon, err := h.coupons.Update(c.Request.Context(), middleware.CurrentUser(c), id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Coupon updated successfully", gin.H{"coupon": coupon})
}

// Delete removes a coupon. Owner or admin.
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid coupon id", gin.H{"details": err.Error()})
		return
	}
	if err := h.coupons.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Coupon deleted successfully", nil)
}

// Usage reports who redeemed a coupon. Owner or admin.
func (h *CouponHandler) Usage(c *gin.Context) {
	coupon, users, err := h.coupons.Usage(c.Request.Context(), middleware.CurrentUser(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Coupon usage retrieved", gin.H{
		"coupon":      coupon,
		"redeemed_by": users,
	})
}

type applyCouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required"`
}

// Apply redeems a coupon against an order amount and returns the discount.
func (h *CouponHandler) Apply(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid coupon payload", gin.H{"details": err.Error()})
		return
	}
	discount, err := h.coupons.Apply(c.Request.Context(), middleware.CurrentUser(c), req.Code, req.OrderAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Coupon applied successfully", gin.H{
		"discount": discount,
		"payable":  req.OrderAmount - discount,
	})
}
