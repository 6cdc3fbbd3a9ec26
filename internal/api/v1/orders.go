package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	Items           []model.OrderItem   `json:"items" binding:"required"`
	ShippingAddress model.Address       `json:"shipping_address"`
	PaymentMethod   model.PaymentMethod `json:"payment_method"`
	Total           float64             `json:"total"`
}

// Create places an order. Customer only.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid order payload", gin.H{"details": err.Error()})
		return
	}
	order, err := h.orders.Create(c.Request.Context(), middleware.CurrentUser(c), service.CreateOrderInput{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Total:           req.Total,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Order placed successfully", gin.H{"order": order})
}

// ListMine returns the caller's own orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.orders.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", gin.H{"orders": orders})
}

// ListAll returns every order. Admin only.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", gin.H{"orders": orders})
}

// Get returns one order. Owner or admin.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order retrieved successfully", gin.H{"order": order})
}

type updateStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus is the admin override onto any valid status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid status payload", gin.H{"details": err.Error()})
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order status updated", gin.H{"order": order})
}

// MarkShipped moves an order to shipped. Vendor only.
func (h *OrderHandler) MarkShipped(c *gin.Context) {
	order, err := h.orders.MarkShipped(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order marked as shipped", gin.H{"order": order})
}

// MarkDelivered moves a shipped order to delivered. Admin or vendor.
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	order, err := h.orders.MarkDelivered(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order marked as delivered", gin.H{"order": order})
}

type trackingRequest struct {
	TrackingInfo string `json:"tracking_info" binding:"required"`
}

// SetTracking attaches carrier tracking info. Admin or vendor.
func (h *OrderHandler) SetTracking(c *gin.Context) {
	var req trackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid tracking payload", gin.H{"details": err.Error()})
		return
	}
	order, err := h.orders.SetTracking(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.TrackingInfo)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tracking info updated", gin.H{"order": order})
}

// GetTracking reads tracking info. Owner, admin or vendor.
func (h *OrderHandler) GetTracking(c *gin.Context) {
	info, err := h.orders.GetTracking(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tracking info retrieved", gin.H{"tracking_info": info})
}

type returnRequestPayload struct {
	Reason     string `json:"reason" binding:"required"`
	ProofImage string `json:"proof_image"`
}

// RaiseReturn files a return request against the caller's own order.
func (h *OrderHandler) RaiseReturn(c *gin.Context) {
	var req returnRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid return payload", gin.H{"details": err.Error()})
		return
	}
	request, err := h.orders.RaiseReturn(c.Request.Context(), middleware.CurrentUser(c),
		c.Param("id"), req.Reason, req.ProofImage)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Return request submitted", gin.H{"return_request": request})
}

// ApproveRefund approves a pending refund. Admin only.
func (h *OrderHandler) ApproveRefund(c *gin.Context) {
	order, err := h.orders.ApproveRefund(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Refund approved", gin.H{"order": order})
}

// RejectRefund rejects a pending refund. Admin only.
func (h *OrderHandler) RejectRefund(c *gin.Context) {
	order, err := h.orders.RejectRefund(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Refund rejected", gin.H{"order": order})
}

// CompleteReturn closes out an approved return. Admin only.
func (h *OrderHandler) CompleteReturn(c *gin.Context) {
	request, err := h.orders.CompleteReturn(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Return completed", gin.H{"return_request": request})
}

// ListReturns returns every return request. Admin only.
func (h *OrderHandler) ListReturns(c *gin.Context) {
	requests, err := h.orders.ListReturns(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Return requests retrieved", gin.H{"return_requests": requests})
}

// Delete removes an order. Admin only.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order deleted successfully", nil)
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// LeaveReview records a review on the caller's own order.
func (h *OrderHandler) LeaveReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid review payload", gin.H{"details": err.Error()})
		return
	}
	if err := h.orders.LeaveReview(c.Request.Context(), middleware.CurrentUser(c),
		c.Param("id"), req.Rating, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Review submitted", nil)
}
