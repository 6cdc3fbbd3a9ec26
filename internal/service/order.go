package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// OrderStore persists orders. GetByID returns ErrNotFound for absent orders.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	Update(ctx context.Context, o *model.Order) error
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, orderID string, r model.OrderReview) error
}

// ReturnStore persists return requests.
type ReturnStore interface {
	Create(ctx context.Context, r *model.ReturnRequest) error
	GetByOrder(ctx context.Context, orderID string, status model.ReturnStatus) (*model.ReturnRequest, error)
	Update(ctx context.Context, r *model.ReturnRequest) error
	ListAll(ctx context.Context) ([]model.ReturnRequest, error)
}

// OrderService owns the order state machine: creation, status transitions,
// delivery marking, return requests, and refund approval. Every transition is
// guarded by role or ownership and fails single-shot.
type OrderService struct {
	orders  OrderStore
	returns ReturnStore
	now     func() time.Time
}

func NewOrderService(orders OrderStore, returns ReturnStore) *OrderService {
	return &OrderService{
		orders:  orders,
		returns: returns,
		now:     time.Now,
	}
}

type CreateOrderInput struct {
	Items           []model.OrderItem
	ShippingAddress model.Address
	PaymentMethod   model.PaymentMethod
	Total           float64
}

// Create places a new order owned by the actor. Guards: items non-empty, every
// quantity >= 1 and unit price >= 0, total > 0, shipping address present.
func (s *OrderService) Create(ctx context.Context, actor *model.User, in CreateOrderInput) (*model.Order, error) {
	if err := Authorize(actor, model.RoleCustomer); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, validationf("order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, validationf("item quantity must be at least 1")
		}
		if it.UnitPrice < 0 {
			return nil, validationf("item price must not be negative")
		}
	}
	if in.Total <= 0 {
		return nil, validationf("order total must be greater than zero")
	}
	if in.ShippingAddress.Street == "" || in.ShippingAddress.City == "" ||
		in.ShippingAddress.PostalCode == "" || in.ShippingAddress.Country == "" {
		return nil, validationf("shipping address is incomplete")
	}
	if !in.PaymentMethod.Valid() {
		return nil, validationf("unknown payment method %q", in.PaymentMethod)
	}

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          actor.ID,
		Items:           in.Items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   model.PaymentPending,
		Total:           in.Total,
		Status:          model.OrderPlaced,
		RefundStatus:    model.RefundNone,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns a single order. Owner and admin only; vendors go through the
// explicit vendor transitions instead of blanket reads.
func (s *OrderService) Get(ctx context.Context, actor *model.User, id string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwnerOrRole(actor, order.UserID, model.RoleAdmin); err != nil {
		return nil, err
	}
	return order, nil
}

// ListMine returns the actor's own orders.
func (s *OrderService) ListMine(ctx context.Context, actor *model.User) ([]model.Order, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	return s.orders.ListByUser(ctx, actor.ID)
}

// ListAll returns every order. Admin only.
func (s *OrderService) ListAll(ctx context.Context, actor *model.User) ([]model.Order, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.orders.ListAll(ctx)
}

// UpdateStatus is the admin override: any non-terminal order may be moved to an
// arbitrary valid status.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *model.User, id string, target model.OrderStatus) (*model.Order, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	if !target.Valid() {
		return nil, validationf("unknown order status %q", target)
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, invalidStatef("order is already %s", order.Status)
	}
	order.Status = target
	if target == model.OrderDelivered && order.DeliveredAt == nil {
		now := s.now()
		order.DeliveredAt = &now
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkShipped transitions placed/processing -> shipped. Vendor only.
func (s *OrderService) MarkShipped(ctx context.Context, actor *model.User, id string) (*model.Order, error) {
	if err := Authorize(actor, model.RoleVendor); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(order.Status, model.OrderShipped) {
		return nil, invalidStatef("cannot ship a %s order", order.Status)
	}
	order.Status = model.OrderShipped
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkDelivered transitions shipped -> delivered. Admin or vendor.
func (s *OrderService) MarkDelivered(ctx context.Context, actor *model.User, id string) (*model.Order, error) {
	if err := Authorize(actor, model.RoleAdmin, model.RoleVendor); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(order.Status, model.OrderDelivered) {
		return nil, invalidStatef("cannot deliver a %s order", order.Status)
	}
	now := s.now()
	order.Status = model.OrderDelivered
	order.DeliveredAt = &now
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RaiseReturn files a return request against the actor's own order. The order
// status is untouched; the refund sub-state moves to pending.
func (s *OrderService) RaiseReturn(ctx context.Context, actor *model.User, orderID, reason, proofImage string) (*model.ReturnRequest, error) {
	if reason == "" {
		return nil, validationf("a return reason is required")
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if order.UserID != actor.ID {
		return nil, ErrUnauthorized
	}
	if order.RefundStatus == model.RefundPending || order.RefundStatus == model.RefundApproved {
		return nil, invalidStatef("a refund is already %s for this order", order.RefundStatus)
	}

	req := &model.ReturnRequest{
		OrderID:    order.ID,
		UserID:     actor.ID,
		Reason:     reason,
		ProofImage: proofImage,
		Status:     model.ReturnPending,
	}
	if err := s.returns.Create(ctx, req); err != nil {
		return nil, err
	}
	order.RefundStatus = model.RefundPending
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveRefund approves a pending refund on a delivered order: refund sub-state
// merges into the main status and the payment is marked refunded. Admin only.
func (s *OrderService) ApproveRefund(ctx context.Context, actor *model.User, orderID string) (*model.Order, error) {
	return s.resolveRefund(ctx, actor, orderID, true)
}

// RejectRefund rejects a pending refund. The order status is unchanged. Admin only.
func (s *OrderService) RejectRefund(ctx context.Context, actor *model.User, orderID string) (*model.Order, error) {
	return s.resolveRefund(ctx, actor, orderID, false)
}

func (s *OrderService) resolveRefund(ctx context.Context, actor *model.User, orderID string, approve bool) (*model.Order, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RefundStatus != model.RefundPending {
		return nil, invalidStatef("refund is not pending")
	}
	if order.Status != model.OrderDelivered {
		return nil, invalidStatef("only delivered orders can be refunded")
	}
	req, err := s.returns.GetByOrder(ctx, orderID, model.ReturnPending)
	if err != nil {
		return nil, err
	}

	if approve {
		order.RefundStatus = model.RefundApproved
		order.Status = model.OrderRefunded
		order.PaymentStatus = model.PaymentRefunded
		req.Status = model.ReturnApproved
	} else {
		order.RefundStatus = model.RefundRejected
		req.Status = model.ReturnRejected
	}
	if err := s.returns.Update(ctx, req); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteReturn closes out an approved return once the goods have come back.
// Admin only; the order's refund must already be approved.
func (s *OrderService) CompleteReturn(ctx context.Context, actor *model.User, orderID string) (*model.ReturnRequest, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RefundStatus != model.RefundApproved {
		return nil, invalidStatef("refund is not approved")
	}
	req, err := s.returns.GetByOrder(ctx, orderID, model.ReturnApproved)
	if err != nil {
		return nil, err
	}
	req.Status = model.ReturnCompleted
	if err := s.returns.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListReturns returns every return request. Admin only.
func (s *OrderService) ListReturns(ctx context.Context, actor *model.User) ([]model.ReturnRequest, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.returns.ListAll(ctx)
}

// Delete removes an order. Admin only.
func (s *OrderService) Delete(ctx context.Context, actor *model.User, id string) error {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// SetTracking attaches carrier tracking info. Admin or vendor.
func (s *OrderService) SetTracking(ctx context.Context, actor *model.User, id, info string) (*model.Order, error) {
	if err := Authorize(actor, model.RoleAdmin, model.RoleVendor); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.TrackingInfo = info
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetTracking reads tracking info. Owner, admin or vendor.
func (s *OrderService) GetTracking(ctx context.Context, actor *model.User, id string) (string, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := AuthorizeOwnerOrRole(actor, order.UserID, model.RoleAdmin, model.RoleVendor); err != nil {
		return "", err
	}
	return order.TrackingInfo, nil
}

// LeaveReview records a review on the actor's own order.
func (s *OrderService) LeaveReview(ctx context.Context, actor *model.User, orderID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return validationf("rating must be between 1 and 5")
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if actor == nil {
		return ErrUnauthenticated
	}
	if order.UserID != actor.ID {
		return ErrUnauthorized
	}
	return s.orders.AddReview(ctx, orderID, model.OrderReview{
		UserID:    actor.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	})
}
