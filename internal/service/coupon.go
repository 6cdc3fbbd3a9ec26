package service

import (
	"context"
	"strings"
	"time"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// CouponStore persists coupons and their per-user redemptions. Create returns
// ErrConflict for a duplicate code.
type CouponStore interface {
	Create(ctx context.Context, c *model.Coupon) error
	GetByID(ctx context.Context, id int64) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Update(ctx context.Context, c *model.Coupon) error
	Delete(ctx context.Context, id int64) error
	RedemptionCount(ctx context.Context, couponID, userID int64) (int, error)
	Redemptions(ctx context.Context, couponID int64) ([]int64, error)
	RecordRedemption(ctx context.Context, couponID, userID int64) error
}

// CouponService is coupon management plus customer redemption. The usage limit
// is enforced per user.
type CouponService struct {
	coupons CouponStore
	now     func() time.Time
}

func NewCouponService(coupons CouponStore) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

type CouponInput struct {
	Code           string
	DiscountType   model.DiscountType
	DiscountValue  float64
	MinOrderAmount float64
	MaxDiscount    float64
	UsageLimit     int
	ValidFrom      time.Time
	ExpiresAt      time.Time
}

// Create adds a coupon owned by the actor. Admin or vendor.
func (s *CouponService) Create(ctx context.Context, actor *model.User, in CouponInput) (*model.Coupon, error) {
	if err := Authorize(actor, model.RoleAdmin, model.RoleVendor); err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, validationf("coupon code is required")
	}
	if !in.DiscountType.Valid() {
		return nil, validationf("unknown discount type %q", in.DiscountType)
	}
	if in.DiscountValue <= 0 {
		return nil, validationf("discount value must be greater than zero")
	}
	if in.DiscountType == model.DiscountPercentage && in.DiscountValue > 100 {
		return nil, validationf("percentage discount cannot exceed 100")
	}
	if in.ExpiresAt.IsZero() {
		return nil, validationf("expiry date is required")
	}
	usageLimit := in.UsageLimit
	if usageLimit < 1 {
		usageLimit = 1
	}

	coupon := &model.Coupon{
		Code:           code,
		DiscountType:   in.DiscountType,
		DiscountValue:  in.DiscountValue,
		MinOrderAmount: in.MinOrderAmount,
		MaxDiscount:    in.MaxDiscount,
		UsageLimit:     usageLimit,
		ValidFrom:      in.ValidFrom,
		ExpiresAt:      in.ExpiresAt,
		CreatedBy:      actor.ID,
		CreatedRole:    actor.Role,
	}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) List(ctx context.Context, actor *model.User) ([]model.Coupon, error) {
	if err := Authorize(actor, model.RoleAdmin, model.RoleVendor); err != nil {
		return nil, err
	}
	return s.coupons.List(ctx)
}

// Update edits a coupon. Owner or admin.
func (s *CouponService) Update(ctx context.Context, actor *model.User, id int64, in CouponInput) (*model.Coupon, error) {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwnerOrRole(actor, coupon.CreatedBy, model.RoleAdmin); err != nil {
		return nil, err
	}
	if in.DiscountType != "" {
		if !in.DiscountType.Valid() {
			return nil, validationf("unknown discount type %q", in.DiscountType)
		}
		coupon.DiscountType = in.DiscountType
	}
	if in.DiscountValue > 0 {
		coupon.DiscountValue = in.DiscountValue
	}
	if in.MinOrderAmount >= 0 {
		coupon.MinOrderAmount = in.MinOrderAmount
	}
	if in.MaxDiscount >= 0 {
		coupon.MaxDiscount = in.MaxDiscount
	}
	if in.UsageLimit > 0 {
		coupon.UsageLimit = in.UsageLimit
	}
	if !in.ValidFrom.IsZero() {
		coupon.ValidFrom = in.ValidFrom
	}
	if !in.ExpiresAt.IsZero() {
		coupon.ExpiresAt = in.ExpiresAt
	}
	if err := s.coupons.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon. Owner or admin.
func (s *CouponService) Delete(ctx context.Context, actor *model.User, id int64) error {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeOwnerOrRole(actor, coupon.CreatedBy, model.RoleAdmin); err != nil {
		return err
	}
	return s.coupons.Delete(ctx, id)
}

// Usage reports who redeemed a coupon. Owner or admin.
func (s *CouponService) Usage(ctx context.Context, actor *model.User, code string) (*model.Coupon, []int64, error) {
	coupon, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, nil, err
	}
	if err := AuthorizeOwnerOrRole(actor, coupon.CreatedBy, model.RoleAdmin); err != nil {
		return nil, nil, err
	}
	users, err := s.coupons.Redemptions(ctx, coupon.ID)
	if err != nil {
		return nil, nil, err
	}
	return coupon, users, nil
}

// Apply redeems a coupon against an order amount and returns the discount.
// Guards: validity window, minimum order amount, per-user usage limit.
func (s *CouponService) Apply(ctx context.Context, actor *model.User, code string, orderAmount float64) (float64, error) {
	if actor == nil {
		return 0, ErrUnauthenticated
	}
	if orderAmount <= 0 {
		return 0, validationf("order amount must be greater than zero")
	}
	coupon, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return 0, err
	}
	if !coupon.ActiveAt(s.now()) {
		return 0, invalidStatef("coupon is not active")
	}
	if orderAmount < coupon.MinOrderAmount {
		return 0, validationf("order amount is below the coupon minimum")
	}
	used, err := s.coupons.RedemptionCount(ctx, coupon.ID, actor.ID)
	if err != nil {
		return 0, err
	}
	if used >= coupon.UsageLimit {
		return 0, invalidStatef("coupon usage limit reached")
	}

	discount := coupon.DiscountValue
	if coupon.DiscountType == model.DiscountPercentage {
		discount = orderAmount * coupon.DiscountValue / 100
	}
	if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
		discount = coupon.MaxDiscount
	}
	if discount > orderAmount {
		discount = orderAmount
	}

	if err := s.coupons.RecordRedemption(ctx, coupon.ID, actor.ID); err != nil {
		return 0, err
	}
	return discount, nil
}
