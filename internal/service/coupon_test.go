package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

func newTestCouponService() (*CouponService, *memCouponStore) {
	coupons := newMemCouponStore()
	svc := NewCouponService(coupons)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, coupons
}

func expiry() time.Time {
	return time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func TestCreateCouponNormalizesCode(t *testing.T) {
	svc, _ := newTestCouponService()

	coupon, err := svc.Create(context.Background(), testVendor, CouponInput{
		Code:          " summer10 ",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 10,
		ExpiresAt:     expiry(),
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", coupon.Code)
	assert.Equal(t, 1, coupon.UsageLimit)
	assert.Equal(t, testVendor.ID, coupon.CreatedBy)
	assert.Equal(t, model.RoleVendor, coupon.CreatedRole)
}

func TestCreateCouponValidation(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testCustomer, CouponInput{Code: "X", DiscountType: model.DiscountFlat, DiscountValue: 5, ExpiresAt: expiry()})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Create(ctx, testAdmin, CouponInput{DiscountType: model.DiscountFlat, DiscountValue: 5, ExpiresAt: expiry()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, testAdmin, CouponInput{Code: "X", DiscountType: "bogus", DiscountValue: 5, ExpiresAt: expiry()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, testAdmin, CouponInput{Code: "X", DiscountType: model.DiscountPercentage, DiscountValue: 150, ExpiresAt: expiry()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, testAdmin, CouponInput{Code: "X", DiscountType: model.DiscountFlat, DiscountValue: 5})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCouponDuplicateCode(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()
	in := CouponInput{Code: "TWICE", DiscountType: model.DiscountFlat, DiscountValue: 5, ExpiresAt: expiry()}

	_, err := svc.Create(ctx, testAdmin, in)
	require.NoError(t, err)
	_, err = svc.Create(ctx, testAdmin, in)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplyFlatAndPercentage(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testAdmin, CouponInput{
		Code: "FLAT50", DiscountType: model.DiscountFlat, DiscountValue: 50,
		UsageLimit: 5, ExpiresAt: expiry(),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testAdmin, CouponInput{
		Code: "PCT20", DiscountType: model.DiscountPercentage, DiscountValue: 20,
		MaxDiscount: 30, UsageLimit: 5, ExpiresAt: expiry(),
	})
	require.NoError(t, err)

	discount, err := svc.Apply(ctx, testCustomer, "flat50", 200)
	require.NoError(t, err)
	assert.Equal(t, 50.0, discount)

	discount, err = svc.Apply(ctx, testCustomer, "PCT20", 100)
	require.NoError(t, err)
	assert.Equal(t, 20.0, discount)

	// The max-discount cap kicks in on large orders.
	discount, err = svc.Apply(ctx, testCustomer, "PCT20", 1000)
	require.NoError(t, err)
	assert.Equal(t, 30.0, discount)

	// A flat discount never exceeds the order amount.
	discount, err = svc.Apply(ctx, testCustomer, "FLAT50", 20)
	require.NoError(t, err)
	assert.Equal(t, 20.0, discount)
}

func TestApplyGuards(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testAdmin, CouponInput{
		Code: "MIN100", DiscountType: model.DiscountFlat, DiscountValue: 10,
		MinOrderAmount: 100, ExpiresAt: expiry(),
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, testCustomer, "MIN100", 50)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Apply(ctx, testCustomer, "GHOST", 200)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Apply(ctx, nil, "MIN100", 200)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestApplyValidityWindow(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testAdmin, CouponInput{
		Code: "EXPIRED", DiscountType: model.DiscountFlat, DiscountValue: 10,
		ExpiresAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, testCustomer, "EXPIRED", 200)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Create(ctx, testAdmin, CouponInput{
		Code: "FUTURE", DiscountType: model.DiscountFlat, DiscountValue: 10,
		ValidFrom: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		ExpiresAt: expiry(),
	})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, testCustomer, "FUTURE", 200)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApplyPerUserUsageLimit(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testAdmin, CouponInput{
		Code: "ONCE", DiscountType: model.DiscountFlat, DiscountValue: 10,
		UsageLimit: 1, ExpiresAt: expiry(),
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, testCustomer, "ONCE", 100)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, testCustomer, "ONCE", 100)
	assert.ErrorIs(t, err, ErrInvalidState)

	// The limit is per user, not global.
	other := &model.User{ID: 77, Role: model.RoleCustomer}
	_, err = svc.Apply(ctx, other, "ONCE", 100)
	assert.NoError(t, err)
}

func TestCouponOwnershipOnMutation(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()

	coupon, err := svc.Create(ctx, testVendor, CouponInput{
		Code: "MINE", DiscountType: model.DiscountFlat, DiscountValue: 10, ExpiresAt: expiry(),
	})
	require.NoError(t, err)

	otherVendor := &model.User{ID: 88, Role: model.RoleVendor}
	_, err = svc.Update(ctx, otherVendor, coupon.ID, CouponInput{DiscountValue: 20})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(ctx, otherVendor, coupon.ID), ErrUnauthorized)

	updated, err := svc.Update(ctx, testVendor, coupon.ID, CouponInput{DiscountValue: 20})
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.DiscountValue)

	assert.NoError(t, svc.Delete(ctx, testAdmin, coupon.ID))
}

func TestCouponUsageReport(t *testing.T) {
	svc, _ := newTestCouponService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testVendor, CouponInput{
		Code: "TRACKED", DiscountType: model.DiscountFlat, DiscountValue: 10,
		UsageLimit: 3, ExpiresAt: expiry(),
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, testCustomer, "TRACKED", 100)
	require.NoError(t, err)

	_, users, err := svc.Usage(ctx, testVendor, "tracked")
	require.NoError(t, err)
	assert.Equal(t, []int64{testCustomer.ID}, users)

	otherVendor := &model.User{ID: 88, Role: model.RoleVendor}
	_, _, err = svc.Usage(ctx, otherVendor, "TRACKED")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
