package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

type CouponStore struct {
	pool *pgxpool.Pool
}

func NewCouponStore(pool *pgxpool.Pool) *CouponStore {
	return &CouponStore{pool: pool}
}

const couponColumns = `id, code, discount_type, discount_value, min_order_amount, max_discount,
	usage_limit, valid_from, expires_at, created_by, created_role, created_at, updated_at`

func (s *CouponStore) Create(ctx context.Context, c *model.Coupon) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO coupons (code, discount_type, discount_value, min_order_amount, max_discount,
			usage_limit, valid_from, expires_at, created_by, created_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		c.Code, c.DiscountType, c.DiscountValue, c.MinOrderAmount, c.MaxDiscount,
		c.UsageLimit, c.ValidFrom, c.ExpiresAt, c.CreatedBy, c.CreatedRole)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return translate(err, "insert coupon")
	}
	return nil
}

func (s *CouponStore) GetByID(ctx context.Context, id int64) (*model.Coupon, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *CouponStore) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return s.getWhere(ctx, "code = $1", code)
}

func (s *CouponStore) getWhere(ctx context.Context, cond string, arg any) (*model.Coupon, error) {
	var c model.Coupon
	row := s.pool.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE `+cond, arg)
	if err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderAmount,
		&c.MaxDiscount, &c.UsageLimit, &c.ValidFrom, &c.ExpiresAt, &c.CreatedBy, &c.CreatedRole,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, translate(err, "select coupon")
	}
	return &c, nil
}

func (s *CouponStore) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate(err, "list coupons")
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderAmount,
			&c.MaxDiscount, &c.UsageLimit, &c.ValidFrom, &c.ExpiresAt, &c.CreatedBy, &c.CreatedRole,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, translate(err, "scan coupon")
		}
		coupons = append(coupons, c)
	}
	return coupons, translate(rows.Err(), "list coupons")
}

func (s *CouponStore) Update(ctx context.Context, c *model.Coupon) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE coupons
		SET discount_type = $2, discount_value = $3, min_order_amount = $4, max_discount = $5,
		    usage_limit = $6, valid_from = $7, expires_at = $8, updated_at = now()
		WHERE id = $1`,
		c.ID, c.DiscountType, c.DiscountValue, c.MinOrderAmount, c.MaxDiscount,
		c.UsageLimit, c.ValidFrom, c.ExpiresAt)
	if err != nil {
		return translate(err, "update coupon")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *CouponStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete coupon")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *CouponStore) RedemptionCount(ctx context.Context, couponID, userID int64) (int, error) {
	var count int
	row := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM coupon_redemptions WHERE coupon_id = $1 AND user_id = $2`, couponID, userID)
	if err := row.Scan(&count); err != nil {
		return 0, translate(err, "count redemptions")
	}
	return count, nil
}

func (s *CouponStore) Redemptions(ctx context.Context, couponID int64) ([]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT user_id FROM coupon_redemptions WHERE coupon_id = $1 ORDER BY user_id`, couponID)
	if err != nil {
		return nil, translate(err, "list redemptions")
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, translate(err, "scan redemption")
		}
		users = append(users, id)
	}
	return users, translate(rows.Err(), "list redemptions")
}

func (s *CouponStore) RecordRedemption(ctx context.Context, couponID, userID int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO coupon_redemptions (coupon_id, user_id) VALUES ($1, $2)`, couponID, userID)
	return translate(err, "record redemption")
}
