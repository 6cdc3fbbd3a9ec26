package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

const orderColumns = `id, user_id, shipping_address, payment_method, payment_status, total,
	status, refund_status, tracking_info, delivered_at, created_at, updated_at`

// Create inserts the order and its items in one transaction.
func (s *OrderStore) Create(ctx context.Context, o *model.Order) error {
	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return errors.Wrap(err, "marshal shipping address")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, shipping_address, payment_method, payment_status,
			total, status, refund_status, tracking_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, address, o.PaymentMethod, o.PaymentStatus,
		o.Total, o.Status, o.RefundStatus, o.TrackingInfo)
	if err := row.Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return translate(err, "insert order")
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			o.ID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return translate(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(ctx), "commit order")
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	var address []byte
	row := s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err := row.Scan(&o.ID, &o.UserID, &address, &o.PaymentMethod, &o.PaymentStatus, &o.Total,
		&o.Status, &o.RefundStatus, &o.TrackingInfo, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, translate(err, "select order")
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, errors.Wrap(err, "unmarshal shipping address")
	}

	items, err := s.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]

	if err := s.loadReviews(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (s *OrderStore) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (s *OrderStore) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "list orders")
	}
	defer rows.Close()

	var orders []model.Order
	var ids []string
	for rows.Next() {
		var o model.Order
		var address []byte
		if err := rows.Scan(&o.ID, &o.UserID, &address, &o.PaymentMethod, &o.PaymentStatus, &o.Total,
			&o.Status, &o.RefundStatus, &o.TrackingInfo, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, translate(err, "scan order")
		}
		if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
			return nil, errors.Wrap(err, "unmarshal shipping address")
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list orders")
	}

	items, err := s.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (s *OrderStore) itemsFor(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	byOrder := make(map[string][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = ANY($1)`, orderIDs)
	if err != nil {
		return nil, translate(err, "list order items")
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it model.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, translate(err, "scan order item")
		}
		byOrder[orderID] = append(byOrder[orderID], it)
	}
	return byOrder, translate(rows.Err(), "list order items")
}

func (s *OrderStore) loadReviews(ctx context.Context, o *model.Order) error {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, rating, comment, created_at FROM order_reviews WHERE order_id = $1 ORDER BY created_at`, o.ID)
	if err != nil {
		return translate(err, "list order reviews")
	}
	defer rows.Close()

	for rows.Next() {
		var r model.OrderReview
		if err := rows.Scan(&r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return translate(err, "scan order review")
		}
		o.Reviews = append(o.Reviews, r)
	}
	return translate(rows.Err(), "list order reviews")
}

// Update persists the mutable order fields. Items are immutable after creation.
func (s *OrderStore) Update(ctx context.Context, o *model.Order) error {
	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return errors.Wrap(err, "marshal shipping address")
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET shipping_address = $2, payment_status = $3, status = $4, refund_status = $5,
		    tracking_info = $6, delivered_at = $7, updated_at = now()
		WHERE id = $1`,
		o.ID, address, o.PaymentStatus, o.Status, o.RefundStatus, o.TrackingInfo, o.DeliveredAt)
	if err != nil {
		return translate(err, "update order")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete order")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *OrderStore) AddReview(ctx context.Context, orderID string, r model.OrderReview) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO order_reviews (order_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		orderID, r.UserID, r.Rating, r.Comment, r.CreatedAt)
	return translate(err, "insert order review")
}

type ReturnStore struct {
	pool *pgxpool.Pool
}

func NewReturnStore(pool *pgxpool.Pool) *ReturnStore {
	return &ReturnStore{pool: pool}
}

const returnColumns = `id, order_id, user_id, reason, proof_image, status, created_at, updated_at`

func (s *ReturnStore) Create(ctx context.Context, r *model.ReturnRequest) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO return_requests (order_id, user_id, reason, proof_image, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		r.OrderID, r.UserID, r.Reason, r.ProofImage, r.Status)
	if err := row.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return translate(err, "insert return request")
	}
	return nil
}

// GetByOrder returns the newest return request for the order in the given status.
func (s *ReturnStore) GetByOrder(ctx context.Context, orderID string, status model.ReturnStatus) (*model.ReturnRequest, error) {
	var r model.ReturnRequest
	row := s.pool.QueryRow(ctx, `
		SELECT `+returnColumns+` FROM return_requests
		WHERE order_id = $1 AND status = $2
		ORDER BY created_at DESC LIMIT 1`,
		orderID, status)
	if err := row.Scan(&r.ID, &r.OrderID, &r.UserID, &r.Reason, &r.ProofImage, &r.Status,
		&r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, translate(err, "select return request")
	}
	return &r, nil
}

func (s *ReturnStore) Update(ctx context.Context, r *model.ReturnRequest) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE return_requests SET status = $2, updated_at = now() WHERE id = $1`,
		r.ID, r.Status)
	if err != nil {
		return translate(err, "update return request")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *ReturnStore) ListAll(ctx context.Context) ([]model.ReturnRequest, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+returnColumns+` FROM return_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate(err, "list return requests")
	}
	defer rows.Close()

	var requests []model.ReturnRequest
	for rows.Next() {
		var r model.ReturnRequest
		if err := rows.Scan(&r.ID, &r.OrderID, &r.UserID, &r.Reason, &r.ProofImage, &r.Status,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, translate(err, "scan return request")
		}
		requests = append(requests, r)
	}
	return requests, translate(rows.Err(), "list return requests")
}
