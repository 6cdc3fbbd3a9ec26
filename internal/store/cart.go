package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

type CartStore struct {
	pool *pgxpool.Pool
}

func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

// Get returns the user's cart. An absent row reads as an empty cart.
func (s *CartStore) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	cart := &model.Cart{UserID: userID}
	var items []byte
	row := s.pool.QueryRow(ctx, `SELECT items, updated_at FROM carts WHERE user_id = $1`, userID)
	if err := row.Scan(&items, &cart.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart, nil
		}
		return nil, translate(err, "select cart")
	}
	if err := json.Unmarshal(items, &cart.Items); err != nil {
		return nil, errors.Wrap(err, "unmarshal cart items")
	}
	return cart, nil
}

func (s *CartStore) Save(ctx context.Context, c *model.Cart) error {
	if c.Items == nil {
		c.Items = []model.CartItem{}
	}
	items, err := json.Marshal(c.Items)
	if err != nil {
		return errors.Wrap(err, "marshal cart items")
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO carts (user_id, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = now()
		RETURNING updated_at`,
		c.UserID, items)
	if err := row.Scan(&c.UpdatedAt); err != nil {
		return translate(err, "save cart")
	}
	return nil
}
