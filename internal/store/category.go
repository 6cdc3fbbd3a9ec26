package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

type CategoryStore struct {
	pool *pgxpool.Pool
}

func NewCategoryStore(pool *pgxpool.Pool) *CategoryStore {
	return &CategoryStore{pool: pool}
}

func (s *CategoryStore) Create(ctx context.Context, c *model.Category) error {
	if c.Subcategories == nil {
		c.Subcategories = []string{}
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO categories (name, subcategories)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Subcategories)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return translate(err, "insert category")
	}
	return nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, subcategories, created_at, updated_at FROM categories WHERE id = $1`, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Subcategories, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, translate(err, "select category")
	}
	return &c, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, subcategories, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, translate(err, "list categories")
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Subcategories, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, translate(err, "scan category")
		}
		categories = append(categories, c)
	}
	return categories, translate(rows.Err(), "list categories")
}

func (s *CategoryStore) Update(ctx context.Context, c *model.Category) error {
	if c.Subcategories == nil {
		c.Subcategories = []string{}
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE categories SET name = $2, subcategories = $3, updated_at = now() WHERE id = $1`,
		c.ID, c.Name, c.Subcategories)
	if err != nil {
		return translate(err, "update category")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete category")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}
