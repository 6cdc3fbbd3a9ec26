package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

type ProductStore struct {
	pool *pgxpool.Pool
}

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, name, image_url, price, category_id, description, stock, is_active, created_by, created_at, updated_at`

func (s *ProductStore) Create(ctx context.Context, p *model.Product) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, image_url, price, category_id, description, stock, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		p.Name, p.ImageURL, p.Price, p.CategoryID, p.Description, p.Stock, p.IsActive, p.CreatedBy)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translate(err, "insert product")
	}
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err := row.Scan(&p.ID, &p.Name, &p.ImageURL, &p.Price, &p.CategoryID, &p.Description,
		&p.Stock, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translate(err, "select product")
	}
	return &p, nil
}

func (s *ProductStore) List(ctx context.Context, f service.ProductFilter) ([]model.Product, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if f.CategoryID != 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.CreatedBy != 0 {
		args = append(args, f.CreatedBy)
		where = append(where, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "is_active")
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM products
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		productColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, "list products")
	}
	defer rows.Close()

	var products []model.Product
	total := 0
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ImageURL, &p.Price, &p.CategoryID, &p.Description,
			&p.Stock, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, translate(err, "scan product")
		}
		products = append(products, p)
	}
	return products, total, translate(rows.Err(), "list products")
}

func (s *ProductStore) Update(ctx context.Context, p *model.Product) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, image_url = $3, price = $4, category_id = $5, description = $6,
		    stock = $7, is_active = $8, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.ImageURL, p.Price, p.CategoryID, p.Description, p.Stock, p.IsActive)
	if err != nil {
		return translate(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}
