package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, status, phone, addresses, created_at, updated_at`

func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	addresses, err := json.Marshal(u.Addresses)
	if err != nil {
		return errors.Wrap(err, "marshal addresses")
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, status, phone, addresses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.Phone, addresses)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translate(err, "insert user")
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getWhere(ctx, "lower(email) = lower($1)", email)
}

func (s *UserStore) getWhere(ctx context.Context, cond string, arg any) (*model.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+cond, arg)
	u, err := scanUser(row)
	if err != nil {
		return nil, translate(err, "select user")
	}
	return u, nil
}

var userSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

func (s *UserStore) List(ctx context.Context, f service.UserFilter) ([]model.User, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if len(f.Roles) > 0 {
		roles := make([]string, len(f.Roles))
		for i, r := range f.Roles {
			roles[i] = string(r)
		}
		args = append(args, roles)
		where = append(where, fmt.Sprintf("role = ANY($%d)", len(args)))
	}
	if f.Email != "" {
		args = append(args, "%"+f.Email+"%")
		where = append(where, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	sortBy, ok := userSortColumns[f.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	order := "ASC"
	if strings.EqualFold(f.Order, "desc") {
		order = "DESC"
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
		FROM users
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		userColumns, strings.Join(where, " AND "), sortBy, order, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, "list users")
	}
	defer rows.Close()

	var users []model.User
	total := 0
	for rows.Next() {
		var u model.User
		var addresses []byte
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
			&u.Phone, &addresses, &u.CreatedAt, &u.UpdatedAt, &total); err != nil {
			return nil, 0, translate(err, "scan user")
		}
		if err := json.Unmarshal(addresses, &u.Addresses); err != nil {
			return nil, 0, errors.Wrap(err, "unmarshal addresses")
		}
		users = append(users, u)
	}
	return users, total, translate(rows.Err(), "list users")
}

func (s *UserStore) Update(ctx context.Context, u *model.User) error {
	addresses, err := json.Marshal(u.Addresses)
	if err != nil {
		return errors.Wrap(err, "marshal addresses")
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, role = $4, status = $5, phone = $6, addresses = $7, updated_at = now()
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Role, u.Status, u.Phone, addresses)
	if err != nil {
		return translate(err, "update user")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return translate(err, "update password")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	var addresses []byte
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&u.Phone, &addresses, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addresses, &u.Addresses); err != nil {
		return nil, errors.Wrap(err, "unmarshal addresses")
	}
	return &u, nil
}
