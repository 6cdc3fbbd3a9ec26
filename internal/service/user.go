package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// UserService covers admin/vendor user management and self-service profile edits.
type UserService struct {
	users  UserStore
	hasher Hasher
	mailer Mailer
}

func NewUserService(users UserStore, hasher Hasher, mailer Mailer) *UserService {
	return &UserService{users: users, hasher: hasher, mailer: mailer}
}

// List pages users. Customers are denied; vendors only ever see customers; admin
// accounts are never returned to list queries regardless of the requested filter.
func (s *UserService) List(ctx context.Context, actor *model.User, f UserFilter) ([]model.User, int, error) {
	if err := Authorize(actor, model.RoleAdmin, model.RoleVendor); err != nil {
		return nil, 0, err
	}
	switch actor.Role {
	case model.RoleVendor:
		f.Roles = []model.Role{model.RoleCustomer}
	default:
		if len(f.Roles) == 0 {
			f.Roles = []model.Role{model.RoleCustomer, model.RoleVendor}
		}
		for _, r := range f.Roles {
			if r == model.RoleAdmin {
				return nil, 0, ErrUnauthorized
			}
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	return s.users.List(ctx, f)
}

// Get returns a single user. Self or admin.
func (s *UserService) Get(ctx context.Context, actor *model.User, id int64) (*model.User, error) {
	if err := AuthorizeOwnerOrRole(actor, id, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

type UpdateUserInput struct {
	Name      *string
	Phone     *string
	Addresses []model.Address
	Password  *string
	Role      *model.Role
}

// Update edits a user. Self may change profile fields and password; only an admin
// may change a role, and a non-admin can never touch an admin account.
func (s *UserService) Update(ctx context.Context, actor *model.User, id int64, in UpdateUserInput) (*model.User, error) {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwnerOrRole(actor, target.ID, model.RoleAdmin); err != nil {
		return nil, err
	}
	if target.Role == model.RoleAdmin && actor.Role != model.RoleAdmin {
		return nil, ErrUnauthorized
	}

	if in.Role != nil {
		if actor.Role != model.RoleAdmin {
			return nil, ErrUnauthorized
		}
		if !in.Role.Valid() {
			return nil, validationf("unknown role %q", *in.Role)
		}
		target.Role = *in.Role
	}
	if in.Name != nil {
		target.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		target.Phone = *in.Phone
	}
	if in.Addresses != nil {
		target.Addresses = in.Addresses
	}
	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}

	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, validationf("password must be at least 6 characters")
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
		}
		if err := s.users.UpdatePassword(ctx, target.ID, hash); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// ToggleStatus flips active/inactive. Admin only, and never against another admin.
func (s *UserService) ToggleStatus(ctx context.Context, actor *model.User, id int64) (*model.User, error) {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeStatusToggle(actor, target); err != nil {
		return nil, err
	}
	if target.Status == model.StatusActive {
		target.Status = model.StatusInactive
	} else {
		target.Status = model.StatusActive
	}
	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Delete removes a user. Admin only; non-admin actors can never delete an admin.
func (s *UserService) Delete(ctx context.Context, actor *model.User, id int64) error {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return err
	}
	if target.Role == model.RoleAdmin && actor.ID != target.ID {
		return ErrUnauthorized
	}
	return s.users.Delete(ctx, id)
}

type AddUserInput struct {
	Name  string
	Email string
	Role  model.Role
	Phone string
}

// AdminAdd creates a user with a generated temporary password and emails the
// credentials. Admin only.
func (s *UserService) AdminAdd(ctx context.Context, actor *model.User, in AddUserInput) (*model.User, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, validationf("email is required")
	}
	role := in.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, validationf("unknown role %q", in.Role)
	}

	password, err := generatePassword(12)
	if err != nil {
		return nil, fmt.Errorf("%w: generate password: %v", ErrInternal, err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       model.StatusActive,
		Phone:        in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	sendAsync(s.mailer, user.Email, "Your Account Details", credentialsBody(user.Name, user.Email, password))
	return user, nil
}

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!@#$%"

func generatePassword(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String(), nil
}
