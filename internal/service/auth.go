package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// UserStore is the persistence contract consumed by the auth and user services.
// Create returns ErrConflict when the email is already taken; lookups return
// ErrNotFound for absent rows.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, f UserFilter) ([]model.User, int, error)
	Update(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// UserFilter narrows and pages user listings.
type UserFilter struct {
	Roles  []model.Role
	Email  string
	Name   string
	Page   int
	Limit  int
	SortBy string
	Order  string
}

type AuthService struct {
	users        UserStore
	tokens       *TokenService
	hasher       Hasher
	mailer       Mailer
	resetBaseURL string
}

func NewAuthService(users UserStore, tokens *TokenService, hasher Hasher, mailer Mailer, resetBaseURL string) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		hasher:       hasher,
		mailer:       mailer,
		resetBaseURL: resetBaseURL,
	}
}

type SignUpInput struct {
	Name      string
	Email     string
	Password  string
	Role      model.Role
	Phone     string
	Addresses []model.Address
}

// NormalizeEmail lowercases and trims so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new user. Role defaults to customer; admins are only created
// through the admin add-user path. The welcome email is best-effort.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*model.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, validationf("email is required")
	}
	if len(in.Password) < 6 {
		return nil, validationf("password must be at least 6 characters")
	}
	role := in.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if role == model.RoleAdmin || !role.Valid() {
		return nil, validationf("role %q is not allowed on signup", in.Role)
	}

	hash, err := s.hasher.Hash(in.Password)
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
		Addresses:    in.Addresses,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	sendAsync(s.mailer, user.Email, "Welcome to Our Store!", welcomeBody(user.Name))
	return user, nil
}

// SignIn verifies credentials and issues a session token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Active() {
		return "", nil, ErrAccountDeactivated
	}

	token, err := s.tokens.Issue(user.ID, user.Role, SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}
	return token, user, nil
}

// SignOut revokes the presented token. A missing token is not an error: the
// caller ends up signed out either way.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, token)
}

// ForgotPassword issues a 15-minute reset token and emails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	token, err := s.tokens.IssueResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("%w: issue reset token: %v", ErrInternal, err)
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.resetBaseURL, "/"), token)
	sendAsync(s.mailer, user.Email, "Password Reset Request", resetBody(link))
	return nil
}

// ResetPassword consumes a reset token and sets the new password. The token is
// revoked afterwards so it cannot be replayed inside its 15-minute window.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return validationf("password must be at least 6 characters")
	}
	claims, err := s.tokens.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	return s.tokens.Revoke(ctx, token)
}
