package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

const (
	// ResetTokenTTL bounds the forgot-password window.
	ResetTokenTTL = 15 * time.Minute

	purposeSession = "session"
	purposeReset   = "reset"
)

// Claims is the payload embedded in every signed token.
type Claims struct {
	UserID  int64      `json:"uid"`
	Role    model.Role `json:"role,omitempty"`
	Purpose string     `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens and the short-lived
// reset-token variant. The revocation store is injected, never package state.
type TokenService struct {
	secret  []byte
	revoked RevocationStore
	now     func() time.Time
}

func NewTokenService(secret string, revoked RevocationStore) *TokenService {
	return &TokenService{
		secret:  []byte(secret),
		revoked: revoked,
		now:     time.Now,
	}
}

// Issue signs a session token for the user. Stateless apart from signing.
func (s *TokenService) Issue(userID int64, role model.Role, ttl time.Duration) (string, error) {
	return s.sign(userID, role, purposeSession, ttl)
}

// IssueResetToken signs a password-reset token. It is rejected everywhere except
// VerifyResetToken.
func (s *TokenService) IssueResetToken(userID int64) (string, error) {
	return s.sign(userID, "", purposeReset, ResetTokenTTL)
}

func (s *TokenService) sign(userID int64, role model.Role, purpose string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates a session token: revocation first, then signature and expiry.
// A reset token presented here fails even when its signature is good.
func (s *TokenService) Verify(ctx context.Context, token string) (*Claims, error) {
	return s.verify(ctx, token, purposeSession)
}

// VerifyResetToken validates a reset token for the reset-password operation only.
func (s *TokenService) VerifyResetToken(ctx context.Context, token string) (*Claims, error) {
	return s.verify(ctx, token, purposeReset)
}

func (s *TokenService) verify(ctx context.Context, token, wantPurpose string) (*Claims, error) {
	// The revocation check runs before signature verification so a revoked but
	// otherwise valid token reports ErrTokenRevoked, not ErrTokenInvalid.
	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Purpose != wantPurpose {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Revoke adds the token to the revocation set for its remaining lifetime. Tokens
// whose expiry cannot be read are blocked for the default session TTL anyway.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	ttl := SessionTTL
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Time.Sub(s.now()); remaining > 0 {
			ttl = remaining
		}
	}
	if err := s.revoked.Revoke(ctx, token, ttl); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// SessionTTL is the default lifetime of a sign-in token.
const SessionTTL = 24 * time.Hour
