package service

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every service. Handlers translate these into HTTP
// statuses; stores translate driver errors into them.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid input")
	ErrConflict        = errors.New("already exists")
	ErrInvalidState    = errors.New("invalid state")
	ErrInternal        = errors.New("internal error")
)

// Credential failures, all a kind of ErrUnauthenticated. A revoked token is kept
// distinct from a malformed one so callers can tell the two apart.
var (
	ErrNoCredential       = fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	ErrTokenRevoked       = fmt.Errorf("%w: token has been invalidated", ErrUnauthenticated)
	ErrTokenInvalid       = fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrUnauthenticated)
	ErrAccountDeactivated = fmt.Errorf("%w: account deactivated", ErrUnauthenticated)
)

// ErrInvalidCredentials is returned on a failed sign-in. It deliberately maps to a
// validation failure (400), not 401, and never says which of email/password was wrong.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrValidation)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
