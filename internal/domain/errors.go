package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound      = errors.New("user profile not found")
	ErrProfileAlreadyExists = errors.New("user profile already exists")
	ErrPreferencesNotFound  = errors.New("user preferences not found")
	ErrEventNotFound        = errors.New("group event not found")
)

// AuthError is any rejection from the identity provider, normalized to a
// human-readable reason. The API layer maps it to 401 or 400 depending on
// the route.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

func NewAuthError(format string, args ...any) *AuthError {
	return &AuthError{Reason: fmt.Sprintf(format, args...)}
}

// IsAuthError reports whether err is an identity-provider rejection.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
