package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors surfaced by the services. Handlers translate these into
// HTTP status codes; anything else is an internal error and must not leak
// store details to the caller.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
	ErrSelfFollow             = errors.New("cannot follow yourself")
	ErrNotFollowing           = errors.New("not following this user")
	ErrDuplicateInteraction   = errors.New("post already liked")
	ErrAlreadyBookmarked      = errors.New("post already bookmarked")
	ErrDuplicateIdentity      = errors.New("username or email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// notFoundOr maps a missing record to ErrNotFound and passes every other
// store error through untouched.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// GORM's TranslateError covers the Postgres driver; the raw message checks
// cover the pure-Go sqlite driver used in tests, which GORM does not
// translate.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
