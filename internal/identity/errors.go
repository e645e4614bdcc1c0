package identity

import (
	"errors"
	"fmt"
)

// Sentinel kinds, stable for errors.Is and for status-code mapping at the
// HTTP boundary. Internal detail wraps a kind; the boundary logs the full
// chain and sends only an enumerated message.
var (
	ErrValidation         = errors.New("invalid_input")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotFound           = errors.New("not_found")
	ErrConflict           = errors.New("conflict")
	ErrCorruptCredential  = errors.New("corrupt_credential")
	ErrStoreUnavailable   = errors.New("store_unavailable")
)

// Uniqueness fields reported by ConflictError.
const (
	FieldEmail      = "email"
	FieldEmployeeID = "employee_id"
)

// ConflictError reports a uniqueness violation for a specific logical field.
// The store adapter raises it from the storage constraint, which is the
// authoritative duplicate detector regardless of any pre-check.
type ConflictError struct {
	Field string
}

func (e ConflictError) Error() string {
	if e.Field == "" {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%v: %s", ErrConflict, e.Field)
}

func (e ConflictError) Unwrap() error { return ErrConflict }

// ValidationError carries a user-actionable message for a client-side input
// fault. The message is safe to return verbatim.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidation, e.Msg)
}

func (e ValidationError) Unwrap() error { return ErrValidation }

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
