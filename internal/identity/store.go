package identity

import (
	"context"

	"facemark/identity/internal/model"
)

// NewTeacher is the insert payload. Email must already be normalized and the
// password already hashed by the caller.
type NewTeacher struct {
	Name         string
	Email        string
	PasswordHash string
	EmployeeID   string
	Department   string
}

// Store is the credential persistence boundary.
//
// Contract:
//   - Lookup misses return ErrNotFound.
//   - Create must reject a duplicate email or employee id with
//     ConflictError, enforced by the storage layer itself so that two
//     concurrent registrations cannot both succeed past the pre-check.
//   - Timeouts and connection failures wrap ErrStoreUnavailable.
type Store interface {
	GetByEmail(ctx context.Context, email string) (model.Teacher, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (model.Teacher, error)
	GetByID(ctx context.Context, id int64) (model.Teacher, error)
	Create(ctx context.Context, in NewTeacher) (model.Teacher, error)
}
