package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"facemark/identity/internal/identity"
	"facemark/identity/internal/model"
)

// Store implements identity.Store over PostgreSQL. Uniqueness lives in the
// two unique indexes on teachers(email) and teachers(employee_id); a 23505
// on insert is mapped back to the matching ConflictError.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewStore(pool *pgxpool.Pool, timeout time.Duration) *Store {
	return &Store{pool: pool, timeout: timeout}
}

const teacherColumns = `id, name, email, password_hash, employee_id, department, created_at`

func (s *Store) GetByEmail(ctx context.Context, email string) (model.Teacher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	row := s.pool.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE email = $1
	`, email)
	return scanTeacher(row)
}

func (s *Store) GetByEmployeeID(ctx context.Context, employeeID string) (model.Teacher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	row := s.pool.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE employee_id = $1
	`, employeeID)
	return scanTeacher(row)
}

func (s *Store) GetByID(ctx context.Context, id int64) (model.Teacher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	row := s.pool.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE id = $1
	`, id)
	return scanTeacher(row)
}

func (s *Store) Create(ctx context.Context, in identity.NewTeacher) (model.Teacher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO teachers (name, email, password_hash, employee_id, department)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+teacherColumns+`
	`, in.Name, in.Email, in.PasswordHash, in.EmployeeID, in.Department)
	return scanTeacher(row)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func scanTeacher(row pgx.Row) (model.Teacher, error) {
	var teacher model.Teacher
	err := row.Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Email,
		&teacher.PasswordHash,
		&teacher.EmployeeID,
		&teacher.Department,
		&teacher.CreatedAt,
	)
	if err != nil {
		return model.Teacher{}, mapError(err)
	}
	return teacher, nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.ErrNotFound
	}
	if field, ok := classifyUniqueViolation(err); ok {
		return identity.ConflictError{Field: field}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", identity.ErrStoreUnavailable, err)
	}
	return err
}

// classifyUniqueViolation maps a Postgres unique violation to the logical
// field it protects. Constraint names come from migrations/001_teachers.sql.
func classifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	constraint := strings.ToLower(pgErr.ConstraintName)
	switch {
	case strings.Contains(constraint, "employee"):
		return identity.FieldEmployeeID, true
	case strings.Contains(constraint, "email"):
		return identity.FieldEmail, true
	default:
		return identity.FieldEmail, true
	}
}
