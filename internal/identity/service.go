package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"facemark/identity/internal/auth"
	"facemark/identity/internal/crypto"
	"facemark/identity/internal/model"
)

// TokenConfig carries the signing parameters the service uses to mint
// session tokens. Passed in at construction, never read from the
// environment at call time.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Service owns the business rules for teacher registration, login and
// profile retrieval. Each call is independent and stateless.
type Service struct {
	store  Store
	hasher *crypto.Hasher
	tokens TokenConfig
}

func NewService(store Store, hasher *crypto.Hasher, tokens TokenConfig) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	EmployeeID string
	Department string
}

// Register creates a new teacher account. The returned record has the
// password hash stripped. No token is issued; the caller logs in separately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (model.Teacher, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.Department = strings.TrimSpace(in.Department)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.EmployeeID == "" || in.Department == "" {
		return model.Teacher{}, ValidationError{Msg: "All fields are required"}
	}

	// Pre-checks give precise errors on the common path; the storage
	// constraint behind Create still decides under concurrency.
	if _, err := s.store.GetByEmail(ctx, in.Email); err == nil {
		return model.Teacher{}, ConflictError{Field: FieldEmail}
	} else if !errors.Is(err, ErrNotFound) {
		return model.Teacher{}, err
	}
	if _, err := s.store.GetByEmployeeID(ctx, in.EmployeeID); err == nil {
		return model.Teacher{}, ConflictError{Field: FieldEmployeeID}
	} else if !errors.Is(err, ErrNotFound) {
		return model.Teacher{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.Teacher{}, fmt.Errorf("hash password: %w", err)
	}

	teacher, err := s.store.Create(ctx, NewTeacher{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		EmployeeID:   in.EmployeeID,
		Department:   in.Department,
	})
	if err != nil {
		return model.Teacher{}, err
	}
	return stripped(teacher), nil
}

// Login verifies credentials and mints a session token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (model.Teacher, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return model.Teacher{}, "", ValidationError{Msg: "Email and password are required"}
	}

	teacher, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Teacher{}, "", ErrInvalidCredentials
		}
		return model.Teacher{}, "", err
	}

	if err := s.hasher.Verify(teacher.PasswordHash, password); err != nil {
		if errors.Is(err, crypto.ErrCorruptHash) {
			return model.Teacher{}, "", fmt.Errorf("%w: teacher %d: %v", ErrCorruptCredential, teacher.ID, err)
		}
		return model.Teacher{}, "", ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(s.tokens.Secret, s.tokens.Issuer, s.tokens.TTL, teacher.ID, teacher.Email)
	if err != nil {
		return model.Teacher{}, "", fmt.Errorf("mint token: %w", err)
	}
	return stripped(teacher), token, nil
}

// Profile returns the projection of a teacher record by id.
func (s *Service) Profile(ctx context.Context, id int64) (model.Teacher, error) {
	teacher, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Teacher{}, err
	}
	return stripped(teacher), nil
}

// NormalizeEmail performs the case-insensitive canonicalization applied at
// every entry point; uniqueness is enforced on the normalized form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func stripped(t model.Teacher) model.Teacher {
	t.PasswordHash = ""
	return t
}
