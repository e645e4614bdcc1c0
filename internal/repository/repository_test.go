package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"facemark/identity/internal/identity"
)

func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("FACEMARK_TEST_DB")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		t.Skip("FACEMARK_TEST_DB or DATABASE_URL not set")
		return nil
	}
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Skipf("db unavailable: %v", err)
		return nil
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Skipf("db unavailable: %v", err)
		return nil
	}
	return pool
}

func TestCreateAndLookup(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	defer pool.Close()

	store := NewStore(pool, 5*time.Second)
	ctx := context.Background()
	suffix := time.Now().Format("150405.000")

	in := identity.NewTeacher{
		Name:         "Test Teacher",
		Email:        fmt.Sprintf("teacher.%s@example.local", suffix),
		PasswordHash: "$2a$10$0000000000000000000000",
		EmployeeID:   "E-" + suffix,
		Department:   "Class 5",
	}

	created, err := store.Create(ctx, in)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("expected assigned id and creation time, got %+v", created)
	}

	byEmail, err := store.GetByEmail(ctx, in.Email)
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("lookup by email: %+v, %v", byEmail, err)
	}
	byEmployee, err := store.GetByEmployeeID(ctx, in.EmployeeID)
	if err != nil || byEmployee.ID != created.ID {
		t.Fatalf("lookup by employee id: %+v, %v", byEmployee, err)
	}
	byID, err := store.GetByID(ctx, created.ID)
	if err != nil || byID.Email != in.Email {
		t.Fatalf("lookup by id: %+v, %v", byID, err)
	}

	// Same email again must hit the email index.
	dup := in
	dup.EmployeeID = "E2-" + suffix
	_, err = store.Create(ctx, dup)
	var ce identity.ConflictError
	if !errors.As(err, &ce) || ce.Field != identity.FieldEmail {
		t.Fatalf("expected email conflict, got %v", err)
	}

	// Same employee id, fresh email, must hit the employee_id index.
	dup = in
	dup.Email = fmt.Sprintf("other.%s@example.local", suffix)
	_, err = store.Create(ctx, dup)
	if !errors.As(err, &ce) || ce.Field != identity.FieldEmployeeID {
		t.Fatalf("expected employee id conflict, got %v", err)
	}

	if _, err := store.GetByID(ctx, created.ID+1_000_000); !identity.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
