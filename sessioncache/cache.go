// Package sessioncache holds the client-side record of the logged-in
// teacher: the profile returned by the server and the session token minted
// at login. Clients consult it on launch to decide between the
// authenticated view and the login screen, and clear it on logout.
package sessioncache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrEmpty is returned by Load when no session is cached.
var ErrEmpty = errors.New("session cache empty")

// Principal mirrors the teacher record as the server returns it, without
// the password hash (which never reaches the client).
type Principal struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EmployeeID string    `json:"employeeId"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Entry couples principal and token. They are written and cleared as one
// value: a reader never observes a token without its principal or the
// other way around.
type Entry struct {
	Principal Principal `json:"principal"`
	Token     string    `json:"token"`
}

type Cache interface {
	// Save stores the entry, replacing any previous session.
	Save(ctx context.Context, entry Entry) error
	// Load returns the cached entry, or ErrEmpty.
	Load(ctx context.Context) (Entry, error)
	// Clear removes the session. Clearing an empty cache is not an error.
	Clear(ctx context.Context) error
}

// Logout clears the cache best-effort. A cleanup failure is logged for the
// operator but never surfaced: logout always succeeds from the user's
// perspective and navigation must proceed.
func Logout(ctx context.Context, cache Cache, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	if err := cache.Clear(ctx); err != nil {
		log.Error("session cache clear failed", "error", err)
	}
}
