package model

import "time"

// Teacher is the sole authenticated principal. PasswordHash never crosses
// the HTTP boundary; response projections live in internal/http.
type Teacher struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	EmployeeID   string
	Department   string
	CreatedAt    time.Time
}
