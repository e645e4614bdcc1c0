package identity

import (
	"context"
	"sync"
	"time"

	"facemark/identity/internal/model"
)

// MemStore is an in-memory Store. It enforces the same uniqueness
// constraints as the Postgres schema at insert time, so service and handler
// tests exercise the constraint-violation path without a database.
type MemStore struct {
	mu         sync.Mutex
	nextID     int64
	byID       map[int64]model.Teacher
	byEmail    map[string]int64
	byEmployee map[string]int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID:     1,
		byID:       make(map[int64]model.Teacher),
		byEmail:    make(map[string]int64),
		byEmployee: make(map[string]int64),
	}
}

func (m *MemStore) GetByEmail(_ context.Context, email string) (model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return model.Teacher{}, ErrNotFound
	}
	return m.byID[id], nil
}

func (m *MemStore) GetByEmployeeID(_ context.Context, employeeID string) (model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmployee[employeeID]
	if !ok {
		return model.Teacher{}, ErrNotFound
	}
	return m.byID[id], nil
}

func (m *MemStore) GetByID(_ context.Context, id int64) (model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teacher, ok := m.byID[id]
	if !ok {
		return model.Teacher{}, ErrNotFound
	}
	return teacher, nil
}

func (m *MemStore) Create(_ context.Context, in NewTeacher) (model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[in.Email]; exists {
		return model.Teacher{}, ConflictError{Field: FieldEmail}
	}
	if _, exists := m.byEmployee[in.EmployeeID]; exists {
		return model.Teacher{}, ConflictError{Field: FieldEmployeeID}
	}

	teacher := model.Teacher{
		ID:           m.nextID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		EmployeeID:   in.EmployeeID,
		Department:   in.Department,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextID++
	m.byID[teacher.ID] = teacher
	m.byEmail[teacher.Email] = teacher.ID
	m.byEmployee[teacher.EmployeeID] = teacher.ID
	return teacher, nil
}
