package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"uzazi-salama-backend/models"
	"uzazi-salama-backend/section"

	"github.com/google/uuid"
)

// MemoryUserRepository keeps users in process memory
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return fmt.Errorf("%w: email %s", ErrDuplicate, email)
	}
	now := time.Now().UTC()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = *user
	r.byEmail[email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[user.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = user.Name
	existing.Phone = user.Phone
	existing.PregnancyWeek = user.PregnancyWeek
	existing.DueDate = user.DueDate
	existing.Language = user.Language
	existing.UpdatedAt = time.Now().UTC()
	r.byID[user.ID] = existing
	user.UpdatedAt = existing.UpdatedAt
	return nil
}

// Exists reports whether a user with id is registered
func (r *MemoryUserRepository) Exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// MemoryUserDataRepository keeps sections in process memory
type MemoryUserDataRepository struct {
	mu    sync.RWMutex
	users *MemoryUserRepository
	data  map[uuid.UUID]map[section.Kind]json.RawMessage
}

// NewMemoryUserDataRepository creates an in-memory store that checks user
// existence against users
func NewMemoryUserDataRepository(users *MemoryUserRepository) *MemoryUserDataRepository {
	return &MemoryUserDataRepository{
		users: users,
		data:  make(map[uuid.UUID]map[section.Kind]json.RawMessage),
	}
}

func (r *MemoryUserDataRepository) Get(ctx context.Context, userID uuid.UUID, kind section.Kind) (json.RawMessage, bool, error) {
	if !r.users.Exists(userID) {
		return nil, false, ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.data[userID][kind]
	if !ok {
		return nil, false, nil
	}
	return cloneRaw(raw), true, nil
}

func (r *MemoryUserDataRepository) Put(ctx context.Context, userID uuid.UUID, kind section.Kind, data json.RawMessage) error {
	if !r.users.Exists(userID) {
		return ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sections, ok := r.data[userID]
	if !ok {
		sections = make(map[section.Kind]json.RawMessage)
		r.data[userID] = sections
	}
	sections[kind] = cloneRaw(data)
	return nil
}

func (r *MemoryUserDataRepository) GetAll(ctx context.Context, userID uuid.UUID) (map[section.Kind]json.RawMessage, error) {
	if !r.users.Exists(userID) {
		return nil, ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[section.Kind]json.RawMessage, len(r.data[userID]))
	for k, v := range r.data[userID] {
		out[k] = cloneRaw(v)
	}
	return out, nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
