package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"uzazi-salama-backend/section"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserDataStore is the keyed document store: one JSON blob per user and section
type UserDataStore interface {
	Get(ctx context.Context, userID uuid.UUID, kind section.Kind) (json.RawMessage, bool, error)
	Put(ctx context.Context, userID uuid.UUID, kind section.Kind, data json.RawMessage) error
	GetAll(ctx context.Context, userID uuid.UUID) (map[section.Kind]json.RawMessage, error)
}

// UserDataRepository stores sections as JSONB rows in Postgres
type UserDataRepository struct {
	db *pgxpool.Pool
}

// NewUserDataRepository creates a new user data repository
func NewUserDataRepository(db *pgxpool.Pool) *UserDataRepository {
	return &UserDataRepository{db: db}
}

// Get returns the stored section. The bool is false when the user exists but
// the section was never written.
func (r *UserDataRepository) Get(ctx context.Context, userID uuid.UUID, kind section.Kind) (json.RawMessage, bool, error) {
	query := `
		SELECT u.id, d.data
		FROM users u
		LEFT JOIN user_data d ON d.user_id = u.id AND d.section = $2
		WHERE u.id = $1`

	var (
		id   uuid.UUID
		data []byte
	)
	err := r.db.QueryRow(ctx, query, userID, string(kind)).Scan(&id, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load section %s: %w", kind, err)
	}
	if data == nil {
		return nil, false, nil
	}
	return json.RawMessage(data), true, nil
}

// Put replaces the whole section
func (r *UserDataRepository) Put(ctx context.Context, userID uuid.UUID, kind section.Kind, data json.RawMessage) error {
	query := `
		INSERT INTO user_data (user_id, section, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, section) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query, userID, string(kind), []byte(data))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to store section %s: %w", kind, err)
	}
	return nil
}

// GetAll returns every stored section of the user
func (r *UserDataRepository) GetAll(ctx context.Context, userID uuid.UUID) (map[section.Kind]json.RawMessage, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx, `SELECT section, data FROM user_data WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections: %w", err)
	}
	defer rows.Close()

	out := make(map[section.Kind]json.RawMessage)
	for rows.Next() {
		var (
			name string
			data []byte
		)
		if err := rows.Scan(&name, &data); err != nil {
			return nil, err
		}
		out[section.Kind(name)] = json.RawMessage(data)
	}
	return out, rows.Err()
}
