package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the users and user_data tables
const Schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    phone VARCHAR(50) NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    pregnancy_week INTEGER NOT NULL DEFAULT 8 CHECK (pregnancy_week BETWEEN 1 AND 40),
    due_date TIMESTAMPTZ,
    language VARCHAR(2) NOT NULL DEFAULT 'en' CHECK (language IN ('en', 'sw')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_data (
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    section VARCHAR(32) NOT NULL,
    data JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, section)
);

CREATE INDEX IF NOT EXISTS idx_user_data_updated_at ON user_data(updated_at);
`

// ApplySchema runs Schema against the pool. It is idempotent.
func ApplySchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, Schema)
	return err
}
