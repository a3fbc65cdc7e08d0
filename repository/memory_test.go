package repository

import (
	"context"
	"encoding/json"
	"testing"

	"uzazi-salama-backend/models"
	"uzazi-salama-backend/section"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	u := &models.User{Name: "Amina", Email: "amina@example.com", PasswordHash: "x", Language: "sw"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)

	err := repo.Create(ctx, &models.User{Email: "AMINA@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "Amina@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.PregnancyWeek = 30
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, again.PregnancyWeek)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserDataRepository(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserRepository()
	repo := NewMemoryUserDataRepository(users)

	_, _, err := repo.Get(ctx, uuid.New(), section.KindMood)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Put(ctx, uuid.New(), section.KindMood, json.RawMessage(`{}`)), ErrNotFound)

	u := &models.User{Email: "a@b.c"}
	require.NoError(t, users.Create(ctx, u))

	_, found, err := repo.Get(ctx, u.ID, section.KindMood)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Put(ctx, u.ID, section.KindMood, json.RawMessage(`{"entries":[1]}`)))
	require.NoError(t, repo.Put(ctx, u.ID, section.KindMood, json.RawMessage(`{"entries":[]}`)))

	raw, found, err := repo.Get(ctx, u.ID, section.KindMood)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"entries":[]}`, string(raw))

	all, err := repo.GetAll(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
