package service

import (
	"context"
	"testing"
	"time"

	"uzazi-salama-backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() *AuthService {
	return NewAuthService(
		WithUserRepository(repository.NewMemoryUserRepository()),
		WithTokenIssuer(NewTokenIssuer("test-secret", time.Hour)),
		WithBcryptCost(bcrypt.MinCost),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	res, err := svc.Register(ctx, RegisterRequest{
		Name:     "Neema",
		Email:    "  Neema@Example.com ",
		Password: "secret1",
		Language: "sw",
	})
	require.NoError(t, err)
	assert.Equal(t, "neema@example.com", res.User.Email)
	assert.Equal(t, 8, res.User.PregnancyWeek)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	id, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "neema@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(ctx, LoginRequest{Email: "NEEMA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = svc.Login(ctx, LoginRequest{Email: "neema@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService()
	cases := []RegisterRequest{
		{Name: "A", Email: "not-an-email", Password: "secret1"},
		{Name: "A", Email: "a@example.com", Password: "12345"},
		{Name: "A", Email: "a@example.com", Password: "secret1", PregnancyWeek: 41},
		{Name: "A", Email: "a@example.com", Password: "secret1", Language: "fr"},
		{Email: "a@example.com", Password: "secret1"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()
	res, err := svc.Register(ctx, RegisterRequest{Name: "Zawadi", Email: "z@example.com", Password: "secret1"})
	require.NoError(t, err)

	week, lang := 24, "sw"
	user, err := svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: res.User.ID, PregnancyWeek: &week, Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, 24, user.PregnancyWeek)
	assert.Equal(t, "sw", user.Language)
	assert.Equal(t, "Zawadi", user.Name)

	tooLate := 45
	_, err = svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: res.User.ID, PregnancyWeek: &tooLate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, UpdateProfileRequest{UserID: uuid.New(), Language: &lang})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTokenIssuerRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Minute)
	id := uuid.New()
	token, err := issuer.Issue(id)
	require.NoError(t, err)

	other := NewTokenIssuer("secret-b", time.Minute)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
