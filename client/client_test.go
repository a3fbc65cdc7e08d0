package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uzazi-salama-backend/handlers"
	"uzazi-salama-backend/logger"
	"uzazi-salama-backend/mirror"
	"uzazi-salama-backend/models"
	"uzazi-salama-backend/repository"
	"uzazi-salama-backend/section"
	"uzazi-salama-backend/service"
	"uzazi-salama-backend/syncengine"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	authService := service.NewAuthService(
		service.WithUserRepository(users),
		service.WithTokenIssuer(service.NewTokenIssuer("client-test-secret", time.Hour)),
		service.WithBcryptCost(bcrypt.MinCost),
	)
	dataService := service.NewUserDataService(
		service.WithUserDataRepository(repository.NewMemoryUserDataRepository(users)),
	)
	srv := httptest.NewServer(handlers.NewRouter(handlers.RouterConfig{
		AuthService:     authService,
		UserDataService: dataService,
		Logger:          logger.NewNop(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func registered(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := New(srv.URL + "/api")
	user, err := c.Register(context.Background(), models.RegisterRequest{
		Name:     "Baraka",
		Email:    "baraka@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, c.Token())
	return c
}

func TestGetPutRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := registered(t, srv)

	_, found, err := c.Get(ctx, "", section.KindAppointments)
	require.NoError(t, err)
	assert.False(t, found)

	data, err := section.Encode(section.AppointmentsSection{Entries: []section.Appointment{
		{ID: "a1", Date: "2024-05-10", Time: "09:00", Type: section.AppointmentRoutine},
	}})
	require.NoError(t, err)
	kept, err := c.Put(ctx, "", section.KindAppointments, data)
	require.NoError(t, err)
	assert.Contains(t, string(kept), "lastUpdated")

	raw, found, err := c.Get(ctx, "", section.KindAppointments)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, string(kept), string(raw))

	all, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, section.KindAppointments)
}

func TestErrorMapping(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := registered(t, srv)

	_, err := c.Put(ctx, "", "diary", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, section.ErrValidation)

	anon := New(srv.URL + "/api")
	_, _, err = anon.Get(ctx, "", section.KindMood)
	assert.ErrorIs(t, err, syncengine.ErrUnauthenticated)

	bad := New(srv.URL+"/api", WithToken("garbage"))
	_, err = bad.Me(ctx)
	assert.ErrorIs(t, err, syncengine.ErrUnauthenticated)

	_, err = New(srv.URL+"/api").Login(ctx, "baraka@example.com", "wrong-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = New(srv.URL+"/api").Register(ctx, models.RegisterRequest{
		Name: "Baraka", Email: "baraka@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()
	_, _, err = New(down.URL, WithToken(c.Token())).Get(ctx, "", section.KindMood)
	assert.ErrorIs(t, err, syncengine.ErrRemoteUnavailable)

	garbled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer garbled.Close()
	_, _, err = New(garbled.URL).Get(ctx, "", section.KindMood)
	assert.ErrorIs(t, err, syncengine.ErrRemoteUnavailable)
}

func TestEngineOverHTTP(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := registered(t, srv)

	e := syncengine.New(c)
	local := mirror.NewMemoryMirror()
	sc := syncengine.SyncContext{Authenticated: true, Local: local}

	w, err := e.SaveMood(ctx, sc, section.MoodEntry{Date: "2024-03-01", Mood: section.MoodHappy, Notes: "great day"})
	require.NoError(t, err)
	assert.Equal(t, syncengine.TargetRemote, w.Target)
	assert.NotNil(t, w.Value.Updated())

	srv.Close()
	w, err = e.SaveMood(ctx, sc, section.MoodEntry{Date: "2024-03-02", Mood: section.MoodCalm})
	require.NoError(t, err)
	assert.Equal(t, syncengine.TargetLocalFallback, w.Target)

	moods, src, err := e.Moods(ctx, sc)
	require.NoError(t, err)
	assert.Equal(t, syncengine.SourceLocalFallback, src)
	assert.Len(t, moods.Entries, 2)
}
