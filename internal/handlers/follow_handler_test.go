package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "handler_test.db")
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dbPath + "?_pragma=foreign_keys(1)",
	}, &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Identity{},
		&models.Profile{},
		&models.Post{},
		&models.PostMedia{},
		&models.Interaction{},
		&models.Follow{},
		&models.Bookmark{},
	))
	return db
}

func signup(t *testing.T, svc *services.IdentityService, username string) *models.Identity {
	t.Helper()
	identity, err := svc.Register(context.Background(), &models.SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return identity
}

// newRequestContext builds an echo context the way the auth middleware
// leaves it: claims set under "identity" when the caller is authenticated.
func newRequestContext(e *echo.Echo, method, target string, identity *models.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("identity", &models.JwtCustomClaims{
			IdentityID: identity.ID,
			Username:   identity.Username,
		})
	}
	return c, rec
}

func TestFollowUserHandler(t *testing.T) {
	db := newHandlerTestDB(t)
	identities := services.NewIdentityService(db)
	graph := services.NewGraphService(db)
	h := NewFollowHandler(graph, identities)
	e := echo.New()

	signup(t, identities, "alice")
	bob := signup(t, identities, "bob")

	c, rec := newRequestContext(e, http.MethodPost, "/users/alice/follow", bob)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, h.FollowUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"following":true`)
}

func TestFollowUserHandlerUnauthenticated(t *testing.T) {
	db := newHandlerTestDB(t)
	identities := services.NewIdentityService(db)
	graph := services.NewGraphService(db)
	h := NewFollowHandler(graph, identities)
	e := echo.New()

	signup(t, identities, "alice")

	c, _ := newRequestContext(e, http.MethodPost, "/users/alice/follow", nil)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	err := h.FollowUser(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestFollowUserHandlerSelfFollow(t *testing.T) {
	db := newHandlerTestDB(t)
	identities := services.NewIdentityService(db)
	graph := services.NewGraphService(db)
	h := NewFollowHandler(graph, identities)
	e := echo.New()

	alice := signup(t, identities, "alice")

	c, _ := newRequestContext(e, http.MethodPost, "/users/alice/follow", alice)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	err := h.FollowUser(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUnfollowUserHandlerNotFollowing(t *testing.T) {
	db := newHandlerTestDB(t)
	identities := services.NewIdentityService(db)
	graph := services.NewGraphService(db)
	h := NewFollowHandler(graph, identities)
	e := echo.New()

	signup(t, identities, "alice")
	bob := signup(t, identities, "bob")

	c, _ := newRequestContext(e, http.MethodDelete, "/users/alice/follow", bob)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	err := h.UnfollowUser(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestGetFollowersHandler(t *testing.T) {
	db := newHandlerTestDB(t)
	identities := services.NewIdentityService(db)
	graph := services.NewGraphService(db)
	h := NewFollowHandler(graph, identities)
	e := echo.New()

	signup(t, identities, "alice")
	bob := signup(t, identities, "bob")
	require.NoError(t, graph.Follow(context.Background(), bob.ID, "alice"))

	c, rec := newRequestContext(e, http.MethodGet, "/profiles/alice/followers", nil)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, h.GetFollowers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), bob.ID.String())

	// unknown target is a 404, not an empty list
	c, _ = newRequestContext(e, http.MethodGet, "/profiles/nobody/followers", nil)
	c.SetParamNames("username")
	c.SetParamValues("nobody")

	err := h.GetFollowers(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
