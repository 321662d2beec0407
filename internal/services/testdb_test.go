package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens a throwaway sqlite database with the full schema, using
// the same gorm configuration as production so constraint violations behave
// alike.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "social_test.db")
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

func register(t *testing.T, svc *IdentityService, username string) *models.Identity {
	t.Helper()
	identity, err := svc.Register(context.Background(), &models.SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return identity
}
