package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with secret set", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "CampusNav", cfg.App.Name)
		assert.Equal(t, 8050, cfg.Server.Port)
		assert.Equal(t, "data", cfg.Storage.DataDir)
		assert.Equal(t, "user_data.csv", cfg.Storage.UsersFile)
		assert.Equal(t, "notification.csv", cfg.Storage.NotificationsFile)
		assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
		assert.Equal(t, "sha256", cfg.Security.PasswordHash)
		assert.Equal(t, 1, cfg.Notifier.DefaultUserID)
		assert.True(t, cfg.Notifier.Enabled)
		assert.True(t, cfg.App.IsDevelopment())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DATA_DIR", "/srv/campus")
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("PASSWORD_HASH", "bcrypt")
		t.Setenv("APP_ENVIRONMENT", "production")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/srv/campus", cfg.Storage.DataDir)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "bcrypt", cfg.Security.PasswordHash)
		assert.True(t, cfg.App.IsProduction())
		assert.Equal(t, "0.0.0.0:9000", cfg.Server.GetAddr())
	})

	t.Run("default secret rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown password hash rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("PASSWORD_HASH", "md5")

		_, err := Load()
		assert.ErrorContains(t, err, "password hash")
	})

	t.Run("file names must not contain directories", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("ROUTES_FILE", "../routes.csv")

		_, err := Load()
		assert.ErrorContains(t, err, "routes file")
	})
}
