package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with only API key set", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 100, cfg.StartingBalance)
		assert.Equal(t, 8, cfg.ShopSlots)
		assert.Equal(t, StreakResetNone, cfg.StreakReset)
		assert.Equal(t, "casesim", cfg.ServiceName)
	})

	t.Run("missing API key fails", func(t *testing.T) {
		t.Setenv("API_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid port fails", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")
		t.Setenv("PORT", "not-a-number")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative starting balance fails", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")
		t.Setenv("STARTING_BALANCE", "-5")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("streak reset policy parsed", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")
		t.Setenv("STREAK_RESET", "missed-day")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StreakResetMissedDay, cfg.StreakReset)
	})

	t.Run("invalid streak reset policy fails", func(t *testing.T) {
		t.Setenv("API_KEY", "test-key")
		t.Setenv("STREAK_RESET", "sometimes")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "user",
		DBPassword: "pass",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "casesim",
	}

	assert.Equal(t, "postgres://user:pass@db:5433/casesim?sslmode=disable", cfg.GetDBConnString())
}
