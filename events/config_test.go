package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/types"
)

func TestSetDefaults(t *testing.T) {
	var cfg Config
	SetDefaults(&cfg)

	require.Equal(t, "chansorter.events.renamed", cfg.RenamedSubject)
	require.Equal(t, "chansorter.events.restored", cfg.RestoredSubject)
	require.Equal(t, "chansorter", cfg.QueueGroup)
	require.Equal(t, 3, cfg.MaxRetries)
	require.Equal(t, 200*time.Millisecond, cfg.RetryBaseDelay)
	require.Equal(t, 5*time.Second, cfg.RetryMaxDelay)
	require.Equal(t, 2.0, cfg.RetryMultiplier)
	require.Equal(t, 30*time.Second, cfg.DedupeWindow)
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		RenamedSubject: "custom.renamed",
		MaxRetries:     7,
		DedupeWindow:   time.Minute,
	}
	SetDefaults(&cfg)

	require.Equal(t, "custom.renamed", cfg.RenamedSubject)
	require.Equal(t, 7, cfg.MaxRetries)
	require.Equal(t, time.Minute, cfg.DedupeWindow)
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		var cfg Config
		SetDefaults(&cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("negative retries", func(t *testing.T) {
		var cfg Config
		SetDefaults(&cfg)
		cfg.MaxRetries = -1
		require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)
	})

	t.Run("max delay below base delay", func(t *testing.T) {
		var cfg Config
		SetDefaults(&cfg)
		cfg.RetryMaxDelay = 10 * time.Millisecond
		require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)
	})

	t.Run("colliding subjects", func(t *testing.T) {
		var cfg Config
		SetDefaults(&cfg)
		cfg.RestoredSubject = cfg.RenamedSubject
		require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)
	})
}
