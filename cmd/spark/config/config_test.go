package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ThemeDark, cfg.Theme)
	assert.Equal(t, "http://localhost:3001", cfg.BackendURL)
	assert.Equal(t, "uuid001", cfg.UserID)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := DefaultConfig()
	cfg.Theme = ThemeLight
	cfg.BackendURL = "http://example.test:9000"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	t.Chdir(t.TempDir())

	dir, err := Dir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"theme":"solarized"}`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, cfg.Theme, "unknown themes fall back to dark")
}

func TestServiceOverrides(t *testing.T) {
	t.Chdir(t.TempDir())

	svc, err := NewService()
	require.NoError(t, err)
	require.Equal(t, "uuid001", svc.Current().UserID)

	svc.Override("http://staging:3001", "user-42")
	cfg := svc.Current()
	assert.Equal(t, "http://staging:3001", cfg.BackendURL)
	assert.Equal(t, "user-42", cfg.UserID)
	assert.Equal(t, ThemeDark, cfg.Theme, "overrides leave other settings alone")

	// Overrides are session-only, never written to disk.
	require.NoError(t, svc.SetTheme(ThemeLight))
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, loaded.Theme)
	assert.Equal(t, "uuid001", loaded.UserID)
}

func TestWatchDeliversFileEdits(t *testing.T) {
	t.Chdir(t.TempDir())

	svc, err := NewService()
	require.NoError(t, err)
	require.NoError(t, svc.SetTheme(ThemeDark)) // materialize the config dir

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := svc.Watch(ctx)

	// Edit the file the way an external process would.
	cfg := svc.Current()
	cfg.Theme = ThemeLight
	require.NoError(t, Save(cfg))

	select {
	case got, ok := <-updates:
		require.True(t, ok)
		assert.Equal(t, ThemeLight, got.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no config update delivered")
	}

	assert.Equal(t, ThemeLight, svc.Current().Theme)

	cancel()
	select {
	case _, ok := <-updates:
		assert.False(t, ok, "channel closes on cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close")
	}
}
