package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir)
	require.NoError(t, err)
	assert.FileExists(t, cfg.ConfigPath())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, loaded.Version)
	assert.Equal(t, DefaultBaseURL, loaded.API.BaseURL)
	assert.Equal(t, DefaultAPIPath, loaded.APIPath())
	assert.Equal(t, filepath.Join(dir, DefaultLogFile), loaded.LogPath())
	assert.Equal(t, time.Minute, loaded.RefreshInterval())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_MigratesV1(t *testing.T) {
	dir := t.TempDir()
	v1 := "version: 1\napi_url: http://tasks.local:9000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), fileMode))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "http://tasks.local:9000", cfg.API.BaseURL)
	assert.Equal(t, DefaultAPIPath, cfg.API.Path)
	assert.Empty(t, cfg.APIURL)
	assert.Equal(t, DefaultDateColors, cfg.TUI.DateColors)

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "api_url")
	assert.Contains(t, string(data), "version: 3")
}

func TestLoad_RejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 99\n"), fileMode))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "https", mutate: func(c *Config) { c.API.BaseURL = "https://example.com" }},
		{name: "empty url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "ftp scheme", mutate: func(c *Config) { c.API.BaseURL = "ftp://example.com" }, wantErr: true},
		{name: "no host", mutate: func(c *Config) { c.API.BaseURL = "http://" }, wantErr: true},
		{name: "bad interval", mutate: func(c *Config) { c.TUI.RefreshInterval = "soon" }, wantErr: true},
		{name: "negative interval", mutate: func(c *Config) { c.TUI.RefreshInterval = "-1s" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateColor(t *testing.T) {
	cfg := NewDefault()
	cfg.TUI.DateColors = DateColors{Today: "1"}

	assert.Equal(t, "1", cfg.DateColor("today"))
	assert.Equal(t, DefaultDateColors.Tomorrow, cfg.DateColor("tomorrow"))
	assert.Equal(t, DefaultDateColors.Week, cfg.DateColor("week"))
}

func TestLogPath_Absolute(t *testing.T) {
	cfg := NewDefault()
	cfg.SetDir("/tmp/wb")
	cfg.LogFile = "/var/log/wb.log"
	assert.Equal(t, "/var/log/wb.log", cfg.LogPath())
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	_, err := Init(filepath.Join(root, DefaultDir))
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	got, err := FindDir(nested)
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(filepath.Join(root, DefaultDir))
	gotReal, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, want, gotReal)
}

func TestFindDir_NotFound(t *testing.T) {
	_, err := FindDir(t.TempDir())
	var cliErr *clierr.Error
	if err == nil {
		t.Skip("a weightboard config exists above the temp dir")
	}
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierr.ConfigNotFound, cliErr.Code)
}
