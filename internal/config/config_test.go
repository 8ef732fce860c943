package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "images", cfg.AssetDirectory)
	assert.Equal(t, []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}, cfg.AcceptedExtensions)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 260, cfg.QR.Size)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, ":3000", cfg.Address())
}

func TestDefaultConfig_extensions_are_copied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AcceptedExtensions[0] = ".banana"

	assert.Equal(t, ".png", DefaultConfig().AcceptedExtensions[0])
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8080
asset_directory: /srv/pictures
accepted_extensions: [png, svg]
trust_proxy: true
qr:
  size: 300
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/srv/pictures", cfg.AssetDirectory)
	assert.Equal(t, []string{"png", "svg"}, cfg.AcceptedExtensions)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 300, cfg.QR.Size)
	assert.Equal(t, "#020617", cfg.QR.Foreground, "unset fields keep defaults")
	assert.Equal(t, "Happy Scan", cfg.Title)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [banana"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvPort:           "4000",
		EnvAssetDirectory: "/tmp/images",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "/tmp/images", cfg.AssetDirectory)
}

func TestConfig_ApplyEnv_unset(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(string) (string, bool) { return "", false }))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_ApplyEnv_bad_port(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		if key == EnvPort {
			return "banana", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	for _, tt := range []struct {
		Name   string
		Modify func(cfg *Config)
	}{
		{Name: "zero port", Modify: func(cfg *Config) { cfg.Port = 0 }},
		{Name: "large port", Modify: func(cfg *Config) { cfg.Port = 70000 }},
		{Name: "empty directory", Modify: func(cfg *Config) { cfg.AssetDirectory = " " }},
		{Name: "no extensions", Modify: func(cfg *Config) { cfg.AcceptedExtensions = []string{"", "."} }},
		{Name: "negative qr size", Modify: func(cfg *Config) { cfg.QR.Size = -1 }},
		{Name: "bad foreground", Modify: func(cfg *Config) { cfg.QR.Foreground = "blue" }},
		{Name: "bad background", Modify: func(cfg *Config) { cfg.QR.Background = "#12" }},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.Modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Encoder(t *testing.T) {
	enc := DefaultConfig().Encoder()

	assert.Equal(t, 260, enc.Size)
	assert.Equal(t, color.RGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff}, enc.Foreground)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, enc.Background)
}
