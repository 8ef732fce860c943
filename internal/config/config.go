package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/happy-scan/happy-scan/internal/assets"
	"github.com/happy-scan/happy-scan/internal/qr"
)

const (
	EnvPort           = "PORT"
	EnvAssetDirectory = "ASSET_DIR"
)

type Config struct {
	Port               int      `yaml:"port"`
	AssetDirectory     string   `yaml:"asset_directory"`
	AcceptedExtensions []string `yaml:"accepted_extensions"`
	TrustProxy         bool     `yaml:"trust_proxy"`
	Title              string   `yaml:"title"`
	QR                 QR       `yaml:"qr"`
}

type QR struct {
	Size       int    `yaml:"size"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Port:               3000,
		AssetDirectory:     "images",
		AcceptedExtensions: append([]string(nil), assets.DefaultExtensions...),
		Title:              "Happy Scan",
		QR: QR{
			Size:       qr.DefaultSize,
			Foreground: "#020617",
			Background: "#ffffff",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields with the PORT and ASSET_DIR environment variables
// when they are set.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if v, ok := lookup(EnvAssetDirectory); ok && v != "" {
		cfg.AssetDirectory = v
	}
	return nil
}

func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", cfg.Port))
	}
	if strings.TrimSpace(cfg.AssetDirectory) == "" {
		errs = append(errs, errors.New("asset directory is required"))
	}
	if len(assets.NormalizeExtensions(cfg.AcceptedExtensions)) == 0 {
		errs = append(errs, errors.New("at least one accepted extension is required"))
	}
	if cfg.QR.Size < 0 {
		errs = append(errs, fmt.Errorf("qr size %d is negative", cfg.QR.Size))
	}
	if _, err := qr.ParseHexColor(cfg.QR.Foreground); err != nil {
		errs = append(errs, fmt.Errorf("qr foreground: %w", err))
	}
	if _, err := qr.ParseHexColor(cfg.QR.Background); err != nil {
		errs = append(errs, fmt.Errorf("qr background: %w", err))
	}
	return errors.Join(errs...)
}

func (cfg *Config) Address() string {
	return ":" + strconv.Itoa(cfg.Port)
}

// Encoder builds the QR encoder described by the qr section. Call Validate
// first; unparsable colours fall back to the encoder defaults.
func (cfg *Config) Encoder() qr.Encoder {
	enc := qr.Encoder{Size: cfg.QR.Size}
	if c, err := qr.ParseHexColor(cfg.QR.Foreground); err == nil {
		enc.Foreground = c
	}
	if c, err := qr.ParseHexColor(cfg.QR.Background); err == nil {
		enc.Background = c
	}
	return enc
}
