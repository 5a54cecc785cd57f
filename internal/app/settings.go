package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/shelf/internal/reporter"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	Host     string          `yaml:"host"`
	Format   string          `yaml:"format"`
	RankTopK int             `yaml:"rank_top_k"`
	Routes   reporter.Routes `yaml:"routes"`
}

// EnvSettings are the SHELF_* environment variables.
type EnvSettings struct {
	Host       string `env:"HOST"`
	Format     string `env:"FORMAT"`
	RankTopK   int    `env:"RANK_TOP_K"`
	PrettyJSON bool   `env:"PRETTY_JSON"`
}

const envPrefix = "SHELF_"

// LoadEnv reads the SHELF_* environment variables.
func LoadEnv() (EnvSettings, error) {
	var e EnvSettings
	if err := env.ParseWithOptions(&e, env.Options{Prefix: envPrefix}); err != nil {
		return EnvSettings{}, fmt.Errorf("read environment: %w", err)
	}
	return e, nil
}

// settingsOnce, settings and settingsErr back the lazy config singleton.
// hostOverride carries the --host flag for the life of the process.
//
//nolint:gochecknoglobals // sync.Once singleton + RWMutex override are intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error

	hostOverrideMu sync.RWMutex
	hostOverride   string
)

// SetHostOverride sets a process-wide catalog host override (the --host flag).
func SetHostOverride(host string) {
	hostOverrideMu.Lock()
	hostOverride = host
	hostOverrideMu.Unlock()
}

func getHostOverride() string {
	hostOverrideMu.RLock()
	v := hostOverride
	hostOverrideMu.RUnlock()
	return v
}

// configPaths lists settings files in lookup order (first found wins).
func configPaths() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(dir, "config.yaml"),
		filepath.Join(string(os.PathSeparator), "etc", "shelf", "config.yaml"),
		"config.yaml",
	}, nil
}

// LoadSettings loads configuration once. Lookup order (first found wins):
// 1) ~/.config/shelf/config.yaml
// 2) /etc/shelf/config.yaml
// 3) ./config.yaml
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		s, _, err := findSettings()
		settings, settingsErr = s, err
	})
	return settings, settingsErr
}

// findSettings returns the first settings file found and its path. A missing
// file is skipped; an unreadable or malformed one is an error.
func findSettings() (Settings, string, error) {
	paths, err := configPaths()
	if err != nil {
		return Settings{}, "", err
	}
	for _, p := range paths {
		s, err := loadSettingsFile(p)
		if err == nil {
			return s, p, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return Settings{}, "", fmt.Errorf("failed to load config %s: %w", p, err)
	}
	return Settings{}, "", nil
}

func loadSettingsFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
