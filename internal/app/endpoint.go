package app

import (
	"fmt"
	"strings"

	"github.com/dotcommander/shelf/internal/reporter"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ResolveHost returns the catalog API base URL.
// Order of precedence:
// 1) CLI override (--host)
// 2) Environment variable: SHELF_HOST
// 3) config.yaml: host
// 4) Default: http://127.0.0.1:5000/
func ResolveHost() (string, error) {
	host, _, err := ResolveHostDetailed()
	return host, err
}

// ResolveHostDetailed returns the resolved host along with where it came from.
// This is for reporting; normal code should use ResolveHost or ReporterConfig.
func ResolveHostDetailed() (host string, source string, err error) {
	if override := getHostOverride(); override != "" {
		return override, "cli(--host)", nil
	}

	e, err := LoadEnv()
	if err != nil {
		return "", "", err
	}
	if e.Host != "" {
		return e.Host, "env(SHELF_HOST)", nil
	}

	s, path, err := findSettings()
	if err != nil {
		return "", "", err
	}
	if s.Host != "" {
		return s.Host, fmt.Sprintf("config(%s)", path), nil
	}
	return reporter.DefaultHost, "default", nil
}

// ReporterConfig builds the reporter configuration from the resolved host and
// any route overrides in config.yaml.
func ReporterConfig() (reporter.Config, error) {
	host, err := ResolveHost()
	if err != nil {
		return reporter.Config{}, err
	}
	s, err := LoadSettings()
	if err != nil {
		return reporter.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return reporter.Config{
		Host:   host,
		Routes: s.Routes.WithDefaults(),
	}, nil
}

// ResolveFormat picks the output format: flag, then SHELF_FORMAT, then
// config.yaml, then json.
func ResolveFormat(flag string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		e, err := LoadEnv()
		if err != nil {
			return "", err
		}
		format = strings.ToLower(e.Format)
	}
	if format == "" {
		s, err := LoadSettings()
		if err != nil {
			return "", fmt.Errorf("failed to load config: %w", err)
		}
		format = strings.ToLower(s.Format)
	}
	switch format {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatText:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatJSON, FormatText)
	}
}

// RankTopK returns the configured chart size from SHELF_RANK_TOP_K or
// config.yaml, or fallback when neither is set.
func RankTopK(fallback int) (int, error) {
	e, err := LoadEnv()
	if err != nil {
		return 0, err
	}
	if e.RankTopK > 0 {
		return e.RankTopK, nil
	}
	s, err := LoadSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to load config: %w", err)
	}
	if s.RankTopK > 0 {
		return s.RankTopK, nil
	}
	return fallback, nil
}
