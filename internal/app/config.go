package app

import (
	"os"
	"path/filepath"
)

// ConfigDir returns ~/.config/shelf/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "shelf"), nil
}

// EnsureConfigDir creates the config directory and default config.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return os.WriteFile(configFile, []byte(defaultConfig), 0600)
	}
	return nil
}

const defaultConfig = `# shelf configuration
# Run: shelf --help

# Catalog API base URL. Can also be set via SHELF_HOST or --host.
# host: http://127.0.0.1:5000/

# Output format for commands: json or text. Also SHELF_FORMAT or --format.
# format: json

# Number of records shown by "shelf rank" (5-20). Also SHELF_RANK_TOP_K.
# rank_top_k: 10

# Route overrides, relative to host.
# routes:
#   book: api/book
#   author: api/author
#   books: api/books
#   authors: api/authors
#   search: api/search
#   scrape: api/scrape
`
