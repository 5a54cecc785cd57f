package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotcommander/shelf/internal/reporter"
)

func resetSettingsStateForTest() {
	settingsOnce = sync.Once{}
	settings = Settings{}
	settingsErr = nil
	SetHostOverride("")
}

// isolate points HOME and the working directory at fresh temp dirs and clears
// SHELF_* variables.
func isolate(t *testing.T) (home, workdir string) {
	t.Helper()
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home = t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"SHELF_HOST", "SHELF_FORMAT", "SHELF_RANK_TOP_K", "SHELF_PRETTY_JSON"} {
		t.Setenv(k, "")
	}

	workdir = t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workdir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	return home, workdir
}

func writeUserConfig(t *testing.T, home, content string) string {
	t.Helper()
	path := filepath.Join(home, ".config", "shelf", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings_PrefersUserConfigOverLocal(t *testing.T) {
	home, workdir := isolate(t)

	writeUserConfig(t, home, "host: http://from-user:5000/\n")
	require.NoError(t, os.WriteFile(filepath.Join(workdir, "config.yaml"), []byte("host: http://from-local:5000/\n"), 0o600))

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "http://from-user:5000/", s.Host)
}

func TestLoadSettings_FallsBackToLocalConfig(t *testing.T) {
	_, workdir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(workdir, "config.yaml"), []byte("host: http://from-local:5000/\n"), 0o600))

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "http://from-local:5000/", s.Host)
}

func TestLoadSettings_InvalidYAMLReturnsError(t *testing.T) {
	home, _ := isolate(t)
	writeUserConfig(t, home, "host: [")

	_, err := LoadSettings()
	require.Error(t, err)
}

func TestLoadSettingsFile_ReadsRoutesAndDisplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "format: text\n" +
		"rank_top_k: 15\n" +
		"routes:\n" +
		"  search: v2/search\n" +
		"  books: v2/books\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := loadSettingsFile(path)
	require.NoError(t, err)
	require.Equal(t, "text", s.Format)
	require.Equal(t, 15, s.RankTopK)
	require.Equal(t, "v2/search", s.Routes.Search)
	require.Equal(t, "v2/books", s.Routes.Books)
	require.Empty(t, s.Routes.Book)
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SHELF_HOST", "http://env:5000/")
	t.Setenv("SHELF_RANK_TOP_K", "12")
	t.Setenv("SHELF_PRETTY_JSON", "true")

	e, err := LoadEnv()
	require.NoError(t, err)
	require.Equal(t, "http://env:5000/", e.Host)
	require.Equal(t, 12, e.RankTopK)
	require.True(t, e.PrettyJSON)

	t.Setenv("SHELF_RANK_TOP_K", "lots")
	_, err = LoadEnv()
	require.Error(t, err)
}

func TestResolveHost_PrioritizesCLIOverride(t *testing.T) {
	home, _ := isolate(t)
	writeUserConfig(t, home, "host: http://from-config:5000/\n")
	t.Setenv("SHELF_HOST", "http://from-env:5000/")
	SetHostOverride("http://from-cli:5000/")

	host, source, err := ResolveHostDetailed()
	require.NoError(t, err)
	require.Equal(t, "http://from-cli:5000/", host)
	require.Equal(t, "cli(--host)", source)
}

func TestResolveHost_UsesEnvWithoutOverride(t *testing.T) {
	home, _ := isolate(t)
	writeUserConfig(t, home, "host: http://from-config:5000/\n")
	t.Setenv("SHELF_HOST", "http://from-env:5000/")

	host, source, err := ResolveHostDetailed()
	require.NoError(t, err)
	require.Equal(t, "http://from-env:5000/", host)
	require.Equal(t, "env(SHELF_HOST)", source)
}

func TestResolveHost_ReportsConfigSource(t *testing.T) {
	home, _ := isolate(t)
	path := writeUserConfig(t, home, "host: http://from-config:5000/\n")

	host, source, err := ResolveHostDetailed()
	require.NoError(t, err)
	require.Equal(t, "http://from-config:5000/", host)
	require.Equal(t, "config("+path+")", source)
}

func TestResolveHost_Default(t *testing.T) {
	isolate(t)

	host, source, err := ResolveHostDetailed()
	require.NoError(t, err)
	require.Equal(t, reporter.DefaultHost, host)
	require.Equal(t, "default", source)
}

func TestReporterConfig_FillsRouteDefaults(t *testing.T) {
	home, _ := isolate(t)
	writeUserConfig(t, home, "routes:\n  scrape: jobs/scrape\n")

	cfg, err := ReporterConfig()
	require.NoError(t, err)
	require.Equal(t, reporter.DefaultHost, cfg.Host)
	require.Equal(t, "jobs/scrape", cfg.Routes.Scrape)
	require.Equal(t, "api/book", cfg.Routes.Book)
	require.NoError(t, cfg.Validate())
}

func TestResolveFormat(t *testing.T) {
	home, _ := isolate(t)

	f, err := ResolveFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	writeUserConfig(t, home, "format: text\n")
	resetSettingsStateForTest()
	f, err = ResolveFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	t.Setenv("SHELF_FORMAT", "JSON")
	f, err = ResolveFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ResolveFormat("text")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	_, err = ResolveFormat("yaml")
	require.EqualError(t, err, `unknown output format "yaml" (want json or text)`)
}

func TestRankTopK(t *testing.T) {
	home, _ := isolate(t)

	k, err := RankTopK(10)
	require.NoError(t, err)
	require.Equal(t, 10, k)

	writeUserConfig(t, home, "rank_top_k: 7\n")
	resetSettingsStateForTest()
	k, err = RankTopK(10)
	require.NoError(t, err)
	require.Equal(t, 7, k)

	t.Setenv("SHELF_RANK_TOP_K", "18")
	k, err = RankTopK(10)
	require.NoError(t, err)
	require.Equal(t, 18, k)
}
