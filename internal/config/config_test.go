package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"worldgdp/internal/gdp"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), File))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	require.Equal(t, "Countries_by_GDP.csv", cfg.CsvPath)
	require.Equal(t, "World_Economies.db", cfg.Database.File)
	require.Equal(t, "etl_project_log.txt", cfg.LogPath)
	require.Equal(t, "Countries_by_GDP", cfg.TableName)
	require.Equal(t, [2]string{"Country", "GDP_USD_millions"}, cfg.Columns())
	require.Equal(t, 100.0, cfg.Threshold)
	require.Equal(t, time.Duration(0), cfg.Fetch.Timeout())
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, File)
	err := os.WriteFile(path, []byte(`{
		csv_path: "out/gdp.csv",
		database: { file: "out/gdp.db" },
		threshold: 1000,
		fetch: { timeout_seconds: 30 },
	}`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "out/gdp.csv", cfg.CsvPath)
	require.Equal(t, "out/gdp.db", cfg.Database.File)
	require.Equal(t, 1000.0, cfg.Threshold)
	require.Equal(t, 30*time.Second, cfg.Fetch.Timeout())
	require.Equal(t, DefaultURL, cfg.Url)
	require.Equal(t, DefaultTableName, cfg.TableName)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "url", mutate: func(c *Config) { c.Url = "" }},
		{name: "csv", mutate: func(c *Config) { c.CsvPath = "" }},
		{name: "log", mutate: func(c *Config) { c.LogPath = "" }},
		{name: "table", mutate: func(c *Config) { c.TableName = "" }},
		{name: "database", mutate: func(c *Config) { c.Database.File = "" }},
		{name: "attribute count", mutate: func(c *Config) { c.Attributes = []string{"Country"} }},
		{name: "name attribute", mutate: func(c *Config) { c.Attributes = []string{"", gdp.MillionsColumn} }},
		{name: "value attribute", mutate: func(c *Config) { c.Attributes = []string{"Country", "GDP"} }},
		{name: "timeout", mutate: func(c *Config) { c.Fetch.TimeoutSeconds = -1 }},
	}

	require.NoError(t, Default().Validate())
	for _, test := range testCases {
		cfg := Default()
		test.mutate(&cfg)
		require.Error(t, cfg.Validate(), test.name)
	}
}
