package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Columns []string `json:"columns"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are fine in json5
		name: "base",
		count: 2,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ count: 5 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "base", Count: 5}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "app.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestOverlay(t *testing.T) {
	base := testConfig{Name: "default", Count: 1, Columns: []string{"a", "b"}}

	merged, err := Overlay(base, filepath.Join(t.TempDir(), "missing.json5"))
	require.NoError(t, err)
	require.Equal(t, base, merged)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ name: "custom" }`)
	merged, err = Overlay(base, filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "custom", Count: 1, Columns: []string{"a", "b"}}, merged)
}

func TestOverlayInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ name: `)
	_, err := Overlay(testConfig{}, filepath.Join(dir, "app.json5"))
	require.Error(t, err)
}
