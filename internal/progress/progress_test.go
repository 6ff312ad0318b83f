package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"worldgdp/internal/chrono"
	"worldgdp/internal/gdp"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	clock := chrono.FixedTime{At: time.Date(2023, 9, 2, 18, 3, 26, 0, time.UTC)}
	log := NewLog("unused", clock)
	require.Equal(t, "2023-Sep-02-18:03:26 : hello", log.Format("hello"))
}

func TestLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etl_project_log.txt")
	err := os.WriteFile(path, []byte("existing line\n"), 0644)
	require.NoError(t, err)

	clock := chrono.FixedTime{At: time.Date(2024, 1, 5, 7, 8, 9, 0, time.UTC)}
	log := NewLog(path, clock)

	require.NoError(t, log.Log(MilestoneStart))
	require.NoError(t, log.Log(MilestoneComplete))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(
		t,
		"existing line\n"+
			"2024-Jan-05-07:08:09 : Preliminaries complete. Initiating ETL process\n"+
			"2024-Jan-05-07:08:09 : Process Complete.\n",
		string(contents),
	)
}

func TestLogCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	log := NewLog(path, chrono.NewStandardTime())

	require.NoError(t, log.Log("first"))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLogUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "log.txt")
	log := NewLog(path, chrono.NewStandardTime())

	err := log.Log("first")
	require.ErrorIs(t, err, gdp.ErrIO)
}
