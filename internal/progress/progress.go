package progress

import (
	"fmt"
	"log/slog"
	"os"
	"worldgdp/internal/chrono"
	"worldgdp/internal/gdp"
)

// TimestampLayout renders as Year-MonthAbbrev-Day-Hour:Minute:Second,
// ex. 2023-Sep-02-18:53:26.
const TimestampLayout = "2006-Jan-02-15:04:05"

// Milestone messages written by the pipeline, in the order they happen.
const (
	MilestoneStart       = "Preliminaries complete. Initiating ETL process"
	MilestoneExtracted   = "Data extraction complete. Initiating Transformation process"
	MilestoneTransformed = "Data transformation complete. Initiating loading process"
	MilestoneCSVSaved    = "Data saved to CSV file"
	MilestoneConnected   = "SQL Connection initiated."
	MilestoneLoaded      = "Data loaded to Database as table. Running the query"
	MilestoneComplete    = "Process Complete."
)

// Log appends timestamped lines to a file. The file is opened and closed on
// every call, nothing is held between calls.
type Log struct {
	path string
	time chrono.TimeAPI
}

func NewLog(path string, time chrono.TimeAPI) Log {
	return Log{path: path, time: time}
}

func (l Log) Path() string {
	return l.path
}

// Format renders a single log line without the trailing newline.
func (l Log) Format(message string) string {
	return fmt.Sprintf("%s : %s", l.time.Now().Format(TimestampLayout), message)
}

// Log appends "<timestamp> : <message>" to the file, creating it if needed.
func (l Log) Log(message string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: open progress log: %w", gdp.ErrIO, err)
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, l.Format(message))
	if err != nil {
		return fmt.Errorf("%w: write progress log: %w", gdp.ErrIO, err)
	}

	slog.Info(message, "log", l.path)
	return nil
}
