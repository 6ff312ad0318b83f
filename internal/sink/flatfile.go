package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"worldgdp/internal/gdp"
)

// WriteFlatFile writes the table to path as CSV, replacing whatever was there.
// The first column is the zero-based row index and has an empty header.
func WriteFlatFile(t gdp.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", gdp.ErrIO, path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write([]string{"", t.NameColumn(), t.ValueColumn()})
	if err != nil {
		return fmt.Errorf("%w: write header: %w", gdp.ErrIO, err)
	}
	for i, row := range t.Rows {
		err = w.Write([]string{
			strconv.Itoa(i),
			row.Country,
			FormatFloat(row.Value),
		})
		if err != nil {
			return fmt.Errorf("%w: write row %d: %w", gdp.ErrIO, i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush %s: %w", gdp.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", gdp.ErrIO, path, err)
	}
	return nil
}

// FormatFloat renders v in its shortest form but always with a fractional
// part, so 1000 is written as "1000.0" and 2.5 as "2.5".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
