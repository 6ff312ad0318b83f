package sink

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"worldgdp/internal/gdp"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Result is a fully read result set.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Query runs a read statement and reads every row into memory.
func Query(ctx context.Context, db *sql.DB, query string) (Result, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("%w: query: %w", gdp.ErrStorage, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("%w: columns: %w", gdp.ErrStorage, err)
	}

	result := Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		err = rows.Scan(pointers...)
		if err != nil {
			return Result{}, fmt.Errorf("%w: scan: %w", gdp.ErrStorage, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: read rows: %w", gdp.ErrStorage, err)
	}

	return result, nil
}

// PrintResult renders the result set as a table with a leading row index.
func PrintResult(w io.Writer, result Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{""}
	for _, c := range result.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for i, values := range result.Rows {
		row := table.Row{i}
		for _, v := range values {
			if f, ok := v.(float64); ok {
				row = append(row, FormatFloat(f))
				continue
			}
			row = append(row, v)
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
