package sink

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"worldgdp/internal/gdp"
)

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ident returns name as a SQL identifier, quoting it only when it is not
// a plain word.
func ident(name string) string {
	if plainIdent.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// WriteRelation replaces the relation called name with the contents of t. The
// name column is stored as TEXT and the value column as REAL. The drop, create
// and inserts happen in one transaction.
func WriteRelation(ctx context.Context, db *sql.DB, name string, t gdp.Table) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", gdp.ErrStorage, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", ident(name)))
	if err != nil {
		return fmt.Errorf("%w: drop %s: %w", gdp.ErrStorage, name, err)
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE %s (%s TEXT, %s REAL)",
		ident(name), ident(t.NameColumn()), ident(t.ValueColumn()),
	))
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", gdp.ErrStorage, name, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES (?, ?)",
		ident(name), ident(t.NameColumn()), ident(t.ValueColumn()),
	))
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", gdp.ErrStorage, err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		_, err = stmt.ExecContext(ctx, row.Country, row.Value)
		if err != nil {
			return fmt.Errorf("%w: insert row %d: %w", gdp.ErrStorage, i, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("%w: commit: %w", gdp.ErrStorage, err)
	}
	return nil
}

// ThresholdQuery builds the select of every row of table whose column is at
// least threshold.
func ThresholdQuery(table, column string, threshold float64) string {
	return fmt.Sprintf(
		"SELECT * from %s WHERE %s >= %s",
		ident(table), ident(column), strconv.FormatFloat(threshold, 'f', -1, 64),
	)
}
