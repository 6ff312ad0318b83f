package gdp

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundPlaces is the number of decimal places kept after rescaling.
const RoundPlaces = 2

// Billions converts a figure in millions to billions rounded to RoundPlaces
// using round half to even. The arithmetic is done in decimal so that
// 999995 becomes exactly 999.995 before the tie is broken.
func Billions(millions float64) float64 {
	return decimal.NewFromFloat(millions).
		Shift(-3).
		RoundBank(RoundPlaces).
		InexactFloat64()
}

// Transform rescales the value column of a table from millions to billions and
// renames it. The name column, row order and row count are left unchanged.
func Transform(t Table) (Table, error) {
	if t.ValueColumn() != MillionsColumn {
		return Table{}, fmt.Errorf(
			"%w: expected value column %q, got %q",
			ErrSchema, MillionsColumn, t.ValueColumn(),
		)
	}

	out := Table{
		Columns: [2]string{t.NameColumn(), BillionsColumn},
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = Row{
			Country: r.Country,
			Value:   Billions(r.Value),
		}
	}
	return out, nil
}
