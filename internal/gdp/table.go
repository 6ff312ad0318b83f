package gdp

const (
	// CountryColumn is the name column of every table.
	CountryColumn = "Country"
	// MillionsColumn labels the value column as extracted from the source.
	MillionsColumn = "GDP_USD_millions"
	// BillionsColumn labels the value column after Transform.
	BillionsColumn = "GDP_USD_billions"
)

// Row is a single country and its GDP figure. The unit of Value depends on
// the label of the table's value column.
type Row struct {
	Country string
	Value   float64
}

// Table is an ordered list of rows under a fixed two column schema, the name
// column first and the value column second.
type Table struct {
	Columns [2]string
	Rows    []Row
}

func NewTable(columns [2]string) Table {
	return Table{Columns: columns}
}

// Append adds a row to the end of the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) NameColumn() string {
	return t.Columns[0]
}

func (t Table) ValueColumn() string {
	return t.Columns[1]
}
