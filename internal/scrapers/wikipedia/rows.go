package wikipedia

import (
	"context"
	"strings"
	"worldgdp/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// PlaceholderChar is what the source puts in a cell that has no figure.
const PlaceholderChar = "—"

const (
	nameCell  = 0
	valueCell = 2
)

// rowView is the little a row filter needs to know about a table row, it
// keeps the row rules independent of the html library.
type rowView interface {
	cellCount() int
	// cellText returns the cleaned text of the i'th cell, footnote markers excluded.
	cellText(i int) string
	hasLink(i int) bool
	// linkText returns the cleaned text of the first link in the i'th cell.
	linkText(ctx context.Context, i int) string
}

// isStructural reports rows with no data cells, like header and separator rows.
func isStructural(row rowView) bool {
	return row.cellCount() == 0
}

// hasCountryLink reports whether the first cell links somewhere, aggregate and
// footnote rows have plain text there instead.
func hasCountryLink(row rowView) bool {
	return row.cellCount() > nameCell && row.hasLink(nameCell)
}

// hasPlaceholder reports whether the figure cell holds the "no data" marker.
func hasPlaceholder(row rowView) bool {
	return row.cellCount() > valueCell &&
		strings.Contains(row.cellText(valueCell), PlaceholderChar)
}

// isCountryRow is the acceptance rule for candidate rows.
func isCountryRow(row rowView) bool {
	return hasCountryLink(row) && !hasPlaceholder(row)
}

type selectionRow struct {
	cells *goquery.Selection
}

func newSelectionRow(tr *goquery.Selection) selectionRow {
	return selectionRow{cells: tr.Find("td")}
}

func (r selectionRow) cellCount() int {
	return r.cells.Length()
}

func (r selectionRow) cellText(i int) string {
	cell := r.cells.Eq(i).Clone()
	cell.Find("sup").Remove()
	return htmlutil.CleanText(htmlutil.SelectionText(cell))
}

func (r selectionRow) hasLink(i int) bool {
	return r.cells.Eq(i).Find("a").Length() > 0
}

func (r selectionRow) linkText(ctx context.Context, i int) string {
	anchors := htmlutil.GetAnchors(ctx, r.cells.Eq(i).Find("a").First())
	if len(anchors) == 0 {
		return ""
	}
	return anchors[0].Name
}
