package wikipedia

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"worldgdp/internal/gdp"
	"worldgdp/internal/telemetry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("worldgdp.internal.scrapers.wikipedia")

// TableBodyIndex is the zero-based position of the GDP table's <tbody> among
// the <tbody> tags written in the page. It is tied to the layout of the archived page,
// Extract fails with gdp.ErrParse once the page no longer has that many.
const TableBodyIndex = 2

const thousandsSeparator = ","

const (
	report_extractor_extract    = "extractor.extract"
	report_extractor_accepted   = "extractor.accepted"
	report_extractor_structural = "extractor.structural"
	report_extractor_filtered   = "extractor.filtered"
)

type Extractor struct {
	tel telemetry.API
}

func NewExtractor(tel telemetry.API) Extractor {
	return Extractor{tel: tel}
}

// Extract reads the country rows out of the GDP table in markup into a table
// with the given column names. Rows keep the order they have on the page.
func (e Extractor) Extract(ctx context.Context, markup string, columns [2]string) (gdp.Table, error) {
	ctx, span := tracer.Start(ctx, "extractor:Extract")
	defer span.End()

	offsets, err := tableBodyOffsets(markup)
	if err != nil {
		span.SetStatus(codes.Error, "failed to tokenize html")
		return gdp.Table{}, fmt.Errorf("%w: tokenize html: %w", gdp.ErrParse, err)
	}
	span.SetAttributes(attribute.Int("tbody_count", len(offsets)))
	if len(offsets) <= TableBodyIndex {
		err := fmt.Errorf(
			"%w: expected a <tbody> at index %d, found only %d",
			gdp.ErrParse, TableBodyIndex, len(offsets),
		)
		e.tel.ReportBroken(report_extractor_extract, err)
		span.SetStatus(codes.Error, "table body not found")
		return gdp.Table{}, err
	}

	// parsing from the chosen tag onwards makes it the first <tbody> of the
	// document, the <table> keeps the parser in table mode.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<table>" + markup[offsets[TableBodyIndex]:],
	))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return gdp.Table{}, fmt.Errorf("%w: parse html: %w", gdp.ErrParse, err)
	}
	body := doc.Find("tbody").First()

	table := gdp.NewTable(columns)
	var structural, filtered int64

	var decodeErr error
	body.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		row := newSelectionRow(tr)
		if isStructural(row) {
			structural++
			return true
		}
		if !isCountryRow(row) {
			filtered++
			e.tel.ReportDebug("skipped row", i, row.cellText(nameCell))
			return true
		}

		decoded, err := decodeRow(ctx, row)
		if err != nil {
			decodeErr = fmt.Errorf("row %d: %w", i, err)
			return false
		}
		table.Append(decoded)
		return true
	})
	if decodeErr != nil {
		e.tel.ReportBroken(report_extractor_extract, decodeErr)
		span.RecordError(decodeErr)
		span.SetStatus(codes.Error, "failed to decode row")
		return gdp.Table{}, decodeErr
	}

	e.tel.ReportCount(report_extractor_accepted, int64(table.Len()))
	e.tel.ReportCount(report_extractor_structural, structural)
	e.tel.ReportCount(report_extractor_filtered, filtered)
	span.SetAttributes(attribute.Int("rows", table.Len()))

	return table, nil
}

func decodeRow(ctx context.Context, row rowView) (gdp.Row, error) {
	if row.cellCount() <= valueCell {
		return gdp.Row{}, fmt.Errorf(
			"%w: expected at least %d cells, got %d",
			gdp.ErrFormat, valueCell+1, row.cellCount(),
		)
	}

	country := row.linkText(ctx, nameCell)
	if country == "" {
		return gdp.Row{}, fmt.Errorf("%w: country link has no text", gdp.ErrFormat)
	}

	value, err := ParseFigure(row.cellText(valueCell))
	if err != nil {
		return gdp.Row{}, fmt.Errorf("%s: %w", country, err)
	}

	return gdp.Row{Country: country, Value: value}, nil
}

// ParseFigure decodes a figure like "26,854,599" by dropping the thousands
// separators. Anything that is not a finite, non-negative number is a
// gdp.ErrFormat.
func ParseFigure(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), thousandsSeparator, "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: gdp figure %q: %w", gdp.ErrFormat, text, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("%w: gdp figure %q is not a finite non-negative number", gdp.ErrFormat, text)
	}
	return value, nil
}
