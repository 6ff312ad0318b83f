package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"worldgdp/internal/assert"
	"worldgdp/internal/config"
	"worldgdp/internal/gdp"
	"worldgdp/internal/progress"
	"worldgdp/internal/sink"
	"worldgdp/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "worldgdp.internal.pipeline"

var tracer = otel.Tracer(instrumentationName)

const (
	report_pipeline_metrics = "pipeline.metrics"
)

// Fetcher retrieves the raw markup behind a url.
type Fetcher interface {
	Fetch(ctx context.Context, link string) (string, error)
}

// Extractor turns raw markup into a table with the given columns.
type Extractor interface {
	Extract(ctx context.Context, markup string, columns [2]string) (gdp.Table, error)
}

type Pipeline struct {
	config    config.Config
	fetcher   Fetcher
	extractor Extractor
	progress  progress.Log
	out       io.Writer
	tel       telemetry.API
	rows      metric.Int64Gauge
}

func New(
	cfg config.Config,
	fetcher Fetcher,
	extractor Extractor,
	log progress.Log,
	out io.Writer,
	tel telemetry.API,
) Pipeline {
	assert.NotNil(fetcher)
	assert.NotNil(extractor)
	assert.NotNil(out)
	assert.NotNil(tel)
	assert.NotEmptyStr(log.Path())

	return Pipeline{
		config:    cfg,
		fetcher:   fetcher,
		extractor: extractor,
		progress:  log,
		out:       out,
		tel:       tel,
		rows:      newRowsGauge(otel.Meter(instrumentationName), tel),
	}
}

// newRowsGauge falls back to a no-op gauge when the meter refuses to create
// one, a missing metric is reported but never fails a run.
func newRowsGauge(meter metric.Meter, tel telemetry.API) metric.Int64Gauge {
	gauge, err := meter.Int64Gauge(
		"gdp_rows",
		metric.WithDescription("Rows in the table after a pipeline stage."),
	)
	if err != nil {
		tel.ReportWarning(report_pipeline_metrics, err)
		return noop.Int64Gauge{}
	}
	return gauge
}

// Run executes every stage once, in order. The first failure stops the run,
// progress lines written before it stay in the log.
func (p Pipeline) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "pipeline:Run")
	defer span.End()

	err := p.run(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pipeline failed")
	}
	return err
}

func (p Pipeline) run(ctx context.Context, span trace.Span) error {
	err := p.progress.Log(progress.MilestoneStart)
	if err != nil {
		return err
	}

	extracted, err := p.extract(ctx)
	if err != nil {
		return err
	}
	p.rows.Record(ctx, int64(extracted.Len()), metric.WithAttributes(attribute.String("stage", "extracted")))
	err = p.progress.Log(progress.MilestoneExtracted)
	if err != nil {
		return err
	}

	transformed, err := gdp.Transform(extracted)
	if err != nil {
		return err
	}
	err = p.progress.Log(progress.MilestoneTransformed)
	if err != nil {
		return err
	}

	err = sink.WriteFlatFile(transformed, p.config.CsvPath)
	if err != nil {
		return err
	}
	err = p.progress.Log(progress.MilestoneCSVSaved)
	if err != nil {
		return err
	}

	return withDatabase(p.config.Database.Describe(), p.config.Database.OpenDB, func(db *sql.DB) error {
		return p.load(ctx, span, db, extracted.Len(), transformed)
	})
}

// load covers everything that needs the database, from connecting to the
// printed query result.
func (p Pipeline) load(ctx context.Context, span trace.Span, db *sql.DB, extracted int, transformed gdp.Table) error {
	err := p.progress.Log(progress.MilestoneConnected)
	if err != nil {
		return err
	}

	err = sink.WriteRelation(ctx, db, p.config.TableName, transformed)
	if err != nil {
		return err
	}
	err = p.progress.Log(progress.MilestoneLoaded)
	if err != nil {
		return err
	}

	query := sink.ThresholdQuery(p.config.TableName, transformed.ValueColumn(), p.config.Threshold)
	p.tel.ReportDebug("running query", query)
	result, err := sink.Query(ctx, db, query)
	if err != nil {
		return err
	}
	p.rows.Record(ctx, int64(len(result.Rows)), metric.WithAttributes(attribute.String("stage", "queried")))
	span.SetAttributes(
		attribute.Int("rows.extracted", extracted),
		attribute.Int("rows.queried", len(result.Rows)),
	)
	sink.PrintResult(p.out, result)

	return p.progress.Log(progress.MilestoneComplete)
}

// withDatabase opens a handle, passes it to fn and closes it exactly once,
// whether fn fails or not. A close failure is only returned when fn succeeded.
func withDatabase[H io.Closer](name string, open func() (H, error), fn func(H) error) error {
	handle, err := open()
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", gdp.ErrStorage, name, err)
	}

	err = fn(handle)
	closeErr := handle.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("%w: close %s: %w", gdp.ErrStorage, name, closeErr)
	}
	return nil
}

func (p Pipeline) extract(ctx context.Context) (gdp.Table, error) {
	ctx, span := tracer.Start(ctx, "pipeline:extract")
	defer span.End()

	markup, err := p.fetcher.Fetch(ctx, p.config.Url)
	if err != nil {
		return gdp.Table{}, err
	}
	return p.extractor.Extract(ctx, markup, p.config.Columns())
}

// RunQuery opens the configured database and prints the threshold query
// against a relation written by an earlier run.
func RunQuery(ctx context.Context, cfg config.Config, out io.Writer) error {
	return withDatabase(cfg.Database.Describe(), cfg.Database.OpenDB, func(db *sql.DB) error {
		result, err := sink.Query(ctx, db, sink.ThresholdQuery(cfg.TableName, gdp.BillionsColumn, cfg.Threshold))
		if err != nil {
			return err
		}
		sink.PrintResult(out, result)
		return nil
	})
}
