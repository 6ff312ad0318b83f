package pipeline

import (
	"context"
	"errors"
	"testing"
	"worldgdp/internal/gdp"
	"worldgdp/internal/telemetry"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeHandle struct {
	closes   int
	closeErr error
}

func (h *fakeHandle) Close() error {
	h.closes++
	return h.closeErr
}

func TestWithDatabase(t *testing.T) {
	errFn := errors.New("write failed")
	errClose := errors.New("close failed")

	testCases := []struct {
		name     string
		fnErr    error
		closeErr error
		expected error
	}{
		{name: "success"},
		{name: "fn fails", fnErr: errFn, expected: errFn},
		{name: "close fails", closeErr: errClose, expected: gdp.ErrStorage},
		{name: "both fail", fnErr: errFn, closeErr: errClose, expected: errFn},
	}

	for _, test := range testCases {
		handle := &fakeHandle{closeErr: test.closeErr}
		calls := 0
		err := withDatabase(
			"fake",
			func() (*fakeHandle, error) { return handle, nil },
			func(h *fakeHandle) error {
				calls++
				require.Equal(t, 0, h.closes, test.name)
				return test.fnErr
			},
		)
		require.Equal(t, 1, calls, test.name)
		require.Equal(t, 1, handle.closes, test.name)
		if test.expected == nil {
			require.NoError(t, err, test.name)
			continue
		}
		require.ErrorIs(t, err, test.expected, test.name)
	}
}

func TestWithDatabaseOpenFails(t *testing.T) {
	called := false
	err := withDatabase(
		"fake",
		func() (*fakeHandle, error) { return nil, errors.New("no such host") },
		func(h *fakeHandle) error {
			called = true
			return nil
		},
	)
	require.ErrorIs(t, err, gdp.ErrStorage)
	require.False(t, called)
}

type rejectingMeter struct {
	noop.Meter
}

func (rejectingMeter) Int64Gauge(string, ...metric.Int64GaugeOption) (metric.Int64Gauge, error) {
	return nil, errors.New("instrument rejected")
}

func TestNewRowsGauge(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(ctx)

	mem := &telemetry.MemoryAPI{}
	gauge := newRowsGauge(provider.Meter("test"), mem)
	gauge.Record(ctx, 3)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	require.Equal(t, "gdp_rows", rm.ScopeMetrics[0].Metrics[0].Name)
	data, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, data.DataPoints, 1)
	require.Equal(t, int64(3), data.DataPoints[0].Value)
	require.Empty(t, mem.Reports())
}

func TestNewRowsGaugeFallback(t *testing.T) {
	mem := &telemetry.MemoryAPI{}
	gauge := newRowsGauge(rejectingMeter{}, mem)
	require.NotNil(t, gauge)
	gauge.Record(context.Background(), 3)

	reports := mem.Reports()
	require.Len(t, reports, 1)
	require.Equal(t, "warning", reports[0].Kind)
	require.Equal(t, report_pipeline_metrics, reports[0].ID)
}
