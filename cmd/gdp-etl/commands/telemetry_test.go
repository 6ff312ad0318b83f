package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingTelemetry struct {
	events *[]string
}

func (r recordingTelemetry) Shutdown(ctx context.Context) error {
	*r.events = append(*r.events, "shutdown")
	return nil
}

func stubTelemetry(t *testing.T, setupErr error) *[]string {
	events := &[]string{}
	original := setupTelemetry
	setupTelemetry = func(ctx context.Context) (shutdowner, error) {
		*events = append(*events, "setup")
		if setupErr != nil {
			return nil, setupErr
		}
		return recordingTelemetry{events: events}, nil
	}
	t.Cleanup(func() {
		setupTelemetry = original
	})
	return events
}

func TestWithTelemetryShutsDownBeforeFailing(t *testing.T) {
	events := stubTelemetry(t, nil)
	errRun := errors.New("run failed")

	err := withTelemetry(context.Background(), func(ctx context.Context) error {
		*events = append(*events, "run")
		return errRun
	})
	require.ErrorIs(t, err, errRun)
	require.Equal(t, []string{"setup", "run", "shutdown"}, *events)
}

func TestWithTelemetrySuccess(t *testing.T) {
	events := stubTelemetry(t, nil)

	err := withTelemetry(context.Background(), func(ctx context.Context) error {
		*events = append(*events, "run")
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"setup", "run", "shutdown"}, *events)
}

func TestWithTelemetryWithoutConfig(t *testing.T) {
	events := stubTelemetry(t, fmt.Errorf("read telemetry.json5: %w", os.ErrNotExist))

	ran := false
	err := withTelemetry(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
	require.Equal(t, []string{"setup"}, *events)
}

func TestWithTelemetrySetupFails(t *testing.T) {
	stubTelemetry(t, errors.New("bad endpoint"))

	ran := false
	err := withTelemetry(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.Error(t, err)
	require.False(t, ran)
}
