package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	libtelemetry "worldgdp/lib/telemetry"
)

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

var setupTelemetry = func(ctx context.Context) (shutdowner, error) {
	return libtelemetry.SetupFromEnv(ctx, serviceName)
}

// withTelemetry exports traces and metrics for the duration of fn when a
// telemetry.json5 can be found, and runs fn without exporting otherwise.
// Telemetry is shut down before fn's error is returned, so a failed run is
// still exported.
func withTelemetry(ctx context.Context, fn func(ctx context.Context) error) error {
	t, err := setupTelemetry(ctx)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no telemetry config found, not exporting telemetry")
		t = libtelemetry.Telemetry{}
	} else if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}

	err = fn(ctx)

	shutdownErr := t.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}
	return err
}
