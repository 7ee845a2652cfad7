package main

import (
	"context"
	"errors"
	"freeroom/cmd/freeroom/commands"
	"freeroom/lib/telemetry"
	"freeroom/lib/util/serviceutil"
	"log/slog"
	"os"
	"time"
)

func main() {
	telemetry.InitSlog(os.Getenv("FREEROOM_DEBUG") != "")

	ctx := serviceutil.SignalContext()
	t, err := telemetry.SetupFromEnv(ctx, "freeroom")
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no telemetry.json5 found, telemetry disabled")
	} else if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := t.Shutdown(shutdownCtx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}()

	code := commands.ExecuteContext(ctx)
	if code != 0 {
		os.Exit(code)
	}
}
