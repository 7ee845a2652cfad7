package commands

import (
	"context"
	"freeroom/lib/restyutil"
	"freeroom/lib/scrapers/eams"
	"freeroom/services/collect"
	"log/slog"
)

func newPortal(dump restyutil.InstrumentOutput) collect.NewPortal {
	return func(ctx context.Context) (collect.Portal, error) {
		client, err := eams.NewClient(ctx, eams.ClientOptions{
			BaseUrl:          cfg.Portal.BaseUrl,
			Timeout:          cfg.timeout(),
			LoginDelay:       cfg.loginDelay(),
			CloudflareBypass: cfg.Portal.CloudflareBypass,
			Dump:             dump,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func dumpOutput() restyutil.InstrumentOutput {
	if cfg.Portal.DumpDir == "" {
		return nil
	}
	output, err := restyutil.NewFilesystemOutput(cfg.Portal.DumpDir)
	if err != nil {
		slog.Warn("failed to create request dump directory", "dir", cfg.Portal.DumpDir, "err", err)
		return nil
	}
	return output
}

func fetch(ctx context.Context) error {
	username, password, err := credentials()
	if err != nil {
		return err
	}
	results, err := collect.Collect(ctx, newPortal(dumpOutput()), collect.Options{
		DataDir:  cfg.DataDir,
		Username: username,
		Password: password,
		Days:     cfg.Days,
		Delay:    cfg.requestDelay(),
	})
	for _, day := range results {
		rows, failed := 0, 0
		for _, slot := range day.Slots {
			rows += slot.Rows
			if slot.Error != nil {
				failed++
			}
		}
		slog.InfoContext(ctx, "fetched day", "day", day.Offset, "rows", rows, "failed_slots", failed)
	}
	return err
}
