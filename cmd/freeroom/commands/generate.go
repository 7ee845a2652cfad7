package commands

import (
	"context"
	"fmt"
	"freeroom/lib/artifact"
	"freeroom/lib/freeroom"
	"freeroom/lib/timezone"
	"freeroom/lib/util/serviceutil"
	"freeroom/services/dataset"
	"freeroom/services/notify"
	"freeroom/services/process"
	"freeroom/services/report"
	"freeroom/services/snapshots"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(generateCmd)
}

// openStore returns a zero store and a no-op close when no database is
// configured.
func openStore(ctx context.Context) (snapshots.Store, bool, func(), error) {
	if !cfg.Database.Enabled() {
		return snapshots.Store{}, false, func() {}, nil
	}
	db, err := cfg.Database.OpenDB()
	if err != nil {
		return snapshots.Store{}, false, nil, fmt.Errorf("open snapshot database: %w", err)
	}
	store := snapshots.NewStore(db)
	err = store.Migrate(ctx)
	if err != nil {
		db.Close()
		return snapshots.Store{}, false, nil, fmt.Errorf("migrate snapshot database: %w", err)
	}
	return store, true, func() { db.Close() }, nil
}

func readTemplate() (string, error) {
	if cfg.Template == "" {
		return report.Skeleton(cfg.Days, nil), nil
	}
	contents, err := os.ReadFile(cfg.Template)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(contents), nil
}

func baseline(store snapshots.Store, hasStore bool) report.Baseline {
	if domain := cfg.domain(); domain != "" {
		return report.LiveSite{Http: resty.New(), Domain: domain}
	}
	if hasStore {
		return report.StoreBaseline{Store: store}
	}
	slog.Info("no CNAME and no snapshot database, skipping the update check")
	return nil
}

func generate(ctx context.Context, days []freeroom.Day) error {
	template, err := readTemplate()
	if err != nil {
		return err
	}

	store, hasStore, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	now := timezone.Now()
	result, err := report.Generate(ctx, template, days, report.Options{
		Patterns: cfg.Patterns,
		Events:   report.LoadEvents(cfg.EventsFile),
		Quotes:   report.LoadQuotes(cfg.QuotesFile),
		Baseline: baseline(store, hasStore),
		Now:      now,
	})
	if err != nil {
		return err
	}
	err = report.WriteFile(cfg.OutputHtml, result.Html)
	if err != nil {
		return err
	}
	slog.InfoContext(
		ctx, "generated report",
		"path", cfg.OutputHtml,
		"hash", result.Hash,
		"status", result.Status,
		"missing_cells", result.MissingCells,
	)

	runId := now.Format("20060102-150405")
	if hasStore {
		snapshotDays := make([]snapshots.DaySnapshot, len(days))
		for i, day := range days {
			snapshotDays[i] = snapshots.DaySnapshot{
				Offset:  i,
				Date:    timezone.Day(now, i),
				Records: day.Records,
			}
		}
		runId, err = store.SaveRun(ctx, now, result.Hash, snapshotDays)
		if err != nil {
			return err
		}
	}

	if result.Status == report.StatusUpdated && len(days) > 0 {
		notifier := notify.NewNotifier(cfg.Notify)
		if notifier.Enabled() {
			err = notifier.NotifyUpdate(ctx, now, days[0])
			if err != nil {
				// the report is already written, a failed email must not fail the run
				slog.WarnContext(ctx, "failed to send update notification", "err", err)
			}
		}
	}

	if cfg.Artifacts.Enabled() {
		err = publish(ctx, runId, result.Html, len(days))
		if err != nil {
			return err
		}
	}
	return nil
}

func publish(ctx context.Context, runId, html string, days int) error {
	publisher, err := artifact.NewPublisher(cfg.Artifacts)
	if err != nil {
		return err
	}
	files := artifact.Files{"index.html": []byte(html)}
	for offset := 0; offset < days; offset++ {
		dir := dataset.DayDir(cfg.DataDir, offset)
		contents, err := os.ReadFile(filepath.Join(dir, dataset.ProcessedFile))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		files[filepath.ToSlash(filepath.Join(filepath.Base(dir), dataset.ProcessedFile))] = contents
	}
	return publisher.Publish(ctx, runId, files)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Renders the processed days into the html report.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		days, err := process.LoadAll(ctx, cfg.DataDir, cfg.Days, nil)
		if err != nil {
			serviceutil.Fatal("failed to load processed days", err)
		}
		err = generate(ctx, days)
		if err != nil {
			serviceutil.Fatal("failed to generate report", err)
		}
	},
}
