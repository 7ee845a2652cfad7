package chrono

import (
	"context"
	"fmt"
	"freeroom/lib/timezone"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs callbacks on cron specs.
type Scheduler interface {
	Cron(spec string, callback func()) error
}

// StandardCron schedules in Beijing time regardless of the host zone, the
// portal's days start at Beijing midnight.
type StandardCron struct {
	cron *cron.Cron
}

func NewStandardCron() StandardCron {
	return StandardCron{
		cron: cron.New(
			cron.WithLogger(cronLogger{}),
			cron.WithLocation(timezone.Location),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
		),
	}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddFunc(spec, callback)
	return err
}

// Run starts the scheduler and blocks until ctx is done, jobs that are still
// running are waited for.
func (s StandardCron) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
}

type cronLogger struct{}

func (l cronLogger) formatParams(keysAndValues []any) []any {
	params := []any{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		params = append(params, fmt.Sprint(keysAndValues[i]), keysAndValues[i+1])
	}
	return params
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, l.formatParams(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(l.formatParams(keysAndValues), "err", err)...)
}
