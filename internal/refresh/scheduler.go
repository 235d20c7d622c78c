package refresh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher is the part of the Coordinator the scheduler drives.
type Refresher interface {
	RefreshAll(ctx context.Context) []Result
}

// ParseSchedule validates a cron spec with an optional leading seconds field,
// including descriptors such as "@every 2m".
func ParseSchedule(spec string) (cron.Schedule, error) {
	return scheduleParser.Parse(spec)
}

var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler triggers RefreshAll on a cron schedule. A tick that fires while the
// previous one is still running is skipped.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	runOnStart bool
	refresher  Refresher
}

// NewScheduler creates a scheduler for spec.
func NewScheduler(spec string, runOnStart bool, refresher Refresher) (*Scheduler, error) {
	if _, err := ParseSchedule(spec); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
			cron.WithLogger(logger),
		),
		spec:       spec,
		runOnStart: runOnStart,
		refresher:  refresher,
	}, nil
}

// Start runs the schedule until ctx is cancelled, then waits for a running
// refresh to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	slog.Info("[Scheduler] Starting refresh scheduler", "schedule", s.spec, "run_on_start", s.runOnStart)

	if s.runOnStart {
		s.tick(ctx)
	}

	s.cron.Start()
	<-ctx.Done()

	slog.Info("[Scheduler] Stopping (context cancelled), waiting for running refresh")
	<-s.cron.Stop().Done()
	slog.Info("[Scheduler] Stopped")
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	results := s.refresher.RefreshAll(ctx)
	for _, res := range results {
		if res.Status != StatusSucceeded {
			slog.Warn("[Scheduler] Scheduled refresh did not succeed",
				"rollup", res.Rollup,
				"status", res.Status,
				"error", res.Error,
			)
		}
	}
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("[Scheduler] "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("[Scheduler] "+msg, append(keysAndValues, "error", err)...)
}
