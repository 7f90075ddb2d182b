package catalog

import (
	"context"
	"fmt"

	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/robfig/cron/v3"
)

// Schedule calls a ReloadFunc on a cron schedule. It complements Watcher on
// mounts that do not deliver file events.
type Schedule struct {
	cron   *cron.Cron
	logger *observability.Logger
}

// NewSchedule parses expr (standard five-field cron syntax or a descriptor
// such as "@every 5m") and returns a stopped schedule
func NewSchedule(expr string, reload ReloadFunc, logger *observability.Logger) (*Schedule, error) {
	if logger == nil {
		logger = observability.Discard()
	}
	logger = logger.WithField("component", "catalog-schedule")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(expr, func() { runReload(logger, reload) }); err != nil {
		return nil, fmt.Errorf("invalid catalog reload schedule %q: %w", expr, err)
	}
	return &Schedule{cron: c, logger: logger}, nil
}

// Start runs the schedule in the background
func (s *Schedule) Start() {
	s.cron.Start()
	s.logger.Info("Catalog reload schedule started")
}

// Stop halts the schedule and waits for a running reload to finish or ctx to end
func (s *Schedule) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
