package jobs

import (
	"context"
	"log/slog"
	"time"

	"supply/internal/core/application/usecases/queries"
	"supply/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultShortageDigestSchedule runs the digest every day at 07:00.
const DefaultShortageDigestSchedule = "0 0 7 * * *"

const digestWindow = 24 * time.Hour

// ShortageDigestHandler is the read model the digest is built from.
type ShortageDigestHandler interface {
	Handle(ctx context.Context, query queries.ShortageDigestQuery) ([]queries.WarehouseShortages, error)
}

// ShortageDigestJob logs, per warehouse, the unavailable and short items
// prepared during the 24 hours before each run.
type ShortageDigestJob struct {
	handler  ShortageDigestHandler
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *slog.Logger
}

// NewShortageDigestJob creates the digest job. An empty schedule falls back to
// DefaultShortageDigestSchedule. Schedules use the six-field cron format with
// seconds.
func NewShortageDigestJob(handler ShortageDigestHandler, schedule string, logger *slog.Logger) *ShortageDigestJob {
	if schedule == "" {
		schedule = DefaultShortageDigestSchedule
	}
	return &ShortageDigestJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		now:      time.Now,
		logger:   logger.With("component", "shortage_digest_job"),
	}
}

// Start registers the digest on its schedule and starts the scheduler.
func (j *ShortageDigestJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		_ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shortage digest job started", "schedule", j.schedule)
	return nil
}

// Run builds and logs one digest for the window ending now.
func (j *ShortageDigestJob) Run(ctx context.Context) error {
	to := j.now().UTC()
	from := to.Add(-digestWindow)

	query, err := queries.NewShortageDigestQuery(from, to)
	if err != nil {
		metrics.DigestRunsTotal.WithLabelValues("error").Inc()
		return err
	}

	digest, err := j.handler.Handle(ctx, query)
	if err != nil {
		metrics.DigestRunsTotal.WithLabelValues("error").Inc()
		j.logger.ErrorContext(ctx, "Shortage digest failed", "error", err)
		return err
	}

	if len(digest) == 0 {
		j.logger.InfoContext(ctx, "No shortages in the last 24h", "from", from, "to", to)
	}
	for _, w := range digest {
		j.logger.InfoContext(ctx, "Warehouse shortages",
			"warehouse_id", w.WarehouseID.String(),
			"orders", w.Orders,
			"unavailable", w.Unavailable,
			"short", w.Short,
			"requested_total", w.RequestedTotal,
			"available_total", w.AvailableTotal,
			"fulfillment_rate", w.FulfillmentRate.StringFixed(2),
			"from", from,
			"to", to,
		)
	}

	metrics.DigestRunsTotal.WithLabelValues("ok").Inc()
	return nil
}

// Stop stops the scheduler and waits for a running digest to finish.
func (j *ShortageDigestJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Shortage digest job stopped")
}
