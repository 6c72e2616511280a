package alarm

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Watch runs the poller without a terminal UI. Each run reloads the task
// list first so edits made elsewhere are seen.
type Watch struct {
	Poller   *Poller
	Reload   func(ctx context.Context)
	Interval time.Duration
	Now      func() time.Time
	Logger   log.FieldLogger
}

// Run blocks until ctx is done.
func (w Watch) Run(ctx context.Context) error {
	if w.Poller == nil {
		return fmt.Errorf("alarm: watch without poller")
	}
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := w.Now
	if now == nil {
		now = time.Now
	}
	logger := w.Logger
	if logger == nil {
		logger = w.Poller.logger
	}

	c := cron.New(cron.WithLogger(cronLogger{logger}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})))
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := c.AddFunc(spec, func() { w.tick(ctx, now()) }); err != nil {
		return fmt.Errorf("alarm: schedule %q: %w", spec, err)
	}
	logger.WithField("interval", interval.String()).Info("alarm watch started")
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("alarm watch stopped")
	return nil
}

func (w Watch) tick(ctx context.Context, now time.Time) []Fired {
	if w.Reload != nil {
		w.Reload(ctx)
	}
	return w.Poller.Tick(ctx, now)
}

type cronLogger struct {
	l log.FieldLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.WithFields(kvFields(keysAndValues)).Debug("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.WithFields(kvFields(keysAndValues)).WithError(err).Error("cron: " + msg)
}

func kvFields(kv []interface{}) log.Fields {
	fields := make(log.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
