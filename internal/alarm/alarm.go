// Package alarm decides which tasks are due and fires the desktop
// notification and sound for them.
package alarm

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskcal/internal/logging"
	"github.com/sandeepkv93/taskcal/internal/model"
)

const (
	DefaultInterval   = 10 * time.Second
	NotificationTitle = "日程提醒"
)

// TaskSource is the read side of the task store.
type TaskSource interface {
	List() []model.Task
}

// Due returns the tasks whose alarm matches now to the minute. Completed
// tasks, tasks without a time and tasks without an alarm never match.
func Due(now time.Time, tasks []model.Task) []model.Task {
	today := model.FormatDate(now)
	clock := now.Format(model.ClockLayout)
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if !t.HasAlarm || t.Completed || t.Time == "" {
			continue
		}
		if t.Date != today {
			continue
		}
		normalized, err := model.NormalizeClock(t.Time)
		if err != nil || normalized != clock {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Fired records one alarm delivery.
type Fired struct {
	Task      model.Task
	At        time.Time
	Notified  bool
	NotifyErr error
	SoundErr  error
}

type Poller struct {
	mu            sync.Mutex
	source        TaskSource
	notifications *Notifications
	sound         *Sound
	dedup         bool
	minute        string
	fired         map[string]bool
	logger        log.FieldLogger
}

type Option func(*Poller)

// WithDedup makes a task fire at most once per matching minute. Without it a
// task refires on every tick inside that minute.
func WithDedup(enabled bool) Option {
	return func(p *Poller) { p.dedup = enabled }
}

func WithNotifications(n *Notifications) Option {
	return func(p *Poller) { p.notifications = n }
}

func WithSound(s *Sound) Option {
	return func(p *Poller) { p.sound = s }
}

func WithLogger(l log.FieldLogger) Option {
	return func(p *Poller) { p.logger = l }
}

func NewPoller(source TaskSource, opts ...Option) *Poller {
	p := &Poller{source: source, fired: make(map[string]bool)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	return p
}

// Tick evaluates the due tasks at now and fires each of them. Notification
// and sound failures are logged and reported in the result, never returned.
func (p *Poller) Tick(ctx context.Context, now time.Time) []Fired {
	if p.source == nil {
		return nil
	}
	due := Due(now, p.source.List())

	p.mu.Lock()
	minute := now.Format(model.DateLayout + " " + model.ClockLayout)
	if minute != p.minute {
		p.minute = minute
		p.fired = make(map[string]bool)
	}
	if p.dedup {
		kept := due[:0]
		for _, t := range due {
			if p.fired[t.ID] {
				continue
			}
			p.fired[t.ID] = true
			kept = append(kept, t)
		}
		due = kept
	}
	p.mu.Unlock()

	out := make([]Fired, 0, len(due))
	for _, t := range due {
		out = append(out, p.fire(ctx, t, now))
	}
	return out
}

func (p *Poller) fire(ctx context.Context, t model.Task, now time.Time) Fired {
	f := Fired{Task: t, At: now}
	entry := p.logger.WithFields(log.Fields{"task_id": t.ID, "time": t.Time})

	if p.notifications != nil {
		f.Notified, f.NotifyErr = p.notifications.Notify(Notification{Title: NotificationTitle, Body: t.Title})
		if f.NotifyErr != nil {
			entry.WithError(f.NotifyErr).Warn("alarm notification failed")
		}
	}
	if p.sound != nil {
		if f.SoundErr = p.sound.Play(ctx); f.SoundErr != nil {
			entry.WithError(f.SoundErr).Warn("alarm sound not played")
		}
	}
	entry.WithField("notified", f.Notified).Info("alarm fired")
	return f
}
