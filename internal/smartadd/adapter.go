package smartadd

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskcal/internal/logging"
)

// Adapter wraps a Parser so that every failure collapses into an absent
// result. Callers fall back to manual entry.
type Adapter struct {
	parser Parser
	logger log.FieldLogger
}

func NewAdapter(p Parser, logger log.FieldLogger) *Adapter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Adapter{parser: p, logger: logger}
}

// Parse returns the validated task, or false when the text could not be
// understood for any reason.
func (a *Adapter) Parse(ctx context.Context, text string, reference time.Time) (result ParsedTask, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || a == nil || a.parser == nil {
		return ParsedTask{}, false
	}
	entry := a.logger.WithField("text", text)
	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("smart add parser panicked")
			result, ok = ParsedTask{}, false
		}
	}()

	parsed, err := a.parser.ParseTask(ctx, text, reference)
	if err != nil {
		entry.WithError(err).Warn("smart add parse failed")
		return ParsedTask{}, false
	}
	parsed, err = parsed.Normalize()
	if err != nil {
		entry.WithError(err).Warn("smart add result rejected")
		return ParsedTask{}, false
	}
	entry.WithFields(log.Fields{"title": parsed.Title, "date": parsed.Date, "time": parsed.Time}).Info("smart add parsed")
	return parsed, true
}
