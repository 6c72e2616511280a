// Package smartadd turns a free-text request such as "明天下午3点开会" into a
// task using a language model.
package smartadd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/store"
)

var (
	ErrEmptyResponse = errors.New("smartadd: empty model response")
	ErrNoAPIKey      = errors.New("smartadd: no api key configured")
	ErrInvalidResult = errors.New("smartadd: invalid parse result")
)

// ParsedTask is what the model returns. Time is empty when the request names
// no time of day.
type ParsedTask struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	HasAlarm bool   `json:"hasAlarm"`
}

// Parser extracts a task from text relative to reference.
type Parser interface {
	ParseTask(ctx context.Context, text string, reference time.Time) (ParsedTask, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(ctx context.Context, text string, reference time.Time) (ParsedTask, error)

func (f ParserFunc) ParseTask(ctx context.Context, text string, reference time.Time) (ParsedTask, error) {
	return f(ctx, text, reference)
}

// Normalize trims the result and checks it as a task draft: title non-empty,
// date valid, time empty or HH:mm.
func (p ParsedTask) Normalize() (ParsedTask, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Date = strings.TrimSpace(p.Date)
	p.Time = strings.TrimSpace(p.Time)
	draft := model.Task{Title: p.Title, Date: p.Date, Time: p.Time, HasAlarm: p.HasAlarm}
	if err := draft.Validate(); err != nil {
		return ParsedTask{}, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	clock, err := model.NormalizeClock(p.Time)
	if err != nil {
		return ParsedTask{}, fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	p.Time = clock
	return p, nil
}

func (p ParsedTask) NewTask() store.NewTask {
	return store.NewTask{Title: p.Title, Date: p.Date, Time: p.Time, HasAlarm: p.HasAlarm}
}

// StripFences removes a surrounding markdown code fence, with or without a
// language tag.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
