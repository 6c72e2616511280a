package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate  = errors.New("model: invalid date")
	ErrInvalidClock = errors.New("model: invalid clock time")
	ErrMissingTitle = errors.New("model: task title is required")
)

// Task is a dated to-do item. Date is a calendar day, not an instant.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Completed bool   `json:"completed"`
	Color     string `json:"color,omitempty"`
	HasAlarm  bool   `json:"hasAlarm"`
}

// Validate checks the user-supplied fields. The id is assigned by the store
// and may still be empty.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrMissingTitle
	}
	if _, err := ParseDate(t.Date); err != nil {
		return err
	}
	if t.Time != "" {
		if _, _, err := ParseClock(t.Time); err != nil {
			return err
		}
	}
	return nil
}

// OnDate reports whether the task falls on the calendar day of d.
func (t Task) OnDate(d time.Time) bool {
	return t.Date == FormatDate(d)
}

// At resolves the task's date and time into an instant in loc. Tasks without
// a time resolve to midnight.
func (t Task) At(loc *time.Location) (time.Time, error) {
	day, err := ParseDateIn(t.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	if t.Time == "" {
		return day, nil
	}
	h, m, err := ParseClock(t.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), nil
}

func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.Local)
}

func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses a 24-hour HH:mm value. Single-digit hours are accepted.
func ParseClock(s string) (hour, minute int, err error) {
	c, perr := time.Parse(ClockLayout, strings.TrimSpace(s))
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return c.Hour(), c.Minute(), nil
}

// NormalizeClock returns s as zero-padded HH:mm, or "" for blank input.
func NormalizeClock(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	h, m, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
