package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:       "1760000000000",
		Title:    "开会",
		Date:     "2026-02-09",
		Time:     "15:00",
		HasAlarm: true,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresTitle(t *testing.T) {
	task := Task{ID: "1", Title: "  ", Date: "2026-02-09"}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskValidateAllowsUnassignedID(t *testing.T) {
	task := Task{Title: "x", Date: "2026-02-09", Time: "9:30"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected draft task to validate, got: %v", err)
	}
}

func TestTaskValidateInvalidDateAndClock(t *testing.T) {
	task := Task{ID: "1", Title: "x", Date: "2026-02-30"}
	if err := task.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got: %v", err)
	}

	task.Date = "2026-02-28"
	task.Time = "25:00"
	if err := task.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got: %v", err)
	}
}

func TestTaskOnDateComparesCalendarDayOnly(t *testing.T) {
	task := Task{ID: "1", Title: "x", Date: "2026-02-09", Time: "23:59"}
	if !task.OnDate(time.Date(2026, 2, 9, 0, 0, 1, 0, time.Local)) {
		t.Fatal("expected same-day match at start of day")
	}
	if !task.OnDate(time.Date(2026, 2, 9, 23, 0, 0, 0, time.Local)) {
		t.Fatal("expected same-day match late in day")
	}
	if task.OnDate(time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)) {
		t.Fatal("expected no match on next day")
	}
}

func TestTaskAt(t *testing.T) {
	task := Task{ID: "1", Title: "x", Date: "2026-02-09", Time: "15:30"}
	at, err := task.At(time.UTC)
	if err != nil {
		t.Fatalf("at failed: %v", err)
	}
	if got := at.Format("2006-01-02 15:04"); got != "2026-02-09 15:30" {
		t.Fatalf("unexpected instant: %s", got)
	}

	task.Time = ""
	at, err = task.At(time.UTC)
	if err != nil {
		t.Fatalf("at without time failed: %v", err)
	}
	if at.Hour() != 0 || at.Minute() != 0 {
		t.Fatalf("expected midnight, got %s", at.Format(time.RFC3339))
	}
}

func TestTaskAtKeepsWallClockAcrossDSTChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	task := Task{ID: "1", Title: "x", Date: "2026-03-08", Time: "09:00"}
	at, err := task.At(ny)
	if err != nil {
		t.Fatalf("at failed: %v", err)
	}
	if got := at.Format("2006-01-02 15:04 MST"); got != "2026-03-08 09:00 EDT" {
		t.Fatalf("expected 09:00 wall clock, got %s", got)
	}
}

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{"", "", false},
		{"9:05", "09:05", false},
		{"15:00", "15:00", false},
		{"7pm", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeClock(tc.in)
		if tc.err {
			if err == nil {
				t.Fatalf("NormalizeClock(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("NormalizeClock(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestViewModeIsValid(t *testing.T) {
	for _, v := range []ViewMode{ViewGrid, ViewList, ViewWidget, ViewSettings} {
		if !v.IsValid() {
			t.Fatalf("expected valid view mode: %q", v)
		}
	}
	if ViewMode("agenda").IsValid() {
		t.Fatal("expected unknown view mode to be invalid")
	}
}
