// Package export writes the task list as an iCalendar file of VTODOs.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/sandeepkv93/taskcal/internal/model"
)

const productID = "-//taskcal//tasks//ZH"

// Calendar builds one VTODO per task. Tasks with a time get a timed DUE and,
// when their alarm is on, a display VALARM at the due time. Tasks whose date
// does not parse are skipped.
func Calendar(tasks []model.Task, loc *time.Location, stamp time.Time) *ics.Calendar {
	if loc == nil {
		loc = time.Local
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, t := range tasks {
		due, err := t.At(loc)
		if err != nil {
			continue
		}
		todo := cal.AddTodo(t.ID + "@taskcal")
		todo.SetDtStampTime(stamp)
		todo.SetSummary(t.Title)
		if t.Time == "" {
			todo.SetAllDayDueAt(due)
		} else {
			todo.SetDueAt(due)
		}
		if t.Completed {
			todo.SetStatus(ics.ObjectStatusCompleted)
		} else {
			todo.SetStatus(ics.ObjectStatusNeedsAction)
		}
		if t.HasAlarm && t.Time != "" {
			alarm := todo.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger("PT0M")
			alarm.SetProperty(ics.ComponentPropertyDescription, t.Title)
		}
	}
	return cal
}

func WriteICS(w io.Writer, tasks []model.Task, loc *time.Location, stamp time.Time) error {
	_, err := io.WriteString(w, Calendar(tasks, loc, stamp).Serialize())
	return err
}

// WriteFile writes the calendar to path through a temp file and rename.
func WriteFile(path string, tasks []model.Task, loc *time.Location, stamp time.Time) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".taskcal-*.ics")
	if err != nil {
		return fmt.Errorf("export: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if err := WriteICS(tmp, tasks, loc, stamp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: rename: %w", err)
	}
	return nil
}
