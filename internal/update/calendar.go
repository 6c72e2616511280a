package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/views"
)

const gridCellWidth = 12

func (m Model) handleGridKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.moveSelection(-1)
	case "l", "right":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-7)
	case "j", "down":
		m.moveSelection(7)
	case "[":
		m.shiftMonth(-1)
	case "]":
		m.shiftMonth(1)
	case "t":
		today := m.now()
		m.SelectedDate = dayOf(today)
		m.DisplayMonth = calendar.Shift(today, 0)
	case "a", "enter":
		m = m.openForm(m.SelectedDate)
	}
	return m
}

// moveSelection moves the selected day and keeps the displayed month on it.
func (m *Model) moveSelection(days int) {
	m.SelectedDate = m.SelectedDate.AddDate(0, 0, days)
	m.DisplayMonth = calendar.Shift(m.SelectedDate, 0)
}

func (m *Model) shiftMonth(delta int) {
	m.DisplayMonth = calendar.Shift(m.DisplayMonth, delta)
	m.SelectedDate = m.DisplayMonth
	m.Status = StatusBar{Text: fmt.Sprintf("%d年%02d月", m.DisplayMonth.Year(), int(m.DisplayMonth.Month()))}
}

// gotoMonth displays the month and selects its first day, or today when the
// month is the current one.
func (m *Model) gotoMonth(year int, month time.Month) {
	today := m.now()
	m.DisplayMonth = time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	if today.Year() == year && today.Month() == month {
		m.SelectedDate = dayOf(today)
	} else {
		m.SelectedDate = m.DisplayMonth
	}
	m.CurrentView = model.ViewGrid
}

func (m Model) calendarDays() []model.CalendarDay {
	return calendar.Month(m.DisplayMonth, m.now(), m.cfg.WeekStartDay())
}

func (m Model) renderGridView() string {
	days := m.calendarDays()
	byDate := make(map[string][]views.TaskLine)
	for _, t := range m.store.List() {
		byDate[t.Date] = append(byDate[t.Date], views.TaskLine{Title: t.Title, Time: t.Time, Completed: t.Completed, HasAlarm: t.HasAlarm})
	}
	cells := make([]views.GridCell, 0, len(days))
	for _, d := range days {
		cells = append(cells, views.GridCell{
			Day:      d.Date.Day(),
			Lunar:    d.Lunar,
			InMonth:  d.InCurrentMonth,
			IsToday:  d.IsToday,
			Selected: model.SameDay(d.Date, m.SelectedDate),
			Tasks:    byDate[model.FormatDate(d.Date)],
		})
	}
	return views.RenderGrid(views.GridData{
		Weekdays:  calendar.Weekdays(m.cfg.WeekStartDay()),
		Cells:     cells,
		CellWidth: gridCellWidth,
	})
}

func (m Model) renderWidgetView() string {
	today := m.now()
	tasks := m.store.OnDate(today)
	lines := make([]views.TaskLine, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, views.TaskLine{Title: t.Title, Time: t.Time, Completed: t.Completed, HasAlarm: t.HasAlarm})
	}
	return views.RenderWidget(views.WidgetData{
		Day:     today.Format("02"),
		Weekday: calendar.WeekdayLabel(today.Weekday()),
		Lunar:   calendar.LunarPlaceholder(today.Day()),
		Tasks:   lines,
	})
}
