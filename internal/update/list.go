package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/views"
)

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tasks := m.store.List()
	switch msg.String() {
	case "k", "up":
		if m.ListCursor > 0 {
			m.ListCursor--
		}
	case "j", "down":
		if m.ListCursor < len(tasks)-1 {
			m.ListCursor++
		}
	case " ", "space":
		if len(tasks) == 0 {
			return m, nil
		}
		task, _, err := m.store.Toggle(m.ctx(), tasks[m.ListCursor].ID)
		if err != nil {
			return m, appErrorCmd(err)
		}
		if task.Completed {
			m.Status = StatusBar{Text: fmt.Sprintf("已完成: %s", task.Title)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("未完成: %s", task.Title)}
		}
	case "x", "delete":
		if len(tasks) == 0 {
			return m, nil
		}
		target := tasks[m.ListCursor]
		_, err := m.store.Remove(m.ctx(), target.ID)
		m.clampListCursor()
		if err != nil {
			return m, appErrorCmd(err)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("已删除: %s", target.Title)}
	}
	return m, nil
}

func (m *Model) clampListCursor() {
	n := m.store.Len()
	if m.ListCursor >= n {
		m.ListCursor = n - 1
	}
	if m.ListCursor < 0 {
		m.ListCursor = 0
	}
}

func (m Model) renderListView() string {
	tasks := m.store.List()
	rows := make([]views.ListRow, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, views.ListRow{
			ID:        t.ID,
			Title:     t.Title,
			Date:      t.Date,
			Time:      t.Time,
			Completed: t.Completed,
			HasAlarm:  t.HasAlarm,
			Selected:  i == m.ListCursor,
		})
	}
	return views.RenderList(rows)
}
