package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/store"
	"github.com/sandeepkv93/taskcal/internal/views"
)

func (m Model) openForm(date time.Time) Model {
	m.Form = FormState{Active: true, Date: dayOf(date), Focus: FieldTitle}
	m.titleInput.SetValue("")
	m.timeInput.SetValue("")
	m.titleInput.Focus()
	m.timeInput.Blur()
	return m
}

func (m *Model) closeForm() {
	m.Form = FormState{}
	m.titleInput.SetValue("")
	m.timeInput.SetValue("")
	m.titleInput.Blur()
	m.timeInput.Blur()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "down":
		m.focusField((m.Form.Focus + 1) % 3)
		return m, nil
	case "shift+tab", "up":
		m.focusField((m.Form.Focus + 2) % 3)
		return m, nil
	case "enter":
		return m.submitForm()
	}

	switch m.Form.Focus {
	case FieldTitle:
		typeInto(&m.titleInput, msg)
	case FieldTime:
		typeInto(&m.timeInput, msg)
	case FieldAlarm:
		if msg.Type == tea.KeySpace || msg.String() == "x" {
			m.Form.HasAlarm = !m.Form.HasAlarm
		}
	}
	return m, nil
}

func (m *Model) focusField(f FormField) {
	m.Form.Focus = f
	m.titleInput.Blur()
	m.timeInput.Blur()
	switch f {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldTime:
		m.timeInput.Focus()
	}
}

// submitForm adds the task. A blank title keeps the form open without
// complaint.
func (m Model) submitForm() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		return m, nil
	}
	clock, err := model.NormalizeClock(m.timeInput.Value())
	if err != nil {
		m.Form.Err = "时间格式应为 HH:mm"
		return m, nil
	}
	m, cmd := m.addTask(store.NewTask{
		Title:    title,
		Date:     model.FormatDate(m.Form.Date),
		Time:     clock,
		HasAlarm: m.Form.HasAlarm,
	})
	m.closeForm()
	return m, cmd
}

// addTask reports a failed write-through as an AppErrorMsg; the task itself
// stays in the list.
func (m Model) addTask(in store.NewTask) (Model, tea.Cmd) {
	task, err := m.store.Add(m.ctx(), in)
	if err != nil {
		m.logger.WithError(err).WithField("task_id", task.ID).Error("task added but not saved")
		return m, appErrorCmd(fmt.Errorf("已添加但保存失败: %w", err))
	}
	m.Status = StatusBar{Text: fmt.Sprintf("已添加: %s 到 %s", task.Title, task.Date)}
	return m, nil
}

func (m Model) renderForm() string {
	return views.RenderTaskForm(views.FormData{
		DateLabel: fmt.Sprintf("%02d月%02d日", int(m.Form.Date.Month()), m.Form.Date.Day()),
		TitleView: m.titleInput.View(),
		TimeView:  m.timeInput.View(),
		HasAlarm:  m.Form.HasAlarm,
		Focus:     int(m.Form.Focus),
		Error:     m.Form.Err,
	})
}

func typeInto(input *textinput.Model, msg tea.KeyMsg) {
	next, _ := input.Update(msg)
	*input = next
}
