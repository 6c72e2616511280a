package update

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/smartadd"
	"github.com/sandeepkv93/taskcal/internal/views"
)

const smartAddFailed = "无法理解您的请求，请手动添加。"

func (m Model) openSmartAdd() Model {
	m.Smart = SmartAddState{Active: true}
	m.smartInput.SetValue("")
	m.smartInput.Focus()
	return m
}

func (m Model) handleSmartKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Smart = SmartAddState{}
		m.smartInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.smartInput.Value())
		m.smartInput.SetValue("")
		m.smartInput.Blur()
		if text == "" {
			m.Smart = SmartAddState{}
			return m, nil
		}
		return m.startSmartAdd(text)
	}
	typeInto(&m.smartInput, msg)
	return m, nil
}

// startSmartAdd shows the processing overlay and runs the parser off the
// update loop.
func (m Model) startSmartAdd(text string) (Model, tea.Cmd) {
	m.Smart = SmartAddState{Processing: true}
	return m, tea.Batch(m.spinner.Tick, smartAddCmd(m.smart, text, m.now()))
}

func smartAddCmd(adapter *smartadd.Adapter, text string, reference time.Time) tea.Cmd {
	return func() tea.Msg {
		parsed, ok := adapter.Parse(context.Background(), text, reference)
		return SmartAddResultMsg{Text: text, Parsed: parsed, OK: ok}
	}
}

func (m Model) onSmartAddResult(msg SmartAddResultMsg) (Model, tea.Cmd) {
	m.Smart = SmartAddState{}
	if !msg.OK {
		m.Status = StatusBar{Text: smartAddFailed, IsError: true}
		return m.openForm(m.SelectedDate), nil
	}
	return m.addTask(msg.Parsed.NewTask())
}

func (m Model) renderSmartAdd() string {
	return views.RenderSmartAdd(m.smartInput.View())
}
