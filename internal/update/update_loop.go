package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/alarm"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/views"
)

func (m Model) Init() tea.Cmd {
	perms := m.perms
	return tea.Batch(
		func() tea.Msg { return PermissionMsg{Permission: perms.RequestPermission()} },
		alarmTickCmd(m.interval),
	)
}

const statusTTL = 4 * time.Second

func clearStatusCmd(text string) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Text: text} })
}

func appErrorCmd(err error) tea.Cmd {
	return func() tea.Msg { return AppErrorMsg{Err: err} }
}

// Update schedules the expiry of every new non-error status. Errors stay
// until something replaces them.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := m.Status
	next, cmd := m.update(msg)
	if next.Status != prev && next.Status.Text != "" && !next.Status.IsError {
		cmd = tea.Batch(cmd, clearStatusCmd(next.Status.Text))
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case spinner.TickMsg:
		if m.Smart.Processing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case AlarmTickMsg:
		m.onAlarmTick(typed.At)
		return m, alarmTickCmd(m.interval)
	case PermissionMsg:
		m.logger.WithField("permission", typed.Permission).Info("notification permission resolved")
		if typed.Permission == alarm.PermissionDenied {
			m.notify("通知", "桌面通知不可用，提醒将只播放声音", "warn")
		}
		return m, nil
	case SmartAddResultMsg:
		return m.onSmartAddResult(typed)
	case SwitchViewMsg:
		if typed.View.IsValid() {
			m.CurrentView = typed.View
		}
		return m, nil
	case ClearStatusMsg:
		if typed.Text == "" || typed.Text == m.Status.Text {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.sound != nil && !m.sound.Unlocked() {
		m.sound.Unlock()
		m.logger.Debug("alarm sound unlocked")
	}

	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	switch {
	case m.Smart.Processing:
		return m, nil
	case m.Smart.Active:
		return m.handleSmartKey(msg)
	case m.Form.Active:
		return m.handleFormKey(msg)
	case m.Palette.Active:
		return m.handlePaletteKey(msg)
	case m.ConfirmClear:
		return m.handleConfirmClearKey(msg)
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Widget:
		m.CurrentView = model.ViewWidget
		return m, nil
	case m.Keys.Grid:
		m.CurrentView = model.ViewGrid
		return m, nil
	case m.Keys.List:
		m.CurrentView = model.ViewList
		m.clampListCursor()
		return m, nil
	case m.Keys.Settings:
		m.CurrentView = model.ViewSettings
		return m, nil
	case m.Keys.Smart:
		return m.openSmartAdd(), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case model.ViewGrid:
		return m.handleGridKey(msg), nil
	case model.ViewList:
		return m.handleListKey(msg)
	case model.ViewSettings:
		return m.handleSettingsKey(msg), nil
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.CurrentView {
	case model.ViewWidget:
		body = m.renderWidgetView()
	case model.ViewList:
		body = m.renderListView()
	case model.ViewSettings:
		body = m.renderSettingsView()
	default:
		body = m.renderGridView()
	}

	status := m.Status.Text
	if status != "" && m.Status.IsError {
		status = fmt.Sprintf("error: %s", status)
	}

	return views.RenderApp(views.AppData{
		Header:        views.RenderHeader("日程概览", fmt.Sprintf("%d年%02d月", m.DisplayMonth.Year(), int(m.DisplayMonth.Month()))),
		Body:          body,
		Overlay:       strings.TrimSpace(m.renderOverlay()),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Nav:           m.renderBottomNav(),
	})
}
