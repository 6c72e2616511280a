package update

import (
	"strings"

	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/views"
)

// renderOverlay returns the topmost modal, if any.
func (m Model) renderOverlay() string {
	switch {
	case m.Smart.Processing:
		return views.RenderProcessing(m.spinner.View())
	case m.Smart.Active:
		return m.renderSmartAdd()
	case m.Form.Active:
		return m.renderForm()
	case m.Palette.Active:
		return m.renderCommandPalette()
	case m.ConfirmClear:
		return views.RenderConfirm("清空所有任务？")
	case m.HelpVisible:
		return m.renderHelpView()
	}
	return ""
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Title+": "+n.Body)
}

func (m Model) renderBottomNav() string {
	return views.RenderBottomNav([]views.NavItem{
		{Key: m.Keys.Widget, Label: "今天", Active: m.CurrentView == model.ViewWidget},
		{Key: m.Keys.Grid, Label: "日历", Active: m.CurrentView == model.ViewGrid},
		{Key: m.Keys.Smart, Label: "智能添加"},
		{Key: m.Keys.List, Label: "待办", Active: m.CurrentView == model.ViewList},
		{Key: m.Keys.Settings, Label: "设置", Active: m.CurrentView == model.ViewSettings},
	})
}

// notify appends to the in-app notification log, keeping the newest 40.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}
