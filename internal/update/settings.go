package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	if msg.String() == "c" {
		m.ConfirmClear = true
		m.Status = StatusBar{Text: "清空所有任务？"}
	}
	return m
}

func (m Model) handleConfirmClearKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.ConfirmClear = false
	if msg.String() != "y" {
		m.Status = StatusBar{Text: "已取消"}
		return m, nil
	}
	err := m.store.Clear(m.ctx())
	m.ListCursor = 0
	if err != nil {
		return m, appErrorCmd(err)
	}
	m.Status = StatusBar{Text: "已清空所有任务"}
	return m, nil
}

func (m Model) settingsMarkdown() string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	sound := "locked"
	if m.sound != nil && m.sound.Unlocked() {
		sound = "unlocked"
	}
	apiKey := "missing"
	if strings.TrimSpace(m.cfg.LLM.APIKey) != "" {
		apiKey = "set"
	}

	var b strings.Builder
	b.WriteString("# 设置\n\n")
	b.WriteString("| setting | value |\n|---|---|\n")
	rows := [][2]string{
		{"week start", m.cfg.WeekStart},
		{"storage", m.cfg.Storage.Backend},
		{"data dir", m.cfg.Storage.DataDir},
		{"tasks", fmt.Sprintf("%d", m.store.Len())},
		{"alarm interval", m.interval.String()},
		{"alarm dedup", yesNo(m.cfg.Alarm.Dedup)},
		{"desktop notifications", yesNo(m.cfg.Alarm.DesktopNotifications)},
		{"notification permission", string(m.perms.Permission())},
		{"alarm sound", sound},
		{"model endpoint", m.cfg.LLM.BaseURL},
		{"model", m.cfg.LLM.Model},
		{"api key", apiKey},
		{"log file", m.cfg.Log.File},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("| %s | `%s` |\n", r[0], r[1]))
	}
	b.WriteString("\nPress `c` to clear all tasks.\n")
	return b.String()
}

func (m Model) renderSettingsView() string {
	return views.RenderMarkdown(m.settingsMarkdown())
}
