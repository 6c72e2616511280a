package update

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/alarm"
)

func alarmTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return AlarmTickMsg{At: t} })
}

func (m *Model) onAlarmTick(at time.Time) {
	if m.poller == nil {
		return
	}
	for _, f := range m.poller.Tick(m.ctx(), at) {
		m.notify(alarm.NotificationTitle, f.Task.Title, "alarm")
		m.Status = StatusBar{Text: alarm.NotificationTitle + ": " + f.Task.Title}
		if f.SoundErr != nil && errors.Is(f.SoundErr, alarm.ErrSoundLocked) {
			m.Status.Text += " (按任意键启用声音)"
		}
	}
}
