package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/commands"
	"github.com/sandeepkv93/taskcal/internal/export"
	"github.com/sandeepkv93/taskcal/internal/store"
	"github.com/sandeepkv93/taskcal/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	typeInto(&m.commandInput, msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.store.Add(m.ctx(), store.NewTask{Title: a.Title, Date: a.Date, Time: a.Time, HasAlarm: a.HasAlarm})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("已添加: %s 到 %s", task.Title, task.Date)}, nil
		},
		Smart: func(s commands.SmartArgs) (commands.Result, error) {
			m, next = m.startSmartAdd(s.Text)
			return commands.Result{}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			if g.Today {
				today := m.now()
				m.gotoMonth(today.Year(), today.Month())
			} else {
				m.gotoMonth(g.Year, g.Month)
			}
			return commands.Result{Message: fmt.Sprintf("%d年%02d月", m.DisplayMonth.Year(), int(m.DisplayMonth.Month()))}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			task, found, err := m.store.Toggle(m.ctx(), t.ID)
			if err != nil {
				return commands.Result{}, err
			}
			if !found {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %s", t.ID)}
			}
			if task.Completed {
				return commands.Result{Message: fmt.Sprintf("已完成: %s", task.Title)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("未完成: %s", task.Title)}, nil
		},
		Remove: func(t commands.TargetArgs) (commands.Result, error) {
			removed, err := m.store.Remove(m.ctx(), t.ID)
			if err != nil {
				return commands.Result{}, err
			}
			if !removed {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %s", t.ID)}
			}
			m.clampListCursor()
			return commands.Result{Message: fmt.Sprintf("已删除: %s", t.ID)}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			path := expandHome(e.Path)
			if err := export.WriteFile(path, m.store.List(), m.now().Location(), m.now()); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("已导出 %d 个任务到 %s", m.store.Len(), path)}, nil
		},
		Clear: func() (commands.Result, error) {
			if err := m.store.Clear(m.ctx()); err != nil {
				return commands.Result{}, err
			}
			m.ListCursor = 0
			return commands.Result{Message: "已清空所有任务"}, nil
		},
	})
	var ce *commands.CommandError
	if errors.As(err, &ce) {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	if err != nil {
		return m, appErrorCmd(err)
	}
	if res.Message != "" {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}
	return m, next
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View(), commands.Usage)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
