package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const maxCellTasks = 3

type TaskLine struct {
	Title     string
	Time      string
	Completed bool
	HasAlarm  bool
}

type GridCell struct {
	Day      int
	Lunar    string
	InMonth  bool
	IsToday  bool
	Selected bool
	Tasks    []TaskLine
}

type GridData struct {
	Weekdays  []string
	Cells     []GridCell
	CellWidth int
}

type WidgetData struct {
	Day     string
	Weekday string
	Lunar   string
	Tasks   []TaskLine
}

type ListRow struct {
	ID        string
	Title     string
	Date      string
	Time      string
	Completed bool
	HasAlarm  bool
	Selected  bool
}

type FormData struct {
	DateLabel string
	TitleView string
	TimeView  string
	HasAlarm  bool
	Focus     int
	Error     string
}

type NavItem struct {
	Key    string
	Label  string
	Active bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

var (
	weekendStyle  = lipgloss.NewStyle().Foreground(accent)
	weekdayStyle  = lipgloss.NewStyle().Foreground(muted)
	todayStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	doneStyle     = lipgloss.NewStyle().Foreground(muted).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#134E4A"))
	activeNav     = lipgloss.NewStyle().Foreground(accent).Bold(true)
)

// RenderWeekdayHeader centers each label over a cell; the last two columns
// are the weekend when the week starts on Monday.
func RenderWeekdayHeader(labels []string, cellWidth int) string {
	var b strings.Builder
	for _, label := range labels {
		cell := center(label, cellWidth)
		if label == "周六" || label == "周日" {
			b.WriteString(weekendStyle.Render(cell))
		} else {
			b.WriteString(weekdayStyle.Render(cell))
		}
	}
	return b.String()
}

func RenderGrid(data GridData) string {
	width := data.CellWidth
	if width < 6 {
		width = 6
	}
	rows := []string{RenderWeekdayHeader(data.Weekdays, width)}
	for start := 0; start < len(data.Cells); start += 7 {
		end := start + 7
		if end > len(data.Cells) {
			end = len(data.Cells)
		}
		cells := make([]string, 0, 7)
		for _, c := range data.Cells[start:end] {
			cells = append(cells, renderCell(c, width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(c GridCell, width int) string {
	head := fmt.Sprintf("%2d %s", c.Day, c.Lunar)
	if c.IsToday {
		head = todayStyle.Render(pad(head, width))
	} else {
		head = pad(head, width)
	}
	lines := []string{head}
	for i, t := range c.Tasks {
		if i == maxCellTasks {
			lines = append(lines, dimStyle.Render(pad(fmt.Sprintf("+%d", len(c.Tasks)-maxCellTasks), width)))
			break
		}
		line := pad(runewidth.Truncate(t.Title, width, "…"), width)
		if t.Completed {
			line = doneStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < maxCellTasks+2 {
		lines = append(lines, strings.Repeat(" ", width))
	}
	style := lipgloss.NewStyle()
	if !c.InMonth {
		style = style.Faint(true)
	}
	if c.Selected {
		style = style.Inherit(selectedStyle)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func RenderWidget(data WidgetData) string {
	var b strings.Builder
	b.WriteString(todayStyle.Render(data.Day) + "  " + data.Weekday + "  " + dimStyle.Render(data.Lunar))
	b.WriteString(fmt.Sprintf("    %d 待办\n\n", len(data.Tasks)))
	if len(data.Tasks) == 0 {
		b.WriteString("今天没有安排\n")
		b.WriteString(dimStyle.Render("享受生活吧!"))
		return panelStyle.Render(b.String())
	}
	for _, t := range data.Tasks {
		marker := weekendStyle.Render("▌")
		title := t.Title
		if t.Completed {
			marker = dimStyle.Render("▌")
			title = doneStyle.Render(title)
		}
		b.WriteString(marker + " " + title)
		if t.Time != "" {
			b.WriteString("  " + dimStyle.Render(t.Time))
		}
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func RenderList(rows []ListRow) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("所有待办") + "\n")
	if len(rows) == 0 {
		b.WriteString("\n" + dimStyle.Render("暂无待办事项"))
		return b.String()
	}
	for _, r := range rows {
		cursor := " "
		if r.Selected {
			cursor = ">"
		}
		check := "[ ]"
		title := r.Title
		if r.Completed {
			check = "[x]"
			title = doneStyle.Render(title)
		}
		when := r.Date
		if r.Time != "" {
			when += " " + r.Time
		}
		if r.HasAlarm {
			when += " ⏰"
		}
		b.WriteString(fmt.Sprintf("%s %s %s  %s  %s\n", cursor, check, title, dimStyle.Render(when), dimStyle.Render("#"+r.ID)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTaskForm(data FormData) string {
	focus := func(i int, s string) string {
		if data.Focus == i {
			return "> " + s
		}
		return "  " + s
	}
	alarm := "[ ] 提醒"
	if data.HasAlarm {
		alarm = activeNav.Render("[x] 提醒")
	}
	lines := []string{
		headerStyle.Render("新建日程") + "  " + weekendStyle.Render(data.DateLabel),
		focus(0, data.TitleView),
		focus(1, data.TimeView),
		focus(2, alarm),
	}
	if data.Error != "" {
		lines = append(lines, errorStyle.Render(data.Error))
	}
	lines = append(lines, footerStyle.Render("[tab] 切换  [space] 提醒  [enter] 完成  [esc] 取消"))
	return strings.Join(lines, "\n")
}

func RenderSmartAdd(inputView string) string {
	return strings.Join([]string{
		headerStyle.Render("你想做什么？"),
		inputView,
		footerStyle.Render("[enter] 确定  [esc] 取消"),
	}, "\n")
}

func RenderProcessing(spinnerView string) string {
	return spinnerView + " AI 正在思考..."
}

func RenderConfirm(text string) string {
	return text + "  " + footerStyle.Render("[y] 确认  [其他键] 取消")
}

func RenderCommandPalette(active bool, inputView string, usage []string) string {
	if !active {
		return ""
	}
	return inputView + "\n" + footerStyle.Render(strings.Join(usage, " | "))
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderBottomNav(items []NavItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		label := fmt.Sprintf("[%s] %s", it.Key, it.Label)
		if it.Active {
			parts = append(parts, activeNav.Render(label))
		} else {
			parts = append(parts, footerStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
