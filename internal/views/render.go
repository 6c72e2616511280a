package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	Body          string
	Overlay       string
	StatusLine    string
	StatusIsError bool
	Notification  string
	Nav           string
}

var (
	accent = lipgloss.Color("#0D9488")
	muted  = lipgloss.Color("8")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	monthStyle  = lipgloss.NewStyle().Foreground(muted)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2)
	footerStyle = lipgloss.NewStyle().Foreground(muted)
)

// RenderHeader renders the title line, e.g. "日程概览 10月".
func RenderHeader(title, month string) string {
	return headerStyle.Render(title) + " " + monthStyle.Render(month)
}

func RenderApp(data AppData) string {
	lines := []string{data.Header, data.Body}
	if data.Overlay != "" {
		lines = append(lines, modalStyle.Render(data.Overlay))
	}
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Nav != "" {
		lines = append(lines, data.Nav)
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
