package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type styles struct {
	canvas lipgloss.Style
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	active lipgloss.Style
	key    lipgloss.Style
	hint   lipgloss.Style
	chart  lipgloss.Style
	alert  lipgloss.Style
}

func newStyles(th Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(th.Muted).
			Padding(1, 2).
			Width(42),
		header: lipgloss.NewStyle().Foreground(th.Secondary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(th.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(th.Text),
		active: lipgloss.NewStyle().Foreground(th.Primary).Bold(true),
		key:    lipgloss.NewStyle().Foreground(th.Secondary).Bold(true),
		hint:   lipgloss.NewStyle().Foreground(th.Muted).Italic(true),
		chart:  lipgloss.NewStyle().Foreground(th.Accent).Padding(1, 0),
		alert:  lipgloss.NewStyle().Foreground(th.Warning).Bold(true),
	}
}

// GradientText colours each rune of text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}
	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLab(b, t).Clamped()
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return out.String()
}

// keyHints renders pairs of key and action.
func (s styles) keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.hint.Render(" " + pairs[i+1]))
	}
	return b.String()
}
