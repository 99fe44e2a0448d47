// Package report prints a view payload as metric cards and plain series for
// the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/services"
)

const (
	barWidth   = 30
	labelWidth = 28
)

// Styles holds the lipgloss styles derived from a dashboard theme.
type Styles struct {
	Title  lipgloss.Style
	Card   lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Header lipgloss.Style
	Bar    lipgloss.Style
	Muted  lipgloss.Style
}

func NewStyles(theme models.Theme) Styles {
	accent := lipgloss.Color(theme.Accent)
	text := lipgloss.Color(theme.Text)
	if theme.Name == models.LightTheme.Name {
		// light text colors are unreadable on most terminals
		text = lipgloss.Color(models.DarkTheme.SecondaryBG)
	}

	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			MarginRight(1),
		Label:  lipgloss.NewStyle().Foreground(text),
		Value:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header: lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		Bar:    lipgloss.NewStyle().Foreground(accent),
		Muted:  lipgloss.NewStyle().Faint(true),
	}
}

// Render writes the payload title, its six cards, any extra metrics and
// every chart as a labelled bar list.
func Render(w io.Writer, p models.ViewPayload) error {
	s := NewStyles(p.Theme)

	sections := []string{
		s.Title.Render(p.Title),
		s.cards(p.Cards),
	}
	if p.Intro != "" {
		sections = append(sections, s.Muted.Render(p.Intro))
	}
	if len(p.Metrics) > 0 {
		sections = append(sections, s.cards(p.Metrics))
	}
	for _, c := range p.Charts {
		sections = append(sections, s.chart(c))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

func (s Styles) cards(cards []models.MetricCard) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, s.Card.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			s.Label.Render(c.Icon+" "+c.Label),
			s.Value.Render(c.Value),
		)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (s Styles) chart(c models.Chart) string {
	lines := []string{s.Header.Render(c.Title)}
	if len(c.Points) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.Muted.Render("no data"))...)
	}

	var peak float64
	for _, p := range c.Points {
		peak = max(peak, p.Value)
	}

	for _, p := range c.Points {
		width := 0
		if peak > 0 && p.Value > 0 {
			width = max(1, int(p.Value/peak*barWidth))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s",
			labelWidth, truncate(p.Label, labelWidth),
			s.Bar.Render(strings.Repeat("█", width)),
			services.FormatMoney(p.Value),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
