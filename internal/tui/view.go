package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/bouncy/internal/physics"
)

// reservedRows returns how many rows the status bar and help take.
func (m Model) reservedRows() int {
	rows := 1
	if !m.cfg.Terminal.ShowHelp {
		return rows
	}
	if m.help.ShowAll {
		tallest := 0
		for _, group := range m.keys.FullHelp() {
			tallest = max(tallest, len(group))
		}
		return rows + tallest
	}
	return rows + 1
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	d := m.s.desktop
	lines := make([]string, d.workRows())

	col, row := d.windowCell()
	window := strings.Split(m.renderWindow(), "\n")
	pad := strings.Repeat(" ", col)
	for i, line := range window {
		if r := row + i; r >= 0 && r < len(lines) {
			lines[r] = pad + line
		}
	}

	s := strings.Join(lines, "\n")
	s += "\n" + m.renderStatus()
	if m.cfg.Terminal.ShowHelp {
		s += "\n" + m.help.View(m.keys)
	}
	return s
}

// renderWindow draws the bouncing window as a bordered box.
func (m Model) renderWindow() string {
	d := m.s.desktop
	body := m.s.engine.Body()

	borderColor := lipgloss.Color(m.cfg.Terminal.BorderColor)
	if body.Dragging {
		borderColor = lipgloss.Color("10")
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(d.winCols - 2).
		Height(d.winRows - 2).
		MaxWidth(d.winCols).
		MaxHeight(d.winRows)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	content := titleStyle.Render(m.cfg.Terminal.Title)
	if d.winRows > 3 {
		content += "\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Render(body.State().String())
	}
	return style.Render(content)
}

// renderStatus draws the status bar along the bottom edge.
func (m Model) renderStatus() string {
	body := m.s.engine.Body()

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	state := body.State().String()
	if body.State() == physics.StateDragging {
		state = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(state)
	}

	parts := []string{
		state,
		labelStyle.Render("pos ") + valueStyle.Render(fmt.Sprintf("%d,%d", body.PosX, body.PosY)),
		labelStyle.Render("speed ") + valueStyle.Render(humanize.FtoaWithDigits(max(0, m.s.speedShown), 1)),
		labelStyle.Render("bounces ") + valueStyle.Render(humanize.Comma(m.s.bounces)),
		labelStyle.Render("steps ") + valueStyle.Render(humanize.Comma(m.s.engine.Steps())),
	}
	return lipgloss.NewStyle().
		MaxWidth(max(1, m.width)).
		Render(strings.Join(parts, labelStyle.Render(" │ ")))
}
