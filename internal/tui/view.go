package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Header
	header := titleStyle.Render(" geoedit ─ terminal map editor ") +
		dimStyle.Render(fmt.Sprintf(" %s  %s", m.state.Mode(), m.cfg.MapStyle))
	header = lipgloss.NewStyle().Width(lay.contentW).MaxHeight(headerHeight).Render(header)

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lay.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, boxStyle.Width(maxW).Render(m.tbl.View()))
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).MaxHeight(lay.mapH).Render(m.renderAsciiMap())
	}
	if m.inspectPopup != "" && !m.showAttrs {
		box := boxStyle.MaxWidth(min(60, lay.mapW)).Render(m.inspectPopup)
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Left, lipgloss.Top, box)
	}

	cols := []string{}
	if m.showSidebar {
		cols = append(cols, lipgloss.NewStyle().Width(lay.sidebarW).Render(m.l.View()), " ")
	}
	cols = append(cols, m.renderToolbar(lay.contentH), " ", mapView)
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Footer: status and pointer position on one line, key help below
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hovering {
		p := m.view.FromCell(m.hoverCellX, m.hoverCellY)
		t := m.view.TileAt(p)
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  z%d/%d/%d ", p[0], p[1], t.Z, t.X, t.Y))
	}
	spacer := strings.Repeat(" ", max(0, lay.contentW-lipgloss.Width(status)-lipgloss.Width(coords)))
	m.help.Width = lay.contentW
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(lay.contentW).Render(status+spacer+coords),
		m.help.View(m.keys),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).MaxHeight(m.height).Render(ui)
}

// renderToolbar stacks the current buttons under a title row, one per line,
// highlighting the one matching the active mode.
func (m Model) renderToolbar(height int) string {
	active, hasActive := activeAction(m.state.Mode())
	rows := []string{titleStyle.Width(toolbarWidth).Render(" Tools")}
	for i, b := range m.state.Toolbar() {
		label := fmt.Sprintf(" %s %s", b.Icon, b.Label)
		hint := fmt.Sprintf("%d/%s ", i+1, b.Key)
		pad := max(1, toolbarWidth-lipgloss.Width(label)-lipgloss.Width(hint))
		text := label + strings.Repeat(" ", pad) + hint
		if hasActive && b.Action == active {
			rows = append(rows, activeButtonStyle.Render(text))
		} else {
			rows = append(rows, buttonStyle.Render(text))
		}
	}
	return lipgloss.NewStyle().Width(toolbarWidth).Height(height).Render(strings.Join(rows, "\n"))
}
