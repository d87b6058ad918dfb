package tui

import "geoedit/internal/editor"

const (
	sidebarWidth = 28
	toolbarWidth = 26
	headerHeight = 1
	footerHeight = 2
)

// layout is where each panel sits; View and mouse hit-testing share it.
type layout struct {
	sidebarW int
	toolbarX int
	toolbarY int
	mapX     int
	mapY     int
	mapW     int
	mapH     int
	contentW int
	contentH int
}

func (m Model) layout() layout {
	var lay layout
	lay.contentW = max(10, m.width)
	lay.contentH = max(4, m.height-headerHeight-footerHeight)
	if m.showSidebar {
		lay.sidebarW = sidebarWidth
		lay.toolbarX = sidebarWidth + 1
	}
	lay.toolbarY = headerHeight
	lay.mapX = lay.toolbarX + toolbarWidth + 1
	lay.mapY = headerHeight
	lay.mapW = max(8, lay.contentW-lay.mapX)
	lay.mapH = lay.contentH
	return lay
}

// inMap converts a screen position to map cell coordinates.
func (lay layout) inMap(x, y int) (int, int, bool) {
	cx, cy := x-lay.mapX, y-lay.mapY
	return cx, cy, cx >= 0 && cy >= 0 && cx < lay.mapW && cy < lay.mapH
}

// toolbarButton returns the index of the toolbar row at a screen position.
// Row 0 of the toolbar is its title.
func (lay layout) toolbarButton(x, y, n int) (int, bool) {
	if x < lay.toolbarX || x >= lay.toolbarX+toolbarWidth {
		return 0, false
	}
	i := y - lay.toolbarY - 1
	return i, i >= 0 && i < n
}

// resized keeps the projection in step with the map panel size.
func (m Model) resized() Model {
	lay := m.layout()
	m.view = m.view.Resize(lay.mapW, lay.mapH)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	return m
}

// activeAction is the toolbar entry matching the current mode, if shown.
func activeAction(mode editor.Mode) (editor.Action, bool) {
	switch mode {
	case editor.DrawPolygon:
		return editor.ActionDrawArea, true
	case editor.DrawPoint:
		return editor.ActionDrawPoint, true
	case editor.Translate:
		return editor.ActionMove, true
	case editor.Rotate:
		return editor.ActionRotate, true
	case editor.Scale:
		return editor.ActionScale, true
	case editor.Modify:
		return editor.ActionReshape, true
	}
	return 0, false
}
