package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoedit/internal/editor"
	"geoedit/internal/geom"
	"geoedit/internal/viewport"
)

type savedMsg struct {
	path string
	err  error
}

// saveCmd writes a snapshot of the collection off the UI loop.
func saveCmd(path string, fc *geojson.FeatureCollection) tea.Cmd {
	fc = geom.CloneCollection(fc)
	return func() tea.Msg {
		return savedMsg{path: path, err: geom.Save(path, fc)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.resized(), nil
	case savedMsg:
		if msg.err != nil {
			m.status = "save error: " + msg.err.Error()
			m.log.Error(msg.err, "save", "path", msg.path)
		} else {
			m.status = "saved " + msg.path
			m.log.Info("saved", "path", msg.path)
		}
		return m, nil
	case tea.KeyMsg:
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showSidebar {
			return m.updateSidebar(msg)
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "paste cancelled"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		fc, err := geom.ParseWKTCollection(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			m.log.Error(err, "paste wkt")
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		m.loadCollection(fc, "pasted WKT")
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateSidebar gives the file list keyboard focus while it is open.
func (m Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.l.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Files), key.Matches(msg, m.keys.Cancel):
			m.showSidebar = false
			return m.resized(), nil
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Finish):
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
				if m.state.Content() != editor.Empty {
					m.showSidebar = false
					return m.resized(), nil
				}
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.l, cmd = m.l.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a, ok := m.toolbarKey(msg.String()); ok {
		m.click(a)
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Cancel):
		switch {
		case m.inspectPopup != "":
			m.inspectPopup = ""
		case m.showAttrs:
			m.showAttrs = false
		case m.layer.Cancel():
			m.status = "drawing cancelled"
		}
	case key.Matches(msg, m.keys.Finish):
		ev, ok := m.layer.Finish(m.props())
		if !ok && m.state.Mode() == editor.DrawPolygon {
			m.status = "an area needs at least three distinct vertices"
		}
		m.apply(ev, ok)
	case key.Matches(msg, m.keys.Undo):
		if m.state.Mode() == editor.Modify {
			if p, ok := m.cursor(); ok {
				ev, ok := m.layer.RemoveVertex(m.props(), p)
				if !ok {
					m.status = "no removable vertex under the cursor"
				}
				m.apply(ev, ok)
			}
		} else if m.layer.Undo() {
			m.status = fmt.Sprintf("%d vertices", len(m.layer.Pending()))
		}
	case key.Matches(msg, m.keys.Press):
		if cx, cy, ok := m.cursorCell(); ok {
			p := m.view.FromCell(cx, cy)
			m.apply(m.layer.Press(m.props(), p))
			m.apply(m.layer.Release(m.props(), p))
		}
	case key.Matches(msg, m.keys.Nudge):
		m.nudge(msg.String())
	case key.Matches(msg, m.keys.Turn):
		deg := 15.0
		if msg.String() == "]" {
			deg = -15
		}
		ev, ok := m.layer.Turn(m.props(), deg)
		if !ok {
			m.status = "rotate needs Rotate mode"
		}
		m.apply(ev, ok)
	case key.Matches(msg, m.keys.Grow), key.Matches(msg, m.keys.Shrink):
		factor := 1.1
		if key.Matches(msg, m.keys.Shrink) {
			factor = 1 / 1.1
		}
		ev, ok := m.layer.Grow(m.props(), factor)
		if !ok {
			m.status = "resize needs Resize mode"
		}
		m.apply(ev, ok)
	case key.Matches(msg, m.keys.Pan):
		switch msg.String() {
		case "up":
			m.view = m.view.PanBy(0, 1)
		case "down":
			m.view = m.view.PanBy(0, -1)
		case "left":
			m.view = m.view.PanBy(2, 0)
		case "right":
			m.view = m.view.PanBy(-2, 0)
		}
	case key.Matches(msg, m.keys.ZoomIn):
		m.view = m.view.ZoomBy(1)
		m.status = fmt.Sprintf("zoom %.0f", m.view.EffectiveZoom())
	case key.Matches(msg, m.keys.ZoomOut):
		m.view = m.view.ZoomBy(-1)
		m.status = fmt.Sprintf("zoom %.0f", m.view.EffectiveZoom())
	case key.Matches(msg, m.keys.Home):
		m.view = m.view.Reset()
		m.status = "view reset"
	case key.Matches(msg, m.keys.Focus):
		m.focus()
	case key.Matches(msg, m.keys.Grid):
		m.showGrid = !m.showGrid
	case key.Matches(msg, m.keys.Files):
		m.showSidebar = true
		m.refreshDir()
		return m.resized(), nil
	case key.Matches(msg, m.keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		return m, m.ta.Focus()
	case key.Matches(msg, m.keys.Attrs):
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case key.Matches(msg, m.keys.Inspect):
		m.inspectPopup = m.inspect()
		m.status = "inspect"
	case key.Matches(msg, m.keys.Save):
		m.status = "saving " + m.cfg.Output
		return m, saveCmd(m.cfg.Output, m.state.Collection())
	}
	return m, nil
}

// toolbarKey matches a button's letter or its 1-based position.
func (m Model) toolbarKey(s string) (editor.Action, bool) {
	buttons := m.state.Toolbar()
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(buttons) {
		return buttons[n-1].Action, true
	}
	for _, b := range buttons {
		if b.Key == s {
			return b.Action, true
		}
	}
	return 0, false
}

func (m *Model) nudge(dir string) {
	cx, cy := m.view.W/2, m.view.H/2
	dx, dy := 0, 0
	switch dir {
	case "shift+up":
		dy = -1
	case "shift+down":
		dy = 1
	case "shift+left":
		dx = -1
	case "shift+right":
		dx = 1
	}
	ev, ok := m.layer.Nudge(m.props(), m.view.FromCell(cx, cy), m.view.FromCell(cx+dx, cy+dy))
	if !ok {
		m.status = "move needs Move mode"
	}
	m.apply(ev, ok)
}

// focus pans the view so the feature sits in the middle of the map.
func (m *Model) focus() {
	b, ok := geom.Bound(m.state.Collection())
	if !ok {
		m.status = "nothing to focus"
		return
	}
	x, y := m.view.ToDot(b.Center())
	m.view.PanX -= x - m.view.W*viewport.DotsX/2
	m.view.PanY -= y - m.view.H*viewport.DotsY/2
}

func (m Model) cursorCell() (int, int, bool) {
	if m.hovering {
		return m.hoverCellX, m.hoverCellY, true
	}
	return m.view.W / 2, m.view.H / 2, m.view.W > 0
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	lay := m.layout()
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		buttons := m.state.Toolbar()
		if i, ok := lay.toolbarButton(msg.X, msg.Y, len(buttons)); ok {
			m.click(buttons[i].Action)
			return m
		}
	}
	cx, cy, in := lay.inMap(msg.X, msg.Y)
	if !in || m.pasteMode || m.showAttrs {
		if !in {
			m.hovering = false
		}
		if msg.Action == tea.MouseActionRelease && m.layer.Dragging() {
			// dropped off the map: finish where the pointer was last seen
			if p, ok := m.layer.Cursor(); ok {
				m.apply(m.layer.Release(m.props(), p))
			}
		}
		return m
	}
	m.hovering, m.hoverCellX, m.hoverCellY = true, cx, cy
	p := m.view.FromCell(cx, cy)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.inspectPopup = ""
			m.apply(m.layer.Press(m.props(), p))
		case tea.MouseButtonRight:
			if m.state.Mode() == editor.Modify {
				m.apply(m.layer.RemoveVertex(m.props(), p))
			} else {
				m.apply(m.layer.Finish(m.props()))
			}
		case tea.MouseButtonWheelUp:
			m.view = m.view.ZoomBy(1)
		case tea.MouseButtonWheelDown:
			m.view = m.view.ZoomBy(-1)
		}
	case tea.MouseActionMotion:
		if m.layer.Dragging() {
			m.apply(m.layer.Drag(m.props(), p))
		} else {
			m.layer.Hover(p)
		}
	case tea.MouseActionRelease:
		m.apply(m.layer.Release(m.props(), p))
	}
	return m
}

func (m Model) cursor() (orb.Point, bool) {
	cx, cy, ok := m.cursorCell()
	if !ok {
		return orb.Point{}, false
	}
	return m.view.FromCell(cx, cy), true
}
