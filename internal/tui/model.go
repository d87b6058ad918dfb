// Package tui is the terminal front end: a bubbletea program that owns the
// editor state, feeds mouse and keys through the editable layer, and draws
// the map, the toolbar and the side panels.
package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/paulmach/orb"

	"geoedit/internal/config"
	"geoedit/internal/delegate"
	"geoedit/internal/editor"
	"geoedit/internal/viewport"
)

type Model struct {
	width  int
	height int

	cfg   config.Config
	log   logr.Logger
	state *editor.State
	layer *delegate.Layer
	view  viewport.View

	showSidebar bool
	showGrid    bool
	status      string

	keys keyMap
	help help.Model

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state, in map cells
	hovering   bool
	hoverCellX int
	hoverCellY int

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New builds the editor UI around an empty store.
func New(cfg config.Config, log logr.Logger) Model {
	m := Model{
		cfg:      cfg,
		log:      log,
		state:    editor.New(editor.WithLogger(log.WithName("editor"))),
		layer:    delegate.New(cfg.Palette(), log.WithName("layer")),
		view:     viewport.New(orb.Point{cfg.Camera.Longitude, cfg.Camera.Latitude}, cfg.Camera.Zoom),
		showGrid: true,
		status:   "draw an area or a point",
		keys:     defaultKeys(),
		help:     help.New(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT or POLYGON). Enter loads it; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's feature at launch.
func NewWithPath(cfg config.Config, log logr.Logger, path string) Model {
	m := New(cfg, log)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// State exposes the editor state, mainly for tests and the caller's final save.
func (m Model) State() *editor.State { return m.state }

func (m Model) props() delegate.Props {
	return delegate.Props{
		Data:      m.state.Collection(),
		Mode:      m.state.Mode(),
		Selected:  m.state.Selection(),
		Tolerance: 1.5 * m.view.MetersPerCell(),
	}
}

// apply hands an edit event to the store. Mode changes drop whatever the
// layer had in progress.
func (m *Model) apply(ev editor.EditEvent, ok bool) {
	if !ok {
		return
	}
	before := m.state.Mode()
	if err := m.state.ApplyEdit(ev); err != nil {
		// the editor already logged the rejection
		m.status = "edit rejected: " + err.Error()
		m.layer.Reset()
		return
	}
	m.log.V(1).Info("edit", "kind", string(ev.Kind), "features", len(ev.Updated.Features))
	if m.state.Mode() != before {
		m.layer.Reset()
	}
	m.status = string(ev.Kind)
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// click runs a toolbar action.
func (m *Model) click(a editor.Action) {
	if err := m.state.Click(a); err != nil {
		m.status = err.Error()
		m.log.Error(err, "toolbar", "action", a.String())
		return
	}
	m.layer.Reset()
	m.inspectPopup = ""
	m.status = a.String() + ": " + m.state.Mode().String()
	if m.showAttrs {
		m.refreshAttrs()
	}
}
