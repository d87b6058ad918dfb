package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Finish  key.Binding
	Cancel  key.Binding
	Undo    key.Binding
	Press   key.Binding
	Pan     key.Binding
	Nudge   key.Binding
	Turn    key.Binding
	Grow    key.Binding
	Shrink  key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Home    key.Binding
	Focus   key.Binding
	Files   key.Binding
	Paste   key.Binding
	Attrs   key.Binding
	Inspect key.Binding
	Grid    key.Binding
	Save    key.Binding
	Help    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Finish:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "finish/open")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Undo:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "undo vertex")),
		Press:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "click at cursor")),
		Pan:     key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "pan")),
		Nudge:   key.NewBinding(key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"), key.WithHelp("⇧↑↓←→", "move")),
		Turn:    key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "rotate")),
		Grow:    key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "grow")),
		Shrink:  key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "shrink")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Home:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Focus:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus feature")),
		Files:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files")),
		Paste:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste WKT")),
		Attrs:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attributes")),
		Inspect: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Grid:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "tile grid")),
		Save:    key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "save")),
		Help:    key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pan, k.ZoomIn, k.Finish, k.Cancel, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Finish, k.Cancel, k.Undo, k.Press},
		{k.Nudge, k.Turn, k.Grow, k.Shrink},
		{k.Pan, k.ZoomIn, k.ZoomOut, k.Home, k.Focus, k.Grid},
		{k.Files, k.Paste, k.Attrs, k.Inspect, k.Save, k.Help, k.Quit},
	}
}
