package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoedit/internal/editor"
	"geoedit/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		m.log.Error(err, "read dir", "dir", m.cwd)
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath reads a file and, if it holds exactly one editable feature, puts
// it in the store.
func (m *Model) loadPath(p string) {
	fc, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Error(err, "load", "path", p)
		return
	}
	if m.loadCollection(fc, filepath.Base(p)) {
		m.selPath = p
	}
}

// loadCollection adds fc's single feature as if it had just been drawn: the
// matching drawing mode is entered and the feature goes through addFeature.
func (m *Model) loadCollection(fc *geojson.FeatureCollection, name string) bool {
	if m.state.Content() != editor.Empty {
		m.status = "delete the current feature before loading " + name
		return false
	}
	if len(fc.Features) != 1 {
		m.status = fmt.Sprintf("%s holds %d features; only one can be edited", name, len(fc.Features))
		m.log.Info("warning: load refused", "source", name, "features", len(fc.Features))
		return false
	}
	mode := editor.DrawPolygon
	if _, ok := fc.Features[0].Geometry.(orb.Point); ok {
		mode = editor.DrawPoint
	}
	if err := m.state.SetMode(mode); err != nil {
		m.status = err.Error()
		m.log.Error(err, "load", "source", name)
		return false
	}
	m.layer.Reset()
	m.apply(editor.EditEvent{Updated: fc, Kind: editor.AddFeature}, true)
	if m.state.Content() == editor.Empty {
		return false
	}
	m.focus()
	m.status = "loaded " + name
	return true
}
