// Package prefs remembers what the user last worked on so the next session
// can start from the same sheet, grid and hitbox file.
package prefs

import (
	"fmt"
	"log"

	"github.com/milk9111/hitboxer/sheet"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application key.
const AppName = "hitboxer"

const (
	prefsObject   = "prefs"
	prefsProperty = "last_session"
)

// Prefs are the values restored at startup. Zero values mean "not set".
type Prefs struct {
	SheetPath      string `yaml:"sheet_path"`
	HitboxPath     string `yaml:"hitbox_path"`
	CategoriesPath string `yaml:"categories_path"`
	Rows           int    `yaml:"rows"`
	Cols           int    `yaml:"cols"`
	TileW          int    `yaml:"tile_w"`
	TileH          int    `yaml:"tile_h"`
	PadX           int    `yaml:"pad_x"`
	PadY           int    `yaml:"pad_y"`
	OffsetX        int    `yaml:"offset_x"`
	OffsetY        int    `yaml:"offset_y"`
}

// Default returns the grid a fresh install starts with: one 32x32 tile.
func Default() Prefs {
	return Prefs{Rows: 1, Cols: 1, TileW: 32, TileH: 32}
}

// Layout returns the sheet grid stored in p.
func (p Prefs) Layout() sheet.Layout {
	return sheet.Layout{
		TileW: p.TileW, TileH: p.TileH,
		Cols: p.Cols, Rows: p.Rows,
		PadX: p.PadX, PadY: p.PadY,
		OffX: p.OffsetX, OffY: p.OffsetY,
	}
}

func (p *Prefs) SetLayout(l sheet.Layout) {
	p.TileW, p.TileH = l.TileW, l.TileH
	p.Cols, p.Rows = l.Cols, l.Rows
	p.PadX, p.PadY = l.PadX, l.PadY
	p.OffsetX, p.OffsetY = l.OffX, l.OffY
}

// Manager loads and saves Prefs. A nil gdata manager keeps prefs in memory
// only.
type Manager struct {
	store *gdata.Manager
	prefs Prefs
}

// Open creates a gdata-backed manager. When storage cannot be opened the
// manager still works in memory and the error is returned alongside it.
func Open() (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return NewManager(nil), fmt.Errorf("prefs: open storage: %w", err)
	}
	return NewManager(store), nil
}

func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, prefs: Default()}
	if err := m.Load(); err != nil {
		log.Printf("[Prefs] using defaults: %v", err)
	}
	return m
}

// Load replaces the in-memory prefs with the stored ones. Missing storage is
// not an error.
func (m *Manager) Load() error {
	if m.store == nil || !m.store.ObjectPropExists(prefsObject, prefsProperty) {
		m.prefs = Default()
		return nil
	}

	data, err := m.store.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		m.prefs = Default()
		return fmt.Errorf("prefs: load: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		m.prefs = Default()
		return fmt.Errorf("prefs: unmarshal: %w", err)
	}
	m.prefs = p
	return nil
}

// Save persists the current prefs.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("prefs: save: %w", err)
	}
	return nil
}

func (m *Manager) Get() Prefs { return m.prefs }

// Update applies fn to the in-memory prefs. Call Save to persist.
func (m *Manager) Update(fn func(p *Prefs)) {
	fn(&m.prefs)
}
