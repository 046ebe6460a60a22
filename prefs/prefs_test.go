package prefs

import (
	"testing"

	"github.com/milk9111/hitboxer/sheet"
	"github.com/quasilyte/gdata/v2"
)

func openStore(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	store, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("gdata.Open: %v", err)
	}
	return store
}

func TestNilStoreUsesDefaults(t *testing.T) {
	m := NewManager(nil)
	if got := m.Get(); got != Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	m.Update(func(p *Prefs) { p.Rows = 4 })
	if err := m.Save(); err != nil {
		t.Fatalf("Save without store: %v", err)
	}
	if m.Get().Rows != 4 {
		t.Fatalf("in-memory update lost")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openStore(t, "hitboxer_test_prefs")

	m1 := NewManager(store)
	if got := m1.Get(); got != Default() {
		t.Fatalf("fresh store should give defaults, got %+v", got)
	}
	m1.Update(func(p *Prefs) {
		p.SheetPath = "assets/knight.png"
		p.HitboxPath = "knight_hitboxes.json"
		p.Rows = 2
		p.Cols = 3
		p.TileW = 64
		p.TileH = 48
		p.PadX = 1
	})
	if err := m1.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m2 := NewManager(store)
	if m2.Get() != m1.Get() {
		t.Fatalf("reloaded prefs differ:\n got %+v\nwant %+v", m2.Get(), m1.Get())
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	store := openStore(t, "hitboxer_test_partial")
	if err := store.SaveObjectProp(prefsObject, prefsProperty, []byte("sheet_path: a.png\n")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}
	m := NewManager(store)
	got := m.Get()
	if got.SheetPath != "a.png" || got.TileW != 32 || got.Rows != 1 {
		t.Fatalf("unexpected prefs %+v", got)
	}
}

func TestLoadBadDataFallsBack(t *testing.T) {
	store := openStore(t, "hitboxer_test_bad")
	if err := store.SaveObjectProp(prefsObject, prefsProperty, []byte("rows: [not an int\n")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}
	m := NewManager(store)
	if m.Get() != Default() {
		t.Fatalf("expected defaults after bad data, got %+v", m.Get())
	}
	if err := m.Load(); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	var p Prefs
	l := sheet.Layout{TileW: 16, TileH: 24, Cols: 4, Rows: 2, PadX: 1, PadY: 2, OffX: 3, OffY: 4}
	p.SetLayout(l)
	if p.Layout() != l {
		t.Fatalf("got %+v want %+v", p.Layout(), l)
	}
	if p.OffsetX != 3 || p.OffsetY != 4 {
		t.Fatalf("offsets not stored: %+v", p)
	}
}
