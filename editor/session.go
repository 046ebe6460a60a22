package editor

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitboxer/config"
	"github.com/milk9111/hitboxer/hitbox"
)

var (
	ErrNoActiveAtlas = errors.New("editor: no active atlas")
	ErrNothingToUndo = errors.New("editor: nothing to undo")
	ErrNoHover       = errors.New("editor: no hitbox selected")
)

const defaultMaxUndo = 100

// Session owns all editing state: the palette, the optional active atlas,
// the grid it was created for, selection, the draft in progress, the
// hovered hitbox and undo history. The host drives it once per tick.
type Session struct {
	palette config.Palette
	atlas   *hitbox.Atlas
	rows    int
	cols    int
	sel     Selection
	drafter Drafter
	hover   *hitbox.Ref
	history History
	path    string
}

func NewSession(palette config.Palette) *Session {
	return &Session{
		palette: palette,
		history: NewHistory(defaultMaxUndo),
	}
}

func (s *Session) Palette() config.Palette { return s.palette }

// SetPalette swaps the category list. With an active atlas the new palette
// must have the same number of categories.
func (s *Session) SetPalette(p config.Palette) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if s.atlas != nil && p.Len() != s.atlas.Categories() {
		return fmt.Errorf("%w: palette has %d categories, atlas has %d",
			hitbox.ErrDimensionMismatch, p.Len(), s.atlas.Categories())
	}
	s.palette = p
	if s.sel.Category >= p.Len() {
		s.sel.Category = 0
	}
	return nil
}

// NewAtlas discards the current atlas and starts an empty one for a rows x
// cols sheet with one slot per palette category.
func (s *Session) NewAtlas(rows, cols int) error {
	a, err := hitbox.NewAtlas(rows, cols, s.palette.Len())
	if err != nil {
		return err
	}
	s.atlas = a
	s.rows, s.cols = rows, cols
	s.sel.Reset()
	s.drafter.Cancel()
	s.hover = nil
	s.history.Clear()
	s.path = ""
	return nil
}

func (s *Session) HasAtlas() bool { return s.atlas != nil }

// Atlas returns the active atlas. Callers must treat it as read-only and go
// through the session to change it.
func (s *Session) Atlas() (*hitbox.Atlas, error) {
	if s.atlas == nil {
		return nil, ErrNoActiveAtlas
	}
	return s.atlas, nil
}

// Grid returns the rows and columns of the active atlas.
func (s *Session) Grid() (rows, cols int) { return s.rows, s.cols }

func (s *Session) Selection() Selection { return s.sel }

// Path is the file the atlas was last saved to or loaded from.
func (s *Session) Path() string { return s.path }

func (s *Session) frames() int {
	if s.atlas == nil {
		return 0
	}
	return s.atlas.Len()
}

func (s *Session) NextFrame() {
	if s.atlas == nil {
		return
	}
	s.sel.NextFrame(s.frames())
	s.hover = nil
}

func (s *Session) PrevFrame() {
	if s.atlas == nil {
		return
	}
	s.sel.PrevFrame(s.frames())
	s.hover = nil
}

func (s *Session) NextCategory() { s.sel.NextCategory(s.palette.Len()) }

func (s *Session) PrevCategory() { s.sel.PrevCategory(s.palette.Len()) }

// SetFrame jumps straight to frame n.
func (s *Session) SetFrame(n int) error {
	if s.atlas == nil {
		return ErrNoActiveAtlas
	}
	if n < 0 || n >= s.atlas.Len() {
		return fmt.Errorf("%w: frame %d of %d", hitbox.ErrIndexOutOfRange, n, s.atlas.Len())
	}
	if n != s.sel.Frame {
		s.hover = nil
	}
	s.sel.Frame = n
	return nil
}

// SetCategory selects category n.
func (s *Session) SetCategory(n int) error {
	if n < 0 || n >= s.palette.Len() {
		return fmt.Errorf("%w: category %d of %d", hitbox.ErrIndexOutOfRange, n, s.palette.Len())
	}
	s.sel.Category = n
	return nil
}

// Tick feeds one tick of pointer input to the drafter and commits a
// finished draft to the current frame and category. It reports whether a
// rect was added. Starting a draft clears the hover so the whole selection
// is drawn during the drag.
func (s *Session) Tick(in Input) (bool, error) {
	started := !s.drafter.Drafting()
	r, ok := s.drafter.Update(in)
	if started && (ok || s.drafter.Drafting()) {
		s.hover = nil
	}
	if !ok {
		return false, nil
	}
	if s.atlas == nil {
		return false, ErrNoActiveAtlas
	}
	if err := s.atlas.Add(s.sel.Frame, s.sel.Category, r); err != nil {
		return false, err
	}
	n, _ := s.atlas.Count(s.sel.Frame, s.sel.Category)
	s.history.push(edit{kind: editAdd, frame: s.sel.Frame, category: s.sel.Category, index: n - 1, rect: r})
	return true, nil
}

// Draft returns the rect being dragged, if any.
func (s *Session) Draft() (hitbox.Rect, bool) { return s.drafter.Preview() }

// CancelDraft drops an in-progress drag.
func (s *Session) CancelDraft() { s.drafter.Cancel() }

// Remove deletes a rect from the current frame.
func (s *Session) Remove(category, index int) (hitbox.Rect, error) {
	if s.atlas == nil {
		return hitbox.Rect{}, ErrNoActiveAtlas
	}
	r, err := s.atlas.Remove(s.sel.Frame, category, index)
	if err != nil {
		return hitbox.Rect{}, err
	}
	s.hover = nil
	s.history.push(edit{kind: editRemove, frame: s.sel.Frame, category: category, index: index, rect: r})
	return r, nil
}

// RemoveHovered deletes the hovered rect.
func (s *Session) RemoveHovered() (hitbox.Rect, error) {
	if s.hover == nil {
		return hitbox.Rect{}, ErrNoHover
	}
	return s.Remove(s.hover.Category, s.hover.Index)
}

// SetHover marks a rect of the current frame as hovered; nil clears it.
func (s *Session) SetHover(ref *hitbox.Ref) error {
	if ref == nil {
		s.hover = nil
		return nil
	}
	if s.atlas == nil {
		return ErrNoActiveAtlas
	}
	if _, err := s.atlas.Rect(s.sel.Frame, *ref); err != nil {
		return err
	}
	r := *ref
	s.hover = &r
	return nil
}

// HoverAt hovers the topmost rect under p, or clears the hover.
func (s *Session) HoverAt(p cp.Vector) bool {
	if s.atlas == nil {
		s.hover = nil
		return false
	}
	ref, ok := s.atlas.HitAt(s.sel.Frame, p)
	if !ok {
		s.hover = nil
		return false
	}
	s.hover = &ref
	return true
}

func (s *Session) Hover() (hitbox.Ref, bool) {
	if s.hover == nil {
		return hitbox.Ref{}, false
	}
	return *s.hover, true
}

// Visit walks the current frame for drawing: every rect when nothing is
// hovered, otherwise only the hovered one.
func (s *Session) Visit(fn func(category, index int, r hitbox.Rect)) error {
	if s.atlas == nil {
		return ErrNoActiveAtlas
	}
	return s.atlas.Visit(s.sel.Frame, s.hover, fn)
}

// Undo reverts the most recent add or remove and moves the selection to the
// frame it touched.
func (s *Session) Undo() error {
	if s.atlas == nil {
		return ErrNoActiveAtlas
	}
	e, ok := s.history.pop()
	if !ok {
		return ErrNothingToUndo
	}
	var err error
	switch e.kind {
	case editAdd:
		_, err = s.atlas.Remove(e.frame, e.category, e.index)
	case editRemove:
		err = s.atlas.Insert(e.frame, e.category, e.index, e.rect)
	}
	if err != nil {
		return fmt.Errorf("editor: undo: %w", err)
	}
	s.sel.Frame = e.frame
	s.hover = nil
	return nil
}

func (s *Session) UndoLen() int { return s.history.Len() }

// Save writes the active atlas to path.
func (s *Session) Save(path string) error {
	if s.atlas == nil {
		return ErrNoActiveAtlas
	}
	if err := hitbox.WriteFile(path, s.atlas); err != nil {
		return err
	}
	s.path = path
	log.Printf("[Session] saved hitboxes to %s", path)
	return nil
}

// Load replaces the active atlas with the one stored at path. The file must
// match the active grid and palette; on any error the current atlas is left
// untouched.
func (s *Session) Load(path string) error {
	if s.atlas == nil {
		return ErrNoActiveAtlas
	}
	a, err := hitbox.ReadFile(path)
	if err != nil {
		return err
	}
	if err := a.CheckDimensions(s.atlas.Len(), s.palette.Len()); err != nil {
		return fmt.Errorf("editor: load %s: %w", path, err)
	}
	s.atlas = a
	s.drafter.Cancel()
	s.hover = nil
	s.history.Clear()
	s.path = path
	log.Printf("[Session] loaded hitboxes from %s", path)
	return nil
}

// FrameJSON encodes the current frame's hitboxes.
func (s *Session) FrameJSON() ([]byte, error) {
	if s.atlas == nil {
		return nil, ErrNoActiveAtlas
	}
	f, err := s.atlas.Frame(s.sel.Frame)
	if err != nil {
		return nil, err
	}
	return hitbox.MarshalFrame(f)
}
