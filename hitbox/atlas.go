package hitbox

import (
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"
)

// Frame holds the rects of one sprite-sheet tile, one slot per category.
// Order inside a slot is insertion order.
type Frame [][]Rect

func newFrame(categories int) Frame {
	f := make(Frame, categories)
	for i := range f {
		f[i] = []Rect{}
	}
	return f
}

func (f Frame) clone() Frame {
	out := make(Frame, len(f))
	for i, rects := range f {
		out[i] = slices.Clone(rects)
		if out[i] == nil {
			out[i] = []Rect{}
		}
	}
	return out
}

// Ref points at a single rect inside a frame.
type Ref struct {
	Category int
	Index    int
}

// Atlas stores hitboxes for every frame of a sprite sheet. The number of
// frames and categories is fixed when the atlas is created.
type Atlas struct {
	frames     []Frame
	categories int
}

// NewAtlas creates an atlas with rows*cols empty frames.
func NewAtlas(rows, cols, categories int) (*Atlas, error) {
	if rows <= 0 || cols <= 0 || categories <= 0 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d categories=%d", ErrInvalidDimensions, rows, cols, categories)
	}
	return newAtlas(rows*cols, categories), nil
}

func newAtlas(frames, categories int) *Atlas {
	a := &Atlas{frames: make([]Frame, frames), categories: categories}
	for i := range a.frames {
		a.frames[i] = newFrame(categories)
	}
	return a
}

// Len returns the number of frames.
func (a *Atlas) Len() int { return len(a.frames) }

// Categories returns the number of category slots per frame.
func (a *Atlas) Categories() int { return a.categories }

func (a *Atlas) checkSlot(frame, category int) error {
	if frame < 0 || frame >= len(a.frames) {
		return fmt.Errorf("%w: frame %d of %d", ErrIndexOutOfRange, frame, len(a.frames))
	}
	if category < 0 || category >= a.categories {
		return fmt.Errorf("%w: category %d of %d", ErrIndexOutOfRange, category, a.categories)
	}
	return nil
}

// Add appends r to the given frame and category.
func (a *Atlas) Add(frame, category int, r Rect) error {
	if err := a.checkSlot(frame, category); err != nil {
		return err
	}
	a.frames[frame][category] = append(a.frames[frame][category], r)
	return nil
}

// Insert places r at index, shifting later rects up. index may equal the
// slot length to append.
func (a *Atlas) Insert(frame, category, index int, r Rect) error {
	if err := a.checkSlot(frame, category); err != nil {
		return err
	}
	rects := a.frames[frame][category]
	if index < 0 || index > len(rects) {
		return fmt.Errorf("%w: insert at %d of %d", ErrRectIndexInvalid, index, len(rects))
	}
	a.frames[frame][category] = slices.Insert(rects, index, r)
	return nil
}

// Remove deletes and returns the rect at index. The remaining rects keep
// their relative order.
func (a *Atlas) Remove(frame, category, index int) (Rect, error) {
	if err := a.checkSlot(frame, category); err != nil {
		return Rect{}, err
	}
	rects := a.frames[frame][category]
	if index < 0 || index >= len(rects) {
		return Rect{}, fmt.Errorf("%w: remove %d of %d", ErrRectIndexInvalid, index, len(rects))
	}
	r := rects[index]
	a.frames[frame][category] = slices.Delete(rects, index, index+1)
	return r, nil
}

// Frame returns a copy of the frame's category slots.
func (a *Atlas) Frame(frame int) (Frame, error) {
	if frame < 0 || frame >= len(a.frames) {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrIndexOutOfRange, frame, len(a.frames))
	}
	return a.frames[frame].clone(), nil
}

// Count returns how many rects a slot holds.
func (a *Atlas) Count(frame, category int) (int, error) {
	if err := a.checkSlot(frame, category); err != nil {
		return 0, err
	}
	return len(a.frames[frame][category]), nil
}

// Rect looks up the rect ref points at.
func (a *Atlas) Rect(frame int, ref Ref) (Rect, error) {
	if err := a.checkSlot(frame, ref.Category); err != nil {
		return Rect{}, err
	}
	rects := a.frames[frame][ref.Category]
	if ref.Index < 0 || ref.Index >= len(rects) {
		return Rect{}, fmt.Errorf("%w: %d of %d", ErrRectIndexInvalid, ref.Index, len(rects))
	}
	return rects[ref.Index], nil
}

// Visit calls fn for the rects of a frame. With only == nil every rect of
// every category is visited in category then insertion order; otherwise just
// the referenced rect.
func (a *Atlas) Visit(frame int, only *Ref, fn func(category, index int, r Rect)) error {
	if only != nil {
		r, err := a.Rect(frame, *only)
		if err != nil {
			return err
		}
		fn(only.Category, only.Index, r)
		return nil
	}
	if frame < 0 || frame >= len(a.frames) {
		return fmt.Errorf("%w: frame %d of %d", ErrIndexOutOfRange, frame, len(a.frames))
	}
	for ci, rects := range a.frames[frame] {
		for ri, r := range rects {
			fn(ci, ri, r)
		}
	}
	return nil
}

// HitAt returns the rect drawn on top at p: later categories and later
// insertions win.
func (a *Atlas) HitAt(frame int, p cp.Vector) (Ref, bool) {
	if frame < 0 || frame >= len(a.frames) {
		return Ref{}, false
	}
	f := a.frames[frame]
	for ci := len(f) - 1; ci >= 0; ci-- {
		for ri := len(f[ci]) - 1; ri >= 0; ri-- {
			if f[ci][ri].Contains(p) {
				return Ref{Category: ci, Index: ri}, true
			}
		}
	}
	return Ref{}, false
}

// CheckDimensions verifies the atlas has the expected frame and category
// counts.
func (a *Atlas) CheckDimensions(frames, categories int) error {
	if len(a.frames) != frames || a.categories != categories {
		return fmt.Errorf("%w: have %d frames x %d categories, want %d x %d",
			ErrDimensionMismatch, len(a.frames), a.categories, frames, categories)
	}
	return nil
}

// Clone returns a deep copy.
func (a *Atlas) Clone() *Atlas {
	out := &Atlas{frames: make([]Frame, len(a.frames)), categories: a.categories}
	for i, f := range a.frames {
		out.frames[i] = f.clone()
	}
	return out
}

// Equal reports whether both atlases hold the same rects in the same order.
func (a *Atlas) Equal(b *Atlas) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.categories != b.categories || len(a.frames) != len(b.frames) {
		return false
	}
	for fi := range a.frames {
		for ci := range a.frames[fi] {
			if !slices.Equal(a.frames[fi][ci], b.frames[fi][ci]) {
				return false
			}
		}
	}
	return true
}
