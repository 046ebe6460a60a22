package editor

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitboxer/hitbox"
)

// Input is the pointer state the host samples once per tick.
type Input struct {
	// Pointer is the cursor position in frame-local world coordinates.
	Pointer cp.Vector
	// Held is true while the draw button is down.
	Held bool
	// Pressed and Released are the button edges for this tick.
	Pressed  bool
	Released bool
	// UICaptured is true when a panel owns the pointer this tick.
	UICaptured bool
}

// Drafter turns press, drag and release into a committed rect.
//
// UICaptured only keeps a new draft from starting. Once drafting, the draft
// follows the pointer and commits on release even if the pointer crosses a
// panel on the way.
type Drafter struct {
	anchor   cp.Vector
	current  cp.Vector
	drafting bool
}

func (d *Drafter) Drafting() bool { return d.drafting }

// Preview returns the in-progress rect while drafting.
func (d *Drafter) Preview() (hitbox.Rect, bool) {
	if !d.drafting {
		return hitbox.Rect{}, false
	}
	return hitbox.FromCorners(d.anchor, d.current), true
}

// Update advances the state machine by one tick. It returns the committed
// rect and true on the tick the button is released.
func (d *Drafter) Update(in Input) (hitbox.Rect, bool) {
	if !d.drafting {
		if in.UICaptured || !in.Pressed {
			return hitbox.Rect{}, false
		}
		d.drafting = true
		d.anchor = in.Pointer
		d.current = in.Pointer
		if in.Released {
			return d.commit(), true
		}
		return hitbox.Rect{}, false
	}

	if in.Pressed {
		// release edge was missed; start over from here
		d.anchor = in.Pointer
	}
	// the pointer is sampled before the drafter runs, so the release tick's
	// position is the last tracked one
	d.current = in.Pointer
	if in.Released {
		return d.commit(), true
	}
	return hitbox.Rect{}, false
}

// Cancel drops the current draft without committing it.
func (d *Drafter) Cancel() {
	*d = Drafter{}
}

func (d *Drafter) commit() hitbox.Rect {
	r := hitbox.FromCorners(d.anchor, d.current)
	d.Cancel()
	return r
}
