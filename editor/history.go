package editor

import "github.com/milk9111/hitboxer/hitbox"

type editKind int

const (
	editAdd editKind = iota
	editRemove
)

// edit records enough to reverse one add or remove.
type edit struct {
	kind     editKind
	frame    int
	category int
	index    int
	rect     hitbox.Rect
}

// History is a bounded undo stack; the oldest edit is dropped when full.
type History struct {
	edits []edit
	max   int
}

func NewHistory(max int) History {
	return History{max: max}
}

func (h *History) push(e edit) {
	h.edits = append(h.edits, e)
	if h.max > 0 && len(h.edits) > h.max {
		h.edits = h.edits[1:]
	}
}

func (h *History) pop() (edit, bool) {
	n := len(h.edits)
	if n == 0 {
		return edit{}, false
	}
	e := h.edits[n-1]
	h.edits = h.edits[:n-1]
	return e, true
}

func (h *History) Len() int { return len(h.edits) }

func (h *History) Clear() { h.edits = nil }
