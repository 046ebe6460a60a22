package editor

import "github.com/milk9111/hitboxer/common"

// Selection is the active frame and category. Lengths are passed in by the
// session so a Selection never outlives the atlas it indexes.
type Selection struct {
	Frame    int
	Category int
}

func (s *Selection) NextFrame(frames int) {
	if frames > 0 {
		s.Frame = common.CyclicIncrement(s.Frame, frames)
	}
}

func (s *Selection) PrevFrame(frames int) {
	if frames > 0 {
		s.Frame = common.CyclicDecrement(s.Frame, frames)
	}
}

func (s *Selection) NextCategory(categories int) {
	if categories > 0 {
		s.Category = common.CyclicIncrement(s.Category, categories)
	}
}

func (s *Selection) PrevCategory(categories int) {
	if categories > 0 {
		s.Category = common.CyclicDecrement(s.Category, categories)
	}
}

// Reset points the selection at frame 0, category 0.
func (s *Selection) Reset() {
	*s = Selection{}
}
