package hitbox

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned box in frame-local coordinates with Min <= Max on
// both axes.
type Rect struct {
	Min cp.Vector
	Max cp.Vector
}

// FromCorners builds a Rect from two opposite corners given in any order.
func FromCorners(a, b cp.Vector) Rect {
	return Rect{
		Min: cp.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: cp.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() cp.Vector {
	return r.BB().Center()
}

// BB converts the rect into a chipmunk bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.Min.X, B: r.Min.Y, R: r.Max.X, T: r.Max.Y}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p cp.Vector) bool {
	return r.BB().ContainsVect(p)
}

// Offset returns r moved by d.
func (r Rect) Offset(d cp.Vector) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Overlaps reports whether a and b share any area or edge. Game code uses it
// to test a frame's hitboxes against another entity's hurtboxes.
func Overlaps(a, b Rect) bool {
	return a.BB().Intersects(b.BB())
}
