package hitbox

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

// BoxSpec is one exported box in the layout game prefabs use for hitboxes:
// a size, an offset from the sprite origin and the frames it is active on.
type BoxSpec struct {
	Category string  `yaml:"category"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	Frames   []int   `yaml:"frames"`
}

// ExportSpecs flattens the atlas into BoxSpecs. Identical boxes in the same
// category are merged and list every frame they appear on. Offsets are
// measured from origin to the box's top-left corner.
func ExportSpecs(a *Atlas, names []string, origin cp.Vector) ([]BoxSpec, error) {
	if len(names) != a.categories {
		return nil, fmt.Errorf("%w: %d category names for %d categories", ErrDimensionMismatch, len(names), a.categories)
	}

	type key struct {
		category int
		rect     Rect
	}
	index := make(map[key]int)
	var specs []BoxSpec
	for fi, f := range a.frames {
		for ci, rects := range f {
			for _, r := range rects {
				k := key{category: ci, rect: r}
				if si, ok := index[k]; ok {
					frames := specs[si].Frames
					if frames[len(frames)-1] != fi {
						specs[si].Frames = append(frames, fi)
					}
					continue
				}
				index[k] = len(specs)
				specs = append(specs, BoxSpec{
					Category: names[ci],
					Width:    r.Width(),
					Height:   r.Height(),
					OffsetX:  r.Min.X - origin.X,
					OffsetY:  r.Min.Y - origin.Y,
					Frames:   []int{fi},
				})
			}
		}
	}
	return specs, nil
}

// MarshalSpecs renders specs as a YAML document with a top-level hitboxes key.
func MarshalSpecs(specs []BoxSpec) ([]byte, error) {
	doc := struct {
		Hitboxes []BoxSpec `yaml:"hitboxes"`
	}{Hitboxes: specs}
	return yaml.Marshal(doc)
}
