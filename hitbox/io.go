package hitbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jakecoffman/cp"
)

// FormatVersion is written into every saved file.
const FormatVersion = 1

type document struct {
	Version    int        `json:"version"`
	Frames     int        `json:"frames"`
	Categories int        `json:"categories"`
	Hitboxes   [][][]Rect `json:"hitboxes"`
}

// MarshalJSON encodes r as [[minX, minY], [maxX, maxY]].
func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([2][2]float64{{r.Min.X, r.Min.Y}, {r.Max.X, r.Max.Y}})
}

// UnmarshalJSON accepts the corner pair form and the {"min":..,"max":..}
// object older files used. The result is always normalized.
func (r *Rect) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Min *[2]float64 `json:"min"`
			Max *[2]float64 `json:"max"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.Min == nil || obj.Max == nil {
			return fmt.Errorf("%w: rect object needs min and max", ErrFormat)
		}
		*r = FromCorners(cp.Vector{X: obj.Min[0], Y: obj.Min[1]}, cp.Vector{X: obj.Max[0], Y: obj.Max[1]})
		return nil
	}
	var pair [][]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 || len(pair[0]) != 2 || len(pair[1]) != 2 {
		return fmt.Errorf("%w: rect must be [[x, y], [x, y]]", ErrFormat)
	}
	*r = FromCorners(cp.Vector{X: pair[0][0], Y: pair[0][1]}, cp.Vector{X: pair[1][0], Y: pair[1][1]})
	return nil
}

// Encode writes a as an indented, versioned JSON document.
func Encode(w io.Writer, a *Atlas) error {
	doc := document{
		Version:    FormatVersion,
		Frames:     len(a.frames),
		Categories: a.categories,
		Hitboxes:   make([][][]Rect, len(a.frames)),
	}
	for i, f := range a.frames {
		doc.Hitboxes[i] = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a document written by Encode. A bare top-level array is read
// as an unversioned legacy file.
func Decode(r io.Reader) (*Atlas, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}

	if b[0] == '[' {
		var frames [][][]Rect
		if err := json.Unmarshal(b, &frames); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if len(frames) == 0 {
			return nil, fmt.Errorf("%w: no frames", ErrFormat)
		}
		return fromFrames(frames, len(frames[0]))
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Frames != len(doc.Hitboxes) {
		return nil, fmt.Errorf("%w: header says %d frames, found %d", ErrFormat, doc.Frames, len(doc.Hitboxes))
	}
	if doc.Frames == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrFormat)
	}
	return fromFrames(doc.Hitboxes, doc.Categories)
}

func fromFrames(frames [][][]Rect, categories int) (*Atlas, error) {
	if categories <= 0 {
		return nil, fmt.Errorf("%w: %d categories", ErrFormat, categories)
	}
	a := newAtlas(len(frames), categories)
	for fi, f := range frames {
		if len(f) != categories {
			return nil, fmt.Errorf("%w: frame %d has %d categories, want %d", ErrFormat, fi, len(f), categories)
		}
		for ci, rects := range f {
			a.frames[fi][ci] = append(a.frames[fi][ci], rects...)
		}
	}
	return a, nil
}

// fileMode is the permission of newly created hitbox files.
const fileMode fs.FileMode = 0644

// WriteFile saves a to path. The data goes to a temp file next to path that
// is renamed into place, so an existing file survives a failed write. An
// existing file keeps its permissions; new files get fileMode.
func WriteFile(path string, a *Atlas) error {
	mode := fileMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("hitbox: write %s: %w", path, err)
	}
	f, err := os.CreateTemp(dir, ".hitboxes-*.json")
	if err != nil {
		return fmt.Errorf("hitbox: write %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := Encode(f, a); err != nil {
		f.Close()
		return fmt.Errorf("hitbox: write %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return fmt.Errorf("hitbox: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("hitbox: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("hitbox: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads an atlas from path.
func ReadFile(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hitbox: read %s: %w", path, err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("hitbox: decode %s: %w", path, err)
	}
	return a, nil
}

// MarshalFrame encodes one frame's category slots, for pasting into other
// tools.
func MarshalFrame(f Frame) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
