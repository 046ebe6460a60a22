// Package sheet cuts a sprite sheet into the frames hitboxes are drawn on.
package sheet

import (
	"errors"
	"fmt"
	"image"
)

var ErrInvalidLayout = errors.New("sheet: invalid layout")

// Layout describes how frames sit on a sheet. Frames are numbered row by
// row starting at the top left. Pad is the gap between neighbouring tiles
// and Off the margin before the first tile.
type Layout struct {
	TileW int `yaml:"tile_w"`
	TileH int `yaml:"tile_h"`
	Cols  int `yaml:"cols"`
	Rows  int `yaml:"rows"`
	PadX  int `yaml:"pad_x"`
	PadY  int `yaml:"pad_y"`
	OffX  int `yaml:"off_x"`
	OffY  int `yaml:"off_y"`
}

func (l Layout) Validate() error {
	if l.TileW <= 0 || l.TileH <= 0 {
		return fmt.Errorf("%w: tile size %dx%d", ErrInvalidLayout, l.TileW, l.TileH)
	}
	if l.Cols <= 0 || l.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidLayout, l.Rows, l.Cols)
	}
	if l.PadX < 0 || l.PadY < 0 || l.OffX < 0 || l.OffY < 0 {
		return fmt.Errorf("%w: negative padding or offset", ErrInvalidLayout)
	}
	return nil
}

// Frames is rows*cols.
func (l Layout) Frames() int { return l.Rows * l.Cols }

// FrameRect returns the pixel bounds of frame i on the sheet.
func (l Layout) FrameRect(i int) image.Rectangle {
	col := i % l.Cols
	row := i / l.Cols
	x := l.OffX + col*(l.TileW+l.PadX)
	y := l.OffY + row*(l.TileH+l.PadY)
	return image.Rect(x, y, x+l.TileW, y+l.TileH)
}

// Fit fills in zero Cols or Rows with as many whole tiles as fit in a sheet
// of the given size.
func (l Layout) Fit(w, h int) Layout {
	if l.TileW <= 0 || l.TileH <= 0 {
		return l
	}
	if l.Cols <= 0 {
		l.Cols = fitCount(w-l.OffX, l.TileW, l.PadX)
	}
	if l.Rows <= 0 {
		l.Rows = fitCount(h-l.OffY, l.TileH, l.PadY)
	}
	return l
}

func fitCount(span, tile, pad int) int {
	if span < tile {
		return 0
	}
	return (span-tile)/(tile+pad) + 1
}

// Covers reports whether every frame lies inside a w x h sheet.
func (l Layout) Covers(w, h int) bool {
	if l.Frames() == 0 {
		return false
	}
	last := l.FrameRect(l.Frames() - 1)
	return last.Max.X <= w && last.Max.Y <= h
}
