package sheet

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFrameRect(t *testing.T) {
	l := Layout{TileW: 32, TileH: 16, Cols: 3, Rows: 2, PadX: 2, PadY: 4, OffX: 1, OffY: 5}
	cases := []struct {
		frame int
		want  image.Rectangle
	}{
		{0, image.Rect(1, 5, 33, 21)},
		{1, image.Rect(35, 5, 67, 21)},
		{2, image.Rect(69, 5, 101, 21)},
		{3, image.Rect(1, 25, 33, 41)},
		{5, image.Rect(69, 25, 101, 41)},
	}
	for _, c := range cases {
		if got := l.FrameRect(c.frame); got != c.want {
			t.Errorf("frame %d: got %v want %v", c.frame, got, c.want)
		}
	}
	if !l.Covers(101, 41) {
		t.Errorf("layout should cover a 101x41 sheet")
	}
	if l.Covers(100, 41) {
		t.Errorf("layout should not cover a 100x41 sheet")
	}
}

func TestFit(t *testing.T) {
	cases := []struct {
		name       string
		l          Layout
		w, h       int
		rows, cols int
	}{
		{"plain", Layout{TileW: 128, TileH: 128}, 1152, 128, 1, 9},
		{"partial_tile_dropped", Layout{TileW: 32, TileH: 32}, 100, 70, 2, 3},
		{"padding", Layout{TileW: 10, TileH: 10, PadX: 2, PadY: 2}, 34, 22, 2, 3},
		{"offset", Layout{TileW: 10, TileH: 10, OffX: 5}, 30, 10, 1, 2},
		{"explicit_kept", Layout{TileW: 10, TileH: 10, Rows: 1, Cols: 1}, 100, 100, 1, 1},
		{"too_small", Layout{TileW: 10, TileH: 10}, 5, 5, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.l.Fit(c.w, c.h)
			if got.Rows != c.rows || got.Cols != c.cols {
				t.Fatalf("got %dx%d want %dx%d", got.Rows, got.Cols, c.rows, c.cols)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	bad := []Layout{
		{},
		{TileW: 8, TileH: 8},
		{TileW: 8, TileH: 8, Rows: 1, Cols: 1, PadX: -1},
		{TileW: -8, TileH: 8, Rows: 1, Cols: 1},
	}
	for i, l := range bad {
		if err := l.Validate(); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("case %d: expected ErrInvalidLayout, got %v", i, err)
		}
	}
	if err := (Layout{TileW: 8, TileH: 8, Rows: 2, Cols: 3}).Validate(); err != nil {
		t.Errorf("valid layout rejected: %v", err)
	}
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.png")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}

	if _, err := Decode(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	junk := filepath.Join(dir, "junk.png")
	os.WriteFile(junk, []byte("nope"), 0644)
	if _, err := Decode(junk); err == nil {
		t.Fatalf("expected decode error")
	}
}
