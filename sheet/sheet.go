package sheet

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Decode reads an image file from disk.
func Decode(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("sheet: decode %s: %w", path, err)
	}
	return img, nil
}

// Load decodes the sheet at path and uploads it as an ebiten image.
func Load(path string) (*ebiten.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// Slice cuts img into l.Frames() sub-images. The frames share img's pixels.
func Slice(img *ebiten.Image, l Layout) ([]*ebiten.Image, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if !l.Covers(b.Dx(), b.Dy()) {
		return nil, fmt.Errorf("%w: %d frames of %dx%d do not fit a %dx%d sheet",
			ErrInvalidLayout, l.Frames(), l.TileW, l.TileH, b.Dx(), b.Dy())
	}
	frames := make([]*ebiten.Image, l.Frames())
	for i := range frames {
		r := l.FrameRect(i).Add(b.Min)
		frames[i] = img.SubImage(r).(*ebiten.Image)
	}
	return frames, nil
}
