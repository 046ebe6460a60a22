package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyPalette = errors.New("config: palette needs at least one category")
	ErrBadColor     = errors.New("config: bad color")
)

// Category is a named hitbox purpose and the color it is drawn with.
type Category struct {
	Name  string    `yaml:"name"`
	Color YAMLColor `yaml:"color"`
}

// Palette is the ordered category list. A category's position is the index
// stored in hitbox files.
type Palette struct {
	Categories []Category `yaml:"categories"`
}

// LoadPalette reads a palette from path, or the embedded default when path
// is empty.
func LoadPalette(path string) (Palette, error) {
	p, err := LoadSpec[Palette](path)
	if err != nil {
		return Palette{}, err
	}
	if err := p.Validate(); err != nil {
		return Palette{}, err
	}
	return p, nil
}

// DefaultPalette returns the embedded five-color palette.
func DefaultPalette() Palette {
	p, err := LoadPalette("")
	if err != nil {
		panic("embedded palette is invalid: " + err.Error())
	}
	return p
}

func (p Palette) Validate() error {
	if len(p.Categories) == 0 {
		return ErrEmptyPalette
	}
	for i, c := range p.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("config: category %d has no name", i)
		}
	}
	return nil
}

func (p Palette) Len() int { return len(p.Categories) }

func (p Palette) Names() []string {
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = c.Name
	}
	return names
}

// Name returns the category name, or "?" for an unknown index.
func (p Palette) Name(i int) string {
	if i < 0 || i >= len(p.Categories) {
		return "?"
	}
	return p.Categories[i].Name
}

// Color returns the category color. Unknown indices and categories without
// a color are drawn white.
func (p Palette) Color(i int) color.Color {
	if i < 0 || i >= len(p.Categories) || p.Categories[i].Color.Color == nil {
		return color.White
	}
	return p.Categories[i].Color.Color
}

// YAMLColor is a palette color written as "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: want a string, line %d", ErrBadColor, value.Line)
	}
	n, err := parseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = n
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	return formatHexColor(c.Color), nil
}

// parseHexColor reads rrggbb or rrggbbaa with an optional leading '#'.
// Alpha defaults to opaque.
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// formatHexColor is the inverse of parseHexColor and always includes alpha.
func formatHexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
