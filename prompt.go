package main

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Prompt is a one-line text input drawn over the canvas. Enter submits,
// Escape cancels. While open it owns the keyboard.
type Prompt struct {
	open    bool
	label   string
	input   string
	errMsg  string
	onEnter func(string) error
	runes   []rune
}

func NewPrompt() *Prompt { return &Prompt{} }

func (p *Prompt) IsOpen() bool { return p.open }

// Open shows the prompt. When onEnter returns an error the prompt stays open
// and shows it.
func (p *Prompt) Open(label, initial string, onEnter func(string) error) {
	p.label = label
	p.input = initial
	p.errMsg = ""
	p.onEnter = onEnter
	p.open = true
}

func (p *Prompt) Close() {
	p.open = false
	p.label = ""
	p.input = ""
	p.errMsg = ""
	p.onEnter = nil
}

// Update handles typing. It returns true while the prompt is open.
func (p *Prompt) Update() bool {
	if !p.open {
		return false
	}
	p.runes = ebiten.AppendInputChars(p.runes[:0])
	for _, r := range p.runes {
		if r == '\n' || r == '\r' {
			continue
		}
		p.input += string(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.input) > 0 {
		rs := []rune(p.input)
		p.input = string(rs[:len(rs)-1])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.Close()
		return false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		cur := strings.TrimSpace(p.input)
		fn := p.onEnter
		// closed before the callback so it can chain another prompt
		p.open = false
		if fn != nil {
			if err := fn(cur); err != nil {
				p.open = true
				p.errMsg = err.Error()
				return true
			}
		}
		if p.open {
			return true
		}
		p.Close()
		return false
	}
	return true
}

func (p *Prompt) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()
	vector.FillRect(screen, 0, float32(sh/2-24), float32(sw), 64, color.RGBA{A: 0xcc}, false)
	label := p.label
	if label == "" {
		label = "Input:"
	}
	ebitenutil.DebugPrintAt(screen, label+" "+p.input+"_", 16, sh/2-8)
	if p.errMsg != "" {
		ebitenutil.DebugPrintAt(screen, p.errMsg, 16, sh/2+12)
	}
}

// parsePositive parses a whole number greater than zero.
func parsePositive(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
