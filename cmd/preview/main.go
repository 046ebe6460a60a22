package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hitboxer/config"
	"github.com/milk9111/hitboxer/hitbox"
	"github.com/milk9111/hitboxer/sheet"
)

const screenSize = 512

type previewGame struct {
	frames     []*ebiten.Image
	atlas      *hitbox.Atlas
	palette    config.Palette
	hitboxPath string
	watcher    *config.Watcher
	player     player
	scale      float64
	showBoxes  bool
}

// checkAtlas rejects hitbox files with fewer frames than are played.
func checkAtlas(a *hitbox.Atlas, frames int) error {
	if a.Len() < frames {
		return fmt.Errorf("%w: file has %d frames, sheet shows %d", hitbox.ErrDimensionMismatch, a.Len(), frames)
	}
	return nil
}

func (g *previewGame) Update() error {
	g.reload()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.paused = !g.player.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showBoxes = !g.showBoxes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.player.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.player.step(-1)
	}
	g.player.tick()
	return nil
}

// reload swaps in the hitbox file after it changes on disk.
func (g *previewGame) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			a, err := hitbox.ReadFile(g.hitboxPath)
			if err != nil {
				log.Printf("reload %s: %v", g.hitboxPath, err)
				continue
			}
			if err := checkAtlas(a, len(g.frames)); err != nil {
				log.Printf("reload %s: %v", g.hitboxPath, err)
				continue
			}
			g.atlas = a
			log.Printf("reloaded %s", g.hitboxPath)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch error: %v", err)
		default:
			return
		}
	}
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	if len(g.frames) == 0 {
		return
	}
	cur := g.player.current
	fw := float64(g.frames[0].Bounds().Dx()) * g.scale
	fh := float64(g.frames[0].Bounds().Dy()) * g.scale
	sx := (screenSize - fw) / 2
	sy := (screenSize - fh) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.scale, g.scale)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.frames[cur], op)

	if g.showBoxes && g.atlas != nil {
		_ = g.atlas.Visit(cur, nil, func(category, _ int, r hitbox.Rect) {
			vector.StrokeRect(screen,
				float32(sx+r.Min.X*g.scale), float32(sy+r.Min.Y*g.scale),
				float32(r.Width()*g.scale), float32(r.Height()*g.scale),
				1, g.palette.Color(category), false)
		})
	}
	status := "playing"
	if g.player.paused {
		status = "paused"
	}
	ebitenutil.DebugPrintAt(screen, status+"  space: pause  arrows: step  h: boxes", 4, 4)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

func main() {
	sheetPath := flag.String("sheet", "", "sprite sheet image (png)")
	hitboxPath := flag.String("hitboxes", "", "hitbox JSON file to overlay")
	categoriesPath := flag.String("categories", "", "category palette YAML (empty for the built-in palette)")
	tileW := flag.Int("tile-w", 32, "frame width in pixels")
	tileH := flag.Int("tile-h", 32, "frame height in pixels")
	rows := flag.Int("rows", 0, "frame rows (0 to fit the image)")
	cols := flag.Int("cols", 0, "frame columns (0 to fit the image)")
	padX := flag.Int("pad-x", 0, "horizontal gap between frames")
	padY := flag.Int("pad-y", 0, "vertical gap between frames")
	offX := flag.Int("off-x", 0, "left margin before the first frame")
	offY := flag.Int("off-y", 0, "top margin before the first frame")
	count := flag.Int("count", 0, "number of frames to play (0 for all)")
	fps := flag.Int("fps", 12, "playback speed")
	scale := flag.Float64("scale", 2, "draw scale")
	watch := flag.Bool("watch", true, "reload the hitbox file when it changes")
	flag.Parse()

	if *sheetPath == "" {
		log.Fatal("-sheet is required")
	}
	img, err := sheet.Load(*sheetPath)
	if err != nil {
		log.Fatal(err)
	}
	b := img.Bounds()
	layout := sheet.Layout{
		TileW: *tileW, TileH: *tileH,
		Rows: *rows, Cols: *cols,
		PadX: *padX, PadY: *padY,
		OffX: *offX, OffY: *offY,
	}.Fit(b.Dx(), b.Dy())
	frames, err := sheet.Slice(img, layout)
	if err != nil {
		log.Fatal(err)
	}
	if *count > 0 && *count < len(frames) {
		frames = frames[:*count]
	}

	palette, err := config.LoadPalette(*categoriesPath)
	if err != nil {
		log.Fatal(err)
	}

	g := &previewGame{
		frames:     frames,
		palette:    palette,
		hitboxPath: *hitboxPath,
		player:     newPlayer(len(frames), *fps),
		scale:      *scale,
		showBoxes:  true,
	}
	if *hitboxPath != "" {
		a, err := hitbox.ReadFile(*hitboxPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := checkAtlas(a, len(frames)); err != nil {
			log.Fatalf("%s: %v", *hitboxPath, err)
		}
		g.atlas = a
		if *watch {
			w, err := config.NewWatcher(*hitboxPath)
			if err != nil {
				log.Printf("watch disabled: %v", err)
			} else {
				g.watcher = w
				defer w.Close()
			}
		}
	}

	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle("hitbox preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
