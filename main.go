package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hitboxer/config"
	"github.com/milk9111/hitboxer/prefs"
)

// promptGridDimensions asks for the sheet grid on stdin before the window
// opens. Empty or invalid answers keep the defaults.
func promptGridDimensions(defaultRows, defaultCols int) (int, int) {
	reader := bufio.NewReader(os.Stdin)
	ask := func(label string, def int) int {
		fmt.Printf("Enter number of %s (default %d): ", label, def)
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return def
		}
		if v, err := strconv.Atoi(line); err == nil && v > 0 {
			return v
		}
		return def
	}
	rows := ask("rows", defaultRows)
	cols := ask("columns", defaultCols)
	return rows, cols
}

func main() {
	pm, err := prefs.Open()
	if err != nil {
		log.Printf("prefs: %v", err)
	}
	last := pm.Get()

	sheetPath := flag.String("sheet", last.SheetPath, "sprite sheet image (png)")
	hitboxPath := flag.String("hitboxes", last.HitboxPath, "hitbox JSON file to load and save")
	categoriesPath := flag.String("categories", last.CategoriesPath, "category palette YAML (empty for the built-in palette)")
	rows := flag.Int("rows", last.Rows, "frame rows in the sheet (0 to fit the image)")
	cols := flag.Int("cols", last.Cols, "frame columns in the sheet (0 to fit the image)")
	tileW := flag.Int("tile-w", last.TileW, "frame width in pixels")
	tileH := flag.Int("tile-h", last.TileH, "frame height in pixels")
	padX := flag.Int("pad-x", last.PadX, "horizontal gap between frames")
	padY := flag.Int("pad-y", last.PadY, "vertical gap between frames")
	offX := flag.Int("off-x", last.OffsetX, "left margin before the first frame")
	offY := flag.Int("off-y", last.OffsetY, "top margin before the first frame")
	zoom := flag.Float64("zoom", 4, "initial zoom")
	ask := flag.Bool("prompt", false, "ask for rows and columns on stdin")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *ask {
		*rows, *cols = promptGridDimensions(*rows, *cols)
	}

	palette, err := config.LoadPalette(*categoriesPath)
	if err != nil {
		log.Fatalf("palette: %v", err)
	}

	pm.Update(func(p *prefs.Prefs) {
		p.SheetPath = *sheetPath
		p.CategoriesPath = *categoriesPath
	})

	opts := Options{
		SheetPath:      *sheetPath,
		HitboxPath:     *hitboxPath,
		CategoriesPath: *categoriesPath,
		Zoom:           *zoom,
	}
	opts.Layout = last.Layout()
	opts.Layout.Rows, opts.Layout.Cols = *rows, *cols
	opts.Layout.TileW, opts.Layout.TileH = *tileW, *tileH
	opts.Layout.PadX, opts.Layout.PadY = *padX, *padY
	opts.Layout.OffX, opts.Layout.OffY = *offX, *offY

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*3/4, h*3/4)
	ebiten.SetWindowTitle("hitboxer")

	game := NewGame(opts, palette, pm)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("run: %v", err)
	}
}
