package main

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitboxer/config"
	"github.com/milk9111/hitboxer/editor"
	"github.com/milk9111/hitboxer/hitbox"
	"github.com/milk9111/hitboxer/prefs"
	"github.com/milk9111/hitboxer/sheet"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

// Options are the startup settings resolved from flags and prefs.
type Options struct {
	SheetPath      string
	HitboxPath     string
	CategoriesPath string
	Layout         sheet.Layout
	Zoom           float64
}

type Game struct {
	session *editor.Session
	prefs   *prefs.Manager

	layout  sheet.Layout
	sheet   *ebiten.Image
	frames  []*ebiten.Image
	hbPath  string
	catPath string

	cam      *camera
	panel    *SidePanel
	help     *ebitenui.UI
	showHelp bool
	prompt   *Prompt

	watcher     *config.Watcher
	clipboardOK bool

	// panel actions queued during ui.Update, applied after the drafter
	pending []func()

	cursor        cp.Vector
	width, height int
	centered      bool
}

func NewGame(opts Options, palette config.Palette, pm *prefs.Manager) *Game {
	g := &Game{
		session: editor.NewSession(palette),
		prefs:   pm,
		layout:  opts.Layout,
		hbPath:  opts.HitboxPath,
		catPath: opts.CategoriesPath,
		cam:     newCamera(panelWidth, opts.Zoom),
		prompt:  NewPrompt(),
	}
	g.panel = NewSidePanel(palette, panelActions{
		onCategory: func(idx int) { g.queue(func() { g.report(g.session.SetCategory(idx)) }) },
		onHitbox: func(ref hitbox.Ref) {
			g.queue(func() { g.report(g.session.SetHover(&ref)) })
		},
		onRemove: func() {
			g.queue(func() {
				if _, err := g.session.RemoveHovered(); err != nil {
					g.report(err)
				}
			})
		},
		onUndo: func() { g.queue(g.undo) },
		onNew:  func() { g.queue(g.askNewAtlas) },
		onSave: func() { g.queue(g.save) },
		onLoad: func() { g.queue(g.load) },
		onCopy: func() { g.queue(g.copyFrame) },
	})
	g.help = NewHelpUI(g)

	if opts.SheetPath != "" {
		img, err := sheet.Load(opts.SheetPath)
		if err != nil {
			log.Printf("sheet load error: %v", err)
		} else {
			g.sheet = img
			b := img.Bounds()
			g.layout = g.layout.Fit(b.Dx(), b.Dy())
		}
	}

	if g.layout.Rows > 0 && g.layout.Cols > 0 {
		g.newAtlas(g.layout.Rows, g.layout.Cols)
	}
	if g.hbPath != "" && g.session.HasAtlas() {
		err := g.session.Load(g.hbPath)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("%s does not exist yet; it will be created on save", g.hbPath)
		default:
			log.Printf("hitbox load error: %v", err)
			g.panel.SetStatus("load failed: %v", err)
		}
	}

	if g.catPath != "" {
		w, err := config.NewWatcher(g.catPath)
		if err != nil {
			log.Printf("palette watch error: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}
	return g
}

// Close stops the palette watcher and persists prefs.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.rememberPrefs()
	if err := g.prefs.Save(); err != nil {
		log.Printf("prefs save error: %v", err)
	}
}

func (g *Game) queue(fn func()) { g.pending = append(g.pending, fn) }

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	log.Printf("%v", err)
	g.panel.SetStatus("%v", err)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && !g.prompt.IsOpen() {
		g.showHelp = !g.showHelp
	}
	if g.showHelp {
		g.help.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.showHelp = false
		}
		return nil
	}
	if g.prompt.Update() {
		return nil
	}

	g.panel.UI.Update()
	uiHovered := ebuiinput.UIHovered

	g.updateCamera(uiHovered)
	sx, sy := ebiten.CursorPosition()
	g.cursor = g.cam.toWorld(float64(sx), float64(sy))

	g.drainPaletteEvents()

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.handleKeys()

	in := editor.Input{
		Pointer:    g.cursor,
		Held:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pressed:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released:   inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		UICaptured: uiHovered,
	}
	if added, err := g.session.Tick(in); err != nil {
		if errors.Is(err, editor.ErrNoActiveAtlas) {
			g.panel.SetStatus("create an atlas first (N)")
		} else {
			g.report(err)
		}
	} else if added {
		sel := g.session.Selection()
		g.panel.SetStatus("added %s box to frame %d", g.session.Palette().Name(sel.Category), sel.Frame+1)
	}

	for _, fn := range g.pending {
		fn()
	}
	g.pending = g.pending[:0]

	if _, drafting := g.session.Draft(); !drafting && !uiHovered {
		g.session.HoverAt(g.cursor)
	}

	g.panel.Sync(g.session, g.cursor.X, g.cursor.Y)
	return nil
}

func (g *Game) updateCamera(uiHovered bool) {
	cx, cy := ebiten.CursorPosition()
	if !uiHovered {
		if _, wy := ebiten.Wheel(); wy != 0 {
			g.cam.zoomAt(wy, float64(cx), float64(cy))
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
			g.cam.beginPan(cx, cy)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		g.cam.dragPan(cx, cy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.cam.endPan()
	}
	g.cam.update()
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *Game) handleKeys() {
	ctrl := ctrlPressed()

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.session.PrevFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.session.NextFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) && !ctrl {
		g.session.PrevCategory()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) && !ctrl {
		g.session.NextCategory()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if r, err := g.session.RemoveHovered(); err == nil {
			g.panel.SetStatus("removed %.0fx%.0f box", r.Width(), r.Height())
		} else if !errors.Is(err, editor.ErrNoHover) {
			g.report(err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.session.CancelDraft()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !ctrl {
		g.askNewAtlas()
	}

	if !ctrl {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.load()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyFrame()
	}
}

func (g *Game) askNewAtlas() {
	p := g.prefs.Get()
	g.prompt.Open("Rows:", fmt.Sprint(p.Rows), func(s string) error {
		rows, err := parsePositive(s)
		if err != nil {
			return fmt.Errorf("rows must be a positive number")
		}
		g.prompt.Open("Columns:", fmt.Sprint(p.Cols), func(s string) error {
			cols, err := parsePositive(s)
			if err != nil {
				return fmt.Errorf("columns must be a positive number")
			}
			g.newAtlas(rows, cols)
			return nil
		})
		return nil
	})
}

// newAtlas starts an empty atlas and re-slices the sheet for the new grid.
func (g *Game) newAtlas(rows, cols int) {
	if err := g.session.NewAtlas(rows, cols); err != nil {
		g.report(err)
		return
	}
	g.layout.Rows, g.layout.Cols = rows, cols
	g.frames = nil
	g.centered = false
	if g.sheet != nil {
		frames, err := sheet.Slice(g.sheet, g.layout)
		if err != nil {
			g.report(err)
		} else {
			g.frames = frames
		}
	}
	g.rememberPrefs()
	g.panel.SetStatus("new atlas: %d frames", rows*cols)
}

func (g *Game) undo() {
	switch err := g.session.Undo(); {
	case err == nil:
		g.panel.SetStatus("undone")
	case errors.Is(err, editor.ErrNothingToUndo):
		g.panel.SetStatus("nothing to undo")
	default:
		g.report(err)
	}
}

func (g *Game) currentPath() string {
	if p := g.session.Path(); p != "" {
		return p
	}
	return g.hbPath
}

func (g *Game) save() {
	if !g.session.HasAtlas() {
		g.report(editor.ErrNoActiveAtlas)
		return
	}
	if nativeDialogs {
		path, err := saveHitboxDialog(g.currentPath())
		if err != nil {
			g.report(err)
			return
		}
		if path != "" {
			g.report(g.saveTo(path))
		}
		return
	}
	g.prompt.Open("Save to:", g.currentPath(), g.saveTo)
}

func (g *Game) saveTo(path string) error {
	if path == "" {
		return fmt.Errorf("enter a file name")
	}
	if err := g.session.Save(path); err != nil {
		log.Printf("save error: %v", err)
		return err
	}
	g.hbPath = path
	g.rememberPrefs()
	g.panel.SetStatus("saved %s", path)
	return nil
}

func (g *Game) load() {
	if !g.session.HasAtlas() {
		g.report(editor.ErrNoActiveAtlas)
		return
	}
	if nativeDialogs {
		path, err := openHitboxDialog(g.currentPath())
		if err != nil {
			g.report(err)
			return
		}
		if path != "" {
			g.report(g.loadFrom(path))
		}
		return
	}
	g.prompt.Open("Load from:", g.currentPath(), g.loadFrom)
}

func (g *Game) loadFrom(path string) error {
	if path == "" {
		return fmt.Errorf("enter a file name")
	}
	if err := g.session.Load(path); err != nil {
		log.Printf("load error: %v", err)
		return err
	}
	g.hbPath = path
	g.rememberPrefs()
	g.panel.SetStatus("loaded %s", path)
	return nil
}

func (g *Game) copyFrame() {
	b, err := g.session.FrameJSON()
	if err != nil {
		g.report(err)
		return
	}
	if !g.clipboardOK {
		g.panel.SetStatus("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	g.panel.SetStatus("copied frame %d", g.session.Selection().Frame+1)
}

func (g *Game) drainPaletteEvents() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadPalette(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("palette watch error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reloadPalette(path string) {
	p, err := config.LoadPalette(path)
	if err != nil {
		log.Printf("palette reload error: %v", err)
		g.panel.SetStatus("palette reload failed")
		return
	}
	if err := g.session.SetPalette(p); err != nil {
		g.report(err)
		return
	}
	g.panel.SetPalette(p)
	log.Printf("reloaded palette %s", path)
	g.panel.SetStatus("palette reloaded")
}

func (g *Game) rememberPrefs() {
	g.prefs.Update(func(p *prefs.Prefs) {
		p.SetLayout(g.layout)
		if g.hbPath != "" {
			p.HitboxPath = g.hbPath
		}
		if g.catPath != "" {
			p.CategoriesPath = g.catPath
		}
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1e, 0x1e, 0x1e, 0xff})

	if g.session.HasAtlas() {
		sel := g.session.Selection()
		if sel.Frame < len(g.frames) {
			op := &ebiten.DrawImageOptions{}
			op.GeoM = g.cam.geoM()
			op.Filter = ebiten.FilterNearest
			screen.DrawImage(g.frames[sel.Frame], op)
		}
		if g.layout.TileW > 0 && g.layout.TileH > 0 {
			g.strokeRect(screen, hitbox.FromCorners(cp.Vector{}, cp.Vector{X: float64(g.layout.TileW), Y: float64(g.layout.TileH)}), colornames.Dimgray, 1)
		}

		palette := g.session.Palette()
		hovered, isHover := g.session.Hover()
		err := g.session.Visit(func(category, index int, r hitbox.Rect) {
			width := float32(1)
			if isHover && hovered == (hitbox.Ref{Category: category, Index: index}) {
				width = 2
			}
			g.strokeRect(screen, r, palette.Color(category), width)
		})
		if err != nil {
			log.Printf("draw error: %v", err)
		}

		if r, ok := g.session.Draft(); ok {
			c := palette.Color(sel.Category)
			x0, y0 := g.cam.toScreen(r.Min)
			x1, y1 := g.cam.toScreen(r.Max)
			cr, cg, cb, _ := c.RGBA()
			fill := color.NRGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: 48}
			vector.FillRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), fill, false)
			g.strokeRect(screen, r, c, 1)
		}
	}

	g.panel.UI.Draw(screen)
	g.prompt.Draw(screen)
	if g.showHelp {
		g.help.Draw(screen)
	}

	sel := g.session.Selection()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s    zoom %.2f    FPS %.0f    F1 help",
		g.session.Palette().Name(sel.Category), g.cam.zoom, ebiten.ActualFPS()), panelWidth+8, 4)
}

func (g *Game) strokeRect(screen *ebiten.Image, r hitbox.Rect, c color.Color, width float32) {
	x0, y0 := g.cam.toScreen(r.Min)
	x1, y1 := g.cam.toScreen(r.Max)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), width, c, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.width, g.height = int(outsideWidth), int(outsideHeight)
	if !g.centered && g.layout.TileW > 0 {
		g.cam.center(float64(g.layout.TileW), float64(g.layout.TileH), outsideWidth-panelWidth, outsideHeight)
		g.centered = true
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
