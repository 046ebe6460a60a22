package main

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/hitboxer/config"
	"github.com/milk9111/hitboxer/editor"
	"github.com/milk9111/hitboxer/hitbox"
)

const panelWidth = 260

// CategoryEntry is a row of the category list.
type CategoryEntry struct {
	Index int
	Name  string
}

// HitboxEntry is a row of the hitbox list.
type HitboxEntry struct {
	Ref   hitbox.Ref
	Label string
}

// panelActions are the callbacks the side panel fires.
type panelActions struct {
	onCategory func(idx int)
	onHitbox   func(ref hitbox.Ref)
	onRemove   func()
	onUndo     func()
	onNew      func()
	onSave     func()
	onLoad     func()
	onCopy     func()
}

// SidePanel is the left panel: selection readouts, the category list, the
// hitbox list of the current frame and file buttons.
type SidePanel struct {
	UI *ebitenui.UI

	frameText  *widget.Text
	cursorText *widget.Text
	fileText   *widget.Text
	statusText *widget.Text

	categoryList *widget.List
	categories   []any

	hitboxList *widget.List
	hitboxes   []HitboxEntry

	// suppress keeps programmatic list updates from firing the handlers.
	suppress bool
}

func NewSidePanel(palette config.Palette, actions panelActions) *SidePanel {
	ui := &ebitenui.UI{}
	fontFace := newFontFace(14)
	ui.PrimaryTheme = newPanelTheme(&fontFace)
	theme := ui.PrimaryTheme

	p := &SidePanel{UI: ui}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 400),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelBackground)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
			),
		),
	)

	newText := func(s string, c color.Color) *widget.Text {
		t := widget.NewText(widget.TextOpts.Text(s, &fontFace, c))
		panel.AddChild(t)
		return t
	}

	p.frameText = newText("No atlas", labelColor)
	p.cursorText = newText("", dimLabelColor)
	p.fileText = newText("", dimLabelColor)

	newText("Categories", labelColor)
	p.categoryList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(CategoryEntry); ok {
				return fmt.Sprintf("%d. %s", entry.Index+1, entry.Name)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(CategoryEntry)
			if !ok || p.suppress || actions.onCategory == nil {
				return
			}
			actions.onCategory(entry.Index)
		}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth-16, 130),
		)),
	)
	panel.AddChild(p.categoryList)
	p.SetPalette(palette)

	newText("Hitboxes", labelColor)
	p.hitboxList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(HitboxEntry); ok {
				return entry.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(HitboxEntry)
			if !ok || p.suppress || actions.onHitbox == nil {
				return
			}
			actions.onHitbox(entry.Ref)
		}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth-16, 220),
		)),
	)
	panel.AddChild(p.hitboxList)

	button := func(parent *widget.Container, label string, fn func()) {
		parent.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, &fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		))
	}
	row := func() *widget.Container {
		r := widget.NewContainer(
			widget.ContainerOpts.Layout(
				widget.NewRowLayout(
					widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
					widget.RowLayoutOpts.Spacing(6),
				),
			),
		)
		panel.AddChild(r)
		return r
	}

	edit := row()
	button(edit, "Remove", actions.onRemove)
	button(edit, "Undo", actions.onUndo)
	button(edit, "Copy", actions.onCopy)

	file := row()
	button(file, "New", actions.onNew)
	button(file, "Save", actions.onSave)
	button(file, "Load", actions.onLoad)

	p.statusText = newText("", dimLabelColor)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	ui.Container = root
	return p
}

// SetPalette replaces the category list.
func (p *SidePanel) SetPalette(palette config.Palette) {
	p.categories = make([]any, palette.Len())
	for i, name := range palette.Names() {
		p.categories[i] = CategoryEntry{Index: i, Name: name}
	}
	p.suppress = true
	p.categoryList.SetEntries(p.categories)
	p.suppress = false
}

// Sync copies session state into the readouts and lists.
func (p *SidePanel) Sync(s *editor.Session, cursorX, cursorY float64) {
	sel := s.Selection()
	palette := s.Palette()

	p.suppress = true
	defer func() { p.suppress = false }()

	if sel.Category >= 0 && sel.Category < len(p.categories) {
		if p.categoryList.SelectedEntry() != p.categories[sel.Category] {
			p.categoryList.SetSelectedEntry(p.categories[sel.Category])
		}
	}

	a, err := s.Atlas()
	if err != nil {
		p.frameText.Label = "No atlas (press N)"
		p.cursorText.Label = ""
		p.fileText.Label = ""
		p.setHitboxes(nil)
		return
	}

	rows, cols := s.Grid()
	p.frameText.Label = fmt.Sprintf("Frame %d / %d  (%dx%d)", sel.Frame+1, a.Len(), rows, cols)
	p.cursorText.Label = fmt.Sprintf("Cursor %.1f, %.1f", cursorX, cursorY)
	if path := s.Path(); path != "" {
		p.fileText.Label = path
	} else {
		p.fileText.Label = "(unsaved)"
	}

	frame, err := a.Frame(sel.Frame)
	if err != nil {
		p.setHitboxes(nil)
		return
	}
	var entries []HitboxEntry
	for ci, rects := range frame {
		for ri, r := range rects {
			entries = append(entries, HitboxEntry{
				Ref: hitbox.Ref{Category: ci, Index: ri},
				Label: fmt.Sprintf("%s #%d  %.0f,%.0f %.0fx%.0f",
					palette.Name(ci), ri+1, r.Min.X, r.Min.Y, r.Width(), r.Height()),
			})
		}
	}
	p.setHitboxes(entries)

	ref, ok := s.Hover()
	if want := hoverEntry(entries, ref, ok); p.hitboxList.SelectedEntry() != want {
		p.hitboxList.SetSelectedEntry(want)
	}
}

// hoverEntry is the list entry matching the hover, or nil when nothing is
// hovered so the list shows no selection.
func hoverEntry(entries []HitboxEntry, ref hitbox.Ref, hovered bool) any {
	if !hovered {
		return nil
	}
	for _, e := range entries {
		if e.Ref == ref {
			return e
		}
	}
	return nil
}

func (p *SidePanel) setHitboxes(entries []HitboxEntry) {
	if slices.Equal(entries, p.hitboxes) {
		return
	}
	p.hitboxes = entries
	list := make([]any, len(entries))
	for i, e := range entries {
		list[i] = e
	}
	p.hitboxList.SetEntries(list)
}

// SetStatus shows a one-line message under the buttons.
func (p *SidePanel) SetStatus(format string, args ...any) {
	p.statusText.Label = fmt.Sprintf(format, args...)
}
