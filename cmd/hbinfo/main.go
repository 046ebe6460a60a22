package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitboxer/config"
	"github.com/milk9111/hitboxer/hitbox"
)

var errUsage = errors.New("usage: hbinfo [flags] <hitboxes.json>")

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hbinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	categoriesPath := fs.String("categories", "", "category palette YAML (empty for the built-in palette)")
	rows := fs.Int("rows", 0, "expected frame rows; with -cols, validates the frame count")
	cols := fs.Int("cols", 0, "expected frame columns")
	asYAML := fs.Bool("yaml", false, "print the boxes as prefab-style YAML instead of a summary")
	originX := fs.Float64("origin-x", 0, "sprite origin x used for exported offsets")
	originY := fs.Float64("origin-y", 0, "sprite origin y used for exported offsets")
	overlaps := fs.Bool("overlaps", false, "list overlapping boxes of different categories in each frame")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	if (*rows > 0) != (*cols > 0) {
		fs.Usage()
		return fmt.Errorf("%w: -rows and -cols go together", errUsage)
	}
	path := fs.Arg(0)

	palette, err := config.LoadPalette(*categoriesPath)
	if err != nil {
		return err
	}
	a, err := hitbox.ReadFile(path)
	if err != nil {
		return err
	}

	frames := a.Len()
	if *rows > 0 {
		frames = *rows * *cols
	}
	if err := a.CheckDimensions(frames, palette.Len()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if *asYAML {
		specs, err := hitbox.ExportSpecs(a, palette.Names(), cp.Vector{X: *originX, Y: *originY})
		if err != nil {
			return err
		}
		out, err := hitbox.MarshalSpecs(specs)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	}

	summarize(stdout, path, a, palette)
	if *overlaps {
		listOverlaps(stdout, a, palette)
	}
	return nil
}

// summarize prints per-frame box counts, one column per category.
func summarize(w io.Writer, path string, a *hitbox.Atlas, palette config.Palette) {
	total := 0
	counts := make([][]int, a.Len())
	for fi := range counts {
		counts[fi] = make([]int, a.Categories())
		for ci := range counts[fi] {
			n, _ := a.Count(fi, ci)
			counts[fi][ci] = n
			total += n
		}
	}

	fmt.Fprintf(w, "%s: %d frames, %d categories, %d boxes\n", path, a.Len(), a.Categories(), total)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "frame\t%s\t\n", strings.Join(palette.Names(), "\t"))
	for fi, row := range counts {
		cells := make([]string, len(row))
		for ci, n := range row {
			cells[ci] = fmt.Sprint(n)
		}
		fmt.Fprintf(tw, "%d\t%s\t\n", fi, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// listOverlaps prints pairs of boxes from different categories that touch
// in the same frame.
func listOverlaps(w io.Writer, a *hitbox.Atlas, palette config.Palette) {
	found := 0
	for fi := 0; fi < a.Len(); fi++ {
		f, err := a.Frame(fi)
		if err != nil {
			continue
		}
		for ci := range f {
			for cj := ci + 1; cj < len(f); cj++ {
				for ri, r := range f[ci] {
					for rj, s := range f[cj] {
						if !hitbox.Overlaps(r, s) {
							continue
						}
						found++
						fmt.Fprintf(w, "frame %d: %s #%d overlaps %s #%d\n",
							fi, palette.Name(ci), ri+1, palette.Name(cj), rj+1)
					}
				}
			}
		}
	}
	if found == 0 {
		fmt.Fprintln(w, "no overlaps")
	}
}
