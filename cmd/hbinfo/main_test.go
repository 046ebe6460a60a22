package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hitboxer/hitbox"
	"gopkg.in/yaml.v3"
)

func rect(x0, y0, x1, y1 float64) hitbox.Rect {
	return hitbox.FromCorners(cp.Vector{X: x0, Y: y0}, cp.Vector{X: x1, Y: y1})
}

func writeAtlas(t *testing.T) string {
	t.Helper()
	a, err := hitbox.NewAtlas(1, 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(a.Add(0, 0, rect(0, 0, 10, 10)))
	must(a.Add(0, 1, rect(5, 5, 15, 15)))
	must(a.Add(1, 0, rect(0, 0, 10, 10)))
	path := filepath.Join(t.TempDir(), "boxes.json")
	must(hitbox.WriteFile(path, a))
	return path
}

func TestSummary(t *testing.T) {
	path := writeAtlas(t)
	var out, errOut bytes.Buffer
	if err := run([]string{"-overlaps", path}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"2 frames, 5 categories, 3 boxes",
		"Green",
		"frame 0: Green #1 overlaps Red #1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "frame 1:") {
		t.Errorf("frame 1 has no overlaps:\n%s", got)
	}
}

func TestYAMLExport(t *testing.T) {
	path := writeAtlas(t)
	var out, errOut bytes.Buffer
	if err := run([]string{"-yaml", "-origin-x", "5", path}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	var doc struct {
		Hitboxes []hitbox.BoxSpec `yaml:"hitboxes"`
	}
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, out.String())
	}
	if len(doc.Hitboxes) != 2 {
		t.Fatalf("expected 2 merged specs, got %+v", doc.Hitboxes)
	}
	green := doc.Hitboxes[0]
	if green.Category != "Green" || len(green.Frames) != 2 || green.OffsetX != -5 {
		t.Fatalf("unexpected first spec %+v", green)
	}
}

func TestValidation(t *testing.T) {
	path := writeAtlas(t)
	cases := []struct {
		name    string
		args    []string
		want    error
		wantErr bool
	}{
		{"matching_grid", []string{"-rows", "1", "-cols", "2", path}, nil, false},
		{"wrong_grid", []string{"-rows", "1", "-cols", "3", path}, hitbox.ErrDimensionMismatch, true},
		{"no_file", []string{}, errUsage, true},
		{"rows_without_cols", []string{"-rows", "1", path}, errUsage, true},
		{"cols_without_rows", []string{"-cols", "2", path}, errUsage, true},
		{"missing_file", []string{filepath.Join(t.TempDir(), "nope.json")}, os.ErrNotExist, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			err := run(c.args, &out, &errOut)
			if !c.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestPaletteMismatch(t *testing.T) {
	path := writeAtlas(t)
	palette := filepath.Join(t.TempDir(), "two.yaml")
	if err := writeFile(palette, "categories:\n  - name: A\n    color: \"#ffffff\"\n  - name: B\n    color: \"#000000\"\n"); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	if err := run([]string{"-categories", palette, path}, &out, &errOut); !errors.Is(err, hitbox.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0644)
}
