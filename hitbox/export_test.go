package hitbox

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

func TestExportSpecs(t *testing.T) {
	a := mustAtlas(t, 1, 3, 2)
	shared := rect(10, 20, 30, 60)
	_ = a.Add(0, 0, shared)
	_ = a.Add(2, 0, shared)
	_ = a.Add(1, 1, rect(0, 0, 4, 4))

	specs, err := ExportSpecs(a, []string{"Hit", "Hurt"}, cp.Vector{X: 16, Y: 16})
	if err != nil {
		t.Fatalf("ExportSpecs: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d: %+v", len(specs), specs)
	}

	hit := specs[0]
	if hit.Category != "Hit" || hit.Width != 20 || hit.Height != 40 || hit.OffsetX != -6 || hit.OffsetY != 4 {
		t.Fatalf("unexpected hit spec %+v", hit)
	}
	if len(hit.Frames) != 2 || hit.Frames[0] != 0 || hit.Frames[1] != 2 {
		t.Fatalf("expected frames [0 2], got %v", hit.Frames)
	}
	if specs[1].Category != "Hurt" || len(specs[1].Frames) != 1 || specs[1].Frames[0] != 1 {
		t.Fatalf("unexpected hurt spec %+v", specs[1])
	}

	b, err := MarshalSpecs(specs)
	if err != nil {
		t.Fatalf("MarshalSpecs: %v", err)
	}
	var back struct {
		Hitboxes []BoxSpec `yaml:"hitboxes"`
	}
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if len(back.Hitboxes) != 2 || back.Hitboxes[0].OffsetX != -6 {
		t.Fatalf("unexpected yaml output:\n%s", b)
	}
}

func TestExportSpecsDuplicateInOneFrame(t *testing.T) {
	a := mustAtlas(t, 1, 1, 1)
	r := rect(0, 0, 1, 1)
	_ = a.Add(0, 0, r)
	_ = a.Add(0, 0, r)
	specs, err := ExportSpecs(a, []string{"Green"}, cp.Vector{})
	if err != nil {
		t.Fatalf("ExportSpecs: %v", err)
	}
	if len(specs) != 1 || len(specs[0].Frames) != 1 {
		t.Fatalf("expected one spec on one frame, got %+v", specs)
	}
}

func TestExportSpecsNameCount(t *testing.T) {
	a := mustAtlas(t, 1, 1, 2)
	if _, err := ExportSpecs(a, []string{"only"}, cp.Vector{}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}
