package main

import (
	"testing"

	"github.com/milk9111/hitboxer/hitbox"
)

func TestHoverEntry(t *testing.T) {
	entries := []HitboxEntry{
		{Ref: hitbox.Ref{Category: 0, Index: 0}, Label: "hurt #1"},
		{Ref: hitbox.Ref{Category: 1, Index: 0}, Label: "hit #1"},
		{Ref: hitbox.Ref{Category: 1, Index: 1}, Label: "hit #2"},
	}

	cases := []struct {
		name    string
		ref     hitbox.Ref
		hovered bool
		want    any
	}{
		{"hovered", hitbox.Ref{Category: 1, Index: 1}, true, entries[2]},
		{"no_hover_clears", hitbox.Ref{Category: 1, Index: 1}, false, nil},
		{"zero_ref_without_hover", hitbox.Ref{}, false, nil},
		{"stale_ref", hitbox.Ref{Category: 2, Index: 0}, true, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := hoverEntry(entries, c.ref, c.hovered); got != c.want {
				t.Fatalf("hoverEntry = %v, want %v", got, c.want)
			}
		})
	}
}
