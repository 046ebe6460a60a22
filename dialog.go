//go:build dialog
// +build dialog

package main

import (
	"errors"
	"path/filepath"

	"github.com/sqweek/dialog"
)

const nativeDialogs = true

// cancelled maps a dismissed dialog to an empty path.
func cancelled(path string, err error) (string, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	return path, err
}

// openHitboxDialog asks for an existing hitbox file. A cancelled dialog
// returns an empty path.
func openHitboxDialog(current string) (string, error) {
	b := dialog.File().Filter("Hitbox files", "json").Title("Load hitboxes")
	if current != "" {
		b = b.SetStartDir(filepath.Dir(current))
	}
	return cancelled(b.Load())
}

// saveHitboxDialog asks where to write the hitbox file.
func saveHitboxDialog(current string) (string, error) {
	b := dialog.File().Filter("Hitbox files", "json").Title("Save hitboxes")
	if current != "" {
		b = b.SetStartDir(filepath.Dir(current)).SetStartFile(filepath.Base(current))
	}
	return cancelled(b.Save())
}
