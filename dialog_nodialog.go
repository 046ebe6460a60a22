//go:build !dialog
// +build !dialog

package main

import "errors"

const nativeDialogs = false

var errNoDialog = errors.New("native file dialog unavailable; build with -tags dialog to enable")

// openHitboxDialog is a stub used when the native dialog build tag isn't set.
func openHitboxDialog(current string) (string, error) {
	return "", errNoDialog
}

// saveHitboxDialog is a stub used when the native dialog build tag isn't set.
func saveHitboxDialog(current string) (string, error) {
	return "", errNoDialog
}
