//go:build dialog
// +build dialog

package main

import (
	"github.com/sqweek/dialog"
)

// openChartDialog opens the native file dialog and returns the selected chart path.
func openChartDialog() (string, error) {
	return dialog.File().Filter("Chart files", "json").Title("Select chart").Load()
}
