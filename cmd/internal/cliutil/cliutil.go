// Package cliutil holds helpers shared by the revstamp subcommands.
package cliutil

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

var warningColor = color.New(color.FgYellow)

// TargetDir returns the absolute directory named by the first positional argument,
// or the current directory when none is given.
func TargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}
	return abs, nil
}

// PrintWarning writes a highlighted warning line. Color is dropped automatically when
// w is not a terminal or NO_COLOR is set.
func PrintWarning(w io.Writer, message string) {
	warningColor.Fprintf(w, "warning: %s\n", message)
}
