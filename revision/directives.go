package revision

import (
	"fmt"
	"io"
)

// Directives writes line-oriented build-tool instructions to a sink.
// With a prefix such as "cargo:" every line is emitted as "cargo:rerun-if-changed=...".
type Directives struct {
	w      io.Writer
	prefix string
}

// NewDirectives creates a directive writer over w.
func NewDirectives(w io.Writer, prefix string) *Directives {
	return &Directives{w: w, prefix: prefix}
}

// RerunIfChanged asks the build tool to re-run when path changes.
func (d *Directives) RerunIfChanged(path string) error {
	_, err := fmt.Fprintf(d.w, "%srerun-if-changed=%s\n", d.prefix, path)
	return err
}

// Warning surfaces a non-fatal message to whoever runs the build.
func (d *Directives) Warning(message string) error {
	_, err := fmt.Fprintf(d.w, "%swarning=%s\n", d.prefix, message)
	return err
}
