package revision

import (
	"fmt"
	"strings"
)

// LinkerFlag renders a -X flag that sets variable to the revision at link time,
// for use as `go build -ldflags "$(revstamp ldflags --var main.version)"`.
// It returns an empty string for an unavailable revision.
func LinkerFlag(variable string, rev Revision) (string, error) {
	if variable == "" || strings.ContainsAny(variable, " \t\n=") {
		return "", fmt.Errorf("invalid linker variable %q", variable)
	}
	if rev.Status != Available {
		return "", nil
	}
	return fmt.Sprintf("-X %s=%s", variable, rev.ID), nil
}
