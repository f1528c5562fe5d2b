// Package revision computes a human-readable revision string for embedding into build
// artifacts and emits the directives a build tool needs to know when to recompute it.
//
// A revision is the tag HEAD points at or, failing that, the short commit hash. In Auto
// mode a trailing "+" marks uncommitted changes to tracked files.
//
// Resolution is best-effort: when git is missing or the directory is not inside a
// repository, a warning directive is written and an Unavailable revision is returned
// without an error. Once a repository has been found, every failure is returned as an
// error. Each call runs several git commands and writes directives, so callers should
// resolve once and reuse the result.
package revision

import (
	"fmt"
	"io"
	"os"

	"github.com/LegacyCodeHQ/revstamp/internal/devlog"
	"github.com/LegacyCodeHQ/revstamp/vcs/git"
)

// ModifiedMarker is appended to the revision when tracked files have local changes.
const ModifiedMarker = "+"

// Status tells whether a revision could be determined.
type Status int

const (
	// Unavailable means git is missing or the directory is not in a repository.
	Unavailable Status = iota
	// Available means Revision.ID holds the revision string.
	Available
)

func (s Status) String() string {
	if s == Available {
		return "available"
	}
	return "unavailable"
}

// Revision is the outcome of a resolution that did not fail.
type Revision struct {
	Status Status
	// ID is the tag or short hash, with ModifiedMarker when applicable.
	ID string
	// Reason explains an Unavailable status.
	Reason string
}

// String returns ID, or an empty string when the revision is unavailable.
func (r Revision) String() string {
	return r.ID
}

// Mode selects whether local modifications are reported.
type Mode int

const (
	// Auto appends ModifiedMarker when tracked files have local changes.
	Auto Mode = iota
	// Bare never checks for or appends ModifiedMarker.
	Bare
)

// Resolver resolves revisions and writes directives to its output.
type Resolver struct {
	runner *git.Runner
	out    io.Writer
	prefix string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRunner sets the git runner, e.g. one created with git.WithTool.
func WithRunner(runner *git.Runner) ResolverOption {
	return func(r *Resolver) {
		r.runner = runner
	}
}

// WithOutput sets the directive sink. Defaults to os.Stdout.
func WithOutput(w io.Writer) ResolverOption {
	return func(r *Resolver) {
		r.out = w
	}
}

// WithPrefix sets a prefix written before every directive, e.g. "cargo:".
func WithPrefix(prefix string) ResolverOption {
	return func(r *Resolver) {
		r.prefix = prefix
	}
}

// NewResolver creates a Resolver using git from PATH and writing to os.Stdout.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		runner: git.NewRunner(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveBare returns the revision of dir without a modification marker and writes
// the git metadata directives to w.
func ResolveBare(dir string, w io.Writer) (Revision, error) {
	return NewResolver(WithOutput(w)).Resolve(dir, Bare, Sources{})
}

// ResolveAutoWithSources returns the revision of dir including the modification marker.
// Directives for git metadata and for sources are written to w.
func ResolveAutoWithSources(dir string, sources Sources, w io.Writer) (Revision, error) {
	return NewResolver(WithOutput(w)).Resolve(dir, Auto, sources)
}

// ResolveAuto returns the revision of dir including the modification marker, watching
// every tracked file, and writes the directives to os.Stdout.
func ResolveAuto(dir string) (Revision, error) {
	return NewResolver().Resolve(dir, Auto, Tracked())
}

// Resolve computes the revision of dir.
func (r *Resolver) Resolve(dir string, mode Mode, sources Sources) (Revision, error) {
	d := NewDirectives(r.out, r.prefix)

	if rev, ok, err := r.probe(d, dir); !ok || err != nil {
		return rev, err
	}

	// A repository created after a degraded run is not picked up: there is no
	// sensible path to watch before one exists.
	paths, err := DependencyPaths(r.runner, dir, sources)
	if err != nil {
		return Revision{}, err
	}
	if err := emitDependencies(d, paths); err != nil {
		return Revision{}, err
	}

	id, err := r.baseID(dir)
	if err != nil {
		return Revision{}, err
	}

	if mode == Auto {
		modified, err := r.runner.HasLocalChanges(dir)
		if err != nil {
			return Revision{}, err
		}
		if modified {
			id += ModifiedMarker
		}
	}

	return Revision{Status: Available, ID: id}, nil
}

// probe reports whether dir is inside a usable repository. Missing git and missing
// repositories degrade to an Unavailable revision with a warning directive.
func (r *Resolver) probe(d *Directives, dir string) (Revision, bool, error) {
	ok, err := r.runner.IsRepository(dir)
	var reason string
	switch {
	case err != nil:
		reason = fmt.Sprintf("Failed to invoke `%s`; unable to embed git revision: %v", r.runner.Tool(), err)
	case !ok:
		reason = "Not in a git repository; unable to embed git revision"
	default:
		return Revision{}, true, nil
	}

	devlog.Warn(reason, map[string]any{"dir": dir})
	if err := d.Warning(reason); err != nil {
		return Revision{}, false, err
	}
	return Revision{Status: Unavailable, Reason: reason}, false, nil
}

// baseID prefers the tag HEAD points at and falls back to the short hash.
func (r *Resolver) baseID(dir string) (string, error) {
	if tag, err := r.runner.ExactTag(dir); err == nil && tag != "" {
		return tag, nil
	}
	return r.runner.ShortHash(dir)
}
