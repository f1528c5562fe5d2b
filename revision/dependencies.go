package revision

import (
	"path/filepath"

	"github.com/LegacyCodeHQ/revstamp/vcs/git"
)

// metadataPaths are the entries of the git directory that change on commit, checkout,
// staging or tagging. Order is part of the output contract.
var metadataPaths = []string{"HEAD", "index", "refs"}

// SourceKind selects which working-tree paths are watched in addition to git metadata.
type SourceKind int

const (
	// NoSources watches git metadata only.
	NoSources SourceKind = iota
	// ExplicitSources watches the caller-supplied paths.
	ExplicitSources
	// TrackedSources watches every file tracked by git.
	TrackedSources
)

// Sources describes the extra paths whose modification should trigger recomputation.
type Sources struct {
	Kind  SourceKind
	Paths []string
}

// Paths returns Sources watching the given paths, relative to the working-tree root
// unless absolute.
func Paths(paths ...string) Sources {
	return Sources{Kind: ExplicitSources, Paths: paths}
}

// Tracked returns Sources watching every tracked file.
func Tracked() Sources {
	return Sources{Kind: TrackedSources}
}

// DependencyPaths returns the paths to watch for dir, in emission order: the git HEAD,
// index and refs entries followed by the selected sources.
func DependencyPaths(runner *git.Runner, dir string, sources Sources) ([]string, error) {
	gitDir, err := runner.AbsoluteGitDir(dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(metadataPaths)+len(sources.Paths))
	for _, p := range metadataPaths {
		paths = append(paths, filepath.Join(gitDir, p))
	}

	switch sources.Kind {
	case ExplicitSources:
		root := filepath.Dir(gitDir)
		for _, p := range sources.Paths {
			if !filepath.IsAbs(p) {
				p = filepath.Join(root, p)
			}
			paths = append(paths, p)
		}
	case TrackedSources:
		tracked, err := runner.TrackedFiles(dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, tracked...)
	}

	return paths, nil
}

func emitDependencies(d *Directives, paths []string) error {
	for _, p := range paths {
		if err := d.RerunIfChanged(p); err != nil {
			return err
		}
	}
	return nil
}
