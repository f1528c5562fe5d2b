package git

import (
	"bytes"
	"path/filepath"
	"strings"
)

// IsRepository checks whether dir is inside a git repository.
// The error is non-nil only when git itself could not be started.
func (r *Runner) IsRepository(dir string) (bool, error) {
	return r.Run(dir, "rev-parse", "--git-dir")
}

// GitDir returns the repository metadata directory as reported by git,
// which may be relative to dir.
func (r *Runner) GitDir(dir string) (string, error) {
	return r.Path(dir, "rev-parse", "--git-dir")
}

// AbsoluteGitDir returns the absolute path of the repository metadata directory.
func (r *Runner) AbsoluteGitDir(dir string) (string, error) {
	return r.Path(dir, "rev-parse", "--absolute-git-dir")
}

// TopLevel returns the absolute path to the root of the working tree.
func (r *Runner) TopLevel(dir string) (string, error) {
	return r.Path(dir, "rev-parse", "--show-toplevel")
}

// TrackedFiles returns absolute paths of every file tracked in the working tree containing dir.
// Names are read NUL-separated so whitespace, newlines and leading dashes survive intact.
func (r *Runner) TrackedFiles(dir string) ([]string, error) {
	top, err := r.TopLevel(dir)
	if err != nil {
		return nil, err
	}

	inv := r.invocation(dir, []string{"-C", top, "ls-files", "--full-name", "-z"})
	out, err := r.Output(inv.Dir, inv.Args...)
	if err != nil {
		return nil, err
	}

	entries := bytes.Split(out, []byte{0})
	// The listing is NUL-terminated, leaving an empty last segment.
	if n := len(entries); n > 0 && len(entries[n-1]) == 0 {
		entries = entries[:n-1]
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		rel, err := r.toPath(inv, entry)
		if err != nil {
			return nil, err
		}
		files = append(files, filepath.Join(top, rel))
	}
	return files, nil
}

// ExactTag returns the tag pointing exactly at HEAD.
// It fails with a CommandError when HEAD is not tagged.
func (r *Runner) ExactTag(dir string) (string, error) {
	tag, err := r.Text(dir, "describe", "--exact-match", "--tags", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tag), nil
}

// ShortHash returns the abbreviated commit hash of HEAD.
func (r *Runner) ShortHash(dir string) (string, error) {
	hash, err := r.Text(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// HasLocalChanges checks whether tracked files differ from HEAD. Untracked files are ignored.
func (r *Runner) HasLocalChanges(dir string) (bool, error) {
	out, err := r.Output(dir, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return len(out) > 0, nil
}
