package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LegacyCodeHQ/revstamp/revision"
	"github.com/LegacyCodeHQ/revstamp/vcs/git"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// watchSet is the dependency path set turned into filesystem watch targets.
// Directories are watched recursively; files are watched through their parent directory.
type watchSet struct {
	files map[string]bool
	trees []string
}

func newWatchSet(paths []string) *watchSet {
	s := &watchSet{files: make(map[string]bool)}
	for _, p := range paths {
		p = filepath.Clean(p)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			s.trees = append(s.trees, p)
			continue
		}
		s.files[p] = true
	}
	return s
}

func (s *watchSet) matches(name string) bool {
	name = filepath.Clean(name)
	if s.files[name] {
		return true
	}
	for _, tree := range s.trees {
		if name == tree || strings.HasPrefix(name, tree+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// parentDirs returns the unique directories holding watched files, in first-seen order.
func (s *watchSet) parentDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for f := range s.files {
		d := filepath.Dir(f)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

type revisionWatcher struct {
	dir      string
	mode     revision.Mode
	sources  revision.Sources
	runner   *git.Runner
	resolver *revision.Resolver
	out      io.Writer
	errOut   io.Writer
	set      *watchSet
	last     string
}

func newRevisionWatcher(dir string, opts *watchOptions, out, errOut io.Writer) *revisionWatcher {
	runner := git.NewRunner(git.WithTool(opts.gitTool))

	mode := revision.Auto
	if opts.bare {
		mode = revision.Bare
	}
	sources := revision.Tracked()
	if !opts.discover {
		sources = revision.Sources{}
	}

	return &revisionWatcher{
		dir:      dir,
		mode:     mode,
		sources:  sources,
		runner:   runner,
		resolver: revision.NewResolver(revision.WithRunner(runner), revision.WithOutput(io.Discard)),
		out:      out,
		errOut:   errOut,
	}
}

// refresh recomputes the revision and the watched paths, printing the revision when it changed.
func (w *revisionWatcher) refresh() error {
	rev, err := w.resolver.Resolve(w.dir, w.mode, w.sources)
	if err != nil {
		return err
	}
	if rev.Status != revision.Available {
		return fmt.Errorf("cannot watch %s: %s", w.dir, rev.Reason)
	}

	paths, err := revision.DependencyPaths(w.runner, w.dir, w.sources)
	if err != nil {
		return err
	}
	w.set = newWatchSet(paths)

	if rev.ID != w.last {
		w.last = rev.ID
		if _, err := fmt.Fprintln(w.out, rev.ID); err != nil {
			return err
		}
	}
	return nil
}

func (w *revisionWatcher) addWatches(watcher *fsnotify.Watcher) error {
	for _, d := range w.set.parentDirs() {
		if err := watcher.Add(d); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	for _, tree := range w.set.trees {
		if err := addWatchDirs(watcher, tree); err != nil {
			return err
		}
	}
	return nil
}

func watchAndReport(ctx context.Context, w *revisionWatcher, pollInterval time.Duration) error {
	if err := w.refresh(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addWatches(watcher); err != nil {
		return fmt.Errorf("failed to watch dependency paths: %w", err)
	}

	var pollC <-chan time.Time
	if pollInterval > 0 {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		pollC = ticker.C
	}

	// Debounced refreshes are funneled back into this loop so output stays ordered.
	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	rebuild := func() {
		if err := w.refresh(); err != nil {
			fmt.Fprintf(w.errOut, "revision refresh error: %v\n", err)
			return
		}
		if err := w.addWatches(watcher); err != nil {
			fmt.Fprintf(w.errOut, "watcher error: %v\n", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantChange(event, w.set) {
				continue
			}
			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name)
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.errOut, "watcher error: %v\n", err)

		case <-trigger:
			rebuild()

		case <-pollC:
			rebuild()
		}
	}
}

func isRelevantChange(event fsnotify.Event, set *watchSet) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return set.matches(event.Name)
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return addWatchDirsWithAdder(root, watcher.Add)
}

// addWatchDirsWithAdder registers root and every directory below it.
// Entries that vanish while walking are skipped.
func addWatchDirsWithAdder(root string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path)
	}
}
