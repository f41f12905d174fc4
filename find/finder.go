package find

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/modernice/flatten/internal"
	"github.com/modernice/flatten/internal/slice"
	"golang.org/x/exp/slog"
)

// Finder walks a file system and collects the files whose names end with a
// given suffix. Directories and files can be excluded using Skip rules and
// glob patterns.
type Finder struct {
	repo   fs.FS
	suffix string
	skip   *Skip
	globs  []string
	ignore []string
	log    *slog.Logger
}

// Match is a file found by a Finder. Path is slash-separated and relative to
// the root of the searched file system. Dir is the directory of Path ("." for
// files in the root) and Name is the base name.
type Match struct {
	Path string
	Dir  string
	Name string
}

func (m Match) String() string {
	return m.Path
}

// Option configures a Finder.
type Option interface {
	apply(*Finder)
}

type optionFunc func(*Finder)

func (opt optionFunc) apply(f *Finder) {
	opt(f)
}

// WithLogger returns an Option that sets the logger of a Finder.
func WithLogger(h slog.Handler) Option {
	return optionFunc(func(f *Finder) {
		f.log = slog.New(h)
	})
}

// Glob returns an Option that restricts the Finder to files that match at
// least one of the given doublestar patterns. Patterns are matched against the
// slash-separated path relative to the root.
func Glob(pattern ...string) Option {
	pattern = slice.NoZero(slice.Map(pattern, strings.TrimSpace))
	return optionFunc(func(f *Finder) {
		f.globs = append(f.globs, pattern...)
	})
}

// Ignore returns an Option that drops files matching any of the given
// doublestar patterns.
func Ignore(pattern ...string) Option {
	pattern = slice.NoZero(slice.Map(pattern, strings.TrimSpace))
	return optionFunc(func(f *Finder) {
		f.ignore = append(f.ignore, pattern...)
	})
}

// New returns a Finder that searches repo for files ending with suffix.
func New(repo fs.FS, suffix string, opts ...Option) *Finder {
	f := &Finder{repo: repo, suffix: suffix}
	for _, opt := range opts {
		opt.apply(f)
	}
	if f.skip == nil {
		skip := SkipNone()
		f.skip = &skip
	}
	if f.log == nil {
		f.log = internal.NopLogger()
	}
	f.globs = slice.Unique(f.globs)
	f.ignore = slice.Unique(f.ignore)
	return f
}

// Find walks the file system in lexical order and returns every file that
// ends with the Finder's suffix and is not excluded. An error reading a
// directory aborts the search.
func (f *Finder) Find() ([]Match, error) {
	if err := f.validatePatterns(); err != nil {
		return nil, err
	}

	f.log.Info(fmt.Sprintf("Searching for %s files ...", f.suffix))

	var matches []Match

	if err := fs.WalkDir(f.repo, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}

		if p == "." {
			return nil
		}

		exclude := Exclude{
			DirEntry: d,
			Path:     p,
		}

		if d.IsDir() {
			if f.skip.ExcludeDir(exclude) {
				f.log.Debug("Skipping directory", "dir", p)
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), f.suffix) {
			return nil
		}

		if !f.globAllowed(p) {
			f.log.Debug("Skipping file", "path", p, "reason", "glob")
			return nil
		}

		if f.skip.ExcludeFile(exclude) {
			f.log.Debug("Skipping file", "path", p)
			return nil
		}

		matches = append(matches, Match{
			Path: p,
			Dir:  path.Dir(p),
			Name: d.Name(),
		})

		return nil
	}); err != nil {
		return nil, err
	}

	f.log.Info(fmt.Sprintf("Found %d %s files", len(matches), f.suffix))

	return matches, nil
}

func (f *Finder) validatePatterns() error {
	for _, pattern := range append(append([]string{}, f.globs...), f.ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("glob %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

func (f *Finder) globAllowed(p string) bool {
	if len(f.globs) > 0 && !matchAny(f.globs, p) {
		return false
	}
	return !matchAny(f.ignore, p)
}

func matchAny(patterns []string, p string) bool {
	for _, pattern := range patterns {
		// patterns were validated in Find
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}
