// Package flatten copies the source files of a directory tree into a single
// flat directory. Each copy is named after the path of its source, so
// components/Button.svelte becomes text_files/components_Button.txt.
package flatten

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/modernice/flatten/convert"
	"github.com/modernice/flatten/find"
	"github.com/modernice/flatten/flatname"
	"github.com/modernice/flatten/internal"
	"github.com/spf13/afero"
	"golang.org/x/exp/slog"
)

// Copier converts the matching files of a directory tree into flat text
// files. Use New to operate on a directory of the local file system, or NewFs
// for any afero file system.
type Copier struct {
	fs         afero.Fs
	cfg        Config
	globs      []string
	ignore     []string
	skipHidden bool
	err        error
	log        *slog.Logger
}

// Option configures a Copier.
type Option func(*Copier)

// WithLogger returns an Option that sets the logger of a Copier.
func WithLogger(h slog.Handler) Option {
	return func(c *Copier) {
		c.log = slog.New(h)
	}
}

// WithConfig returns an Option that replaces the output directory, match
// suffix and output extension of a Copier with those of cfg. The root is
// determined by New and NewFs and cannot be changed.
func WithConfig(cfg Config) Option {
	return func(c *Copier) {
		cfg.Root = c.cfg.Root
		c.cfg = cfg
	}
}

// OutputDir returns an Option that sets the root-relative output directory.
func OutputDir(dir string) Option {
	return func(c *Copier) {
		c.cfg.OutputDir = dir
	}
}

// MatchSuffix returns an Option that sets the suffix of the source files.
func MatchSuffix(suffix string) Option {
	return func(c *Copier) {
		c.cfg.MatchSuffix = suffix
	}
}

// OutputExtension returns an Option that sets the extension that replaces the
// match suffix in converted file names.
func OutputExtension(ext string) Option {
	return func(c *Copier) {
		c.cfg.OutputExtension = ext
	}
}

// Include returns an Option that only converts files matching at least one of
// the given glob patterns. Patterns support "**" and are matched against
// slash-separated, root-relative paths.
func Include(patterns ...string) Option {
	return func(c *Copier) {
		c.globs = append(c.globs, patterns...)
	}
}

// Exclude returns an Option that skips files matching any of the given glob
// patterns.
func Exclude(patterns ...string) Option {
	return func(c *Copier) {
		c.ignore = append(c.ignore, patterns...)
	}
}

// SkipHidden returns an Option that skips hidden directories and dotfiles.
func SkipHidden(skip bool) Option {
	return func(c *Copier) {
		c.skipHidden = skip
	}
}

// New returns a Copier for the directory root of the local file system.
func New(root string, opts ...Option) *Copier {
	abs, err := filepath.Abs(root)
	if err != nil {
		c := NewFs(afero.NewOsFs(), opts...)
		c.err = fmt.Errorf("resolve root %s: %w", root, err)
		return c
	}

	c := NewFs(afero.NewBasePathFs(afero.NewOsFs(), abs), opts...)
	c.cfg.Root = root

	return c
}

// NewFs returns a Copier whose root is the root of fsys.
func NewFs(fsys afero.Fs, opts ...Option) *Copier {
	c := &Copier{fs: fsys, cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = internal.NopLogger()
	}
	return c
}

// Config returns the configuration of the Copier.
func (c *Copier) Config() Config {
	return c.cfg
}

// Run converts every matching file below the root. The output directory is
// created if it does not exist. A file that cannot be read, decoded or written
// is recorded as a failed Result and does not stop the run.
//
// Run returns an error without a report if the configuration is invalid, the
// output directory cannot be created or the tree cannot be searched. If ctx is
// canceled, Run stops before the next file and returns the results so far
// together with ctx.Err().
func (c *Copier) Run(ctx context.Context) (*Report, error) {
	return c.run(ctx, false)
}

// DryRun is like Run, but does not write any files or directories. Source files
// are still read and checked, so the report contains the same failures that
// Run would report for unreadable sources.
func (c *Copier) DryRun(ctx context.Context) (*Report, error) {
	return c.run(ctx, true)
}

func (c *Copier) run(ctx context.Context, dryRun bool) (*Report, error) {
	if c.err != nil {
		return nil, c.err
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	out := c.cfg.outputDir()
	h := c.log.Handler()
	repo := afero.NewIOFS(c.fs)

	c.log.Info(fmt.Sprintf("Converting %s files ...", c.cfg.MatchSuffix), "root", c.cfg.Root, "output", out, "dry", dryRun)

	conv := convert.New(repo, c.fs, convert.WithLogger(h), convert.DryRun(dryRun))
	if err := conv.Prepare(out); err != nil {
		return nil, err
	}

	finder := find.New(
		repo,
		c.cfg.MatchSuffix,
		find.WithLogger(h),
		c.skip(out),
		find.Glob(c.globs...),
		find.Ignore(c.ignore...),
	)

	matches, err := finder.Find()
	if err != nil {
		return nil, fmt.Errorf("find %s files: %w", c.cfg.MatchSuffix, err)
	}

	report := &Report{
		Results: make([]Result, 0, len(matches)),
		DryRun:  dryRun,
	}
	written := make(map[string]string, len(matches))

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		dest := path.Join(out, flatname.Name(m.Dir, m.Name, c.cfg.MatchSuffix, c.cfg.OutputExtension))

		if prev, ok := written[dest]; ok {
			c.log.Warn("Overwriting converted file", "dest", dest, "source", m.Path, "previous", prev)
		}
		written[dest] = m.Path

		res := Result{Source: m.Path, Dest: dest}
		if err := conv.Convert(m.Path, dest); err != nil {
			c.log.Debug("Failed to convert file", "source", m.Path, "error", err)
			res.Err = err
		}

		report.Results = append(report.Results, res)
	}

	c.log.Info("Done.", "created", len(report.Created()), "failed", len(report.Failed()))

	return report, nil
}

func (c *Copier) skip(out string) find.Skip {
	skip := find.SkipNone()
	if c.skipHidden {
		skip = find.SkipHidden()
	}
	skip.Names = []string{path.Base(out)}
	skip.Paths = []string{out}
	return skip
}
