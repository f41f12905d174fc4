// Package convert copies the text of source files into a destination file
// system.
package convert

import (
	"fmt"
	"io"
	"io/fs"
	"unicode/utf8"

	"github.com/modernice/flatten/internal"
	"github.com/spf13/afero"
	"golang.org/x/exp/slog"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// DecodeError is returned by Converter.Convert if a source file is not valid
// UTF-8. Offset is the position of the first invalid byte.
type DecodeError struct {
	Offset int
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte %d", err.Offset)
}

// Converter reads text files from a source file system and writes them to a
// destination file system.
type Converter struct {
	src    fs.FS
	dst    afero.Fs
	dryRun bool
	log    *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger returns an Option that sets the logger of a Converter.
func WithLogger(h slog.Handler) Option {
	return func(c *Converter) {
		c.log = slog.New(h)
	}
}

// DryRun returns an Option that disables all writes. Sources are still read
// and validated.
func DryRun(dryRun bool) Option {
	return func(c *Converter) {
		c.dryRun = dryRun
	}
}

// New returns a Converter that reads from src and writes to dst.
func New(src fs.FS, dst afero.Fs, opts ...Option) *Converter {
	c := &Converter{src: src, dst: dst}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = internal.NopLogger()
	}
	return c
}

// Prepare creates dir and any missing parents in the destination file system.
// It is a no-op if dir already exists.
func (c *Converter) Prepare(dir string) error {
	if c.dryRun {
		return nil
	}

	if err := c.dst.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	return nil
}

// Convert reads srcPath, checks that it is valid UTF-8 and writes its content
// unchanged to destPath, replacing any existing file.
func (c *Converter) Convert(srcPath, destPath string) error {
	content, err := c.read(srcPath)
	if err != nil {
		return err
	}

	if c.dryRun {
		c.log.Debug("Dry run: not writing file", "source", srcPath, "dest", destPath)
		return nil
	}

	if err := afero.WriteFile(c.dst, destPath, content, filePerm); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	c.log.Debug("Converted file", "source", srcPath, "dest", destPath, "bytes", len(content))

	return nil
}

func (c *Converter) read(p string) ([]byte, error) {
	f, err := c.src.Open(p)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if offset, ok := invalidUTF8(b); ok {
		return nil, fmt.Errorf("decode source: %w", &DecodeError{Offset: offset})
	}

	return b, nil
}

func invalidUTF8(b []byte) (int, bool) {
	if utf8.Valid(b) {
		return 0, false
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i, true
		}
		i += size
	}
	return 0, false
}
