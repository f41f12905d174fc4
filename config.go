package flatten

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Config holds the parameters of a conversion. Paths are relative to Root.
type Config struct {
	// Root is the directory that is searched for source files.
	Root string

	// OutputDir is the directory, relative to Root, that receives the
	// converted files. Directories with the same base name are never searched.
	OutputDir string

	// MatchSuffix selects the source files by the end of their name.
	MatchSuffix string

	// OutputExtension replaces MatchSuffix in the names of converted files.
	OutputExtension string
}

// DefaultConfig returns the configuration that converts all .svelte files
// below the current directory into text_files/*.txt.
func DefaultConfig() Config {
	return Config{
		Root:            ".",
		OutputDir:       "text_files",
		MatchSuffix:     ".svelte",
		OutputExtension: ".txt",
	}
}

// Validate returns an error if cfg cannot be used for a conversion.
func (cfg Config) Validate() error {
	if cfg.MatchSuffix == "" {
		return errors.New("match suffix must not be empty")
	}

	out := cfg.OutputDir
	if strings.TrimSpace(out) == "" {
		return errors.New("output directory must not be empty")
	}

	if filepath.IsAbs(out) || path.IsAbs(filepath.ToSlash(out)) {
		return fmt.Errorf("output directory %q must be relative to the root", out)
	}

	switch out = cfg.outputDir(); {
	case out == ".":
		return fmt.Errorf("output directory %q must not be the root itself", cfg.OutputDir)
	case out == "..", strings.HasPrefix(out, "../"):
		return fmt.Errorf("output directory %q is outside of the root", cfg.OutputDir)
	}

	return nil
}

// outputDir returns the cleaned, slash-separated output directory.
func (cfg Config) outputDir() string {
	return path.Clean(filepath.ToSlash(cfg.OutputDir))
}
