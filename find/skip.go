package find

import (
	"io/fs"
	"path"
	"strings"

	"golang.org/x/exp/slices"
)

// Skip is a set of rules that exclude directories and files from a search.
// Excluded directories are not descended into.
//
// Names excludes every directory with one of the given base names, wherever it
// appears in the tree. Paths excludes the directories at the given
// root-relative, slash-separated paths. Dir and File can be set to custom
// exclusion functions.
type Skip struct {
	Hidden   bool
	Dotfiles bool

	Names []string
	Paths []string

	Dir  func(Exclude) bool
	File func(Exclude) bool
}

// Exclude describes a directory entry that is checked against Skip rules.
type Exclude struct {
	fs.DirEntry
	Path string
}

// SkipNone returns a Skip that excludes nothing.
func SkipNone() Skip {
	return Skip{}
}

// SkipHidden returns a Skip that excludes hidden directories and dotfiles.
func SkipHidden() Skip {
	return Skip{
		Hidden:   true,
		Dotfiles: true,
	}
}

func (s Skip) apply(f *Finder) {
	f.skip = &s
}

// ExcludeDir reports whether the directory e should be skipped.
func (s Skip) ExcludeDir(e Exclude) bool {
	if s.Hidden && strings.HasPrefix(e.Name(), ".") {
		return true
	}

	if slices.Contains(s.Names, e.Name()) {
		return true
	}

	if len(s.Paths) > 0 && slices.Contains(s.Paths, path.Clean(e.Path)) {
		return true
	}

	if s.Dir != nil {
		return s.Dir(e)
	}

	return false
}

// ExcludeFile reports whether the file e should be skipped.
func (s Skip) ExcludeFile(e Exclude) bool {
	if s.Dotfiles && strings.HasPrefix(e.Name(), ".") {
		return true
	}

	if s.File != nil {
		return s.File(e)
	}

	return false
}
