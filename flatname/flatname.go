// Package flatname computes the flat file names that encode a file's location
// within a directory tree.
package flatname

import (
	"path"
	"strings"
)

// Separator joins the directory components and the base name of a flattened
// name.
const Separator = "_"

var separators = strings.NewReplacer("/", Separator, `\`, Separator)

// Name returns the flattened name for the file base within dir. dir is
// relative to the tree's root; "." and "" denote the root itself. The suffix
// of base is replaced with ext. If base does not end with suffix, ext is
// appended to the full base name.
//
//	Name(".", "foo.svelte", ".svelte", ".txt")          // "foo.txt"
//	Name("a/b", "Button.svelte", ".svelte", ".txt")     // "a_b_Button.txt"
func Name(dir, base, suffix, ext string) string {
	name := strings.TrimSuffix(base, suffix) + ext

	dir = strings.Trim(dir, `/\`)
	if dir == "" || dir == "." {
		return name
	}

	return separators.Replace(dir) + Separator + name
}

// Of returns the flattened name for the slash-separated, root-relative path p.
func Of(p, suffix, ext string) string {
	dir, base := path.Split(p)
	return Name(path.Clean(dir), base, suffix, ext)
}
