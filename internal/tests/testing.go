package tests

import (
	"io/fs"
	"path"
	"testing"

	"github.com/spf13/afero"
)

// Must returns v. It panics if err is non-nil.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// MemFS returns an in-memory file system that contains the given files. Keys
// are slash-separated paths, values are file contents.
func MemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	WriteFiles(t, fsys, files)
	return fsys
}

// WriteFiles writes files into fsys, creating parent directories as needed.
func WriteFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()

	for file, content := range files {
		dir := path.Dir(file)
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("create dummy dir %s: %v", dir, err)
		}
		if err := afero.WriteFile(fsys, file, []byte(content), 0644); err != nil {
			t.Fatalf("create dummy file %s: %v", file, err)
		}
	}
}

// ReadFile returns the content of file in fsys.
func ReadFile(t *testing.T, fsys afero.Fs, file string) string {
	t.Helper()

	b, err := afero.ReadFile(fsys, file)
	if err != nil {
		t.Fatalf("read %s: %v", file, err)
	}
	return string(b)
}

// ReadDir returns the files directly within dir, mapped to their content.
func ReadDir(t *testing.T, fsys afero.Fs, dir string) map[string]string {
	t.Helper()

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		t.Fatalf("read directory %s: %v", dir, err)
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out[e.Name()] = ReadFile(t, fsys, path.Join(dir, e.Name()))
	}
	return out
}

// IOFS wraps an afero file system as an fs.FS.
func IOFS(fsys afero.Fs) fs.FS {
	return afero.NewIOFS(fsys)
}
