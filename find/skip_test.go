package find_test

import (
	"io/fs"
	"testing"

	"github.com/modernice/flatten/find"
	"github.com/modernice/flatten/internal/tests"
)

func TestSkip(t *testing.T) {
	cases := []struct {
		name  string
		files []string
		skip  *find.Skip
		want  []string
	}{
		{
			name: "default",
			files: []string{
				"foo.svelte",
				".hidden/foo.svelte",
				".foo.svelte",
				"text_files/foo.svelte",
			},
			want: []string{
				".foo.svelte",
				".hidden/foo.svelte",
				"foo.svelte",
				"text_files/foo.svelte",
			},
		},
		{
			name: "hidden",
			files: []string{
				"foo.svelte",
				".bar/bar.svelte",
				".baz.svelte", // dotfiles are handled by the Dotfiles option
			},
			skip: &find.Skip{Hidden: true},
			want: []string{
				".baz.svelte",
				"foo.svelte",
			},
		},
		{
			name: "dotfiles",
			files: []string{
				"foo.svelte",
				".bar.svelte",
			},
			skip: &find.Skip{Dotfiles: true},
			want: []string{
				"foo.svelte",
			},
		},
		{
			name: "hidden and dotfiles",
			files: []string{
				"foo.svelte",
				".bar.svelte",
				".baz/baz.svelte",
			},
			skip: ptr(find.SkipHidden()),
			want: []string{
				"foo.svelte",
			},
		},
		{
			name: "names",
			files: []string{
				"foo.svelte",
				"text_files/foo.svelte",
				"a/text_files/foo.svelte",
				"a/b/text_files/c/foo.svelte",
				"a/text_files.svelte",
				"a/b/foo.svelte",
			},
			skip: &find.Skip{Names: []string{"text_files"}},
			want: []string{
				"a/b/foo.svelte",
				"a/text_files.svelte",
				"foo.svelte",
			},
		},
		{
			name: "paths",
			files: []string{
				"foo.svelte",
				"out/text/foo.svelte",
				"out/foo.svelte",
				"src/out/text/foo.svelte",
			},
			skip: &find.Skip{Paths: []string{"out/text"}},
			want: []string{
				"foo.svelte",
				"out/foo.svelte",
				"src/out/text/foo.svelte",
			},
		},
		{
			name: "custom directory skip",
			files: []string{
				"foo.svelte",
				"foo/foo.svelte",
				"foo/bar/bar.svelte",
				"foo/bar/baz/foo.svelte",
				"bar/baz/bar.svelte",
				"bar/bar.svelte",
			},
			skip: &find.Skip{
				Dir: func(e find.Exclude) bool {
					return e.Path == "foo/bar" || e.DirEntry.Name() == "baz"
				},
			},
			want: []string{
				"bar/bar.svelte",
				"foo/foo.svelte",
				"foo.svelte",
			},
		},
		{
			name: "custom file skip",
			files: []string{
				"foo.svelte",
				"bar.svelte",
				"bar/foo.svelte",
				"bar/bar.svelte",
			},
			skip: &find.Skip{
				File: func(e find.Exclude) bool {
					return e.Path == "bar/bar.svelte" || e.DirEntry.Name() == "foo.svelte"
				},
			},
			want: []string{
				"bar.svelte",
			},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			repo := createRepo(t, tt.files)

			var opts []find.Option
			if tt.skip != nil {
				opts = append(opts, find.Skip(*tt.skip))
			}

			matches, err := find.New(repo, ".svelte", opts...).Find()
			if err != nil {
				t.Fatal(err)
			}

			tests.ExpectMatches(t, tt.want, matches)
		})
	}
}

func createRepo(t *testing.T, files []string) fs.FS {
	contents := make(map[string]string, len(files))
	for _, file := range files {
		contents[file] = "<p>" + file + "</p>\n"
	}
	return tests.IOFS(tests.MemFS(t, contents))
}

func ptr[T any](v T) *T { return &v }
