package find_test

import (
	"errors"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/modernice/flatten/find"
	"github.com/modernice/flatten/internal/tests"
	"github.com/spf13/afero"
)

func TestFinder_Find(t *testing.T) {
	repo := createRepo(t, []string{
		"foo.svelte",
		"bar.ts",
		"components/Button.svelte",
		"components/Button.test.ts",
		"components/forms/Input.svelte",
		"README.md",
	})

	matches, err := find.New(repo, ".svelte").Find()
	if err != nil {
		t.Fatal(err)
	}

	want := []find.Match{
		{Path: "components/Button.svelte", Dir: "components", Name: "Button.svelte"},
		{Path: "components/forms/Input.svelte", Dir: "components/forms", Name: "Input.svelte"},
		{Path: "foo.svelte", Dir: ".", Name: "foo.svelte"},
	}

	if !cmp.Equal(want, matches) {
		t.Fatalf("unexpected matches:\n%s", cmp.Diff(want, matches))
	}
}

func TestFinder_Find_suffixOnly(t *testing.T) {
	repo := createRepo(t, []string{
		"foo.svelte",
		"foo.svelte.bak",
		"svelte",
		"dir.svelte/bar.txt",
	})

	matches, err := find.New(repo, ".svelte").Find()
	if err != nil {
		t.Fatal(err)
	}

	tests.ExpectMatches(t, []string{"foo.svelte"}, matches)
}

func TestFinder_Find_empty(t *testing.T) {
	matches, err := find.New(tests.IOFS(afero.NewMemMapFs()), ".svelte").Find()
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 0 {
		t.Fatalf("expected no matches; got %v", matches)
	}
}

func TestGlob(t *testing.T) {
	all := []string{
		"bar.svelte",
		"foo.svelte",
		"lib/bar.svelte",
		"lib/foo.svelte",
		"routes/+page.svelte",
		"routes/about/+page.svelte",
	}

	cases := []struct {
		name   string
		globs  []string
		ignore []string
		want   []string
	}{
		{
			name: "no patterns",
			want: all,
		},
		{
			name:  "empty pattern",
			globs: []string{"", "  "},
			want:  all,
		},
		{
			name:  "only foo.svelte",
			globs: []string{"**/foo.svelte"},
			want:  []string{"foo.svelte", "lib/foo.svelte"},
		},
		{
			name:  "everything within routes/",
			globs: []string{"routes/**"},
			want:  []string{"routes/+page.svelte", "routes/about/+page.svelte"},
		},
		{
			name:  "multiple patterns",
			globs: []string{"lib/*", "bar.svelte"},
			want:  []string{"bar.svelte", "lib/bar.svelte", "lib/foo.svelte"},
		},
		{
			name:   "ignore",
			ignore: []string{"**/bar.svelte"},
			want:   []string{"foo.svelte", "lib/foo.svelte", "routes/+page.svelte", "routes/about/+page.svelte"},
		},
		{
			name:   "glob and ignore",
			globs:  []string{"routes/**"},
			ignore: []string{"routes/about/**"},
			want:   []string{"routes/+page.svelte"},
		},
	}

	repo := createRepo(t, all)

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			f := find.New(repo, ".svelte", find.Glob(tt.globs...), find.Ignore(tt.ignore...))

			matches, err := f.Find()
			if err != nil {
				t.Fatal(err)
			}

			tests.ExpectMatches(t, tt.want, matches)
		})
	}
}

func TestGlob_invalidPattern(t *testing.T) {
	repo := createRepo(t, []string{"foo.svelte"})

	_, err := find.New(repo, ".svelte", find.Glob("[")).Find()
	if !errors.Is(err, doublestar.ErrBadPattern) {
		t.Fatalf("expected %v; got %v", doublestar.ErrBadPattern, err)
	}
}
