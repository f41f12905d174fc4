package tests

import (
	"testing"

	"github.com/andreyvit/diff"
	"github.com/google/go-cmp/cmp"
	"github.com/modernice/flatten/find"
	"github.com/modernice/flatten/internal/slice"
)

// ExpectMatches fails the test if the paths of got differ from want.
func ExpectMatches(t *testing.T, want []string, got []find.Match) {
	t.Helper()

	paths := slice.Map(got, find.Match.String)

	if !cmp.Equal(want, paths) {
		t.Fatalf("unexpected matches:\n%s", cmp.Diff(want, paths))
	}
}

// ExpectContent fails the test if got differs from want.
func ExpectContent(t *testing.T, file, want, got string) {
	t.Helper()

	if got != want {
		t.Fatalf("unexpected content in %s:\n%s\n\nwant:\n%s\n\ngot:\n%s", file, diff.LineDiff(want, got), want, got)
	}
}

// ExpectFiles fails the test if the files in got differ from want. Both maps
// hold file names mapped to content.
func ExpectFiles(t *testing.T, want, got map[string]string) {
	t.Helper()

	if !cmp.Equal(want, got) {
		t.Fatalf("unexpected files:\n%s", cmp.Diff(want, got))
	}
}
