package flatten

import "github.com/modernice/flatten/internal/slice"

// Result is the outcome of converting a single source file. Source and Dest
// are slash-separated and relative to the root. Err is nil if the file was
// converted.
type Result struct {
	Source string
	Dest   string
	Err    error
}

// Failed reports whether the conversion of the file failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Report collects the results of a conversion in the order in which the
// source files were found.
type Report struct {
	Results []Result

	// DryRun is true if nothing was written.
	DryRun bool
}

// Created returns the results of all successfully converted files.
func (r *Report) Created() []Result {
	return slice.Filter(r.Results, func(res Result) bool { return !res.Failed() })
}

// Failed returns the results of all files that could not be converted.
func (r *Report) Failed() []Result {
	return slice.Filter(r.Results, Result.Failed)
}

// Collisions returns the destinations that more than one source file was
// flattened to, mapped to those source files in processing order.
func (r *Report) Collisions() map[string][]string {
	sources := make(map[string][]string)
	for _, res := range r.Results {
		sources[res.Dest] = append(sources[res.Dest], res.Source)
	}

	out := make(map[string][]string)
	for dest, srcs := range sources {
		if len(srcs) > 1 {
			out[dest] = srcs
		}
	}

	return out
}

