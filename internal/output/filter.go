package output

import (
	"strings"

	"github.com/twiced-technology-gmbh/weightboard/internal/render"
)

// FilterOptions defines which entries a CLI listing shows.
type FilterOptions struct {
	Completed *bool              // nil=no filter, true=only done, false=only open
	Classes   []render.DateClass // due-date pill classes to keep
	Search    string             // case-insensitive substring match on title
}

// IsZero reports whether no filter is set.
func (o FilterOptions) IsZero() bool {
	return o.Completed == nil && len(o.Classes) == 0 && o.Search == ""
}

// Filter returns entries matching all specified criteria (AND logic), in
// their original order.
func Filter(entries []render.Entry, opts FilterOptions) []render.Entry {
	if opts.IsZero() {
		return entries
	}
	result := make([]render.Entry, 0, len(entries))
	for _, e := range entries {
		if matchesFilter(e, opts) {
			result = append(result, e)
		}
	}
	return result
}

func matchesFilter(e render.Entry, opts FilterOptions) bool {
	if opts.Completed != nil && e.Completed != *opts.Completed {
		return false
	}
	if len(opts.Classes) > 0 && !containsClass(opts.Classes, e.Class) {
		return false
	}
	if opts.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(opts.Search)) {
		return false
	}
	return true
}

func containsClass(classes []render.DateClass, c render.DateClass) bool {
	for _, x := range classes {
		if x == c {
			return true
		}
	}
	return false
}
