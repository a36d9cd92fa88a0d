// Package filter narrows a joined record set by farmer-code prefix and exact
// village/group, and maintains the village-group cross index.
package filter

import (
	"strings"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// Any is the sentinel option meaning "no selection". An empty string is
// treated the same way.
const Any = "(any)"

// Options are the user-supplied filter controls.
type Options struct {
	CodePrefix string
	Village    string
	Group      string
}

// IsEmpty reports whether no filter is active.
func (o Options) IsEmpty() bool {
	return strings.TrimSpace(o.CodePrefix) == "" && !isSet(o.Village) && !isSet(o.Group)
}

// Apply returns the records matching opts, preserving input order. The code
// prefix is normalized like a derived code; village and group compare
// case-insensitively since the source spreadsheets are inconsistent about
// letter case.
func Apply(records []*model.JoinedRecord, opts Options) []*model.JoinedRecord {
	prefix := strings.ToUpper(strings.TrimSpace(opts.CodePrefix))

	out := make([]*model.JoinedRecord, 0, len(records))
	for _, r := range records {
		if prefix != "" && !strings.HasPrefix(r.Code, prefix) {
			continue
		}
		if isSet(opts.Village) && !strings.EqualFold(r.Village, opts.Village) {
			continue
		}
		if isSet(opts.Group) && !strings.EqualFold(r.Group, opts.Group) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != Any
}
