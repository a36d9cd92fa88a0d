package filter

import (
	"sort"
	"strings"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// CrossIndex is the bidirectional village↔group index, built once from the
// joined data and recomputed only when the joined data changes. It backs the
// interdependent select controls: choosing a village narrows the group
// options and vice versa.
type CrossIndex struct {
	villages        []string
	groups          []string
	groupsByVillage map[string][]string
	villagesByGroup map[string][]string
}

// BuildIndex constructs the index. Empty villages/groups are excluded from
// the option lists. Keys fold case; the displayed value is the first casing
// seen in record order.
func BuildIndex(records []*model.JoinedRecord) *CrossIndex {
	villageNames := map[string]string{} // folded -> display
	groupNames := map[string]string{}
	vg := map[string]map[string]bool{} // folded village -> folded groups
	gv := map[string]map[string]bool{}

	for _, r := range records {
		v := strings.TrimSpace(r.Village)
		g := strings.TrimSpace(r.Group)
		fv := strings.ToLower(v)
		fg := strings.ToLower(g)

		if v != "" {
			if _, ok := villageNames[fv]; !ok {
				villageNames[fv] = v
			}
		}
		if g != "" {
			if _, ok := groupNames[fg]; !ok {
				groupNames[fg] = g
			}
		}
		if v != "" && g != "" {
			if vg[fv] == nil {
				vg[fv] = map[string]bool{}
			}
			vg[fv][fg] = true
			if gv[fg] == nil {
				gv[fg] = map[string]bool{}
			}
			gv[fg][fv] = true
		}
	}

	idx := &CrossIndex{
		villages:        displayList(villageNames),
		groups:          displayList(groupNames),
		groupsByVillage: map[string][]string{},
		villagesByGroup: map[string][]string{},
	}
	for fv, set := range vg {
		idx.groupsByVillage[fv] = resolveList(set, groupNames)
	}
	for fg, set := range gv {
		idx.villagesByGroup[fg] = resolveList(set, villageNames)
	}
	return idx
}

// Villages returns all villages, sorted.
func (ix *CrossIndex) Villages() []string { return ix.villages }

// Groups returns all groups, sorted.
func (ix *CrossIndex) Groups() []string { return ix.groups }

// GroupsFor returns the groups present in a village, or every group when the
// village is "(any)" or unknown-empty.
func (ix *CrossIndex) GroupsFor(village string) []string {
	if !isSet(village) {
		return ix.groups
	}
	return ix.groupsByVillage[strings.ToLower(strings.TrimSpace(village))]
}

// VillagesFor returns the villages a group appears in, or every village when
// the group is "(any)".
func (ix *CrossIndex) VillagesFor(group string) []string {
	if !isSet(group) {
		return ix.villages
	}
	return ix.villagesByGroup[strings.ToLower(strings.TrimSpace(group))]
}

func displayList(names map[string]string) []string {
	out := make([]string, 0, len(names))
	for _, display := range names {
		out = append(out, display)
	}
	sort.Strings(out)
	return out
}

func resolveList(set map[string]bool, names map[string]string) []string {
	out := make([]string, 0, len(set))
	for folded := range set {
		out = append(out, names[folded])
	}
	sort.Strings(out)
	return out
}
