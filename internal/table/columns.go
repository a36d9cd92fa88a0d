package table

import (
	"fmt"
	"strings"
)

// Column aliases used for discovery when no explicit mapping is configured.
// Matching is case-insensitive on the trimmed header.
var (
	farmerCodeAliases = []string{"farmercode", "farmer_code", "code", "farmer code"}
	villageAliases    = []string{"village", "village_name"}
	groupAliases      = []string{"group", "group_name"}
)

// Mapping names the columns the join needs. Empty fields fall back to alias
// discovery; FarmerCode is mandatory after resolution, Village/Group are not.
type Mapping struct {
	FarmerCode string
	Village    string
	Group      string
}

// resolved holds column indexes into a header row. -1 means absent.
type resolved struct {
	farmerCode int
	village    int
	group      int
}

// resolveColumns validates an explicit mapping against the header, or
// discovers columns by alias. A farmer-code column that cannot be resolved is
// an error rather than a silent guess.
func resolveColumns(header []string, m Mapping) (resolved, error) {
	r := resolved{farmerCode: -1, village: -1, group: -1}

	if m.FarmerCode != "" {
		r.farmerCode = findColumn(header, m.FarmerCode)
		if r.farmerCode < 0 {
			return r, fmt.Errorf("configured farmer-code column %q not found in header", m.FarmerCode)
		}
	} else {
		r.farmerCode = findByAlias(header, farmerCodeAliases)
		if r.farmerCode < 0 {
			return r, fmt.Errorf("no farmer-code column found (tried %s); configure columns.farmer_code", strings.Join(farmerCodeAliases, ", "))
		}
	}

	if m.Village != "" {
		r.village = findColumn(header, m.Village)
		if r.village < 0 {
			return r, fmt.Errorf("configured village column %q not found in header", m.Village)
		}
	} else {
		r.village = findByAlias(header, villageAliases)
	}

	if m.Group != "" {
		r.group = findColumn(header, m.Group)
		if r.group < 0 {
			return r, fmt.Errorf("configured group column %q not found in header", m.Group)
		}
	} else {
		r.group = findByAlias(header, groupAliases)
	}

	return r, nil
}

// findColumn locates a header by name, case-insensitive on trimmed values.
func findColumn(header []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

func findByAlias(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}
