package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects the ordering of query results.
type SortOrder string

const (
	SortNameAsc    SortOrder = "nameAsc"
	SortNameDesc   SortOrder = "nameDesc"
	SortRegionAsc  SortOrder = "regionAsc"
	SortRegionDesc SortOrder = "regionDesc"
)

// Query filters and sorts a snapshot of the store. It never mutates its
// input and returns a fresh slice each call.
//
// A record passes the filter when the region matches exactly (empty filter
// means all regions) and the search text, compared case-insensitively,
// appears in at least one of name, lore or description. String comparison
// for sorting is locale-aware; an unknown sort order leaves the filtered
// records in input order rather than failing.
func Query(records []Record, search, region string, order SortOrder) []Record {
	needle := strings.ToLower(search)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if region != "" && r.Region != region {
			continue
		}
		if needle != "" && !matches(r, needle) {
			continue
		}
		out = append(out, r)
	}

	sortRecords(out, order)
	return out
}

func matches(r Record, needle string) bool {
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Lore), needle) ||
		strings.Contains(strings.ToLower(r.DescriptionLore), needle)
}

// sortRecords orders records in place. Collators are not safe for concurrent
// use, so each call builds its own.
func sortRecords(records []Record, order SortOrder) {
	switch order {
	case SortNameAsc, SortNameDesc, SortRegionAsc, SortRegionDesc:
	default:
		return
	}

	c := collate.New(language.English)

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch order {
		case SortNameAsc:
			return c.CompareString(a.Name, b.Name) < 0
		case SortNameDesc:
			return c.CompareString(b.Name, a.Name) < 0
		case SortRegionAsc:
			if cmp := c.CompareString(a.Region, b.Region); cmp != 0 {
				return cmp < 0
			}
			return c.CompareString(a.Name, b.Name) < 0
		case SortRegionDesc:
			if cmp := c.CompareString(b.Region, a.Region); cmp != 0 {
				return cmp < 0
			}
			return c.CompareString(a.Name, b.Name) < 0
		}
		return false
	})
}
