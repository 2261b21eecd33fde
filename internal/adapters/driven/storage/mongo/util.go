package mongo

import "sort"

// sortedUnique sorts titles and removes duplicates in place.
func sortedUnique(titles []string) []string {
	sort.Strings(titles)
	out := titles[:0]
	for _, t := range titles {
		if len(out) > 0 && out[len(out)-1] == t {
			continue
		}
		out = append(out, t)
	}
	return out
}
