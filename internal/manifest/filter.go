package manifest

import "strings"

// Filter returns the packages whose name fuzzy-matches the query, for
// `vscup apply --only`. An empty query matches everything.
func (m *Manifest) Filter(query string) []Package {
	if query == "" {
		return m.Packages
	}

	queryLower := strings.ToLower(query)
	var results []Package
	for _, pkg := range m.Packages {
		if fuzzyMatch(queryLower, strings.ToLower(pkg.Name)) {
			results = append(results, pkg)
		}
	}
	return results
}

func fuzzyMatch(query, text string) bool {
	queryIdx := 0
	for _, char := range text {
		if queryIdx < len(query) && char == rune(query[queryIdx]) {
			queryIdx++
		}
	}
	return queryIdx == len(query)
}
