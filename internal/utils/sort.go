package utils

import "sort"

// SortedKeys returns a map's string keys in ascending order, for
// deterministic iteration over index maps and catalogs.
func SortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
