package translation

import "sort"

// FlatLeafMap maps dotted key paths to leaf values.
type FlatLeafMap map[string]string

// Keys returns the paths of m in ascending lexicographic order.
func (m FlatLeafMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten maps every leaf of t to its dotted path. Nodes contribute no
// entry of their own, so an empty node disappears.
func Flatten(t Tree, prefix string) FlatLeafMap {
	out := make(FlatLeafMap)
	flattenInto(out, t, prefix)
	return out
}

func flattenInto(out FlatLeafMap, t Tree, prefix string) {
	switch t := t.(type) {
	case Node:
		for k, v := range t {
			flattenInto(out, v, joinPath(prefix, k))
		}
	default:
		out[prefix] = leafValue(t)
	}
}
