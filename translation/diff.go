package translation

import "sort"

// ChangeKind classifies how a key or file changed between two versions.
type ChangeKind int

const (
	// Unchanged means no difference was found.
	Unchanged ChangeKind = iota
	// Added means the key or file exists only in the new version.
	Added
	// Modified means the key or file exists in both versions with different content.
	Modified
	// Deleted means the key or file exists only in the old version.
	Deleted
)

// String returns the lower-case name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Symbol returns the one-character marker used in commit messages.
func (k ChangeKind) Symbol() string {
	switch k {
	case Added:
		return "+"
	case Modified:
		return "*"
	case Deleted:
		return "-"
	default:
		return "="
	}
}

// KeyChanges maps a dotted key path to its change kind. Unchanged keys are
// never present.
type KeyChanges map[string]ChangeKind

// Keys returns the changed paths in ascending lexicographic order.
func (c KeyChanges) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of changes of the given kind.
func (c KeyChanges) Count(kind ChangeKind) int {
	n := 0
	for _, k := range c {
		if k == kind {
			n++
		}
	}
	return n
}

// Diff classifies every path that differs between oldMap and newMap.
//
// A nil oldMap means there is no previous version at all, and Diff returns
// an empty result rather than reporting every key as added. An empty but
// non-nil oldMap is a real previous version with no keys.
func Diff(oldMap, newMap FlatLeafMap) KeyChanges {
	changes := make(KeyChanges)
	if oldMap == nil {
		return changes
	}
	for k, nv := range newMap {
		ov, ok := oldMap[k]
		switch {
		case !ok:
			changes[k] = Added
		case ov != nv:
			changes[k] = Modified
		}
	}
	for k := range oldMap {
		if _, ok := newMap[k]; !ok {
			changes[k] = Deleted
		}
	}
	return changes
}
