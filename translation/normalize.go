package translation

// Normalize returns a canonical copy of t.
//
// Node keys are visited in ascending lexicographic order, and every empty
// leaf is replaced by its own dotted path from the root (prefix joined with
// the keys leading to it). Non-empty leaves are kept as they are. The input
// is never modified, and Normalize(Normalize(t, p), p) equals Normalize(t, p).
func Normalize(t Tree, prefix string) Tree {
	switch t := t.(type) {
	case Node:
		out := make(Node, len(t))
		for _, k := range t.Keys() {
			out[k] = Normalize(t[k], joinPath(prefix, k))
		}
		return out
	default:
		if v := leafValue(t); v != "" {
			return Leaf(v)
		}
		return Leaf(prefix)
	}
}

// NormalizeNode is Normalize for a root node.
func NormalizeNode(n Node) Node {
	out, _ := Normalize(n, "").(Node)
	if out == nil {
		return Node{}
	}
	return out
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
