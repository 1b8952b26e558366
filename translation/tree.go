package translation

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// ErrNotObject is returned when a JSON document does not hold an object at
// the top level.
var ErrNotObject = errors.New("translation data is not a JSON object")

// Tree is a translation tree: either a Leaf or a Node.
// Code that walks a Tree switches on these two types; a nil Tree is treated
// as an empty Leaf.
type Tree interface {
	isTree()
}

// Leaf is a translated string. The empty string means the key is not
// translated yet.
type Leaf string

// Node maps keys to nested trees. Key order carries no meaning.
type Node map[string]Tree

func (Leaf) isTree() {}
func (Node) isTree() {}

// Keys returns the keys of n in ascending lexicographic order.
func (n Node) Keys() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LeafCount returns the number of leaves below n.
func (n Node) LeafCount() int {
	count := 0
	for _, v := range n {
		switch v := v.(type) {
		case Node:
			count += v.LeafCount()
		default:
			count++
		}
	}
	return count
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Tree) bool {
	switch a := a.(type) {
	case Node:
		bn, ok := b.(Node)
		if !ok || len(a) != len(bn) {
			return false
		}
		for k, av := range a {
			bv, ok := bn[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		if _, ok := b.(Node); ok {
			return false
		}
		return leafValue(a) == leafValue(b)
	}
}

// leafValue returns the string held by a non-node tree.
func leafValue(t Tree) string {
	if l, ok := t.(Leaf); ok {
		return string(l)
	}
	return ""
}

// ParseTree decodes a JSON object into a Node.
//
// Objects become nodes and strings become leaves. Arrays become nodes keyed
// by element index. The falsy scalars null, false and numeric zero become
// empty leaves; other numbers and true keep their JSON text.
func ParseTree(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode translation: %w", err)
	}
	if dec.More() {
		return nil, errors.New("failed to decode translation: trailing data after JSON value")
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, ErrNotObject
	}
	return nodeFromObject(obj), nil
}

func nodeFromObject(obj map[string]interface{}) Node {
	n := make(Node, len(obj))
	for k, v := range obj {
		n[k] = treeFromValue(v)
	}
	return n
}

func treeFromValue(v interface{}) Tree {
	switch v := v.(type) {
	case map[string]interface{}:
		return nodeFromObject(v)
	case []interface{}:
		n := make(Node, len(v))
		for i, item := range v {
			n[strconv.Itoa(i)] = treeFromValue(item)
		}
		return n
	case string:
		return Leaf(v)
	case json.Number:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil && f == 0 {
			return Leaf("")
		}
		return Leaf(v.String())
	case bool:
		if !v {
			return Leaf("")
		}
		return Leaf("true")
	default:
		return Leaf("")
	}
}
