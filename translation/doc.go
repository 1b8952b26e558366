// Package translation implements the synchronization core of prepare-locales:
// the translation tree model, its canonical normalization, flattening into
// dotted key paths, leaf-level change classification, and the published
// document envelope.
//
// A translation tree is either a Leaf holding a string or a Node mapping keys
// to subtrees:
//
//	src, _ := translation.ParseTree([]byte(`{"menu": {"b": "", "a": "X"}}`))
//	norm := translation.Normalize(src, "")
//	// {"menu": {"a": "X", "b": "menu.b"}}
//
//	changes := translation.Diff(
//	    translation.Flatten(previous, ""),
//	    translation.Flatten(norm, ""),
//	)
//
// Every function in this package is pure: inputs are never mutated and the
// same input always produces the same output.
package translation
