// Package treeutil is the generic structural-transform machinery: it
// flattens arbitrary trees of registered node types into an ordered leaf
// sequence plus a structure descriptor (TreeDef), and rebuilds or maps over
// them without ever invoking a node's initializer.
//
// Node types opt in through RegisterNode: a pair of one-level flatten /
// unflatten functions plus an opaque static residual ("aux"). Two container
// shapes are built in — []any and map[string]any (sorted keys, so traversal
// is deterministic) — every other unregistered value is a leaf, including
// typed slices like []float64, which behave as array-like leaves and are
// compared elementwise.
//
// Contract:
//
//   - Flatten(tree) and Unflatten(def, leaves) round-trip: the rebuilt tree
//     is structurally equal to the original (Equal).
//   - Unflatten bypasses node initializers entirely; it installs children
//     exactly as recorded.
//   - RegisterNode is idempotent by node type: re-registering a type keeps
//     the first handler and reports no error.
//   - Map/Map2 preserve structure; Map2 requires structural equality of its
//     operands and fails with ErrStructureMismatch before touching leaves.
//
// The numeric element-kind query of array-like leaves is injected through
// the DType capability interface rather than reimplemented here.
package treeutil
