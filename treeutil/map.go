// map.go — structure-preserving transforms over leaves.

package treeutil

import "fmt"

// Map applies fn to every leaf of tree and rebuilds the same structure with
// the results. fn must be a pure function of one leaf value.
func Map(fn func(leaf any) (any, error), tree any) (any, error) {
	h, ok := handlerFor(tree)
	if !ok {
		return fn(tree)
	}
	children, _, aux := h.Flatten(tree)
	out := make([]any, len(children))
	for i, c := range children {
		mapped, err := Map(fn, c)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return h.Unflatten(aux, out)
}

// Map2 applies fn pairwise over the leaves of two structurally equal trees
// and rebuilds lhs's structure with the results. Structure is checked before
// any leaf is touched.
func Map2(fn func(a, b any) (any, error), lhs, rhs any) (any, error) {
	lleaves, ldef := Flatten(lhs)
	rleaves, rdef := Flatten(rhs)
	if !ldef.Equal(rdef) {
		return nil, fmt.Errorf("%s vs %s: %w", ldef, rdef, ErrStructureMismatch)
	}
	out := make([]any, len(lleaves))
	for i := range lleaves {
		mapped, err := fn(lleaves[i], rleaves[i])
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return Unflatten(ldef, out)
}

// AllLeaves reports whether pred holds for every leaf of tree.
func AllLeaves(tree any, pred func(leaf any) bool) bool {
	for _, leaf := range Leaves(tree) {
		if !pred(leaf) {
			return false
		}
	}
	return true
}

// LeafTrue evaluates a boolean selector leaf under the "all true within the
// leaf" rule: a bool is its own value, a []bool (or []any of bools) must be
// uniformly true, and any other value never selects.
func LeafTrue(leaf any) bool {
	switch v := leaf.(type) {
	case bool:
		return v
	case []bool:
		if len(v) == 0 {
			return false
		}
		for _, b := range v {
			if !b {
				return false
			}
		}
		return true
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, e := range v {
			if !LeafTrue(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AllTrue reports whether every leaf of a boolean tree selects under
// LeafTrue; used to fold mask trees.
func AllTrue(tree any) bool {
	return AllLeaves(tree, LeafTrue)
}
