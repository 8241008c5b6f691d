// equal.go — the equality contract: equal structure descriptors plus
// pairwise-equal leaves, array-like leaves compared elementwise.

package treeutil

import "reflect"

// LeafEqualer lets a leaf type define its own equality; used before the
// reflect.DeepEqual fallback.
type LeafEqualer interface {
	LeafEqual(other any) bool
}

// LeafEqual compares two leaves: custom equality when the left leaf
// implements LeafEqualer, otherwise deep (elementwise for slices) equality.
func LeafEqual(a, b any) bool {
	if eq, ok := a.(LeafEqualer); ok {
		return eq.LeafEqual(b)
	}
	return reflect.DeepEqual(a, b)
}

// Equal reports whether two trees are equal under the structural contract:
// their structure descriptors compare equal and every corresponding leaf
// pair compares equal under LeafEqual.
func Equal(a, b any) bool {
	aleaves, adef := Flatten(a)
	bleaves, bdef := Flatten(b)
	if !adef.Equal(bdef) {
		return false
	}
	for i := range aleaves {
		if !LeafEqual(aleaves[i], bleaves[i]) {
			return false
		}
	}
	return true
}

// Copy rebuilds tree from its own flatten, yielding an independent structure
// sharing only leaf values.
func Copy(tree any) (any, error) {
	leaves, def := Flatten(tree)
	return Unflatten(def, leaves)
}
