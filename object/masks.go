// masks.go — boolean-tree builders for the extended comparison forms.
//
// Each builder returns a same-structure instance with bool leaves, directly
// usable as a Mask selector key or as a filter where-argument.

package object

import (
	"reflect"

	"github.com/ymahlau/treeclass/treeutil"
)

// MaskByType marks each leaf whose dynamic type is typ (or implements typ
// when typ is an interface).
func MaskByType(x *Instance, typ reflect.Type) *Instance {
	leaves, def := treeutil.Flatten(x)
	out := make([]any, len(leaves))
	for i, leaf := range leaves {
		out[i] = leafIsType(leaf, typ)
	}
	return mustUnflatten(def, out)
}

// MaskByName marks every leaf under fields (at any depth) whose name is
// exactly name; map keys count as names, sequence indices do not.
func MaskByName(x *Instance, name string) *Instance {
	sel := make([]bool, 0, 8)
	maskName(x, name, &sel)
	return maskFromSelection(x, sel)
}

// MaskByMetadata marks every leaf under fields whose effective metadata is
// a superset of query.
func MaskByMetadata(x *Instance, query map[string]any) *Instance {
	sel := make([]bool, 0, 8)
	maskMeta(x, query, &sel)
	return maskFromSelection(x, sel)
}

func leafIsType(leaf any, typ reflect.Type) bool {
	if leaf == nil || typ == nil {
		return false
	}
	t := reflect.TypeOf(leaf)
	if t == typ {
		return true
	}
	return typ.Kind() == reflect.Interface && t.Implements(typ)
}

func maskName(node any, name string, sel *[]bool) {
	children, keys, ok := treeutil.Children(node)
	if !ok {
		*sel = append(*sel, false)
		return
	}
	for i, c := range children {
		if keys[i] == name {
			markAll(c, sel, true)
			continue
		}
		maskName(c, name, sel)
	}
}

// maskMeta walks instance nodes field-aware: a metadata match claims the
// field's whole subtree; non-instance children without a match stay false.
func maskMeta(x *Instance, query map[string]any, sel *[]bool) {
	children, s := x.Flatten()
	for i, name := range s.dynamicNames {
		f := x.effectiveField(name)
		if f != nil && f.Metadata().Superset(query) {
			markAll(children[i], sel, true)
			continue
		}
		if nested, ok := children[i].(*Instance); ok {
			maskMeta(nested, query, sel)
			continue
		}
		markAll(children[i], sel, false)
	}
}

// maskFromSelection rebuilds x's structure with one bool leaf per selection
// entry.
func maskFromSelection(x *Instance, sel []bool) *Instance {
	_, def := treeutil.Flatten(x)
	out := make([]any, len(sel))
	for i, b := range sel {
		out[i] = b
	}
	return mustUnflatten(def, out)
}

func mustUnflatten(def *treeutil.TreeDef, leaves []any) *Instance {
	v, err := treeutil.Unflatten(def, leaves)
	if err != nil {
		panic("object: mask rebuild failed: " + err.Error())
	}
	return v.(*Instance)
}
