// treeutil.go — Flatten/Unflatten, TreeDef and leaf paths.
//
// A TreeDef records, per node, the node type, its static residual (aux) and
// the child structure; leaves record nothing. TreeDef equality is deep:
// aux values implementing AuxEqualer compare through it, everything else
// through reflect.DeepEqual.

package treeutil

import (
	"fmt"
	"reflect"
	"strings"
)

// AuxEqualer lets a node's static residual define its own deep equality;
// aux values without it are compared with reflect.DeepEqual.
type AuxEqualer interface {
	AuxEqual(other any) bool
}

// DType is the injected element-kind capability of array-like leaves:
// Floating reports whether the element type is a floating-point kind.
type DType interface {
	Floating() bool
}

// TreeDef is the structure descriptor produced by Flatten: with a leaf
// sequence it is sufficient to reconstruct an equivalent tree.
type TreeDef struct {
	leaf     bool
	typ      reflect.Type
	aux      any
	keys     []string
	children []*TreeDef
}

var leafDef = &TreeDef{leaf: true}

// IsLeaf reports whether the descriptor describes a single leaf.
func (d *TreeDef) IsLeaf() bool { return d.leaf }

// NumLeaves returns the number of leaves under the descriptor.
func (d *TreeDef) NumLeaves() int {
	if d.leaf {
		return 1
	}
	n := 0
	for _, c := range d.children {
		n += c.NumLeaves()
	}
	return n
}

// NumChildren returns the one-level arity (0 for leaves).
func (d *TreeDef) NumChildren() int { return len(d.children) }

// Equal reports deep structural equality of two descriptors.
func (d *TreeDef) Equal(other *TreeDef) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.leaf != other.leaf {
		return false
	}
	if d.leaf {
		return true
	}
	if d.typ != other.typ || len(d.children) != len(other.children) {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
	}
	if eq, ok := d.aux.(AuxEqualer); ok {
		if !eq.AuxEqual(other.aux) {
			return false
		}
	} else if !reflect.DeepEqual(d.aux, other.aux) {
		return false
	}
	for i, c := range d.children {
		if !c.Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// String renders a compact structure summary, e.g. "node[3]{a,b,c}".
func (d *TreeDef) String() string {
	if d.leaf {
		return "*"
	}
	parts := make([]string, len(d.children))
	for i, c := range d.children {
		parts[i] = d.keys[i] + "=" + c.String()
	}
	return fmt.Sprintf("%v{%s}", d.typ, strings.Join(parts, ","))
}

// Entry is one step of a leaf path: the child's position at its level plus
// its key name.
type Entry struct {
	Index int
	Key   string
}

// Path addresses one leaf from the root.
type Path []Entry

// String renders the path as "a.0.weight".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, e := range p {
		parts[i] = e.Key
	}
	return strings.Join(parts, ".")
}

// PathLeaf pairs a leaf value with its path.
type PathLeaf struct {
	Path  Path
	Value any
}

// Flatten decomposes tree into its ordered leaf sequence and structure
// descriptor. Leaf order is one-level child order, depth first.
func Flatten(tree any) ([]any, *TreeDef) {
	leaves := make([]any, 0, 8)
	def := flattenInto(tree, &leaves)
	return leaves, def
}

func flattenInto(node any, leaves *[]any) *TreeDef {
	h, ok := handlerFor(node)
	if !ok {
		*leaves = append(*leaves, node)
		return leafDef
	}
	children, keys, aux := h.Flatten(node)
	def := &TreeDef{
		typ:      reflect.TypeOf(node),
		aux:      aux,
		keys:     keys,
		children: make([]*TreeDef, len(children)),
	}
	for i, c := range children {
		def.children[i] = flattenInto(c, leaves)
	}
	return def
}

// Leaves returns just the ordered leaf sequence of tree.
func Leaves(tree any) []any {
	leaves, _ := Flatten(tree)
	return leaves
}

// Structure returns just the structure descriptor of tree.
func Structure(tree any) *TreeDef {
	_, def := Flatten(tree)
	return def
}

// FlattenWithPaths is Flatten with a stable (index, key) path recorded per
// leaf, for path-aware generic transforms.
func FlattenWithPaths(tree any) ([]PathLeaf, *TreeDef) {
	out := make([]PathLeaf, 0, 8)
	def := flattenPaths(tree, nil, &out)
	return out, def
}

func flattenPaths(node any, prefix Path, out *[]PathLeaf) *TreeDef {
	h, ok := handlerFor(node)
	if !ok {
		p := make(Path, len(prefix))
		copy(p, prefix)
		*out = append(*out, PathLeaf{Path: p, Value: node})
		return leafDef
	}
	children, keys, aux := h.Flatten(node)
	def := &TreeDef{
		typ:      reflect.TypeOf(node),
		aux:      aux,
		keys:     keys,
		children: make([]*TreeDef, len(children)),
	}
	for i, c := range children {
		def.children[i] = flattenPaths(c, append(prefix, Entry{Index: i, Key: keys[i]}), out)
	}
	return def
}

// Unflatten reconstructs a tree from a structure descriptor and its leaf
// sequence, bypassing all initializers. The leaf count must match exactly.
func Unflatten(def *TreeDef, leaves []any) (any, error) {
	rest := leaves
	tree, err := unflattenFrom(def, &rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d extra leaves: %w", len(rest), ErrLeafCount)
	}
	return tree, nil
}

func unflattenFrom(def *TreeDef, rest *[]any) (any, error) {
	if def.leaf {
		if len(*rest) == 0 {
			return nil, fmt.Errorf("ran out of leaves: %w", ErrLeafCount)
		}
		leaf := (*rest)[0]
		*rest = (*rest)[1:]
		return leaf, nil
	}
	nodeRegistry.RLock()
	h, ok := nodeRegistry.handlers[def.typ]
	nodeRegistry.RUnlock()
	if !ok {
		// Built-in containers are not in the registry; resolve by type.
		switch {
		case def.typ == reflect.TypeOf([]any(nil)):
			h = sliceHandler
		case def.typ == reflect.TypeOf(map[string]any(nil)):
			h = mapHandler
		default:
			return nil, fmt.Errorf("treeutil: no handler for node type %v", def.typ)
		}
	}
	children := make([]any, len(def.children))
	for i, c := range def.children {
		child, err := unflattenFrom(c, rest)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return h.Unflatten(def.aux, children)
}
