// at.go — the indexed path resolver: chainable out-of-place selection over
// an instance's leaves.
//
// An Indexer holds the owning instance and the accumulated key path; every
// operation resolves the path into a per-leaf selection (aligned with
// flatten order) before touching anything, so a selector error never leaves
// a partial write. Results are always fresh instances.

package object

import (
	"fmt"

	"github.com/ymahlau/treeclass/treeutil"
)

// Indexer is the pending selection x.At(...) builds. Operations never
// mutate the owning instance.
type Indexer struct {
	root  *Instance
	where []Key
}

// At starts an indexed path on x.
func (x *Instance) At(keys ...Key) *Indexer {
	return &Indexer{root: x, where: keys}
}

// At extends the pending path; selection composes level by level, so
// x.At(a).At(b) addresses what descending into a and selecting b would.
func (ix *Indexer) At(keys ...Key) *Indexer {
	w := make([]Key, 0, len(ix.where)+len(keys))
	w = append(w, ix.where...)
	w = append(w, keys...)
	return &Indexer{root: ix.root, where: w}
}

// Get returns a same-shaped instance keeping selected leaf values and
// replacing every unselected leaf with None. Static structure is untouched.
func (ix *Indexer) Get() (*Instance, error) {
	return ix.rebuild(func(leaf any, selected bool) (any, error) {
		if selected {
			return leaf, nil
		}
		return None, nil
	})
}

// Set returns a new instance with value broadcast over every selected leaf;
// unselected leaves are unchanged. An empty selection is a no-op copy.
func (ix *Indexer) Set(value any) (*Instance, error) {
	return ix.rebuild(func(leaf any, selected bool) (any, error) {
		if selected {
			return value, nil
		}
		return leaf, nil
	})
}

// Apply returns a new instance with fn applied to every selected leaf.
func (ix *Indexer) Apply(fn func(leaf any) (any, error)) (*Instance, error) {
	return ix.rebuild(func(leaf any, selected bool) (any, error) {
		if selected {
			return fn(leaf)
		}
		return leaf, nil
	})
}

// Reduce folds fn over the selected leaves in flatten order. Without an
// initial value the first selected leaf seeds the fold; an empty selection
// then yields nil.
func (ix *Indexer) Reduce(fn func(acc, leaf any) (any, error), init ...any) (any, error) {
	sel, err := ix.selection()
	if err != nil {
		return nil, err
	}
	leaves := treeutil.Leaves(ix.root)

	var acc any
	seeded := false
	if len(init) > 0 {
		acc, seeded = init[0], true
	}
	for i, leaf := range leaves {
		if !sel[i] {
			continue
		}
		if !seeded {
			acc, seeded = leaf, true
			continue
		}
		if acc, err = fn(acc, leaf); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Call resolves the path as attribute access on a registered copy of the
// owning instance, invokes the named method on it and returns the method's
// result together with the (re-frozen) copy. Every key in the path must be
// a Name key.
func (ix *Indexer) Call(args ...any) (any, *Instance, error) {
	if len(ix.where) == 0 {
		return nil, nil, fmt.Errorf("empty call path: %w", ErrCallKey)
	}
	names := make([]string, len(ix.where))
	for i, k := range ix.where {
		n, ok := k.(nameKey)
		if !ok {
			return nil, nil, fmt.Errorf("key %d is %T: %w", i, k, ErrCallKey)
		}
		names[i] = string(n)
	}

	// The call path may descend through static fields, whose values a
	// flatten-based copy shares with the source; clone every instance node
	// so writes through self stay on the copy.
	root := overrideCopy(ix.root)
	registered := []*Instance{root}
	register(root)
	defer func() {
		for _, r := range registered {
			deregister(r)
		}
	}()

	// Descend the attribute chain, keeping every intermediate instance
	// mutable so the method may write through self.
	cur := root
	for _, name := range names[:len(names)-1] {
		v, err := cur.Get(name)
		if err != nil {
			return nil, nil, err
		}
		nested, ok := v.(*Instance)
		if !ok {
			return nil, nil, fmt.Errorf("%q is %T, not a nested instance: %w", name, v, ErrBadSelector)
		}
		register(nested)
		registered = append(registered, nested)
		cur = nested
	}

	method := names[len(names)-1]
	m := cur.class.Method(method)
	if m == nil {
		return nil, nil, fmt.Errorf("%s.%s: %w", cur.class.Name(), method, ErrNotCallable)
	}
	ret, err := m(cur, args...)
	if err != nil {
		return nil, nil, err
	}
	return ret, root, nil
}

// rebuild flattens the root, rewrites each leaf through fn under the
// resolved selection and unflattens the result.
func (ix *Indexer) rebuild(fn func(leaf any, selected bool) (any, error)) (*Instance, error) {
	sel, err := ix.selection()
	if err != nil {
		return nil, err
	}
	leaves, def := treeutil.Flatten(ix.root)
	out := make([]any, len(leaves))
	for i, leaf := range leaves {
		if out[i], err = fn(leaf, sel[i]); err != nil {
			return nil, err
		}
	}
	rebuilt, err := treeutil.Unflatten(def, out)
	if err != nil {
		return nil, err
	}
	return rebuilt.(*Instance), nil
}

// selection resolves the key path into one boolean per leaf of the root,
// aligned with flatten order.
func (ix *Indexer) selection() ([]bool, error) {
	sel := make([]bool, 0, 8)
	if err := selectInto(ix.root, ix.where, &sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func selectInto(node any, keys []Key, sel *[]bool) error {
	if len(keys) == 0 {
		markAll(node, sel, true)
		return nil
	}
	key, rest := keys[0], keys[1:]
	switch k := key.(type) {
	case allKey:
		children, _, ok := treeutil.Children(node)
		if !ok {
			*sel = append(*sel, len(rest) == 0)
			return nil
		}
		for _, c := range children {
			if err := selectInto(c, rest, sel); err != nil {
				return err
			}
		}
		return nil
	case nameKey:
		return selectChildren(node, rest, sel, func(name string, _ int) bool {
			return name == string(k)
		})
	case matchKey:
		return selectChildren(node, rest, sel, func(name string, _ int) bool {
			return k.re.MatchString(name)
		})
	case indexKey:
		if k < 0 {
			return fmt.Errorf("negative index %d: %w", int(k), ErrBadSelector)
		}
		return selectChildren(node, rest, sel, func(_ string, pos int) bool {
			return pos == int(k)
		})
	case maskKey:
		return selectMask(node, k.tree, rest, sel)
	case unionKey:
		return selectUnion(node, []Key(k), rest, sel)
	case funcKey:
		ks, err := k(node)
		if err != nil {
			return err
		}
		return selectUnion(node, ks, rest, sel)
	default:
		return fmt.Errorf("%T: %w", key, ErrBadSelector)
	}
}

// selectChildren descends into the children match accepts and marks every
// other child's leaves unselected. A leaf node with keys still pending is
// an empty selection, not an error.
func selectChildren(node any, rest []Key, sel *[]bool, match func(name string, pos int) bool) error {
	children, names, ok := treeutil.Children(node)
	if !ok {
		markAll(node, sel, false)
		return nil
	}
	for i, c := range children {
		if match(names[i], i) {
			if err := selectInto(c, rest, sel); err != nil {
				return err
			}
			continue
		}
		markAll(c, sel, false)
	}
	return nil
}

// selectMask checks the mask's structure against the addressed subtree,
// then selects each leaf whose mask counterpart is entirely true, further
// narrowed by any remaining keys.
func selectMask(node, mask any, rest []Key, sel *[]bool) error {
	_, ndef := treeutil.Flatten(node)
	maskLeaves, mdef := treeutil.Flatten(mask)
	if !ndef.Equal(mdef) {
		return fmt.Errorf("mask %s against subtree %s: %w", mdef, ndef, ErrShapeMismatch)
	}
	restSel := make([]bool, 0, len(maskLeaves))
	if err := selectInto(node, rest, &restSel); err != nil {
		return err
	}
	for i, m := range maskLeaves {
		*sel = append(*sel, treeutil.LeafTrue(m) && restSel[i])
	}
	return nil
}

// selectUnion ORs the selections of several keys applied at one level.
func selectUnion(node any, ks, rest []Key, sel *[]bool) error {
	n := treeutil.Structure(node).NumLeaves()
	acc := make([]bool, n)
	for _, k := range ks {
		sub := make([]bool, 0, n)
		path := append([]Key{k}, rest...)
		if err := selectInto(node, path, &sub); err != nil {
			return err
		}
		for i, b := range sub {
			acc[i] = acc[i] || b
		}
	}
	*sel = append(*sel, acc...)
	return nil
}

func markAll(node any, sel *[]bool, v bool) {
	n := treeutil.Structure(node).NumLeaves()
	for i := 0; i < n; i++ {
		*sel = append(*sel, v)
	}
}
