package object_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymahlau/treeclass/field"
	"github.com/ymahlau/treeclass/object"
	"github.com/ymahlau/treeclass/schema"
)

// TestAt_SetName verifies the canonical out-of-place update:
// p.At(Name("x")).Set(10) yields Point(10, 2) and leaves p untouched.
func TestAt_SetName(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := p.At(object.Name("x")).Set(10.0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, q.MustGet("x"))
	assert.Equal(t, 2.0, q.MustGet("y"), "unselected leaf unchanged")
	assert.Equal(t, 1.0, p.MustGet("x"), "original unchanged")
}

// TestAt_GetName verifies get keeps selected leaves and installs None
// elsewhere, preserving shape.
func TestAt_GetName(t *testing.T) {
	_, p := point(t, 1, 2)

	g, err := p.At(object.Name("y")).Get()
	require.NoError(t, err)
	assert.True(t, object.IsNone(g.MustGet("x")))
	assert.Equal(t, 2.0, g.MustGet("y"))
}

// TestAt_SetThenGet verifies the idempotence property: setting at a key and
// reading the same key back yields the broadcast value.
func TestAt_SetThenGet(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := p.At(object.Name("x")).Set(10.0)
	require.NoError(t, err)
	g, err := q.At(object.Name("x")).Get()
	require.NoError(t, err)
	assert.Equal(t, 10.0, g.MustGet("x"))
}

// TestAt_Index verifies integer keys resolve against flatten order.
func TestAt_Index(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := p.At(object.Index(1)).Set(9.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.MustGet("x"))
	assert.Equal(t, 9.0, q.MustGet("y"))

	_, err = p.At(object.Index(-1)).Set(0.0)
	assert.ErrorIs(t, err, object.ErrBadSelector)
}

// TestAt_All verifies the every-leaf selector broadcasts across the tree.
func TestAt_All(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := p.At(object.All).Set(0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.MustGet("x"))
	assert.Equal(t, 0.0, q.MustGet("y"))
}

// TestAt_Match verifies regexp keys match field names at the current level
// only.
func TestAt_Match(t *testing.T) {
	pc := pointClass(t)
	lc := lineClass(t)
	line := lc.MustNew(pc.MustNew(1.0, 2.0), pc.MustNew(3.0, 4.0))

	q, err := line.At(object.Match(regexp.MustCompile(`^x$`))).Set(0.0)
	require.NoError(t, err)
	// No top-level field is named x; nested names are out of reach.
	assert.True(t, line.Equal(q), "no-op when nothing matches at this level")

	q, err = line.At(object.Name("start"), object.Match(regexp.MustCompile(`^x$`))).Set(0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.MustGet("start").(*object.Instance).MustGet("x"))
	assert.Equal(t, 3.0, q.MustGet("end").(*object.Instance).MustGet("x"))
}

// TestAt_Union verifies tuple keys select the union at one level.
func TestAt_Union(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := p.At(object.Keys(object.Name("x"), object.Name("y"))).Set(7.0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, q.MustGet("x"))
	assert.Equal(t, 7.0, q.MustGet("y"))
}

// TestAt_KeyFunc verifies custom resolution receives the subtree and its
// returned keys are applied as a union.
func TestAt_KeyFunc(t *testing.T) {
	_, p := point(t, 1, 2)

	pick := object.KeyFunc(func(subtree any) ([]object.Key, error) {
		return []object.Key{object.Name("y")}, nil
	})
	q, err := p.At(pick).Set(8.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.MustGet("x"))
	assert.Equal(t, 8.0, q.MustGet("y"))
}

// TestAt_Mask verifies boolean-leaf selection and the shape check.
func TestAt_Mask(t *testing.T) {
	c, p := point(t, 1, 2)

	mask := c.MustNew(true, false)
	q, err := p.At(object.Mask(mask)).Set(0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.MustGet("x"))
	assert.Equal(t, 2.0, q.MustGet("y"))

	foreign := pointClass(t).MustNew(true, true)
	_, err = p.At(object.Mask(foreign)).Set(0.0)
	assert.ErrorIs(t, err, object.ErrShapeMismatch, "mask of another class identity")
}

// TestAt_EmptySelection verifies unmatched names are a no-op for set and
// all-absent for get, never an error.
func TestAt_EmptySelection(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := p.At(object.Name("missing")).Set(0.0)
	require.NoError(t, err)
	assert.True(t, p.Equal(q))

	g, err := p.At(object.Name("missing")).Get()
	require.NoError(t, err)
	assert.True(t, object.IsNone(g.MustGet("x")))
	assert.True(t, object.IsNone(g.MustGet("y")))
}

// TestAt_Apply verifies per-leaf function application over the selection.
func TestAt_Apply(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := p.At(object.All).Apply(func(leaf any) (any, error) {
		return leaf.(float64) * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, q.MustGet("x"))
	assert.Equal(t, 20.0, q.MustGet("y"))
}

// TestAt_Reduce verifies folding over selected leaves in traversal order,
// with and without a seed.
func TestAt_Reduce(t *testing.T) {
	_, p := point(t, 1, 2)
	sum := func(acc, leaf any) (any, error) { return acc.(float64) + leaf.(float64), nil }

	got, err := p.At(object.All).Reduce(sum, 0.0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = p.At(object.All).Reduce(sum)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got, "first selected leaf seeds the fold")

	got, err = p.At(object.Name("missing")).Reduce(sum)
	require.NoError(t, err)
	assert.Nil(t, got, "empty selection without a seed folds to nil")
}

// TestAt_NestedChaining verifies .At(a).At(b) equals descending into a and
// operating at b.
func TestAt_NestedChaining(t *testing.T) {
	pc := pointClass(t)
	lc := lineClass(t)
	line := lc.MustNew(pc.MustNew(1.0, 2.0), pc.MustNew(3.0, 4.0))

	chained, err := line.At(object.Name("start")).At(object.Name("x")).Set(5.0)
	require.NoError(t, err)
	direct, err := line.At(object.Name("start"), object.Name("x")).Set(5.0)
	require.NoError(t, err)

	assert.True(t, chained.Equal(direct))
	assert.Equal(t, 5.0, chained.MustGet("start").(*object.Instance).MustGet("x"))
	assert.Equal(t, 2.0, chained.MustGet("start").(*object.Instance).MustGet("y"))
}

// TestAt_Call verifies indexed method calls run on a registered copy,
// return the method value plus the re-frozen copy, and reject non-name
// paths and unknown methods.
func TestAt_Call(t *testing.T) {
	c := pointClass(t, object.WithMethod("scale", func(self *object.Instance, args ...any) (any, error) {
		k := args[0].(float64)
		if err := self.Set("x", self.MustGet("x").(float64)*k); err != nil {
			return nil, err
		}
		if err := self.Set("y", self.MustGet("y").(float64)*k); err != nil {
			return nil, err
		}
		return "ok", nil
	}))
	p := c.MustNew(1.0, 2.0)

	ret, q, err := p.At(object.Name("scale")).Call(3.0)
	require.NoError(t, err)
	assert.Equal(t, "ok", ret)
	assert.Equal(t, 3.0, q.MustGet("x"))
	assert.Equal(t, 1.0, p.MustGet("x"), "call mutates the copy, never the original")
	assert.ErrorIs(t, q.Set("x", 0.0), object.ErrImmutable, "returned copy is frozen again")

	_, _, err = p.At(object.Index(0)).Call()
	assert.ErrorIs(t, err, object.ErrCallKey)

	_, _, err = p.At(object.Name("nope")).Call()
	assert.ErrorIs(t, err, object.ErrNotCallable)
}

// TestAt_CallNested verifies call paths descend through nested instances.
func TestAt_CallNested(t *testing.T) {
	pc := pointClass(t, object.WithMethod("zero", func(self *object.Instance, args ...any) (any, error) {
		if err := self.Set("x", 0.0); err != nil {
			return nil, err
		}
		return nil, self.Set("y", 0.0)
	}))
	lc := lineClass(t)
	line := lc.MustNew(pc.MustNew(1.0, 2.0), pc.MustNew(3.0, 4.0))

	_, q, err := line.At(object.Name("end"), object.Name("zero")).Call()
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.MustGet("end").(*object.Instance).MustGet("x"))
	assert.Equal(t, 1.0, q.MustGet("start").(*object.Instance).MustGet("x"), "sibling untouched")
}

// TestAt_CallThroughStaticField verifies an indexed call descending through a
// static nested instance mutates only the returned copy, never the original.
func TestAt_CallThroughStaticField(t *testing.T) {
	inner := object.MustNewClass(
		schema.MustNew("Cfg", field.MustNew("k", field.Float)),
		object.WithMethod("bump", func(self *object.Instance, args ...any) (any, error) {
			return nil, self.Set("k", self.MustGet("k").(float64)+1)
		}),
	)
	outer := object.MustNewClass(schema.MustNew("Outer",
		field.MustNew("cfg", field.Any, field.WithStatic()),
		field.MustNew("w", field.Float),
	))
	o := outer.MustNew(inner.MustNew(1.0), 2.0)

	_, q, err := o.At(object.Name("cfg"), object.Name("bump")).Call()
	require.NoError(t, err)
	assert.Equal(t, 2.0, q.MustGet("cfg").(*object.Instance).MustGet("k"))
	assert.Equal(t, 1.0, o.MustGet("cfg").(*object.Instance).MustGet("k"), "original untouched")
}
