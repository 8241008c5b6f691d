package object_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymahlau/treeclass/field"
	"github.com/ymahlau/treeclass/object"
	"github.com/ymahlau/treeclass/schema"
	"github.com/ymahlau/treeclass/treeutil"
)

// TestAdd_Pairwise verifies same-structure addition: p + p == Point(2, 4).
func TestAdd_Pairwise(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := object.Add(p, p)
	require.NoError(t, err)
	assert.Equal(t, 2.0, q.MustGet("x"))
	assert.Equal(t, 4.0, q.MustGet("y"))
}

// TestAdd_ScalarBroadcast verifies a scalar right operand reaches every
// leaf.
func TestAdd_ScalarBroadcast(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := object.Add(p, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 11.0, q.MustGet("x"))
	assert.Equal(t, 12.0, q.MustGet("y"))
}

// TestSubMulNeg verifies the remaining arithmetic forms, including mixed
// int/float widening and slice leaves.
func TestSubMulNeg(t *testing.T) {
	s := schema.MustNew("Vec",
		field.MustNew("w", field.Any),
		field.MustNew("k", field.Int),
	)
	c := object.MustNewClass(s)
	v := c.MustNew([]float64{1, 2}, 3)

	q, err := object.Mul(v, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, q.MustGet("w"))
	assert.Equal(t, 6, q.MustGet("k"))

	q, err = object.Sub(q, v)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, q.MustGet("w"))
	assert.Equal(t, 3, q.MustGet("k"))

	q, err = object.Neg(v)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -2}, q.MustGet("w"))
	assert.Equal(t, -3, q.MustGet("k"))
}

// TestApplyBinary_StructureMismatch verifies differently shaped operands
// are rejected before any leaf is touched.
func TestApplyBinary_StructureMismatch(t *testing.T) {
	_, p := point(t, 1, 2)
	other := pointClass(t).MustNew(1.0, 2.0)

	_, err := object.Add(p, other)
	assert.ErrorIs(t, err, treeutil.ErrStructureMismatch)
}

// TestApplyBinary_BadOperand verifies unsupported operand types fail with
// an error naming the type.
func TestApplyBinary_BadOperand(t *testing.T) {
	_, p := point(t, 1, 2)

	_, err := object.Add(p, struct{ A int }{1})
	assert.ErrorIs(t, err, object.ErrOperand)
	assert.Contains(t, err.Error(), "struct")
}

// TestEq_ValueForms verifies plain equality builds a boolean tree, pairwise
// and broadcast.
func TestEq_ValueForms(t *testing.T) {
	_, p := point(t, 1, 2)

	q, err := object.Eq(p, p)
	require.NoError(t, err)
	assert.True(t, treeutil.AllTrue(q))

	q, err = object.Eq(p, 1.0)
	require.NoError(t, err)
	assert.Equal(t, true, q.MustGet("x"))
	assert.Equal(t, false, q.MustGet("y"))

	n, err := object.Ne(p, 1.0)
	require.NoError(t, err)
	assert.Equal(t, false, n.MustGet("x"))
	assert.Equal(t, true, n.MustGet("y"))
}

// TestEq_TypeOperand verifies comparing against a reflect.Type yields a
// per-leaf is-instance tree.
func TestEq_TypeOperand(t *testing.T) {
	s := schema.MustNew("Mixed",
		field.MustNew("w", field.Float),
		field.MustNew("n", field.Int),
	)
	c := object.MustNewClass(s)
	m := c.MustNew(0.5, 3)

	q, err := object.Eq(m, reflect.TypeOf(float64(0)))
	require.NoError(t, err)
	assert.Equal(t, true, q.MustGet("w"))
	assert.Equal(t, false, q.MustGet("n"))
}

// TestEq_NameOperand verifies comparing against a field name marks every
// leaf under matching fields, at any depth.
func TestEq_NameOperand(t *testing.T) {
	pc := pointClass(t)
	lc := lineClass(t)
	line := lc.MustNew(pc.MustNew(1.0, 2.0), pc.MustNew(3.0, 4.0))

	q, err := object.Eq(line, "x")
	require.NoError(t, err)
	start := q.MustGet("start").(*object.Instance)
	assert.Equal(t, true, start.MustGet("x"))
	assert.Equal(t, false, start.MustGet("y"))
	assert.Equal(t, false, q.MustGet("label"))
}

// TestEq_MetadataOperand verifies comparing against a metadata mapping
// marks fields whose metadata is a superset of it.
func TestEq_MetadataOperand(t *testing.T) {
	s := schema.MustNew("Tagged",
		field.MustNew("a", field.Float, field.WithMetadata("unit", "m")),
		field.MustNew("b", field.Float),
	)
	c := object.MustNewClass(s)
	x := c.MustNew(1.0, 2.0)

	q, err := object.Eq(x, map[string]any{"unit": "m"})
	require.NoError(t, err)
	assert.Equal(t, true, q.MustGet("a"))
	assert.Equal(t, false, q.MustGet("b"))
}

// TestEqMask_FeedsSelector verifies the boolean tree from Eq is directly
// usable as a Mask key.
func TestEqMask_FeedsSelector(t *testing.T) {
	_, p := point(t, 1, 2)

	mask, err := object.Eq(p, "y")
	require.NoError(t, err)
	q, err := p.At(object.Mask(mask)).Set(0.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.MustGet("x"))
	assert.Equal(t, 0.0, q.MustGet("y"))
}
