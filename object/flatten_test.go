package object_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymahlau/treeclass/field"
	"github.com/ymahlau/treeclass/object"
	"github.com/ymahlau/treeclass/schema"
	"github.com/ymahlau/treeclass/treeutil"
)

// TestFlatten_Point verifies the canonical partition: leaves (1, 2) in
// field order, empty static part, and names recoverable from the residual.
func TestFlatten_Point(t *testing.T) {
	_, p := point(t, 1, 2)

	leaves, s := p.Flatten()
	assert.Equal(t, []any{1.0, 2.0}, leaves)
	assert.Equal(t, []string{"x", "y"}, s.DynamicNames())
	assert.Empty(t, s.StaticNames())
}

// TestFlatten_StaticPartition verifies static fields move to the residual
// and unflatten restores the interleaved attribute order.
func TestFlatten_StaticPartition(t *testing.T) {
	s := schema.MustNew("Layer",
		field.MustNew("w", field.Float),
		field.MustNew("units", field.Int, field.WithStatic()),
		field.MustNew("b", field.Float),
	)
	c := object.MustNewClass(s)
	x := c.MustNew(0.5, 3, 0.1)

	leaves, res := x.Flatten()
	assert.Equal(t, []any{0.5, 0.1}, leaves, "static field is not a leaf")
	assert.Equal(t, []string{"units"}, res.StaticNames())

	back, err := object.UnflattenInstance(res, leaves)
	require.NoError(t, err)
	assert.Equal(t, []string{"w", "units", "b"}, back.Names(), "interleaved order restored")
	assert.True(t, x.Equal(back), "round trip: %s", spew.Sdump(back))
}

// TestFlatten_RoundTripNested verifies unflatten(flatten(x)) equality at
// nesting depth two, through the generic transform.
func TestFlatten_RoundTripNested(t *testing.T) {
	pc := pointClass(t)
	lc := lineClass(t)
	line := lc.MustNew(pc.MustNew(1.0, 2.0), pc.MustNew(3.0, 4.0))

	leaves, def := treeutil.Flatten(line)
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0, "line"}, leaves)

	back, err := treeutil.Unflatten(def, leaves)
	require.NoError(t, err)
	assert.True(t, line.Equal(back.(*object.Instance)), "round trip: %s", spew.Sdump(back))
}

// TestFlatten_LeafCountMismatch verifies unflatten rejects a wrong-length
// leaf sequence.
func TestFlatten_LeafCountMismatch(t *testing.T) {
	_, p := point(t, 1, 2)
	_, res := p.Flatten()

	_, err := object.UnflattenInstance(res, []any{1.0})
	assert.ErrorIs(t, err, treeutil.ErrLeafCount)
}

// TestStructure_Equality verifies residual equality is deep (same class,
// same partition, equal static values) rather than identity.
func TestStructure_Equality(t *testing.T) {
	c := pointClass(t)
	_, s1 := c.MustNew(1.0, 2.0).Flatten()
	_, s2 := c.MustNew(5.0, 6.0).Flatten()
	assert.True(t, s1.AuxEqual(s2), "dynamic values play no part in residual equality")

	other := pointClass(t)
	_, s3 := other.MustNew(1.0, 2.0).Flatten()
	assert.False(t, s1.AuxEqual(s3), "distinct class identity means distinct structure")
}

// TestFlatten_WithPaths verifies path naming combines attribute names
// depth first.
func TestFlatten_WithPaths(t *testing.T) {
	pc := pointClass(t)
	lc := lineClass(t)
	line := lc.MustNew(pc.MustNew(1.0, 2.0), pc.MustNew(3.0, 4.0))

	pl, _ := treeutil.FlattenWithPaths(line)
	require.Len(t, pl, 5)
	assert.Equal(t, "start.x", pl[0].Path.String())
	assert.Equal(t, "end.y", pl[3].Path.String())
	assert.Equal(t, "label", pl[4].Path.String())
}
