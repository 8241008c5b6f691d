package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymahlau/treeclass/field"
	"github.com/ymahlau/treeclass/schema"
)

// TestParseYAML_Basic verifies a full document: order, type tags, defaults,
// static/kw-only flags, metadata and rule validators.
func TestParseYAML_Basic(t *testing.T) {
	doc := []byte(`
name: Linear
fields:
  - name: weight
    type: float
    default: 1
  - name: bias
    type: float
    default: 0
    rule: "gte=-10,lte=10"
  - name: act
    type: string
    static: true
    default: relu
    metadata: {unit: "none", layer: 1}
  - name: note
    type: any
    kw_only: true
    default: ""
`)
	s, err := schema.ParseYAML(doc)
	require.NoError(t, err)

	assert.Equal(t, "Linear", s.Name())
	assert.Equal(t, []string{"weight", "bias", "act", "note"}, s.Names())

	w, _ := s.Get("weight")
	d, ok := w.Default()
	assert.True(t, ok)
	assert.Equal(t, 1.0, d, "integer literal under float tag widens to float64")

	act, _ := s.Get("act")
	assert.True(t, act.Static())
	unit, ok := act.Metadata().Get("unit")
	assert.True(t, ok)
	assert.Equal(t, "none", unit)

	note, _ := s.Get("note")
	assert.True(t, note.KwOnly())

	b, _ := s.Get("bias")
	_, err = b.Validate(99.0)
	assert.Error(t, err, "rule validator is wired in")
	v, err := b.Validate(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

// TestParseYAML_UnknownTag verifies the closed type-tag set.
func TestParseYAML_UnknownTag(t *testing.T) {
	_, err := schema.ParseYAML([]byte("name: S\nfields:\n  - {name: a, type: quaternion}\n"))
	assert.ErrorIs(t, err, schema.ErrUnknownTypeTag)
}

// TestParseYAML_MutableDefault verifies list defaults are rejected through
// the same declaration check as in-code fields.
func TestParseYAML_MutableDefault(t *testing.T) {
	_, err := schema.ParseYAML([]byte("name: S\nfields:\n  - {name: a, type: list, default: [1, 2]}\n"))
	assert.ErrorIs(t, err, field.ErrMutableDefault)
}

// TestParseYAML_Malformed covers missing name, empty fields and non-YAML
// input.
func TestParseYAML_Malformed(t *testing.T) {
	for _, doc := range []string{
		"fields:\n  - {name: a, type: int}\n",
		"name: S\n",
		"{not yaml",
	} {
		_, err := schema.ParseYAML([]byte(doc))
		assert.ErrorIs(t, err, schema.ErrBadDocument, "doc %q", doc)
	}
}
