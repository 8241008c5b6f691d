// metadata.go — ordered key→value metadata attached to a Field descriptor.
//
// Metadata is an insertion-ordered mapping compared by deep key/value
// equality. It is copy-on-write: Set returns a new Metadata, so descriptors
// sharing a Metadata value never observe each other's changes.

package field

import "reflect"

// Metadata key names with structural meaning. Any other key is free-form
// user data carried through copies and structural descriptors untouched.
const (
	// MetaStatic marks a field as structural: excluded from the leaf
	// sequence and stored in the structural descriptor instead.
	MetaStatic = "static"

	// MetaFrozen marks a static field produced by whole-tree freezing.
	MetaFrozen = "frozen"

	// MetaNonDiff marks a static field produced by non-differentiability
	// filtering; the inverse filter removes exactly these entries.
	MetaNonDiff = "nondiff"
)

// Metadata is an immutable, insertion-ordered string→any mapping.
// The zero value is not usable; obtain one via NewMetadata or Field.Metadata.
type Metadata struct {
	keys []string
	vals map[string]any
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{vals: make(map[string]any)}
}

// Set returns a copy of m with key set to value. Insertion order is
// preserved; re-setting an existing key keeps its original position.
func (m *Metadata) Set(key string, value any) *Metadata {
	out := m.clone()
	if _, ok := out.vals[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.vals[key] = value
	return out
}

// Get returns the value stored under key and whether it is present.
func (m *Metadata) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Bool reports whether key is present with value true.
func (m *Metadata) Bool(key string) bool {
	v, ok := m.vals[key]
	b, isBool := v.(bool)
	return ok && isBool && b
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Metadata) Len() int { return len(m.keys) }

// Equal reports deep key/value equality, order-insensitive: two Metadata
// values are equal iff they hold the same key set with deeply equal values.
func (m *Metadata) Equal(other *Metadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.vals) != len(other.vals) {
		return false
	}
	for k, v := range m.vals {
		ov, ok := other.vals[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// Superset reports whether every key in query is present in m with a deeply
// equal value. An empty query matches every Metadata.
func (m *Metadata) Superset(query map[string]any) bool {
	for k, want := range query {
		got, ok := m.vals[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func (m *Metadata) clone() *Metadata {
	out := &Metadata{
		keys: make([]string, len(m.keys)),
		vals: make(map[string]any, len(m.vals)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.vals {
		out.vals[k] = v
	}
	return out
}
