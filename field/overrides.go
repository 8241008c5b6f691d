// overrides.go — the per-instance field override table.
//
// The table shadows (never replaces) a schema's field map: an entry present
// here supersedes the schema descriptor of the same name wherever effective
// field metadata is consulted, and absence means "use the schema descriptor
// unchanged". Non-differentiability filtering and whole-tree freezing install
// entries here so the owning schema is never mutated.

package field

// Overrides is an insertion-ordered name→replacement-descriptor mapping.
// Unlike Field and Metadata it is owned by exactly one instance and mutated
// in place; instance copies clone it.
type Overrides struct {
	names   []string
	entries map[string]*Field
}

// NewOverrides returns an empty override table.
func NewOverrides() *Overrides {
	return &Overrides{entries: make(map[string]*Field)}
}

// Get returns the replacement descriptor for name, or nil when name is not
// overridden.
func (o *Overrides) Get(name string) *Field {
	return o.entries[name]
}

// Put installs (or replaces) the override for f.Name(). Re-putting keeps the
// entry's original position.
func (o *Overrides) Put(f *Field) {
	if _, ok := o.entries[f.name]; !ok {
		o.names = append(o.names, f.name)
	}
	o.entries[f.name] = f
}

// Delete removes the override for name; absent names are a no-op.
func (o *Overrides) Delete(name string) {
	if _, ok := o.entries[name]; !ok {
		return
	}
	delete(o.entries, name)
	for i, n := range o.names {
		if n == name {
			o.names = append(o.names[:i], o.names[i+1:]...)
			break
		}
	}
}

// Names returns the overridden names in insertion order. The slice is a copy.
func (o *Overrides) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Len returns the number of overrides.
func (o *Overrides) Len() int { return len(o.names) }

// Clone returns an independent copy of the table. Descriptors are shared
// (they are immutable).
func (o *Overrides) Clone() *Overrides {
	out := &Overrides{
		names:   make([]string, len(o.names)),
		entries: make(map[string]*Field, len(o.entries)),
	}
	copy(out.names, o.names)
	for k, v := range o.entries {
		out.entries[k] = v
	}
	return out
}

// Equal reports deep equality: same overridden name set with Field.Equal
// descriptors. Order-insensitive, matching structural-descriptor comparison.
func (o *Overrides) Equal(other *Overrides) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.entries) != len(other.entries) {
		return false
	}
	for name, f := range o.entries {
		if !f.Equal(other.entries[name]) {
			return false
		}
	}
	return true
}
