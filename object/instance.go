// instance.go — the instance: an insertion-ordered attribute bag gated by
// the mutable registry.
//
// Attribute rules:
//   - Declared fields (schema + auto-registered extras) are the only legal
//     attribute names, except that assigning an *Instance value to a fresh
//     name auto-registers a minimal extra-field descriptor for it.
//   - Every assignment runs the effective descriptor's validators in
//     declaration order, threading return values.
//   - Set/Delete succeed only while the instance is in the mutable registry.

package object

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ymahlau/treeclass/field"
	"github.com/ymahlau/treeclass/treeutil"
)

// noneType is the absence sentinel installed by Indexer.Get for unselected
// leaves; distinct from nil so absent and stored-nil never blur.
type noneType struct{}

func (noneType) String() string { return "None" }

// None marks an absent leaf value.
var None = noneType{}

// IsNone reports whether v is the absence sentinel.
func IsNone(v any) bool {
	_, ok := v.(noneType)
	return ok
}

// Instance is one structured object: named attribute slots in insertion
// order, an owning class, a per-instance override table and auto-registered
// extra fields.
type Instance struct {
	class     *Class
	names     []string
	values    map[string]any
	extras    []*field.Field
	overrides *field.Overrides
}

// newInstance allocates an empty, not-yet-mutable instance of c.
func newInstance(c *Class) *Instance {
	return &Instance{
		class:     c,
		values:    make(map[string]any, c.schema.Len()),
		overrides: field.NewOverrides(),
	}
}

// Class returns the owning class.
func (x *Instance) Class() *Class { return x.class }

// Len returns the number of assigned attributes.
func (x *Instance) Len() int { return len(x.names) }

// Names returns the assigned attribute names in insertion order.
func (x *Instance) Names() []string {
	out := make([]string, len(x.names))
	copy(out, x.names)
	return out
}

// Has reports whether name currently holds a value.
func (x *Instance) Has(name string) bool {
	_, ok := x.values[name]
	return ok
}

// Get returns the value of attribute name.
func (x *Instance) Get(name string) (any, error) {
	v, ok := x.values[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", x.class.Name(), name, ErrUnknownAttribute)
	}
	return v, nil
}

// MustGet is Get panicking on unknown attributes; for use after the
// completeness gate where declared fields are guaranteed assigned.
func (x *Instance) MustGet(name string) any {
	v, err := x.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// effectiveField resolves the descriptor governing name for this instance:
// the override table shadows the class field map, which shadows extras.
func (x *Instance) effectiveField(name string) *field.Field {
	if f := x.overrides.Get(name); f != nil {
		return f
	}
	if f, err := x.class.schema.Get(name); err == nil {
		return f
	}
	for _, f := range x.extras {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// Set assigns value to attribute name. It succeeds only inside a mutable
// scope; the effective descriptor's validators run first, and assigning an
// *Instance to an undeclared name auto-registers an extra field.
func (x *Instance) Set(name string, value any) error {
	if !isMutable(x) {
		return fmt.Errorf(
			"cannot set %s.%s: %w; use x.At(object.Name(%q)).Set(v) for an out-of-place update",
			x.class.Name(), name, ErrImmutable, name)
	}

	f := x.effectiveField(name)
	if f == nil {
		nested, ok := value.(*Instance)
		if !ok {
			return fmt.Errorf("%s.%s: %w", x.class.Name(), name, ErrUnknownAttribute)
		}
		// Auto-register the nested instance under a minimal descriptor so
		// structural traversal discovers it.
		extra, err := field.New(name, reflect.TypeOf(nested))
		if err != nil {
			return fmt.Errorf("%s.%s: %w", x.class.Name(), name, err)
		}
		x.extras = append(x.extras, extra)
		f = extra
	}

	v, err := f.Validate(value)
	if err != nil {
		return err
	}
	x.install(name, v)
	return nil
}

// Delete removes attribute name under the same mutability gate as Set.
func (x *Instance) Delete(name string) error {
	if !isMutable(x) {
		return fmt.Errorf("cannot delete %s.%s: %w", x.class.Name(), name, ErrImmutable)
	}
	if _, ok := x.values[name]; !ok {
		return fmt.Errorf("%s.%s: %w", x.class.Name(), name, ErrUnknownAttribute)
	}
	delete(x.values, name)
	for i, n := range x.names {
		if n == name {
			x.names = append(x.names[:i], x.names[i+1:]...)
			break
		}
	}
	for i, f := range x.extras {
		if f.Name() == name {
			x.extras = append(x.extras[:i], x.extras[i+1:]...)
			break
		}
	}
	return nil
}

// install writes the value into the attribute bag, keeping insertion order.
func (x *Instance) install(name string, value any) {
	if _, ok := x.values[name]; !ok {
		x.names = append(x.names, name)
	}
	x.values[name] = value
}

// Copy returns a deep structural copy: fresh instances throughout (so
// scoped mutation of the copy never leaks into the original's subtrees),
// leaf values shared by reference.
func (x *Instance) Copy() *Instance {
	c, err := treeutil.Copy(x)
	if err != nil {
		// Flatten and unflatten are inverses over the same structure; a
		// failure here is an internal invariant break.
		panic(fmt.Sprintf("object: copy of %s failed: %v", x.class.Name(), err))
	}
	return c.(*Instance)
}

// String renders a compact one-line form, honoring each field's Repr flag;
// static fields are prefixed with "*".
func (x *Instance) String() string {
	var b strings.Builder
	b.WriteString(x.class.Name())
	b.WriteByte('(')
	first := true
	for _, name := range x.names {
		f := x.effectiveField(name)
		if f != nil && !f.Repr() {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		if f != nil && f.Static() {
			b.WriteByte('*')
		}
		fmt.Fprintf(&b, "%s=%v", name, x.values[name])
	}
	b.WriteByte(')')
	return b.String()
}

// Equal reports equality under the structural contract: equal structure
// descriptors and pairwise-equal leaves (elementwise for array-like
// leaves).
func (x *Instance) Equal(other *Instance) bool {
	if x == nil || other == nil {
		return x == other
	}
	return treeutil.Equal(x, other)
}
