// flatten.go — the structural transform adapter: how an instance
// decomposes into dynamic leaves plus a static residual, and how it is
// rebuilt from them.
//
// The partition is one-level: assigned attributes whose effective
// descriptor is static go into the residual with their values; the rest
// become children in insertion order. Rebuilding bypasses the constructor,
// the mutability gate and validators entirely.

package object

import (
	"fmt"
	"reflect"

	"github.com/ymahlau/treeclass/field"
	"github.com/ymahlau/treeclass/treeutil"
)

// Structure is the static residual of one instance node: everything needed
// to rebuild it except the dynamic leaf values.
type Structure struct {
	class        *Class
	order        []string // full attribute insertion order
	dynamicNames []string
	staticNames  []string
	staticValues []any
	overrides    *field.Overrides
	extras       []*field.Field
}

// Class returns the class the residual belongs to.
func (s *Structure) Class() *Class { return s.class }

// DynamicNames returns the attribute names of the dynamic children, in
// insertion order.
func (s *Structure) DynamicNames() []string {
	out := make([]string, len(s.dynamicNames))
	copy(out, s.dynamicNames)
	return out
}

// StaticNames returns the attribute names held in the residual.
func (s *Structure) StaticNames() []string {
	out := make([]string, len(s.staticNames))
	copy(out, s.staticNames)
	return out
}

// AuxEqual compares residuals: same class identity, same name partition,
// structurally equal static values, equal override tables and extras.
func (s *Structure) AuxEqual(other any) bool {
	o, ok := other.(*Structure)
	if !ok {
		return false
	}
	if s.class != o.class {
		return false
	}
	if len(s.order) != len(o.order) || len(s.staticNames) != len(o.staticNames) {
		return false
	}
	for i, n := range s.order {
		if o.order[i] != n {
			return false
		}
	}
	for i, n := range s.staticNames {
		if o.staticNames[i] != n {
			return false
		}
	}
	for i, v := range s.staticValues {
		if !treeutil.Equal(v, o.staticValues[i]) {
			return false
		}
	}
	if !s.overrides.Equal(o.overrides) {
		return false
	}
	if len(s.extras) != len(o.extras) {
		return false
	}
	for i, f := range s.extras {
		if !f.Equal(o.extras[i]) {
			return false
		}
	}
	return true
}

// Flatten partitions the instance one level: dynamic attribute values in
// insertion order, plus the static residual.
func (x *Instance) Flatten() ([]any, *Structure) {
	s := &Structure{
		class:     x.class,
		order:     append([]string(nil), x.names...),
		overrides: x.overrides.Clone(),
		extras:    append([]*field.Field(nil), x.extras...),
	}
	children := make([]any, 0, len(x.names))
	for _, name := range x.names {
		f := x.effectiveField(name)
		if f != nil && f.Static() {
			s.staticNames = append(s.staticNames, name)
			s.staticValues = append(s.staticValues, x.values[name])
			continue
		}
		s.dynamicNames = append(s.dynamicNames, name)
		children = append(children, x.values[name])
	}
	return children, s
}

// UnflattenInstance rebuilds an instance from a residual and dynamic leaf
// values, restoring the original interleaved attribute order. No
// constructor, gate or validator runs.
func UnflattenInstance(s *Structure, leaves []any) (*Instance, error) {
	if len(leaves) != len(s.dynamicNames) {
		return nil, fmt.Errorf("%d leaves for %d dynamic fields: %w",
			len(leaves), len(s.dynamicNames), treeutil.ErrLeafCount)
	}
	x := newInstance(s.class)
	x.overrides = s.overrides.Clone()
	x.extras = append([]*field.Field(nil), s.extras...)

	// Replay the recorded insertion order, drawing each attribute from its
	// partition.
	di, si := 0, 0
	for _, name := range s.order {
		if si < len(s.staticNames) && s.staticNames[si] == name {
			x.install(name, s.staticValues[si])
			si++
			continue
		}
		x.install(name, leaves[di])
		di++
	}
	return x, nil
}

func init() {
	// Wire *Instance into the generic transform once per process.
	_ = treeutil.RegisterNode(reflect.TypeOf((*Instance)(nil)), treeutil.Handler{
		Flatten: func(node any) ([]any, []string, any) {
			x := node.(*Instance)
			children, s := x.Flatten()
			return children, s.DynamicNames(), s
		},
		Unflatten: func(aux any, children []any) (any, error) {
			return UnflattenInstance(aux.(*Structure), children)
		},
	})
}
