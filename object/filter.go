// filter.go — the non-differentiability filter: moving leaves that carry no
// gradient out of the dynamic partition via per-instance overrides.
//
// Filtering never touches the class schema: each marked field gets an
// override-table copy whose metadata gains static+nondiff, so a later
// flatten carries it in the residual. Unfilter removes exactly those
// overrides and nothing else.

package object

import (
	"fmt"
	"reflect"

	"github.com/ymahlau/treeclass/field"
	"github.com/ymahlau/treeclass/treeutil"
)

// IsNonDiff is the value predicate for the where=nil filter mode: true for
// boolean, integer and string scalars, for array-like values whose element
// kind is not floating point, and for callables that are not instances.
// Containers are non-differentiable only when every element is.
func IsNonDiff(v any) bool {
	switch leaf := v.(type) {
	case nil:
		return true
	case *Instance:
		return false
	case []any:
		if len(leaf) == 0 {
			return true
		}
		for _, e := range leaf {
			if !IsNonDiff(e) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, e := range leaf {
			if !IsNonDiff(e) {
				return false
			}
		}
		return true
	}
	// The injected element-kind capability outranks reflection.
	if dt, ok := v.(treeutil.DType); ok {
		return !dt.Floating()
	}

	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Func:
		return true
	case reflect.Slice, reflect.Array:
		switch t.Elem().Kind() {
		case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
			return false
		}
		return true
	}
	return false
}

// FilterNonDiff returns a copy of x with non-differentiable fields moved to
// the static partition. With where=nil the IsNonDiff predicate decides per
// leaf; with a structurally matching instance every true-marked field's
// whole subtree is moved. Any other where type fails with ErrWhereType.
func FilterNonDiff(x *Instance, where any) (*Instance, error) {
	out := overrideCopy(x)
	switch w := where.(type) {
	case nil:
		filterByPredicate(out)
		return out, nil
	case *Instance:
		if err := filterByMask(out, w); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("where is %T: %w", where, ErrWhereType)
	}
}

// Unfilter removes every override whose metadata carries nondiff, restoring
// those fields to the dynamic partition. An instance without such overrides
// comes back unchanged.
func Unfilter(x *Instance) *Instance {
	if !hasNonDiffOverride(x) {
		return x
	}
	out := overrideCopy(x)
	unfilterInPlace(out)
	return out
}

// Freeze moves every field of x (and nested instances) to the static
// partition under frozen metadata, making the whole tree leafless.
func Freeze(x *Instance) *Instance {
	out := overrideCopy(x)
	freezeInPlace(out)
	return out
}

// Unfreeze removes every override carrying frozen metadata.
func Unfreeze(x *Instance) *Instance {
	out := overrideCopy(x)
	unfreezeInPlace(out)
	return out
}

func filterByPredicate(x *Instance) {
	for _, name := range x.Names() {
		f := x.effectiveField(name)
		if f == nil || f.Static() {
			continue
		}
		v := x.values[name]
		if nested, ok := v.(*Instance); ok {
			filterByPredicate(nested)
			continue
		}
		if IsNonDiff(v) {
			markOverride(x, f, field.MetaNonDiff)
		}
	}
}

func filterByMask(x, where *Instance) error {
	if x.class != where.class {
		return fmt.Errorf("where is %s, instance is %s: %w",
			where.class.Name(), x.class.Name(), ErrShapeMismatch)
	}
	for _, name := range x.Names() {
		f := x.effectiveField(name)
		if f == nil || f.Static() {
			continue
		}
		mv, err := where.Get(name)
		if err != nil {
			return fmt.Errorf("where: %w", err)
		}
		if nested, ok := x.values[name].(*Instance); ok {
			nestedWhere, ok := mv.(*Instance)
			if !ok {
				if treeutil.LeafTrue(mv) {
					markOverride(x, f, field.MetaNonDiff)
				}
				continue
			}
			if err := filterByMask(nested, nestedWhere); err != nil {
				return err
			}
			continue
		}
		if treeutil.LeafTrue(mv) {
			markOverride(x, f, field.MetaNonDiff)
		}
	}
	return nil
}

func hasNonDiffOverride(x *Instance) bool {
	for _, name := range x.overrides.Names() {
		if x.overrides.Get(name).NonDiff() {
			return true
		}
	}
	for _, name := range x.names {
		if nested, ok := x.values[name].(*Instance); ok && hasNonDiffOverride(nested) {
			return true
		}
	}
	return false
}

func unfilterInPlace(x *Instance) {
	for _, name := range x.overrides.Names() {
		if x.overrides.Get(name).NonDiff() {
			x.overrides.Delete(name)
		}
	}
	for _, name := range x.names {
		if nested, ok := x.values[name].(*Instance); ok {
			unfilterInPlace(nested)
		}
	}
}

func freezeInPlace(x *Instance) {
	for _, name := range x.Names() {
		f := x.effectiveField(name)
		if f == nil {
			continue
		}
		if nested, ok := x.values[name].(*Instance); ok {
			freezeInPlace(nested)
		}
		if !f.Frozen() {
			markOverride(x, f, field.MetaFrozen)
		}
	}
}

func unfreezeInPlace(x *Instance) {
	for _, name := range x.overrides.Names() {
		if x.overrides.Get(name).Frozen() {
			x.overrides.Delete(name)
		}
	}
	for _, name := range x.names {
		if nested, ok := x.values[name].(*Instance); ok {
			unfreezeInPlace(nested)
		}
	}
}

// overrideCopy clones every instance node, static or dynamic, so mutation
// of the copy (override edits here, attribute writes during an indexed
// call) never reaches the source. Non-instance values stay shared by
// reference as in Copy.
func overrideCopy(x *Instance) *Instance {
	out := &Instance{
		class:     x.class,
		names:     append([]string(nil), x.names...),
		values:    make(map[string]any, len(x.values)),
		extras:    append([]*field.Field(nil), x.extras...),
		overrides: x.overrides.Clone(),
	}
	for k, v := range x.values {
		if nested, ok := v.(*Instance); ok {
			out.values[k] = overrideCopy(nested)
			continue
		}
		out.values[k] = v
	}
	return out
}

// markOverride installs a descriptor copy whose metadata gains static plus
// the given marker, shadowing the class-level field for this instance only.
func markOverride(x *Instance, f *field.Field, marker string) {
	nf, err := f.With(field.WithStatic(), field.WithMetadata(marker, true))
	if err != nil {
		// With only re-validates the declaration it copied; a valid field
		// cannot become invalid by gaining metadata.
		panic(fmt.Sprintf("object: override of %q failed: %v", f.Name(), err))
	}
	x.overrides.Put(nf)
}
