// Package field defines the Field descriptor: the declarative unit describing
// one structural slot of a schema-driven object.
//
// A Field carries a name, a declared type tag, an optional default value or
// zero-argument default factory (never both), inclusion flags (Init, Repr,
// Compare, KwOnly), an ordered metadata mapping, and an ordered sequence of
// validators applied on every assignment attempt.
//
// Invariants:
//
//   - A Field is immutable once constructed; With(...) produces a copy with
//     overrides and never mutates in place.
//   - At most one of default / default factory is set; violating this is a
//     declaration-time error (ErrDefaultAndFactory), never deferred.
//   - Mutable literal defaults (slices, maps, funcs) are rejected with
//     ErrMutableDefault; use WithFactory instead.
//
// Metadata flags with structural meaning:
//
//	static — the field is excluded from the leaf sequence and becomes part
//	         of the structural descriptor instead.
//	frozen — like static, but attributed to whole-tree freezing.
//	nondiff — like static, but attributed to non-differentiability
//	          filtering; removable by the inverse filter.
//
// The package also ships validators in the spirit of range/enum/type checks:
// Rule (go-playground/validator tag expressions), TypeOf, OneOf and Range.
//
// Error policy: sentinel errors only (errors.go); branch with errors.Is.
package field
