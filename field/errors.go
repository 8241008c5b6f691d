// errors.go — sentinel errors for the field package.
//
// Error policy (explicit and strict):
//   - Only sentinel variables (package-level) are exposed.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are NEVER wrapped with formatted strings at definition site;
//     implementations attach context with %w wrapping.
//   - All declaration errors surface at construction time (New/With), never
//     at instance-construction time.

package field

import "errors"

// ErrEmptyName indicates a Field was declared with an empty name.
// Usage: if errors.Is(err, field.ErrEmptyName) { /* fix the declaration */ }.
var ErrEmptyName = errors.New("field: name is empty")

// ErrDefaultAndFactory indicates both a default value and a default factory
// were supplied for one Field. Exactly one of the two may be set.
var ErrDefaultAndFactory = errors.New("field: both default and default factory set")

// ErrMutableDefault indicates a mutable literal (slice, map or func value)
// was supplied as a default. Shared mutable defaults alias across instances;
// declare a per-call producer with WithFactory instead.
var ErrMutableDefault = errors.New("field: mutable default value; use WithFactory")

// ErrNilFactory indicates WithFactory was called with a nil producer.
var ErrNilFactory = errors.New("field: nil default factory")

// ErrNilValidator indicates a nil entry in the validators sequence.
var ErrNilValidator = errors.New("field: nil validator")

// ErrWrongType indicates a validator rejected a value because of its runtime
// type (TypeOf validator).
var ErrWrongType = errors.New("field: value has wrong type")

// ErrOutOfRange indicates a numeric validator rejected a value outside its
// closed interval (Range validator).
var ErrOutOfRange = errors.New("field: value out of range")

// ErrNotAllowed indicates an enumeration validator rejected a value absent
// from its allowed set (OneOf validator).
var ErrNotAllowed = errors.New("field: value not in allowed set")
