// errors.go — sentinel errors for the schema package.
//
// Error policy: sentinel variables only; branch with errors.Is; context is
// attached by %w wrapping at the call site. All errors here are
// declaration-time configuration errors.

package schema

import "errors"

// ErrEmptyName indicates a Schema was declared with an empty name.
var ErrEmptyName = errors.New("schema: name is empty")

// ErrNilField indicates a nil descriptor in a declaration list.
var ErrNilField = errors.New("schema: nil field descriptor")

// ErrDuplicateField indicates the same field name appears twice in one
// declaration list. Shadowing an *ancestor* entry via Extend is legal; a
// duplicate within a single list is not.
var ErrDuplicateField = errors.New("schema: duplicate field name")

// ErrRequiredAfterDefault indicates a required positional field declared
// after a defaulted positional field, which would make the synthesized
// constructor shape unsatisfiable. Mark the field kw-only or give it a
// default.
var ErrRequiredAfterDefault = errors.New("schema: required positional field follows defaulted field")

// ErrUnknownField indicates a lookup for a name absent from the field map.
var ErrUnknownField = errors.New("schema: unknown field")

// ErrUnknownTypeTag indicates a YAML schema document used a type tag outside
// the closed set (bool, int, float, string, any, list, map).
var ErrUnknownTypeTag = errors.New("schema: unknown type tag")

// ErrBadDocument indicates a malformed YAML schema document.
var ErrBadDocument = errors.New("schema: malformed schema document")
