// errors.go — sentinel errors for the object package.
//
// Error policy: sentinel variables only; branch with errors.Is; context
// (attribute names, type names, offending kinds) is attached by %w wrapping
// at the call site. Out-of-place operations build into fresh copies and
// return errors before committing anything; in-place scoped mutation always
// reverts the mutable registration but never rolls back attribute values.

package object

import "errors"

// ErrNilSchema indicates NewClass was given a nil schema.
var ErrNilSchema = errors.New("object: nil schema")

// ErrNilMethod indicates WithMethod was given a nil function or empty name.
var ErrNilMethod = errors.New("object: nil method or empty method name")

// ErrImmutable indicates attribute assignment or deletion outside a mutable
// scope. Recover by switching to the out-of-place indexed form:
// x.At(Name(k)).Set(v).
var ErrImmutable = errors.New("object: instance is immutable outside a mutable scope")

// ErrUnknownAttribute indicates access to a name that is neither a declared
// field nor a registered extra field of the instance.
var ErrUnknownAttribute = errors.New("object: unknown attribute")

// ErrIncomplete indicates one or more required fields were left unassigned
// after construction's post-init hook; the construction attempt is fatal and
// no instance is returned.
var ErrIncomplete = errors.New("object: uninitialized fields after construction")

// ErrTooManyArgs indicates more positional constructor arguments than
// positional fields.
var ErrTooManyArgs = errors.New("object: too many positional arguments")

// ErrUnknownArgument indicates a keyword constructor argument naming no
// declared field.
var ErrUnknownArgument = errors.New("object: unknown constructor argument")

// ErrDuplicateArgument indicates a field bound both positionally and by
// keyword in one construction.
var ErrDuplicateArgument = errors.New("object: field bound twice")

// ErrBadSelector indicates an indexed-path key of an unsupported kind for
// the addressed subtree (e.g. a negative position).
var ErrBadSelector = errors.New("object: unsupported selector key")

// ErrShapeMismatch indicates a boolean-mask selector (or filter where-mask)
// whose structure does not match the addressed subtree. Raised at
// resolution time, before any copy is committed.
var ErrShapeMismatch = errors.New("object: selector shape does not match subtree")

// ErrCallKey indicates a method-call path containing a non-string key;
// calls resolve by attribute access and require Name keys throughout.
var ErrCallKey = errors.New("object: method-call paths require name keys")

// ErrNotCallable indicates the method-call target names no method of the
// addressed instance.
var ErrNotCallable = errors.New("object: target is not a callable method")

// ErrOperand indicates a leaf-wise operator received a right-hand operand
// of an unsupported type; the message names the offending type.
var ErrOperand = errors.New("object: operator not implemented for operand type")

// ErrWhereType indicates a filter where-argument that is neither nil nor a
// structurally matching instance; the message names the offending type.
var ErrWhereType = errors.New("object: unsupported where argument type")
