// field.go — the Field descriptor and its declaration-time construction.
//
// Construction policy:
//   - New validates the whole declaration and returns a sentinel error on any
//     misconfiguration; nothing is deferred to instance construction.
//   - Applied options are order-independent except that later options of the
//     same kind win (last WithDefault wins, validators append).
//   - With(...) is the only way to derive a changed descriptor; it copies.

package field

import (
	"fmt"
	"reflect"
)

// Convenience type tags for the common declared types.
var (
	// Bool is the declared-type tag for boolean fields.
	Bool = reflect.TypeOf(false)
	// Int is the declared-type tag for integer fields.
	Int = reflect.TypeOf(int(0))
	// Float is the declared-type tag for floating-point fields.
	Float = reflect.TypeOf(float64(0))
	// String is the declared-type tag for string fields.
	String = reflect.TypeOf("")
	// Any is the declared-type tag for fields holding arbitrary values.
	Any = reflect.TypeOf((*any)(nil)).Elem()
)

// Validator inspects (and possibly coerces) a value on assignment.
// Validators run in declaration order, each receiving the previous return
// value; a validator that fails returns a non-nil error and the assignment
// is rejected with the original error kind preserved.
type Validator func(value any) (any, error)

// Field describes one structural slot: name, declared type, default
// behavior, inclusion flags, metadata and validators. Immutable once
// constructed.
type Field struct {
	name       string
	typ        reflect.Type
	def        any
	hasDefault bool
	factory    func() any
	init       bool
	repr       bool
	compare    bool
	kwOnly     bool
	metadata   *Metadata
	validators []Validator
}

// Option configures a Field during construction.
type Option func(*Field) error

// WithDefault sets the default value. Mutable literals (slices, maps, func
// values) are rejected at construction with ErrMutableDefault.
func WithDefault(value any) Option {
	return func(f *Field) error {
		f.def = value
		f.hasDefault = true
		return nil
	}
}

// WithFactory sets a zero-argument producer evaluated once per construction
// to supply the field's default value.
func WithFactory(factory func() any) Option {
	return func(f *Field) error {
		if factory == nil {
			return ErrNilFactory
		}
		f.factory = factory
		return nil
	}
}

// WithInit controls whether the field is bound from constructor arguments.
// Fields with init=false take their default (or factory product) directly.
func WithInit(init bool) Option {
	return func(f *Field) error { f.init = init; return nil }
}

// WithRepr controls whether the field participates in rendered output.
func WithRepr(repr bool) Option {
	return func(f *Field) error { f.repr = repr; return nil }
}

// WithCompare controls whether the field participates in comparisons.
func WithCompare(compare bool) Option {
	return func(f *Field) error { f.compare = compare; return nil }
}

// WithKwOnly forces the field to be bound by name, never positionally.
func WithKwOnly() Option {
	return func(f *Field) error { f.kwOnly = true; return nil }
}

// WithStatic marks the field structural: excluded from the leaf sequence and
// carried in the structural descriptor instead.
func WithStatic() Option {
	return func(f *Field) error {
		f.metadata = f.metadata.Set(MetaStatic, true)
		return nil
	}
}

// WithFrozen marks the field frozen (static + frozen metadata): excluded
// from the leaf sequence and from leaf-wise transforms.
func WithFrozen() Option {
	return func(f *Field) error {
		f.metadata = f.metadata.Set(MetaStatic, true)
		f.metadata = f.metadata.Set(MetaFrozen, true)
		return nil
	}
}

// WithMetadata sets one free-form metadata entry.
func WithMetadata(key string, value any) Option {
	return func(f *Field) error {
		f.metadata = f.metadata.Set(key, value)
		return nil
	}
}

// WithValidators appends validators, run in the given order on assignment.
func WithValidators(validators ...Validator) Option {
	return func(f *Field) error {
		for i, v := range validators {
			if v == nil {
				return fmt.Errorf("index %d: %w", i, ErrNilValidator)
			}
		}
		f.validators = append(f.validators, validators...)
		return nil
	}
}

// New constructs a Field descriptor named name with declared type typ.
// A nil typ defaults to Any. All declaration errors surface here.
func New(name string, typ reflect.Type, opts ...Option) (*Field, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if typ == nil {
		typ = Any
	}
	f := &Field{
		name:     name,
		typ:      typ,
		init:     true,
		repr:     true,
		compare:  true,
		metadata: NewMetadata(),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}
	if f.hasDefault && f.factory != nil {
		return nil, fmt.Errorf("field %q: %w", name, ErrDefaultAndFactory)
	}
	if f.hasDefault && f.def != nil && isMutableKind(reflect.TypeOf(f.def).Kind()) {
		return nil, fmt.Errorf("field %q: default %v: %w", name, f.def, ErrMutableDefault)
	}
	return f, nil
}

// MustNew is New panicking on declaration errors; intended for package-level
// schema declarations where a misdeclaration is a programming error.
func MustNew(name string, typ reflect.Type, opts ...Option) *Field {
	f, err := New(name, typ, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// With returns a copy of f with the given options applied; f is unchanged.
func (f *Field) With(opts ...Option) (*Field, error) {
	out := f.clone()
	for _, opt := range opts {
		if err := opt(out); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	if out.hasDefault && out.factory != nil {
		return nil, fmt.Errorf("field %q: %w", f.name, ErrDefaultAndFactory)
	}
	return out, nil
}

// Rename returns a copy of f carrying a new name and declared type; used
// when a descriptor template is filled in from a schema declaration.
func (f *Field) Rename(name string, typ reflect.Type) (*Field, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	out := f.clone()
	out.name = name
	if typ != nil {
		out.typ = typ
	}
	return out, nil
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Type returns the declared type tag.
func (f *Field) Type() reflect.Type { return f.typ }

// Default returns the declared default value and whether one is present.
// Factories are not evaluated here; see DefaultValue.
func (f *Field) Default() (any, bool) { return f.def, f.hasDefault }

// HasFactory reports whether a default factory is declared.
func (f *Field) HasFactory() bool { return f.factory != nil }

// DefaultValue evaluates the field's default: the declared value, or one
// fresh product of the factory. ok is false when the field is required.
func (f *Field) DefaultValue() (value any, ok bool) {
	if f.hasDefault {
		return f.def, true
	}
	if f.factory != nil {
		return f.factory(), true
	}
	return nil, false
}

// Required reports whether the field has neither default nor factory.
func (f *Field) Required() bool { return !f.hasDefault && f.factory == nil }

// Init reports whether the field is bound from constructor arguments.
func (f *Field) Init() bool { return f.init }

// Repr reports whether the field participates in rendered output.
func (f *Field) Repr() bool { return f.repr }

// Compare reports whether the field participates in comparisons.
func (f *Field) Compare() bool { return f.compare }

// KwOnly reports whether the field must be bound by name.
func (f *Field) KwOnly() bool { return f.kwOnly }

// Metadata returns the ordered metadata mapping (immutable).
func (f *Field) Metadata() *Metadata { return f.metadata }

// Static reports whether the field is structural (excluded from leaves).
func (f *Field) Static() bool { return f.metadata.Bool(MetaStatic) }

// Frozen reports whether the field carries the frozen marker.
func (f *Field) Frozen() bool { return f.metadata.Bool(MetaFrozen) }

// NonDiff reports whether the field carries the non-differentiability marker.
func (f *Field) NonDiff() bool { return f.metadata.Bool(MetaNonDiff) }

// Validate threads value through the validators in declaration order and
// returns the final value. The first failing validator aborts; its error is
// wrapped with the owning field name but keeps its original kind.
func (f *Field) Validate(value any) (any, error) {
	var err error
	for _, v := range f.validators {
		if value, err = v(value); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	return value, nil
}

// Equal reports deep descriptor equality: same name, type, defaults,
// inclusion flags and metadata. Validators and factories are compared by
// presence only (func values have no useful equality).
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.name == other.name &&
		f.typ == other.typ &&
		f.hasDefault == other.hasDefault &&
		reflect.DeepEqual(f.def, other.def) &&
		(f.factory != nil) == (other.factory != nil) &&
		f.init == other.init &&
		f.repr == other.repr &&
		f.compare == other.compare &&
		f.kwOnly == other.kwOnly &&
		len(f.validators) == len(other.validators) &&
		f.metadata.Equal(other.metadata)
}

func (f *Field) clone() *Field {
	out := *f
	out.validators = make([]Validator, len(f.validators))
	copy(out.validators, f.validators)
	// Metadata is copy-on-write already; sharing is safe.
	return &out
}

// isMutableKind reports whether a default of this kind would alias shared
// mutable state across instances.
func isMutableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
