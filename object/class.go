// class.go — Class: a schema plus construction hooks and named methods.
//
// A Class is the runtime identity of one structured type. Classes are built
// once (typically at package level), registered idempotently, and shared by
// every instance.

package object

import (
	"fmt"
	"sync"

	"github.com/ymahlau/treeclass/schema"
)

// Kw carries keyword constructor arguments; pass one as the trailing
// argument of Class.New.
type Kw map[string]any

// Method is a named method callable through the indexer's call form. It may
// mutate self: the indexer always invokes methods on a registered copy.
type Method func(self *Instance, args ...any) (any, error)

// InitFunc replaces the synthesized constructor body. It runs under the
// mutable scope of the fresh instance; the completeness check still applies
// afterwards.
type InitFunc func(self *Instance, args []any, kw Kw) error

// PostInitFunc runs after construction binding, still mutable; the place to
// derive dependent fields.
type PostInitFunc func(self *Instance) error

// Class combines a schema with hooks and methods.
type Class struct {
	schema   *schema.Schema
	initFn   InitFunc
	postInit PostInitFunc
	methods  map[string]Method
}

// ClassOption configures a Class during construction.
type ClassOption func(*Class) error

// WithInit installs a custom constructor body; without one the constructor
// is synthesized from the schema (see construct.go).
func WithInit(fn InitFunc) ClassOption {
	return func(c *Class) error { c.initFn = fn; return nil }
}

// WithPostInit installs the post-init hook.
func WithPostInit(fn PostInitFunc) ClassOption {
	return func(c *Class) error { c.postInit = fn; return nil }
}

// WithMethod registers a named method callable via x.At(Name(name)).Call.
func WithMethod(name string, m Method) ClassOption {
	return func(c *Class) error {
		if name == "" || m == nil {
			return ErrNilMethod
		}
		c.methods[name] = m
		return nil
	}
}

// NewClass builds a Class over s and registers it. Registration is
// idempotent; calling NewClass twice yields two distinct class identities,
// each registered once.
func NewClass(s *schema.Schema, opts ...ClassOption) (*Class, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	c := &Class{schema: s, methods: make(map[string]Method)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("class %q: %w", s.Name(), err)
		}
	}
	Register(c)
	return c, nil
}

// MustNewClass is NewClass panicking on declaration errors.
func MustNewClass(s *schema.Schema, opts ...ClassOption) *Class {
	c, err := NewClass(s, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Schema returns the class's field map.
func (c *Class) Schema() *schema.Schema { return c.schema }

// Name returns the class name (the schema name).
func (c *Class) Name() string { return c.schema.Name() }

// Method returns the named method, or nil.
func (c *Class) Method(name string) Method { return c.methods[name] }

// classRegistry tracks registered class identities so the registration
// helper can run any number of times per class without double-registering.
var classRegistry = struct {
	sync.Mutex
	classes map[*Class]struct{}
}{classes: make(map[*Class]struct{})}

// Register records c in the class registry; keyed by identity, idempotent.
// The instance node type itself is registered with treeutil once at package
// init (flatten.go), so Register has no per-class transform wiring to do.
func Register(c *Class) {
	classRegistry.Lock()
	defer classRegistry.Unlock()
	classRegistry.classes[c] = struct{}{}
}

// Registered reports whether c has been registered.
func Registered(c *Class) bool {
	classRegistry.Lock()
	defer classRegistry.Unlock()
	_, ok := classRegistry.classes[c]
	return ok
}
