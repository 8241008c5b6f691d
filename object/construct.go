// construct.go — the synthesized constructor and the construction state
// machine.
//
// Binding rules (when no custom InitFunc is installed):
//   - Positional arguments bind to Init fields in declaration order,
//     skipping kw-only fields.
//   - A trailing Kw argument binds by name; kw-only fields can only be
//     bound this way.
//   - Fields with defaults (or factories, evaluated per call at bind time)
//     fill in when unbound; Init=false fields take their default directly.
//   - A field left unbound with no default stays unset; the completeness
//     gate decides, so a post-init hook may still assign it.

package object

import (
	"fmt"
	"strings"
)

// New constructs an instance: binds arguments (or runs the custom init)
// under a mutable scope, runs the post-init hook, checks field completeness
// and freezes. A trailing Kw argument supplies keyword bindings.
func (c *Class) New(args ...any) (*Instance, error) {
	kw := Kw(nil)
	if n := len(args); n > 0 {
		if k, ok := args[n-1].(Kw); ok {
			kw = k
			args = args[:n-1]
		}
	}

	x := newInstance(c)
	built, err := WithMutable(x, false, func(self *Instance) error {
		if c.initFn != nil {
			if err := c.initFn(self, args, kw); err != nil {
				return err
			}
		} else if err := c.bind(self, args, kw); err != nil {
			return err
		}
		if c.postInit != nil {
			if err := c.postInit(self); err != nil {
				return err
			}
		}
		return c.checkComplete(self)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	return built, nil
}

// MustNew is New panicking on construction errors; for fixtures and tests.
func (c *Class) MustNew(args ...any) *Instance {
	x, err := c.New(args...)
	if err != nil {
		panic(err)
	}
	return x
}

// bind is the synthesized constructor body.
func (c *Class) bind(x *Instance, args []any, kw Kw) error {
	used := make(map[string]struct{}, len(kw))
	pos := 0

	for _, f := range c.schema.Fields() {
		name := f.Name()

		if !f.Init() {
			if v, ok := f.DefaultValue(); ok {
				if err := x.Set(name, v); err != nil {
					return err
				}
			}
			continue
		}

		bound := false
		if !f.KwOnly() && pos < len(args) {
			if _, dup := kw[name]; dup {
				return fmt.Errorf("%q: %w", name, ErrDuplicateArgument)
			}
			if err := x.Set(name, args[pos]); err != nil {
				return err
			}
			pos++
			bound = true
		} else if v, ok := kw[name]; ok {
			if err := x.Set(name, v); err != nil {
				return err
			}
			used[name] = struct{}{}
			bound = true
		}

		if !bound {
			if v, ok := f.DefaultValue(); ok {
				if err := x.Set(name, v); err != nil {
					return err
				}
			}
			// Required and unbound: left unset for the completeness gate.
		}
	}

	if pos < len(args) {
		return fmt.Errorf("%d given, %d bound: %w", len(args), pos, ErrTooManyArgs)
	}
	for name := range kw {
		if _, ok := used[name]; ok {
			continue
		}
		// Unconsumed keywords: undeclared names and init=false fields;
		// positional/keyword double binding already errored above.
		return fmt.Errorf("%q: %w", name, ErrUnknownArgument)
	}
	return nil
}

// checkComplete is the only completeness gate: every declared field must
// hold a value once construction (including the post-init hook) finishes.
func (c *Class) checkComplete(x *Instance) error {
	missing := make([]string, 0, 2)
	for _, name := range c.schema.Names() {
		if !x.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrIncomplete)
	}
	return nil
}
