// validators.go — shipped field validators: tag rules, type, enum and range.
//
// Validators are plain functions (see Validator in field.go); these
// constructors cover the common declarative checks so schemas rarely need
// hand-written ones. Rule delegates to go-playground/validator tag
// expressions, the same engine the ecosystem uses for struct tags.

package field

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ruleEngine is shared by all Rule validators; validator.Validate is
// goroutine-safe and caches compiled tag expressions internally.
var ruleEngine = validator.New()

// Rule returns a validator enforcing a go-playground/validator tag
// expression on the value, e.g. "gte=0,lte=1" or "oneof=relu tanh".
// The engine's error is returned as-is (wrapped with the rule text) so
// callers can inspect validator.ValidationErrors.
func Rule(tag string) Validator {
	return func(value any) (any, error) {
		if err := ruleEngine.Var(value, tag); err != nil {
			return nil, fmt.Errorf("rule %q: %w", tag, err)
		}
		return value, nil
	}
}

// TypeOf returns a validator requiring the value's runtime type to be
// assignable to want. A nil value never satisfies TypeOf.
func TypeOf(want reflect.Type) Validator {
	return func(value any) (any, error) {
		if value == nil || !reflect.TypeOf(value).AssignableTo(want) {
			return nil, fmt.Errorf("expected %v, got %T: %w", want, value, ErrWrongType)
		}
		return value, nil
	}
}

// OneOf returns a validator requiring the value to deeply equal one of the
// allowed values.
func OneOf(allowed ...any) Validator {
	return func(value any) (any, error) {
		for _, a := range allowed {
			if reflect.DeepEqual(value, a) {
				return value, nil
			}
		}
		return nil, fmt.Errorf("value %v not in %v: %w", value, allowed, ErrNotAllowed)
	}
}

// Range returns a validator requiring a numeric value within [min, max].
// Non-numeric values fail with ErrWrongType.
func Range(min, max float64) Validator {
	return func(value any) (any, error) {
		x, ok := asFloat(value)
		if !ok {
			return nil, fmt.Errorf("expected numeric, got %T: %w", value, ErrWrongType)
		}
		if x < min || x > max {
			return nil, fmt.Errorf("value %v outside [%v, %v]: %w", value, min, max, ErrOutOfRange)
		}
		return value, nil
	}
}

// asFloat widens any Go numeric kind to float64 for range checks.
func asFloat(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
