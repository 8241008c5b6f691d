// leafwise.go — leaf-wise operator dispatch.
//
// Operand rules: a same-structure instance applies the operator pairwise
// per matching leaf; a scalar-like value broadcasts to every leaf; anything
// else fails with ErrOperand naming the type. Unary application is a
// separate entry point rather than an absent operand.

package object

import (
	"fmt"
	"reflect"

	"github.com/ymahlau/treeclass/treeutil"
)

// BinaryOp combines two leaf values.
type BinaryOp func(a, b any) (any, error)

// UnaryOp transforms one leaf value.
type UnaryOp func(a any) (any, error)

// ApplyUnary maps op over every leaf of x.
func ApplyUnary(op UnaryOp, x *Instance) (*Instance, error) {
	out, err := treeutil.Map(op, x)
	if err != nil {
		return nil, err
	}
	return out.(*Instance), nil
}

// ApplyBinary applies op leaf-wise: pairwise against a same-structure
// instance, broadcast against a scalar-like value.
func ApplyBinary(op BinaryOp, lhs *Instance, rhs any) (*Instance, error) {
	if r, ok := rhs.(*Instance); ok {
		out, err := treeutil.Map2(op, lhs, r)
		if err != nil {
			return nil, err
		}
		return out.(*Instance), nil
	}
	if !scalarLike(rhs) {
		return nil, fmt.Errorf("%T: %w", rhs, ErrOperand)
	}
	out, err := treeutil.Map(func(leaf any) (any, error) { return op(leaf, rhs) }, lhs)
	if err != nil {
		return nil, err
	}
	return out.(*Instance), nil
}

// Add applies leaf-wise addition (string concatenation for string leaves).
func Add(lhs *Instance, rhs any) (*Instance, error) { return ApplyBinary(addOp, lhs, rhs) }

// Sub applies leaf-wise subtraction.
func Sub(lhs *Instance, rhs any) (*Instance, error) { return ApplyBinary(subOp, lhs, rhs) }

// Mul applies leaf-wise multiplication.
func Mul(lhs *Instance, rhs any) (*Instance, error) { return ApplyBinary(mulOp, lhs, rhs) }

// Neg negates every numeric leaf.
func Neg(x *Instance) (*Instance, error) {
	return ApplyUnary(func(a any) (any, error) { return subFromZero(a) }, x)
}

// Eq builds a boolean tree. The comparison has extended semantics by
// operand kind: a reflect.Type yields a per-leaf is-instance tree; a string
// yields a per-field tree marking leaves under fields of that name; a
// map[string]any yields a per-field tree marking fields whose metadata is a
// superset of it. Anything else compares leaf values (pairwise for a
// same-structure instance, broadcast otherwise).
func Eq(lhs *Instance, rhs any) (*Instance, error) {
	switch r := rhs.(type) {
	case reflect.Type:
		return MaskByType(lhs, r), nil
	case string:
		return MaskByName(lhs, r), nil
	case map[string]any:
		return MaskByMetadata(lhs, r), nil
	}
	return ApplyBinary(func(a, b any) (any, error) {
		return treeutil.LeafEqual(a, b), nil
	}, lhs, rhs)
}

// Ne is the complement of Eq, with the same extended operand semantics.
func Ne(lhs *Instance, rhs any) (*Instance, error) {
	eq, err := Eq(lhs, rhs)
	if err != nil {
		return nil, err
	}
	return ApplyUnary(func(a any) (any, error) {
		b, ok := a.(bool)
		if !ok {
			return nil, fmt.Errorf("%T: %w", a, ErrOperand)
		}
		return !b, nil
	}, eq)
}

// scalarLike reports whether v may broadcast over every leaf.
func scalarLike(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(treeutil.DType); ok {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Slice, reflect.Array:
		switch reflect.TypeOf(v).Elem().Kind() {
		case reflect.Bool,
			reflect.Int, reflect.Int64, reflect.Float32, reflect.Float64:
			return true
		}
	}
	return false
}

var (
	addOp BinaryOp = func(a, b any) (any, error) { return numeric("+", a, b) }
	subOp BinaryOp = func(a, b any) (any, error) { return numeric("-", a, b) }
	mulOp BinaryOp = func(a, b any) (any, error) { return numeric("*", a, b) }
)

func subFromZero(a any) (any, error) {
	switch v := a.(type) {
	case int:
		return -v, nil
	case int64:
		return -v, nil
	case float64:
		return -v, nil
	case float32:
		return -v, nil
	case []float64:
		out := make([]float64, len(v))
		for i, e := range v {
			out[i] = -e
		}
		return out, nil
	case []int:
		out := make([]int, len(v))
		for i, e := range v {
			out[i] = -e
		}
		return out, nil
	}
	return nil, fmt.Errorf("%T: %w", a, ErrOperand)
}

// numeric evaluates one arithmetic operator over the supported leaf value
// shapes: ints, floats (ints widen when mixed), strings for "+", and
// []float64/[]int elementwise with scalar broadcast and length checks.
func numeric(op string, a, b any) (any, error) {
	if as, ok := a.(string); ok {
		bs, sok := b.(string)
		if !sok || op != "+" {
			return nil, fmt.Errorf("%s on %T and %T: %w", op, a, b, ErrOperand)
		}
		return as + bs, nil
	}

	switch av := a.(type) {
	case []float64:
		return sliceFloatOp(op, av, b)
	case []int:
		return sliceIntOp(op, av, b)
	}

	ai, aIsInt, af, aok := asNumber(a)
	bi, bIsInt, bf, bok := asNumber(b)
	if !aok || !bok {
		return nil, fmt.Errorf("%s on %T and %T: %w", op, a, b, ErrOperand)
	}
	if aIsInt && bIsInt {
		switch op {
		case "+":
			return ai + bi, nil
		case "-":
			return ai - bi, nil
		case "*":
			return ai * bi, nil
		}
	}
	switch op {
	case "+":
		return af + bf, nil
	case "-":
		return af - bf, nil
	case "*":
		return af * bf, nil
	}
	return nil, fmt.Errorf("%s: %w", op, ErrOperand)
}

func asNumber(v any) (i int, isInt bool, f float64, ok bool) {
	switch n := v.(type) {
	case int:
		return n, true, float64(n), true
	case int64:
		return int(n), true, float64(n), true
	case float32:
		return 0, false, float64(n), true
	case float64:
		return 0, false, n, true
	}
	return 0, false, 0, false
}

func sliceFloatOp(op string, a []float64, b any) (any, error) {
	apply := func(x, y float64) (float64, error) {
		switch op {
		case "+":
			return x + y, nil
		case "-":
			return x - y, nil
		case "*":
			return x * y, nil
		}
		return 0, fmt.Errorf("%s: %w", op, ErrOperand)
	}
	out := make([]float64, len(a))
	switch bv := b.(type) {
	case []float64:
		if len(bv) != len(a) {
			return nil, fmt.Errorf("lengths %d and %d: %w", len(a), len(bv), ErrShapeMismatch)
		}
		for i, x := range a {
			y, err := apply(x, bv[i])
			if err != nil {
				return nil, err
			}
			out[i] = y
		}
		return out, nil
	default:
		_, _, bf, ok := asNumber(b)
		if !ok {
			return nil, fmt.Errorf("%s on []float64 and %T: %w", op, b, ErrOperand)
		}
		for i, x := range a {
			y, err := apply(x, bf)
			if err != nil {
				return nil, err
			}
			out[i] = y
		}
		return out, nil
	}
}

func sliceIntOp(op string, a []int, b any) (any, error) {
	apply := func(x, y int) (int, error) {
		switch op {
		case "+":
			return x + y, nil
		case "-":
			return x - y, nil
		case "*":
			return x * y, nil
		}
		return 0, fmt.Errorf("%s: %w", op, ErrOperand)
	}
	out := make([]int, len(a))
	switch bv := b.(type) {
	case []int:
		if len(bv) != len(a) {
			return nil, fmt.Errorf("lengths %d and %d: %w", len(a), len(bv), ErrShapeMismatch)
		}
		for i, x := range a {
			y, err := apply(x, bv[i])
			if err != nil {
				return nil, err
			}
			out[i] = y
		}
		return out, nil
	default:
		bi, isInt, _, ok := asNumber(b)
		if !ok || !isInt {
			return nil, fmt.Errorf("%s on []int and %T: %w", op, b, ErrOperand)
		}
		for i, x := range a {
			y, err := apply(x, bi)
			if err != nil {
				return nil, err
			}
			out[i] = y
		}
		return out, nil
	}
}
