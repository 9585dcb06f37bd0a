package value

import "bytes"

func bothKind(a, b Scalar) (Type, error) {
	if a.Kind() != b.Kind() {
		return None, &MismatchError{Left: a.Kind(), Right: b.Kind()}
	}
	return a.Kind(), nil
}

// Add implements +: Int32 addition or String concatenation.
func Add(a, b Scalar) (Value, error) {
	t, err := bothKind(a, b)
	if err != nil {
		err.(*MismatchError).Op = "+"
		return Value{}, err
	}
	switch t {
	case Int32:
		x, _ := FromScalar(a).Int32()
		y, _ := FromScalar(b).Int32()
		return NewInt32(x + y), nil
	case String:
		x, _ := FromScalar(a).Str()
		y, _ := FromScalar(b).Str()
		return NewString(x + y), nil
	default:
		return Value{}, &OperatorError{Op: "+", Typ: t}
	}
}

func intBinOp(op string, a, b Scalar, f func(x, y int32) int32) (Value, error) {
	t, err := bothKind(a, b)
	if err != nil {
		err.(*MismatchError).Op = op
		return Value{}, err
	}
	if t != Int32 {
		return Value{}, &OperatorError{Op: op, Typ: t}
	}
	x, _ := FromScalar(a).Int32()
	y, _ := FromScalar(b).Int32()
	return NewInt32(f(x, y)), nil
}

// Sub implements binary -.
func Sub(a, b Scalar) (Value, error) { return intBinOp("-", a, b, func(x, y int32) int32 { return x - y }) }

// Mul implements *.
func Mul(a, b Scalar) (Value, error) { return intBinOp("*", a, b, func(x, y int32) int32 { return x * y }) }

// Div implements integer /. Division by zero returns an OperatorError.
func Div(a, b Scalar) (Value, error) {
	y, err := FromScalar(b).Int32()
	if err == nil && y == 0 && a.Kind() == Int32 && b.Kind() == Int32 {
		return Value{}, &OperatorError{Op: "/ (by zero)", Typ: Int32}
	}
	return intBinOp("/", a, b, func(x, y int32) int32 { return x / y })
}

// Mod implements %.
func Mod(a, b Scalar) (Value, error) {
	y, err := FromScalar(b).Int32()
	if err == nil && y == 0 && a.Kind() == Int32 && b.Kind() == Int32 {
		return Value{}, &OperatorError{Op: "% (by zero)", Typ: Int32}
	}
	return intBinOp("%", a, b, func(x, y int32) int32 { return x % y })
}

// Neg implements unary -.
func Neg(a Scalar) (Value, error) {
	if a.Kind() != Int32 {
		return Value{}, &OperatorError{Op: "unary -", Typ: a.Kind()}
	}
	x, _ := FromScalar(a).Int32()
	return NewInt32(-x), nil
}

// Pos implements unary +, a no-op identity on Int32.
func Pos(a Scalar) (Value, error) {
	if a.Kind() != Int32 {
		return Value{}, &OperatorError{Op: "unary +", Typ: a.Kind()}
	}
	return FromScalar(a), nil
}

// And implements &&.
func And(a, b Scalar) (Value, error) { return boolBinOp("&&", a, b, func(x, y bool) bool { return x && y }) }

// Or implements ||.
func Or(a, b Scalar) (Value, error) { return boolBinOp("||", a, b, func(x, y bool) bool { return x || y }) }

// Xor implements ^^.
func Xor(a, b Scalar) (Value, error) { return boolBinOp("^^", a, b, func(x, y bool) bool { return x != y }) }

func boolBinOp(op string, a, b Scalar, f func(x, y bool) bool) (Value, error) {
	t, err := bothKind(a, b)
	if err != nil {
		err.(*MismatchError).Op = op
		return Value{}, err
	}
	if t != Bool {
		return Value{}, &OperatorError{Op: op, Typ: t}
	}
	x, _ := FromScalar(a).Bool()
	y, _ := FromScalar(b).Bool()
	return NewBool(f(x, y)), nil
}

// Not implements logical negation.
func Not(a Scalar) (Value, error) {
	if a.Kind() != Bool {
		return Value{}, &OperatorError{Op: "!", Typ: a.Kind()}
	}
	x, _ := FromScalar(a).Bool()
	return NewBool(!x), nil
}

// Compare orders a against b: -1, 0 or 1. Int32 and String compare
// naturally; Bool orders false before true; Bytes compare byte by byte
// (bytes.Compare, the same order as a raw memcmp).
func Compare(a, b Scalar) (int, error) {
	t, err := bothKind(a, b)
	if err != nil {
		err.(*MismatchError).Op = "compare"
		return 0, err
	}
	switch t {
	case Int32:
		x, _ := FromScalar(a).Int32()
		y, _ := FromScalar(b).Int32()
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		default:
			return 0, nil
		}
	case String:
		x, _ := FromScalar(a).Str()
		y, _ := FromScalar(b).Str()
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		default:
			return 0, nil
		}
	case Bool:
		x, _ := FromScalar(a).Bool()
		y, _ := FromScalar(b).Bool()
		if x == y {
			return 0, nil
		}
		if !x && y {
			return -1, nil
		}
		return 1, nil
	case Bytes:
		x, _ := FromScalar(a).Bs()
		y, _ := FromScalar(b).Bs()
		return bytes.Compare(x, y), nil
	default:
		return 0, &OperatorError{Op: "compare", Typ: t}
	}
}

// Equal reports whether a and b are equal; it returns false, not an
// error, when their types differ.
func Equal(a, b Scalar) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	c, err := Compare(a, b)
	return err == nil && c == 0
}
