package ast

import "github.com/dbohdan/memdb/value"

// Fold performs bottom-up constant folding: any Internal node whose
// operand(s) are Literal leaves is replaced by a single Literal leaf
// holding the computed result. It mirrors the parser's practice of
// simplifying a WHERE expression once, immediately after parsing,
// rather than re-simplifying it on every row.
func Fold(e Expr) (Expr, error) {
	n, ok := e.(*Internal)
	if !ok {
		return e, nil
	}

	left, err := Fold(n.Left)
	if err != nil {
		return nil, err
	}
	n.Left = left

	if n.Right == nil {
		lit, ok := n.Left.(*Literal)
		if !ok {
			return n, nil
		}
		v, err := foldUnary(n.Op, lit.Val)
		if err != nil {
			return nil, err
		}
		return &Literal{Val: v}, nil
	}

	right, err := Fold(n.Right)
	if err != nil {
		return nil, err
	}
	n.Right = right

	lLit, lok := n.Left.(*Literal)
	rLit, rok := n.Right.(*Literal)
	if !lok || !rok {
		return n, nil
	}
	v, err := foldBinary(n.Op, lLit.Val, rLit.Val)
	if err != nil {
		return nil, err
	}
	return &Literal{Val: v}, nil
}

func foldUnary(op Op, v value.Value) (value.Value, error) {
	switch op {
	case PLS:
		return value.Pos(v)
	case MNS:
		return value.Neg(v)
	case NOT:
		return value.Not(v)
	default:
		return value.Value{}, &value.OperatorError{Op: op.String(), Typ: v.Kind()}
	}
}

func foldBinary(op Op, l, r value.Value) (value.Value, error) {
	switch op {
	case PLS:
		return value.Add(l, r)
	case MNS:
		return value.Sub(l, r)
	case MUL:
		return value.Mul(l, r)
	case DIV:
		return value.Div(l, r)
	case MOD:
		return value.Mod(l, r)
	case AND:
		return value.And(l, r)
	case OR:
		return value.Or(l, r)
	case XOR:
		return value.Xor(l, r)
	case EQ, NE, LT, GT, LE, GE:
		return foldRel(op, l, r)
	default:
		return value.Value{}, &value.OperatorError{Op: op.String(), Typ: l.Kind()}
	}
}

func foldRel(op Op, l, r value.Value) (value.Value, error) {
	c, err := value.Compare(l, r)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case EQ:
		return value.NewBool(c == 0), nil
	case NE:
		return value.NewBool(c != 0), nil
	case LT:
		return value.NewBool(c < 0), nil
	case GT:
		return value.NewBool(c > 0), nil
	case LE:
		return value.NewBool(c <= 0), nil
	case GE:
		return value.NewBool(c >= 0), nil
	default:
		return value.Value{}, &value.OperatorError{Op: op.String(), Typ: l.Kind()}
	}
}
