package ast

import "github.com/dbohdan/memdb/value"

// IsCondIndexFriendly reports whether root's top-level connective could
// possibly be satisfied by an index lookup: an OR or XOR at the top
// means some rows could match without satisfying every conjunct, which
// rules out range-based planning entirely.
func IsCondIndexFriendly(root Expr) bool {
	n, ok := root.(*Internal)
	if !ok {
		return true
	}
	return n.Op != OR && n.Op != XOR
}

// SplitCondByAnd walks the left spine of a chain of && nodes and returns
// each right-hand operand, plus the final left-most term, as a flat list
// of conjuncts. It intentionally does not descend into a right-hand &&
// (e.g. in `a && (b && c)`, the parenthesized `b && c` surfaces as one
// conjunct): that matches how the grammar's left-associative && already
// flattens any chain the user did not explicitly group.
func SplitCondByAnd(root Expr) []Expr {
	var terms []Expr
	cur := root
	for {
		n, ok := cur.(*Internal)
		if !ok || n.Op != AND {
			terms = append(terms, cur)
			break
		}
		terms = append(terms, n.Right)
		cur = n.Left
	}
	// terms were collected root-to-left; restore left-to-right order.
	for i, j := 0, len(terms)-1; i < j; i, j = i+1, j-1 {
		terms[i], terms[j] = terms[j], terms[i]
	}
	return terms
}

// IsExprSimple reports whether e is a single term an index could plan
// against: a bare Symbol (implicitly compared for truth), or a
// relational comparison between a Symbol and a Literal in either order.
func IsExprSimple(e Expr) bool {
	switch n := e.(type) {
	case *Symbol:
		return true
	case *Internal:
		if !n.Op.IsRelOp() || n.Right == nil {
			return false
		}
		_, lSym := n.Left.(*Symbol)
		_, rLit := n.Right.(*Literal)
		_, lLit := n.Left.(*Literal)
		_, rSym := n.Right.(*Symbol)
		return (lSym && rLit) || (lLit && rSym)
	default:
		return false
	}
}

// IsConditionSimple reports whether every conjunct of root (per
// SplitCondByAnd) is simple per IsExprSimple. Unlike a known bug in the
// reference implementation this checks every conjunct, not just the
// first.
func IsConditionSimple(root Expr) bool {
	for _, term := range SplitCondByAnd(root) {
		if !IsExprSimple(term) {
			return false
		}
	}
	return true
}

// Condition is one column comparison extracted from a simple predicate:
// "column <op> value".
type Condition struct {
	Column string
	Op     RelOp
	Val    value.Value
}

// ExtractSimpleTerms converts every conjunct of a condition that
// IsConditionSimple has already accepted into a Condition. A bare
// Symbol conjunct becomes an implicit "column = true" equality test.
func ExtractSimpleTerms(root Expr) ([]Condition, bool) {
	terms := SplitCondByAnd(root)
	conds := make([]Condition, 0, len(terms))
	for _, term := range terms {
		c, ok := extractTerm(term)
		if !ok {
			return nil, false
		}
		conds = append(conds, c)
	}
	return conds, true
}

func extractTerm(e Expr) (Condition, bool) {
	switch n := e.(type) {
	case *Symbol:
		return Condition{Column: n.Name, Op: RelEQ, Val: value.NewBool(true)}, true
	case *Internal:
		rel, ok := ToRelOp(n.Op)
		if !ok || n.Right == nil {
			return Condition{}, false
		}
		if sym, ok := n.Left.(*Symbol); ok {
			if lit, ok := n.Right.(*Literal); ok {
				return Condition{Column: sym.Name, Op: rel, Val: lit.Val}, true
			}
		}
		if lit, ok := n.Left.(*Literal); ok {
			if sym, ok := n.Right.(*Symbol); ok {
				return Condition{Column: sym.Name, Op: flipRel(rel), Val: lit.Val}, true
			}
		}
	}
	return Condition{}, false
}

// flipRel mirrors a relational operator when its operands are swapped:
// "5 < x" is equivalent to "x > 5".
func flipRel(op RelOp) RelOp {
	switch op {
	case RelLT:
		return RelGT
	case RelGT:
		return RelLT
	case RelLE:
		return RelGE
	case RelGE:
		return RelLE
	default:
		return op
	}
}

// Match reports whether lhs satisfies c's comparison.
func (c Condition) Match(lhs value.Scalar) (bool, error) {
	cmp, err := value.Compare(lhs, c.Val)
	if err != nil {
		return false, err
	}
	switch c.Op {
	case RelEQ:
		return cmp == 0, nil
	case RelNE:
		return cmp != 0, nil
	case RelLT:
		return cmp < 0, nil
	case RelGT:
		return cmp > 0, nil
	case RelLE:
		return cmp <= 0, nil
	case RelGE:
		return cmp >= 0, nil
	default:
		return false, &value.OperatorError{Op: "match", Typ: lhs.Kind()}
	}
}
