package ast

import "github.com/dbohdan/memdb/value"

// Evaluator evaluates one parsed expression tree repeatedly against a
// sequence of row bindings, without mutating the tree or reallocating
// per row: Bind fills a symbol's slot, Eval walks the tree reading
// slots for Symbol leaves.
type Evaluator struct {
	table  *SymbolTable
	values []value.Value
	bound  []bool
}

// NewEvaluator returns an Evaluator for expressions whose symbols are
// exactly those in table.
func NewEvaluator(table *SymbolTable) *Evaluator {
	return &Evaluator{
		table:  table,
		values: make([]value.Value, table.Len()),
		bound:  make([]bool, table.Len()),
	}
}

// Bind assigns v to name's slot. It is a no-op error if name was never
// collected into the evaluator's table.
func (ev *Evaluator) Bind(name string, v value.Value) error {
	i, ok := ev.table.Lookup(name)
	if !ok {
		return &UnknownSymbolError{Name: name}
	}
	ev.values[i] = v
	ev.bound[i] = true
	return nil
}

// Reset clears all bindings so the Evaluator can be reused for the next
// row.
func (ev *Evaluator) Reset() {
	for i := range ev.bound {
		ev.bound[i] = false
	}
}

// Eval walks e, resolving Symbol leaves against the current bindings.
func (ev *Evaluator) Eval(e Expr) (value.Value, error) {
	switch n := e.(type) {
	case *Literal:
		return n.Val, nil
	case *Symbol:
		i, ok := ev.table.Lookup(n.Name)
		if !ok || !ev.bound[i] {
			return value.Value{}, &UnknownSymbolError{Name: n.Name}
		}
		return ev.values[i], nil
	case *Internal:
		left, err := ev.Eval(n.Left)
		if err != nil {
			return value.Value{}, err
		}
		if n.Right == nil {
			return foldUnary(n.Op, left)
		}
		right, err := ev.Eval(n.Right)
		if err != nil {
			return value.Value{}, err
		}
		return foldBinary(n.Op, left, right)
	default:
		return value.Value{}, &value.OperatorError{Op: "eval", Typ: value.None}
	}
}
