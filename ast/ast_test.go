package ast_test

import (
	"testing"

	"github.com/dbohdan/memdb/ast"
	"github.com/dbohdan/memdb/value"
)

func lit(v value.Value) *ast.Literal { return &ast.Literal{Val: v} }
func sym(name string) *ast.Symbol    { return &ast.Symbol{Name: name} }

func TestFoldConstantArithmetic(t *testing.T) {
	// 2 + 3 * 4 (already grouped as the parser would: (2 + (3*4)))
	tree := &ast.Internal{
		Op:   ast.PLS,
		Left: lit(value.NewInt32(2)),
		Right: &ast.Internal{
			Op:    ast.MUL,
			Left:  lit(value.NewInt32(3)),
			Right: lit(value.NewInt32(4)),
		},
	}
	folded, err := ast.Fold(tree)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := folded.(*ast.Literal)
	if !ok {
		t.Fatalf("expected a folded literal, got %T", folded)
	}
	i, _ := l.Val.Int32()
	if i != 14 {
		t.Errorf("got %d, want 14", i)
	}
}

func TestFoldLeavesSymbolsAlone(t *testing.T) {
	tree := &ast.Internal{Op: ast.PLS, Left: sym("x"), Right: lit(value.NewInt32(1))}
	folded, err := ast.Fold(tree)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := folded.(*ast.Internal); !ok {
		t.Fatalf("expected an unfolded Internal node, got %T", folded)
	}
}

func TestSplitCondByAndLeftSpineOnly(t *testing.T) {
	// a && b && (c && d)  parses left-associatively as
	// ((a && b) && (c && d)); the parenthesized right-hand chain
	// should surface as a single conjunct, not be flattened further.
	cd := &ast.Internal{Op: ast.AND, Left: sym("c"), Right: sym("d")}
	tree := &ast.Internal{
		Op:   ast.AND,
		Left: &ast.Internal{Op: ast.AND, Left: sym("a"), Right: sym("b")},
		Right: cd,
	}
	terms := ast.SplitCondByAnd(tree)
	if len(terms) != 3 {
		t.Fatalf("got %d terms, want 3: %v", len(terms), terms)
	}
	if _, ok := terms[0].(*ast.Symbol); !ok {
		t.Errorf("term 0 should be symbol a, got %T", terms[0])
	}
	if terms[2] != ast.Expr(cd) {
		t.Errorf("term 2 should be the unsplit (c && d) subtree")
	}
}

func TestIsExprSimple(t *testing.T) {
	simple := &ast.Internal{Op: ast.EQ, Left: sym("x"), Right: lit(value.NewInt32(1))}
	if !ast.IsExprSimple(simple) {
		t.Error("x = 1 should be simple")
	}
	flipped := &ast.Internal{Op: ast.LT, Left: lit(value.NewInt32(1)), Right: sym("x")}
	if !ast.IsExprSimple(flipped) {
		t.Error("1 < x should be simple")
	}
	complex := &ast.Internal{Op: ast.EQ, Left: sym("x"), Right: sym("y")}
	if ast.IsExprSimple(complex) {
		t.Error("x = y should not be simple (no literal operand)")
	}
}

func TestIsConditionSimpleChecksAllConjuncts(t *testing.T) {
	// a = 1 && b = c -- second conjunct is not simple, so the whole
	// condition must not be reported simple, unlike the known bug in
	// the reference engine that only checked the first conjunct.
	tree := &ast.Internal{
		Op:   ast.AND,
		Left: &ast.Internal{Op: ast.EQ, Left: sym("a"), Right: lit(value.NewInt32(1))},
		Right: &ast.Internal{Op: ast.EQ, Left: sym("b"), Right: sym("c")},
	}
	if ast.IsConditionSimple(tree) {
		t.Error("expected IsConditionSimple to reject a condition with a non-simple second conjunct")
	}
}

func TestExtractSimpleTermsFlipsOperator(t *testing.T) {
	tree := &ast.Internal{Op: ast.LT, Left: lit(value.NewInt32(5)), Right: sym("x")}
	conds, ok := ast.ExtractSimpleTerms(tree)
	if !ok || len(conds) != 1 {
		t.Fatalf("extraction failed: %v, %v", conds, ok)
	}
	if conds[0].Column != "x" || conds[0].Op != ast.RelGT {
		t.Errorf("got %+v, want column x, op >", conds[0])
	}
}

func TestEvaluatorBindAndEval(t *testing.T) {
	tree := &ast.Internal{Op: ast.GT, Left: sym("x"), Right: lit(value.NewInt32(10))}
	symbols := ast.CollectSymbols(tree)
	ev := ast.NewEvaluator(symbols)

	if err := ev.Bind("x", value.NewInt32(20)); err != nil {
		t.Fatal(err)
	}
	result, err := ev.Eval(tree)
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := result.Bool(); !b {
		t.Error("20 > 10 should be true")
	}

	ev.Reset()
	if err := ev.Bind("x", value.NewInt32(5)); err != nil {
		t.Fatal(err)
	}
	result, err = ev.Eval(tree)
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := result.Bool(); b {
		t.Error("5 > 10 should be false")
	}
}
