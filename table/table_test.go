package table_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbohdan/memdb/ast"
	"github.com/dbohdan/memdb/schema"
	"github.com/dbohdan/memdb/table"
	"github.com/dbohdan/memdb/value"
)

func peopleTable(t *testing.T) *table.Table {
	t.Helper()
	cols := []schema.Column{
		{Name: "id", Type: value.Int32, Auto: true, Key: true},
		{Name: "name", Type: value.String, Size: 16},
		{Name: "age", Type: value.Int32},
	}
	tb, err := table.New("people", cols)
	require.NoError(t, err)
	return tb
}

func TestInsertAndSelectAll(t *testing.T) {
	tb := peopleTable(t)
	_, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("alice"), value.NewInt32(30)})
	require.NoError(t, err)
	_, err = tb.Insert([]value.Value{value.NewNone(), value.NewString("bob"), value.NewInt32(25)})
	require.NoError(t, err)

	rs, err := tb.SelectAll(nil)
	require.NoError(t, err)
	require.Equal(t, 2, rs.RowCount())

	row, err := rs.Row(0)
	require.NoError(t, err)
	id, err := row.Int32("id")
	require.NoError(t, err)
	require.Equal(t, int32(1), id)
}

func TestAutoincrementAndUniqueness(t *testing.T) {
	tb := peopleTable(t)
	row0, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("a"), value.NewInt32(1)})
	require.NoError(t, err)
	row1, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("b"), value.NewInt32(1)})
	require.NoError(t, err)
	require.NotEqual(t, row0, row1)

	id0 := tb.ValueAt(row0, 0)
	id1 := tb.ValueAt(row1, 0)
	v0, _ := id0.Int32()
	v1, _ := id1.Int32()
	require.Equal(t, int32(1), v0)
	require.Equal(t, int32(2), v1)
}

func TestArityMismatch(t *testing.T) {
	tb := peopleTable(t)
	_, err := tb.Insert([]value.Value{value.NewString("x")})
	require.Error(t, err)
	var ar *table.ArityError
	require.ErrorAs(t, err, &ar)
}

func TestIndexedSelectEquality(t *testing.T) {
	tb := peopleTable(t)
	for i := 0; i < 10; i++ {
		_, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("p"), value.NewInt32(int32(i % 3))})
		require.NoError(t, err)
	}
	require.NoError(t, tb.CreateOrderedIndex([]string{"age"}))

	rs, err := tb.Select([]string{"id", "age"}, []ast.Condition{{Column: "age", Op: ast.RelEQ, Val: value.NewInt32(1)}})
	require.NoError(t, err)
	for i := 0; i < rs.RowCount(); i++ {
		row, err := rs.Row(i)
		require.NoError(t, err)
		age, _ := row.Int32("age")
		require.Equal(t, int32(1), age)
	}
}

func TestSelectASTWithRange(t *testing.T) {
	tb := peopleTable(t)
	for i := 0; i < 20; i++ {
		_, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("p"), value.NewInt32(int32(i))})
		require.NoError(t, err)
	}
	require.NoError(t, tb.CreateOrderedIndex([]string{"age"}))

	// age > 15
	where := &ast.Internal{Op: ast.GT, Left: &ast.Symbol{Name: "age"}, Right: &ast.Literal{Val: value.NewInt32(15)}}
	rs, err := tb.SelectAST(nil, where)
	require.NoError(t, err)
	require.Equal(t, 4, rs.RowCount()) // ages 16,17,18,19

	for i := 0; i < rs.RowCount(); i++ {
		row, err := rs.Row(i)
		require.NoError(t, err)
		age, _ := row.Int32("age")
		require.Greater(t, age, int32(15))
	}
}

func TestSelectASTFallsBackToEvaluator(t *testing.T) {
	tb := peopleTable(t)
	_, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("a"), value.NewInt32(5)})
	require.NoError(t, err)
	_, err = tb.Insert([]value.Value{value.NewNone(), value.NewString("a"), value.NewInt32(7)})
	require.NoError(t, err)

	// age = id - 1 isn't a simple column-vs-literal comparison, so this
	// exercises the per-row evaluator fallback, not the planner.
	where := &ast.Internal{
		Op:   ast.EQ,
		Left: &ast.Symbol{Name: "age"},
		Right: &ast.Internal{
			Op:    ast.MNS,
			Left:  &ast.Symbol{Name: "id"},
			Right: &ast.Literal{Val: value.NewInt32(1)},
		},
	}
	rs, err := tb.SelectAST([]string{"id"}, where)
	require.NoError(t, err)
	require.Equal(t, 0, rs.RowCount())
}

func TestUnorderedIndexAccelerateUniqueness(t *testing.T) {
	cols := []schema.Column{
		{Name: "email", Type: value.String, Size: 32, Unique: true},
	}
	tb, err := table.New("users", cols)
	require.NoError(t, err)
	require.NoError(t, tb.CreateUnorderedIndex("email"))

	_, err = tb.Insert([]value.Value{value.NewString("a@example.com")})
	require.NoError(t, err)
	_, err = tb.Insert([]value.Value{value.NewString("a@example.com")})
	require.Error(t, err)
	var uv *table.UniqueViolationError
	require.ErrorAs(t, err, &uv)
}

func TestStringShorterThanColumnWidthRoundTrips(t *testing.T) {
	tb := peopleTable(t)
	_, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("al"), value.NewInt32(1)})
	require.NoError(t, err)

	row, err := tb.SelectAll(nil)
	require.NoError(t, err)
	r, err := row.Row(0)
	require.NoError(t, err)
	name, err := r.Str("name")
	require.NoError(t, err)
	require.Equal(t, "al", name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tb := peopleTable(t)
	_, err := tb.Insert([]value.Value{value.NewNone(), value.NewString("alice"), value.NewInt32(30)})
	require.NoError(t, err)
	require.NoError(t, tb.CreateOrderedIndex([]string{"age"}))

	var buf bytes.Buffer
	require.NoError(t, tb.Save(&buf))

	loaded, err := table.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, tb.RowCount(), loaded.RowCount())

	_, hasIdx := loaded.HasOrderedIndex(2)
	require.True(t, hasIdx)
}
