// Package table implements in-memory, packed-row relational storage: a
// fixed-layout byte arena per table, ordered and hash secondary indices
// over it, and the predicate planner that chooses between an index
// range scan and a full scan.
package table

import (
	"fmt"

	"github.com/dbohdan/memdb/ast"
	"github.com/dbohdan/memdb/resultset"
	"github.com/dbohdan/memdb/schema"
	"github.com/dbohdan/memdb/value"
)

// initialCapacity is the row capacity a freshly created table starts
// with; storage doubles from there as rows are inserted.
const initialCapacity = 32

// Table is packed-row, in-memory relational storage for one set of
// typed columns.
type Table struct {
	Name     string
	columns  []schema.Column
	mapping  map[string]int
	rowSize  int
	rowCount int
	capacity int
	storage  []byte

	orderedIndices []*OrderedIndex
	hashIndices    []*HashIndex
}

// New creates an empty table with the given columns. Column offsets are
// computed left to right; any column marked Key automatically gets an
// ordered index.
func New(name string, columns []schema.Column) (*Table, error) {
	mapping := make(map[string]int, len(columns))
	offset := uint16(0)
	cols := make([]schema.Column, len(columns))
	for i, c := range columns {
		if _, dup := mapping[c.Name]; dup {
			return nil, &DuplicateColumnError{Name: c.Name}
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if w, fixed := schema.FixedWidth(c.Type); fixed {
			c.Size = w
		}
		c.Offset = offset
		offset += c.Size
		if c.Auto {
			c.AutoNext = 1
		}
		cols[i] = c
		mapping[c.Name] = i
	}

	t := &Table{
		Name:     name,
		columns:  cols,
		mapping:  mapping,
		rowSize:  int(offset),
		capacity: initialCapacity,
		storage:  make([]byte, initialCapacity*int(offset)),
	}

	for i, c := range cols {
		if c.Key {
			t.orderedIndices = append(t.orderedIndices, t.newOrderedIndex(i))
		}
	}
	return t, nil
}

// Columns returns the table's column descriptors in declaration order.
func (t *Table) Columns() []schema.Column { return append([]schema.Column(nil), t.columns...) }

// RowCount reports the number of live rows.
func (t *Table) RowCount() int { return t.rowCount }

// ColumnIndex returns the declared position of a column by name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.mapping[name]
	return i, ok
}

func (t *Table) rowBytes(row int) []byte {
	start := row * t.rowSize
	return t.storage[start : start+t.rowSize]
}

func (t *Table) valueAt(row, col int) value.Ref {
	c := t.columns[col]
	buf := t.rowBytes(row)
	return value.NewRef(c.Type, buf[c.Offset:int(c.Offset)+int(c.Size)])
}

// ValueAt returns a borrowed view of one cell. It panics if row or col
// is out of range, mirroring slice-index semantics elsewhere in Go.
func (t *Table) ValueAt(row, col int) value.Ref { return t.valueAt(row, col) }

func (t *Table) addRow() int {
	if t.rowCount == t.capacity {
		t.capacity *= 2
		grown := make([]byte, t.capacity*t.rowSize)
		copy(grown, t.storage[:t.rowCount*t.rowSize])
		t.storage = grown
	}
	row := t.rowCount
	t.rowCount++
	return row
}

// HasOrderedIndex reports whether col carries an ordered index, and
// returns it.
func (t *Table) HasOrderedIndex(col int) (*OrderedIndex, bool) {
	for _, idx := range t.orderedIndices {
		if idx.Col == col {
			return idx, true
		}
	}
	return nil, false
}

func (t *Table) hasHashIndex(col int) (*HashIndex, bool) {
	for _, idx := range t.hashIndices {
		if idx.Col == col {
			return idx, true
		}
	}
	return nil, false
}

// CreateOrderedIndex builds an ordered index over the named columns.
// Each column is validated (exists, no existing ordered index) before
// any index is actually created, so a failure midway through a
// multi-column request leaves the table unchanged.
func (t *Table) CreateOrderedIndex(cols []string) error {
	idxs := make([]int, len(cols))
	for i, name := range cols {
		ci, ok := t.mapping[name]
		if !ok {
			return &UnknownColumnError{Name: name}
		}
		if _, exists := t.HasOrderedIndex(ci); exists {
			return &IndexExistsError{Column: name, Kind: "ordered"}
		}
		idxs[i] = ci
	}
	for _, ci := range idxs {
		t.orderedIndices = append(t.orderedIndices, t.newOrderedIndex(ci))
	}
	return nil
}

// CreateUnorderedIndex builds a hash index over the named column.
func (t *Table) CreateUnorderedIndex(colName string) error {
	ci, ok := t.mapping[colName]
	if !ok {
		return &UnknownColumnError{Name: colName}
	}
	if _, exists := t.hasHashIndex(ci); exists {
		return &IndexExistsError{Column: colName, Kind: "unordered"}
	}
	h := newHashIndex(ci)
	for row := 0; row < t.rowCount; row++ {
		h.add(t.valueAt(row, ci), row)
	}
	t.hashIndices = append(t.hashIndices, h)
	return nil
}

// Insert validates and appends one row, given values in declared column
// order. A None value selects the column's default (or the zero value
// of its type if there is no default); an autoincrement column's value
// is always assigned by the table, overriding whatever is supplied.
func (t *Table) Insert(values []value.Value) (int, error) {
	if len(values) != len(t.columns) {
		return -1, &ArityError{Want: len(t.columns), Got: len(values)}
	}
	resolved, err := t.checkInsertedValues(values)
	if err != nil {
		return -1, err
	}

	row := t.addRow()
	buf := t.rowBytes(row)
	for i, v := range resolved {
		c := &t.columns[i]
		raw := v.Raw()
		copy(buf[c.Offset:int(c.Offset)+int(c.Size)], raw)
	}

	for _, idx := range t.orderedIndices {
		if t.columns[idx.Col].Auto {
			t.appendToIndex(idx, row)
		} else {
			t.insertIntoIndex(idx, row)
		}
	}
	for _, h := range t.hashIndices {
		h.add(t.valueAt(row, h.Col), row)
	}
	return row, nil
}

// InsertNamed builds a full positional value list from a name->value
// map, in the table's own column order, substituting None for any
// column the caller did not mention.
func (t *Table) InsertNamed(named map[string]value.Value) (int, error) {
	values := make([]value.Value, len(t.columns))
	for name := range named {
		if _, ok := t.mapping[name]; !ok {
			return -1, &UnknownColumnError{Name: name}
		}
	}
	for i, c := range t.columns {
		if v, ok := named[c.Name]; ok {
			values[i] = v
		} else {
			values[i] = value.NewNone()
		}
	}
	return t.Insert(values)
}

// checkInsertedValues substitutes defaults for None values, checks each
// value's type and size, assigns autoincrement values, and checks
// uniqueness, in that order (arity is checked by the caller), returning the final
// per-column values to store. It does not mutate t until every check
// has passed for every column, except for the stateful autoincrement
// counter, which is advanced only after all validation succeeds.
func (t *Table) checkInsertedValues(values []value.Value) ([]value.Value, error) {
	resolved := make([]value.Value, len(values))
	autoAssignments := make([]int, 0, len(values))

	for i, c := range t.columns {
		v := values[i]
		switch {
		case c.Auto:
			autoAssignments = append(autoAssignments, i)
			continue
		case v.Kind() == value.None && c.HasDefault:
			v = c.Default
		case v.Kind() == value.None:
			v = zeroValue(c.Type)
		}
		if v.Kind() != c.Type {
			return nil, &value.TypeError{Want: c.Type, Got: v.Kind()}
		}
		if (c.Type == value.String || c.Type == value.Bytes) && v.Size() > int(c.Size) {
			return nil, fmt.Errorf("column %q: value of size %d exceeds declared size %d", c.Name, v.Size(), c.Size)
		}
		resolved[i] = v
	}

	for _, i := range autoAssignments {
		c := &t.columns[i]
		resolved[i] = value.NewInt32(c.AutoNext)
	}

	for i, c := range t.columns {
		if !c.Auto && (c.Unique || c.Key) {
			if dup, err := t.hasValue(i, resolved[i]); err != nil {
				return nil, err
			} else if dup {
				return nil, &UniqueViolationError{Column: c.Name}
			}
		}
	}

	for _, i := range autoAssignments {
		t.columns[i].AutoNext++
	}

	return resolved, nil
}

func zeroValue(t value.Type) value.Value {
	switch t {
	case value.Int32:
		return value.NewInt32(0)
	case value.Bool:
		return value.NewBool(false)
	case value.String:
		return value.NewString("")
	case value.Bytes:
		return value.NewBytes(nil)
	default:
		return value.NewNone()
	}
}

// hasValue reports whether column col already holds v somewhere in the
// table, preferring an existing index over a linear scan.
func (t *Table) hasValue(col int, v value.Value) (bool, error) {
	if idx, ok := t.HasOrderedIndex(col); ok {
		pos := t.lowerBound(idx, v)
		return pos < len(idx.Perm) && equalAt(t, idx.Perm[pos], col, v), nil
	}
	if h, ok := t.hasHashIndex(col); ok {
		return len(h.rows(v)) > 0, nil
	}
	for row := 0; row < t.rowCount; row++ {
		if equalAt(t, row, col, v) {
			return true, nil
		}
	}
	return false, nil
}

func equalAt(t *Table, row, col int, v value.Value) bool {
	return value.Equal(t.valueAt(row, col), v)
}

// SelectAll projects every row and the named columns (all columns, in
// declared order, when cols is nil) into a ResultSet.
func (t *Table) SelectAll(cols []string) (*resultset.ResultSet, error) {
	rows := make([]int, t.rowCount)
	for i := range rows {
		rows[i] = i
	}
	return t.project(cols, rows)
}

// Select runs the ordered-index planner over conditions (an
// implicit AND of every element) and projects the matching rows onto
// cols.
func (t *Table) Select(cols []string, conditions []ast.Condition) (*resultset.ResultSet, error) {
	rows, err := t.planAndScan(conditions)
	if err != nil {
		return nil, err
	}
	return t.project(cols, rows)
}

// SelectAST evaluates root against every row (optionally accelerated by
// the index planner, when root is a simple AND-only predicate) and
// projects the matching rows onto cols.
func (t *Table) SelectAST(cols []string, root ast.Expr) (*resultset.ResultSet, error) {
	for _, name := range cols {
		if _, ok := t.mapping[name]; !ok {
			return nil, &UnknownColumnError{Name: name}
		}
	}
	symbols := ast.CollectSymbols(root)
	for _, name := range symbols.Names() {
		if _, ok := t.mapping[name]; !ok {
			return nil, &UnknownColumnError{Name: name}
		}
	}

	if ast.IsCondIndexFriendly(root) && ast.IsConditionSimple(root) {
		conds, ok := ast.ExtractSimpleTerms(root)
		if ok {
			return t.Select(cols, conds)
		}
	}

	rows, err := t.scanByEval(root, symbols)
	if err != nil {
		return nil, err
	}
	return t.project(cols, rows)
}

func (t *Table) scanByEval(root ast.Expr, symbols *ast.SymbolTable) ([]int, error) {
	ev := ast.NewEvaluator(symbols)
	var matched []int
	for row := 0; row < t.rowCount; row++ {
		ev.Reset()
		for _, name := range symbols.Names() {
			ci := t.mapping[name]
			if err := ev.Bind(name, value.FromScalar(t.valueAt(row, ci))); err != nil {
				return nil, err
			}
		}
		result, err := ev.Eval(root)
		if err != nil {
			return nil, err
		}
		ok, err := result.Bool()
		if err != nil {
			return nil, fmt.Errorf("where expression did not evaluate to bool: %w", err)
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (t *Table) project(cols []string, rows []int) (*resultset.ResultSet, error) {
	if cols == nil {
		cols = make([]string, len(t.columns))
		for i, c := range t.columns {
			cols[i] = c.Name
		}
	}
	outCols := make([]schema.Column, len(cols))
	offset := uint16(0)
	srcIdx := make([]int, len(cols))
	for i, name := range cols {
		ci, ok := t.mapping[name]
		if !ok {
			return nil, &UnknownColumnError{Name: name}
		}
		srcIdx[i] = ci
		c := t.columns[ci]
		c.Offset = offset
		offset += c.Size
		outCols[i] = c
	}

	rs := resultset.New(outCols, int(offset))
	for _, row := range rows {
		buf := make([]byte, offset)
		for i, ci := range srcIdx {
			c := outCols[i]
			src := t.valueAt(row, ci)
			copy(buf[c.Offset:int(c.Offset)+int(c.Size)], src.Raw())
		}
		rs.AppendRaw(buf)
	}
	return rs, nil
}
