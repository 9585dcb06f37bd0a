// Package resultset holds the output of a SELECT: a packed-row buffer
// plus the column layout needed to decode it, and a Row accessor for
// reading one row's typed cells.
package resultset

import (
	"fmt"

	"github.com/dbohdan/memdb/schema"
	"github.com/dbohdan/memdb/value"
)

// ResultSet is an immutable, independently owned copy of the rows a
// query selected, laid out the same way a table row is: one packed byte
// buffer plus a column/offset layout.
type ResultSet struct {
	columns []schema.Column
	mapping map[string]int
	rowSize int
	storage []byte
	rows    int
}

// New creates an empty ResultSet with the given projected column layout
// (offsets must already be computed relative to rowSize).
func New(columns []schema.Column, rowSize int) *ResultSet {
	mapping := make(map[string]int, len(columns))
	for i, c := range columns {
		mapping[c.Name] = i
	}
	return &ResultSet{columns: columns, mapping: mapping, rowSize: rowSize}
}

// AppendRaw appends one pre-encoded row. buf must be exactly rowSize
// bytes, laid out per the ResultSet's column offsets.
func (rs *ResultSet) AppendRaw(buf []byte) {
	rs.storage = append(rs.storage, buf...)
	rs.rows++
}

// Columns returns the projected column layout.
func (rs *ResultSet) Columns() []schema.Column { return append([]schema.Column(nil), rs.columns...) }

// ColumnNames returns just the projected column names, in order.
func (rs *ResultSet) ColumnNames() []string {
	names := make([]string, len(rs.columns))
	for i, c := range rs.columns {
		names[i] = c.Name
	}
	return names
}

// RowCount reports the number of rows in the set.
func (rs *ResultSet) RowCount() int { return rs.rows }

// Row returns an accessor for the i'th row.
func (rs *ResultSet) Row(i int) (Row, error) {
	if i < 0 || i >= rs.rows {
		return Row{}, fmt.Errorf("resultset: row index %d out of range [0,%d)", i, rs.rows)
	}
	start := i * rs.rowSize
	return Row{rs: rs, buf: rs.storage[start : start+rs.rowSize]}, nil
}

// Rows returns a forward iterator over every row, for use in a for
// range loop: for row := range rs.Rows() { ... }.
func (rs *ResultSet) Rows() func(yield func(Row) bool) {
	return func(yield func(Row) bool) {
		for i := 0; i < rs.rows; i++ {
			row, _ := rs.Row(i)
			if !yield(row) {
				return
			}
		}
	}
}

// Row is a read-only view of one ResultSet row.
type Row struct {
	rs  *ResultSet
	buf []byte
}

// UnknownColumnError is returned by Row accessors for a name not in the
// result set's projection.
type UnknownColumnError struct{ Name string }

func (e *UnknownColumnError) Error() string { return fmt.Sprintf("unknown column %q", e.Name) }

func (r Row) cell(name string) (schema.Column, value.Ref, error) {
	i, ok := r.rs.mapping[name]
	if !ok {
		return schema.Column{}, value.Ref{}, &UnknownColumnError{Name: name}
	}
	c := r.rs.columns[i]
	return c, value.NewRef(c.Type, r.buf[c.Offset:int(c.Offset)+int(c.Size)]), nil
}

// Int32 reads an int column.
func (r Row) Int32(name string) (int32, error) {
	_, v, err := r.cell(name)
	if err != nil {
		return 0, err
	}
	return v.Int32()
}

// Bool reads a bool column.
func (r Row) Bool(name string) (bool, error) {
	_, v, err := r.cell(name)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// Str reads a string column.
func (r Row) Str(name string) (string, error) {
	_, v, err := r.cell(name)
	if err != nil {
		return "", err
	}
	return v.Str()
}

// Bytes reads a bytes column.
func (r Row) Bytes(name string) ([]byte, error) {
	_, v, err := r.cell(name)
	if err != nil {
		return nil, err
	}
	return v.Bs()
}

// Value reads a column as a generic owning value.Value, regardless of
// its type.
func (r Row) Value(name string) (value.Value, error) {
	_, v, err := r.cell(name)
	if err != nil {
		return value.Value{}, err
	}
	return v.ToValue(), nil
}
