// Package schema defines a table's column descriptors: type, storage
// size and offset, and the constraint flags a column can carry.
package schema

import (
	"fmt"

	"github.com/dbohdan/memdb/value"
)

// Column describes one column of a table: its declared type, its byte
// width and offset within a row, and any constraints it carries.
type Column struct {
	Name   string
	Type   value.Type
	Size   uint16 // byte width: 4 for Int32, 1 for Bool, declared for String/Bytes
	Offset uint16 // byte offset within a row; assigned by the owning table

	Unique bool
	Auto   bool // autoincrement; Type must be Int32
	Key    bool // primary key: implies Unique and an ordered index

	HasDefault bool
	Default    value.Value

	// AutoNext is the next value an autoincrement column will assign.
	AutoNext int32
}

// Validate checks the column's own declaration is internally consistent.
// It does not know about sibling columns or the owning table.
func (c *Column) Validate() error {
	if c.Auto && c.Type != value.Int32 {
		return fmt.Errorf("column %q: auto only applies to int columns", c.Name)
	}
	if c.HasDefault && c.Default.Kind() != c.Type {
		return fmt.Errorf("column %q: default value type %s does not match column type %s",
			c.Name, c.Default.Kind(), c.Type)
	}
	if (c.Type == value.String || c.Type == value.Bytes) && c.Size == 0 {
		return fmt.Errorf("column %q: string/bytes columns require an explicit size", c.Name)
	}
	return nil
}

// FixedWidth reports the storage width for Int32/Bool columns, for which
// Size is not separately declared by the user.
func FixedWidth(t value.Type) (uint16, bool) {
	switch t {
	case value.Int32:
		return 4, true
	case value.Bool:
		return 1, true
	default:
		return 0, false
	}
}
