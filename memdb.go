// Package memdb is an embeddable, single-process, in-memory relational
// store: CREATE TABLE / INSERT / indexed SELECT over a small query
// language, plus whole-database binary persistence. Database is the
// entry point; its sub-packages (token, lexer, ast, schema, table,
// parser, resultset, wire) hold the implementation and can also be used
// directly by a caller who wants finer control than the facade offers.
package memdb

import (
	"fmt"
	"sort"

	"github.com/dbohdan/memdb/ast"
	"github.com/dbohdan/memdb/parser"
	"github.com/dbohdan/memdb/resultset"
	"github.com/dbohdan/memdb/schema"
	"github.com/dbohdan/memdb/table"
	"github.com/dbohdan/memdb/value"
)

// Re-exported types, so a caller who only imports the root package can
// still name every type it needs to hold a result.
type (
	Value      = value.Value
	Type       = value.Type
	Column     = schema.Column
	ResultSet  = resultset.ResultSet
	Row        = resultset.Row
	Expr       = ast.Expr
	Condition  = ast.Condition
)

const (
	TypeNone   = value.None
	TypeInt32  = value.Int32
	TypeBool   = value.Bool
	TypeString = value.String
	TypeBytes  = value.Bytes
)

// Database is a collection of named tables.
type Database struct {
	tables map[string]*table.Table
}

// New returns an empty Database.
func New() *Database {
	return &Database{tables: make(map[string]*table.Table)}
}

// TableNotFoundError reports a reference to a table name the database
// does not have.
type TableNotFoundError struct{ Name string }

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("no such table %q", e.Name)
}

// TableExistsError reports a CREATE TABLE naming a table that already
// exists.
type TableExistsError struct{ Name string }

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Name)
}

func (db *Database) find(name string) (*table.Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, &TableNotFoundError{Name: name}
	}
	return t, nil
}

// CreateTable creates a new table. Column names must be unique within
// the table (schema.Column.Validate plus table.New enforce per-column
// and whole-table consistency).
func (db *Database) CreateTable(name string, columns []schema.Column) error {
	if _, exists := db.tables[name]; exists {
		return &TableExistsError{Name: name}
	}
	t, err := table.New(name, columns)
	if err != nil {
		return err
	}
	db.tables[name] = t
	return nil
}

// Insert appends one row of positional values to a table.
func (db *Database) Insert(tableName string, values []value.Value) (int, error) {
	t, err := db.find(tableName)
	if err != nil {
		return -1, err
	}
	return t.Insert(values)
}

// InsertNamed appends one row built from a column-name-to-value map.
func (db *Database) InsertNamed(tableName string, named map[string]value.Value) (int, error) {
	t, err := db.find(tableName)
	if err != nil {
		return -1, err
	}
	return t.InsertNamed(named)
}

// SelectAll projects every row of a table onto cols (nil for all
// columns).
func (db *Database) SelectAll(tableName string, cols []string) (*resultset.ResultSet, error) {
	t, err := db.find(tableName)
	if err != nil {
		return nil, err
	}
	return t.SelectAll(cols)
}

// Select runs the index planner over an explicit, implicitly-ANDed list
// of column conditions.
func (db *Database) Select(tableName string, cols []string, conditions []ast.Condition) (*resultset.ResultSet, error) {
	t, err := db.find(tableName)
	if err != nil {
		return nil, err
	}
	return t.Select(cols, conditions)
}

// SelectAST evaluates an arbitrary WHERE expression tree, using the
// index planner when the predicate qualifies.
func (db *Database) SelectAST(tableName string, cols []string, where ast.Expr) (*resultset.ResultSet, error) {
	t, err := db.find(tableName)
	if err != nil {
		return nil, err
	}
	if where == nil {
		return t.SelectAll(cols)
	}
	return t.SelectAST(cols, where)
}

// CreateOrderedIndex builds an ordered index over the named columns of
// a table.
func (db *Database) CreateOrderedIndex(tableName string, cols []string) error {
	t, err := db.find(tableName)
	if err != nil {
		return err
	}
	return t.CreateOrderedIndex(cols)
}

// CreateUnorderedIndex builds a hash index over one column of a table.
func (db *Database) CreateUnorderedIndex(tableName, col string) error {
	t, err := db.find(tableName)
	if err != nil {
		return err
	}
	return t.CreateUnorderedIndex(col)
}

// Execute tokenizes and parses query, then dispatches it to the typed
// entry point matching its statement kind.
func (db *Database) Execute(query string) (*resultset.ResultSet, error) {
	stmt, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}

	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		if err := db.CreateTable(s.Table, s.Columns); err != nil {
			return nil, err
		}
		return resultset.New(nil, 0), nil

	case *parser.InsertStmt:
		if s.UsingNamed {
			if _, err := db.InsertNamed(s.Table, s.Named); err != nil {
				return nil, err
			}
		} else {
			if _, err := db.Insert(s.Table, s.Values); err != nil {
				return nil, err
			}
		}
		return resultset.New(nil, 0), nil

	case *parser.CreateIndexStmt:
		if s.Ordered {
			if err := db.CreateOrderedIndex(s.Table, s.Columns); err != nil {
				return nil, err
			}
		} else {
			if len(s.Columns) != 1 {
				return nil, fmt.Errorf("unordered index requires exactly one column, got %d", len(s.Columns))
			}
			if err := db.CreateUnorderedIndex(s.Table, s.Columns[0]); err != nil {
				return nil, err
			}
		}
		return resultset.New(nil, 0), nil

	case *parser.SelectStmt:
		return db.SelectAST(s.Table, s.Columns, s.Where)

	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}

// TableNames returns every table name, sorted.
func (db *Database) TableNames() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
