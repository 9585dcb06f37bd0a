// Package parser implements a recursive-descent parser for the query
// language: CREATE TABLE, INSERT, CREATE (ORDERED|UNORDERED) INDEX and
// SELECT statements, plus the WHERE expression grammar standing on its
// own (ast.Expr).
package parser

import (
	"fmt"
	"sync"

	"github.com/dbohdan/memdb/ast"
	"github.com/dbohdan/memdb/lexer"
	"github.com/dbohdan/memdb/schema"
	"github.com/dbohdan/memdb/token"
	"github.com/dbohdan/memdb/value"
)

// Error reports a syntax error at a source position.
type Error struct {
	Pos     token.Pos
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// Parser turns a token stream into one of the statement descriptor
// types below.
type Parser struct {
	lex *lexer.Lexer
	cur token.Item
}

var pool = sync.Pool{New: func() any { return new(Parser) }}

// Get returns a pooled Parser primed to parse input.
func Get(input string) (*Parser, error) {
	p := pool.Get().(*Parser)
	p.lex = lexer.Get(input)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Put releases p and its lexer back to their pools.
func Put(p *Parser) {
	lexer.Put(p.lex)
	p.lex = nil
	pool.Put(p)
}

// New allocates a fresh, unpooled Parser.
func New(input string) (*Parser, error) {
	p := &Parser{lex: lexer.New(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	it, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = it
	return nil
}

func (p *Parser) is(t token.Token) bool { return p.cur.Type == t }

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Pos: p.cur.Pos, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(t token.Token) (token.Item, error) {
	if !p.is(t) {
		return token.Item{}, p.errorf("expected %s, got %s %q", t, p.cur.Type, p.cur.Value)
	}
	it := p.cur
	if err := p.advance(); err != nil {
		return token.Item{}, err
	}
	return it, nil
}

func (p *Parser) expectIdent() (string, error) {
	it, err := p.expect(token.IDENT)
	if err != nil {
		return "", err
	}
	return it.Value, nil
}

// Statement is implemented by every top-level parsed statement.
type Statement interface{ statementNode() }

// CreateTableStmt is a parsed CREATE TABLE statement.
type CreateTableStmt struct {
	Table   string
	Columns []schema.Column
}

// InsertStmt is a parsed INSERT statement.
type InsertStmt struct {
	Table      string
	Values     []value.Value
	Named      map[string]value.Value
	UsingNamed bool
}

// CreateIndexStmt is a parsed CREATE (ORDERED|UNORDERED) INDEX statement.
type CreateIndexStmt struct {
	Table   string
	Columns []string
	Ordered bool
}

// SelectStmt is a parsed SELECT statement.
type SelectStmt struct {
	Table   string
	Columns []string // nil means "*"
	Where   ast.Expr // nil means no WHERE clause
}

func (*CreateTableStmt) statementNode() {}
func (*InsertStmt) statementNode()      {}
func (*CreateIndexStmt) statementNode() {}
func (*SelectStmt) statementNode()      {}

// Parse parses exactly one statement and requires EOF to follow it.
func Parse(input string) (Statement, error) {
	p, err := Get(input)
	if err != nil {
		return nil, err
	}
	defer Put(p)
	return p.ParseStatement()
}

// ParseStatement dispatches on the leading keyword to one of the four
// statement grammars, then requires the input to be fully consumed.
func (p *Parser) ParseStatement() (Statement, error) {
	if p.is(token.EOF) {
		return nil, p.errorf("empty query")
	}

	var stmt Statement
	var err error
	switch p.cur.Type {
	case token.CREATE:
		stmt, err = p.parseCreate()
	case token.INSERT:
		stmt, err = p.parseInsert()
	case token.SELECT:
		stmt, err = p.parseSelect()
	default:
		return nil, p.errorf("expected CREATE, INSERT or SELECT, got %q", p.cur.Value)
	}
	if err != nil {
		return nil, err
	}
	if !p.is(token.EOF) {
		return nil, p.errorf("unexpected trailing input %q", p.cur.Value)
	}
	return stmt, nil
}

func (p *Parser) parseCreate() (Statement, error) {
	if err := p.advance(); err != nil { // consume CREATE
		return nil, err
	}
	switch p.cur.Type {
	case token.TABLE:
		return p.parseCreateTable()
	case token.ORDERED, token.UNORDERED:
		return p.parseCreateIndex()
	default:
		return nil, p.errorf("expected TABLE, ORDERED or UNORDERED, got %q", p.cur.Value)
	}
}
