package parser

import (
	"github.com/dbohdan/memdb/ast"
	"github.com/dbohdan/memdb/schema"
	"github.com/dbohdan/memdb/token"
	"github.com/dbohdan/memdb/value"
)

// parseCreateTable parses:
//
//	TABLE IDENT ( col_def (, col_def)* )
//
// col_def is [ { attr (, attr)* } ] IDENT : type [ [ size ] ] [ = literal ]
func (p *Parser) parseCreateTable() (Statement, error) {
	if _, err := p.expect(token.TABLE); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAR); err != nil {
		return nil, err
	}

	var cols []schema.Column
	for {
		c, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
		if p.is(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAR); err != nil {
		return nil, err
	}
	return &CreateTableStmt{Table: name, Columns: cols}, nil
}

func (p *Parser) parseColumnDef() (schema.Column, error) {
	var c schema.Column

	if p.is(token.LBRC) {
		if err := p.advance(); err != nil {
			return c, err
		}
		for {
			switch p.cur.Type {
			case token.UNIQUE:
				c.Unique = true
			case token.AUTO:
				c.Auto = true
			case token.KEY:
				c.Key = true
			default:
				return c, p.errorf("expected UNIQUE, AUTO or KEY, got %q", p.cur.Value)
			}
			if err := p.advance(); err != nil {
				return c, err
			}
			if p.is(token.COMMA) {
				if err := p.advance(); err != nil {
					return c, err
				}
				continue
			}
			break
		}
		if _, err := p.expect(token.RBRC); err != nil {
			return c, err
		}
	}

	name, err := p.expectIdent()
	if err != nil {
		return c, err
	}
	c.Name = name
	if _, err := p.expect(token.COLON); err != nil {
		return c, err
	}

	typ, err := p.parseTypeName()
	if err != nil {
		return c, err
	}
	c.Type = typ

	if p.is(token.LBRK) {
		if err := p.advance(); err != nil {
			return c, err
		}
		sizeTok, err := p.expect(token.INT_LIT)
		if err != nil {
			return c, err
		}
		n, err := parseIntLit(sizeTok.Value)
		if err != nil {
			return c, err
		}
		if n <= 0 {
			return c, p.errorf("column %q: size must be positive", name)
		}
		c.Size = uint16(n)
		if _, err := p.expect(token.RBRK); err != nil {
			return c, err
		}
	}

	if p.is(token.EQ) {
		if err := p.advance(); err != nil {
			return c, err
		}
		lit, err := p.parseLiteralValue()
		if err != nil {
			return c, err
		}
		c.HasDefault = true
		c.Default = lit
	}

	if err := c.Validate(); err != nil {
		return c, p.errorf("%s", err.Error())
	}
	return c, nil
}

func (p *Parser) parseTypeName() (value.Type, error) {
	switch p.cur.Type {
	case token.INT32:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return value.Int32, nil
	case token.BOOL:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return value.Bool, nil
	case token.STRING:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return value.String, nil
	case token.BYTES:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return value.Bytes, nil
	default:
		return 0, p.errorf("expected a type name, got %q", p.cur.Value)
	}
}

// parseInsert parses:
//
//	INSERT ( value_list | named_value_list ) TO IDENT
//
// The form is distinguished by peeking whether the first value slot
// looks like "IDENT =".
func (p *Parser) parseInsert() (Statement, error) {
	if err := p.advance(); err != nil { // consume INSERT
		return nil, err
	}
	if _, err := p.expect(token.LPAR); err != nil {
		return nil, err
	}

	named := p.is(token.IDENT) && p.peekIsNamedAssignment()

	stmt := &InsertStmt{UsingNamed: named}
	if named {
		m := make(map[string]value.Value)
		for {
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			v, err := p.parseLiteralValue()
			if err != nil {
				return nil, err
			}
			m[name] = v
			if p.is(token.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		stmt.Named = m
	} else {
		var values []value.Value
		for {
			if p.is(token.COMMA) || p.is(token.RPAR) {
				values = append(values, value.NewNone())
			} else {
				v, err := p.parseLiteralValue()
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
			if p.is(token.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		stmt.Values = values
	}

	if _, err := p.expect(token.RPAR); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TO); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	stmt.Table = name
	return stmt, nil
}

// peekIsNamedAssignment looks one token ahead (without consuming
// anything) to see whether the current IDENT is immediately followed by
// "=", which is how the named INSERT form is told apart from positional.
func (p *Parser) peekIsNamedAssignment() bool {
	save := *p.lex
	savedCur := p.cur
	defer func() {
		*p.lex = save
		p.cur = savedCur
	}()
	if err := p.advance(); err != nil {
		return false
	}
	return p.is(token.EQ)
}

// parseCreateIndex parses:
//
//	(ORDERED|UNORDERED) INDEX ON IDENT BY IDENT (, IDENT)*
func (p *Parser) parseCreateIndex() (Statement, error) {
	ordered := p.is(token.ORDERED)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.INDEX); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ON); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BY); err != nil {
		return nil, err
	}
	var cols []string
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
		if p.is(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return &CreateIndexStmt{Table: table, Columns: cols, Ordered: ordered}, nil
}

// parseSelect parses:
//
//	SELECT (* | IDENT (, IDENT)*) FROM IDENT [ WHERE expr ]
func (p *Parser) parseSelect() (Statement, error) {
	if err := p.advance(); err != nil { // consume SELECT
		return nil, err
	}

	var cols []string
	if p.is(token.MUL) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		for {
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			cols = append(cols, name)
			if p.is(token.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}

	if _, err := p.expect(token.FROM); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var where ast.Expr
	if p.is(token.WHERE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		where, err = p.ParseExpr()
		if err != nil {
			return nil, err
		}
		where, err = ast.Fold(where)
		if err != nil {
			return nil, err
		}
	}

	return &SelectStmt{Table: table, Columns: cols, Where: where}, nil
}
