package parser

import (
	"strconv"
	"strings"

	"github.com/dbohdan/memdb/ast"
	"github.com/dbohdan/memdb/token"
	"github.com/dbohdan/memdb/value"
)

// ParseExpr parses one expression starting at the parser's current
// token, following the grammar's explicit precedence-level chain:
// or > xor > and > relational (non-associative) > sum > product >
// unary > primary.
func (p *Parser) ParseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for p.is(token.OR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = &ast.Internal{Op: ast.OR, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseXor() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.is(token.XOR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Internal{Op: ast.XOR, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	for p.is(token.AND) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		left = &ast.Internal{Op: ast.AND, Left: left, Right: right}
	}
	return left, nil
}

// parseRel parses at most one relational comparison: "a = b" is legal,
// "a = b = c" is not — the grammar is intentionally non-associative at
// this level.
func (p *Parser) parseRel() (ast.Expr, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	op, ok := relOpFor(p.cur.Type)
	if !ok {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	return &ast.Internal{Op: op, Left: left, Right: right}, nil
}

func relOpFor(t token.Token) (ast.Op, bool) {
	switch t {
	case token.EQ:
		return ast.EQ, true
	case token.NE:
		return ast.NE, true
	case token.LT:
		return ast.LT, true
	case token.GT:
		return ast.GT, true
	case token.LE:
		return ast.LE, true
	case token.GE:
		return ast.GE, true
	default:
		return 0, false
	}
}

func (p *Parser) parseSum() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.is(token.PLUS) || p.is(token.MINUS) {
		op := ast.PLS
		if p.is(token.MINUS) {
			op = ast.MNS
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.Internal{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.is(token.MUL) || p.is(token.DIV) || p.is(token.MOD) {
		var op ast.Op
		switch p.cur.Type {
		case token.MUL:
			op = ast.MUL
		case token.DIV:
			op = ast.DIV
		default:
			op = ast.MOD
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Internal{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur.Type {
	case token.PLUS, token.MINUS, token.NOT:
		op := ast.PLS
		switch p.cur.Type {
		case token.MINUS:
			op = ast.MNS
		case token.NOT:
			op = ast.NOT
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Internal{Op: op, Left: operand}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Type {
	case token.IDENT:
		name := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Symbol{Name: name}, nil
	case token.INT_LIT, token.BOOL_LIT, token.STR_LIT, token.BYTES_LIT:
		v, err := p.parseLiteralValue()
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Val: v}, nil
	case token.LPAR:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAR); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errorf("expected an expression, got %q", p.cur.Value)
	}
}

// parseLiteralValue consumes the current literal token and returns its
// decoded value.Value.
func (p *Parser) parseLiteralValue() (value.Value, error) {
	it := p.cur
	switch it.Type {
	case token.INT_LIT:
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		n, err := parseIntLit(it.Value)
		if err != nil {
			return value.Value{}, p.errorf("malformed integer literal %q", it.Value)
		}
		return value.NewInt32(n), nil
	case token.BOOL_LIT:
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		return value.NewBool(strings.EqualFold(it.Value, "true")), nil
	case token.STR_LIT:
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		return value.NewString(it.Value), nil
	case token.BYTES_LIT:
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		b, err := value.BytesFromHex(it.Value)
		if err != nil {
			return value.Value{}, p.errorf("malformed bytes literal %q", it.Value)
		}
		return value.NewBytes(b), nil
	default:
		return value.Value{}, p.errorf("expected a literal, got %q", it.Value)
	}
}

func parseIntLit(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}
