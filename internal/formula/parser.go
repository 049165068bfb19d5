package formula

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The grammar, smallest-binding first:
//
//	expr       = additive { ("<"|"<="|">"|">="|"=="|"!=") additive }
//	additive   = multiplic { ("+"|"-") multiplic }
//	multiplic  = unary { ("*"|"/") unary }
//	unary      = [ "-" ] primary
//	primary    = NUMBER | STRING | IDENT | IDENT "(" [ expr { "," expr } ] ")" | "(" expr ")"
//
// There is no assignment, no looping construct, and no user-defined function,
// so evaluation always terminates.

type node interface {
	eval(env *env) (Value, error)
}

type numberLit struct{ val decimal.Decimal }
type stringLit struct{ val string }
type variable struct{ name string }

type binary struct {
	op          tokenKind
	left, right node
}

type negate struct{ operand node }

type call struct {
	name string
	args []node
}

type parser struct {
	tokens []token
	pos    int
}

func parse(input string) (node, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.peek().text, p.peek().pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return token{}, fmt.Errorf("expected %s at position %d, got %q", what, t.pos, t.text)
	}
	return t, nil
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokLT, tokLE, tokGT, tokGE, tokEQ, tokNE:
			op := p.next().kind
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = &binary{op: op, left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus, tokMinus:
			op := p.next().kind
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = &binary{op: op, left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar, tokSlash:
			op := p.next().kind
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &binary{op: op, left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	if p.peek().kind == tokMinus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &negate{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		d, err := decimal.NewFromString(t.text)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at position %d", t.text, t.pos)
		}
		return &numberLit{val: d}, nil
	case tokString:
		return &stringLit{val: t.text}, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(t.text)
		}
		return &variable{name: t.text}, nil
	case tokLParen:
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
}

func (p *parser) parseCall(name string) (node, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	c := &call{name: name}
	if p.peek().kind == tokRParen {
		p.next()
		return c, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.args = append(c.args, arg)
		switch p.peek().kind {
		case tokComma:
			p.next()
		case tokRParen:
			p.next()
			return c, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')' at position %d, got %q", p.peek().pos, p.peek().text)
		}
	}
}
