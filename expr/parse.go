// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type token int

const (
	tokEOF token = iota
	tokIdent
	tokConst
	tokNot
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

// operator spellings of all notations, longest first.
var operators = []struct {
	s   string
	tok token
}{
	{"'b'1", tokConst},
	{"'b'0", tokConst},
	{"&&", tokAnd},
	{"||", tokOr},
	{"¬", tokNot},
	{"∧", tokAnd},
	{"∨", tokOr},
	{"!", tokNot},
	{"~", tokNot},
	{"&", tokAnd},
	{"*", tokAnd},
	{"|", tokOr},
	{"#", tokOr},
	{"+", tokOr},
	{"(", tokLParen},
	{")", tokRParen},
}

type parser struct {
	in  string
	pos int

	tok   token
	text  string
	start int
}

// Parse parses a boolean expression. It accepts the operators of every
// notation supported by Format, as well as "*" and "+" for And and Or and
// "~" for Not. Not binds tighter than And, which binds tighter than Or.
// Constants are 0, 1, true and false.
//
//	e, err := expr.Parse("!A & (B | C)")
//
func Parse(s string) (Expression, error) {
	p := &parser{in: s}
	if err := p.next(); err != nil {
		return nil, err
	}
	e, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.tok != tokEOF {
		return nil, p.errorf("unexpected %q", p.text)
	}
	return e, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(errors.Errorf(format, args...), "in %q at pos %d", p.in, p.start+1)
}

func (p *parser) next() error {
	for p.pos < len(p.in) {
		r, sz := utf8.DecodeRuneInString(p.in[p.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		p.pos += sz
	}
	p.start = p.pos
	if p.pos >= len(p.in) {
		p.tok, p.text = tokEOF, ""
		return nil
	}
	rest := p.in[p.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.s) {
			p.tok, p.text = op.tok, op.s
			p.pos += len(op.s)
			return nil
		}
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !isIdentRune(r, true) && !unicode.IsDigit(r) {
		return p.errorf("unexpected character %q", r)
	}
	end := p.pos
	for end < len(p.in) {
		r, sz := utf8.DecodeRuneInString(p.in[end:])
		if !isIdentRune(r, false) {
			break
		}
		end += sz
	}
	p.text = p.in[p.pos:end]
	p.pos = end
	switch p.text {
	case "0", "1", "true", "false":
		p.tok = tokConst
	default:
		if !isIdentRune([]rune(p.text)[0], true) {
			return p.errorf("invalid identifier %q", p.text)
		}
		p.tok = tokIdent
	}
	return nil
}

func isIdentRune(r rune, first bool) bool {
	return r == '_' || unicode.IsLetter(r) || !first && unicode.IsDigit(r)
}

func (p *parser) or() (Expression, error) {
	args, err := p.list(tokOr, p.and)
	if err != nil {
		return nil, err
	}
	return Or(args...), nil
}

func (p *parser) and() (Expression, error) {
	args, err := p.list(tokAnd, p.unary)
	if err != nil {
		return nil, err
	}
	return And(args...), nil
}

func (p *parser) list(sep token, operand func() (Expression, error)) ([]Expression, error) {
	var args []Expression
	for {
		e, err := operand()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if p.tok != sep {
			return args, nil
		}
		if err = p.next(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) unary() (Expression, error) {
	switch p.tok {
	case tokNot:
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Not(e), nil
	case tokIdent:
		v := Var(p.text)
		return v, p.next()
	case tokConst:
		c := Constant(p.text == "1" || p.text == "true" || p.text == "'b'1")
		return c, p.next()
	case tokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.or()
		if err != nil {
			return nil, err
		}
		if p.tok != tokRParen {
			return nil, p.errorf("missing closing parenthesis")
		}
		return e, p.next()
	case tokEOF:
		return nil, p.errorf("unexpected end of expression")
	}
	return nil, p.errorf("unexpected %q", p.text)
}
