// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package expr

import (
	"strings"

	"github.com/pkg/errors"
)

// Notation selects the operator set used to format expressions.
//
type Notation int

// Supported notations.
//
//	Unicode:     ¬A ∧ B ∨ C
//	Plain:       !A & B | C
//	Programming: !A && B || C
//	CUPL:        !A & B # C
//
const (
	Unicode Notation = iota
	Plain
	Programming
	CUPL
)

type symbols struct {
	not, and, or string
	t, f         string
}

var notations = [...]symbols{
	Unicode:     {"¬", " ∧ ", " ∨ ", "1", "0"},
	Plain:       {"!", " & ", " | ", "1", "0"},
	Programming: {"!", " && ", " || ", "true", "false"},
	CUPL:        {"!", " & ", " # ", "'b'1", "'b'0"},
}

var notationNames = [...]string{
	Unicode:     "unicode",
	Plain:       "plain",
	Programming: "programming",
	CUPL:        "cupl",
}

func (n Notation) String() string {
	if n < 0 || int(n) >= len(notationNames) {
		return "unknown"
	}
	return notationNames[n]
}

// NotationByName returns the notation with the given name.
//
func NotationByName(name string) (Notation, error) {
	for i, s := range notationNames {
		if strings.EqualFold(s, name) {
			return Notation(i), nil
		}
	}
	return 0, errors.Errorf("unknown notation %q", name)
}

// operator precedence
const (
	precOr = iota + 1
	precAnd
	precUnary
)

func precedence(e Expression) int {
	if o, ok := e.(*Operation); ok {
		if o.Op == OpAnd {
			return precAnd
		}
		return precOr
	}
	return precUnary
}

// Format returns the textual representation of e in the given notation.
// Operation arguments are written in order and parentheses are only added
// where required.
//
func Format(e Expression, n Notation) string {
	if n < 0 || int(n) >= len(notations) {
		n = Plain
	}
	var b strings.Builder
	format(&b, e, &notations[n])
	return b.String()
}

func format(b *strings.Builder, e Expression, s *symbols) {
	switch e := e.(type) {
	case Variable:
		b.WriteString(string(e))
	case Constant:
		if e {
			b.WriteString(s.t)
		} else {
			b.WriteString(s.f)
		}
	case *NotExpr:
		b.WriteString(s.not)
		sub(b, e.X, precUnary, s)
	case *Operation:
		sep := s.and
		if e.Op == OpOr {
			sep = s.or
		}
		p := precedence(e)
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(sep)
			}
			sub(b, a, p, s)
		}
	}
}

func sub(b *strings.Builder, e Expression, parent int, s *symbols) {
	if precedence(e) < parent {
		b.WriteByte('(')
		format(b, e, s)
		b.WriteByte(')')
		return
	}
	format(b, e, s)
}
