// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package expr_test

import (
	"math/rand"
	"testing"

	"github.com/db47h/logicsim/expr"
	"github.com/retroenv/retrogolib/assert"
)

func TestParse(t *testing.T) {
	data := []struct {
		in, want string
	}{
		{"A", "A"},
		{"  A &B ", "A & B"},
		{"A | B & C", "A | B & C"},
		{"(A | B) & C", "(A | B) & C"},
		{"A * B + ~C", "A & B | !C"},
		{"A && B || !C", "A & B | !C"},
		{"¬A ∧ B ∨ C", "!A & B | C"},
		{"A & B # C", "A & B | C"},
		{"'b'1 & A", "A"},
		{"A & 'b'0", "0"},
		{"true", "1"},
		{"false | x_1", "x_1"},
		{"!!!A", "!A"},
		{"((A))", "A"},
		{"A & (B & C)", "A & B & C"},
		{"été & b", "été & b"},
		{"true_a", "true_a"},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			e, err := expr.Parse(d.in)
			assert.NoError(t, err)
			assert.Equal(t, d.want, expr.Format(e, expr.Plain))
		})
	}
}

func TestParse_errors(t *testing.T) {
	data := []struct {
		in, err string
	}{
		{"", "unexpected end of expression"},
		{"A &", "unexpected end of expression"},
		{"(A | B", "missing closing parenthesis"},
		{"A B", `unexpected "B"`},
		{"A & )", `unexpected ")"`},
		{"A $ B", "unexpected character '$'"},
		{"1A", `invalid identifier "1A"`},
		{"A | ^", `in "A | ^" at pos 5`},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			_, err := expr.Parse(d.in)
			assert.ErrorContains(t, err, d.err)
		})
	}
}

// randomExpr returns a random expression of the given depth over vars.
func randomExpr(r *rand.Rand, vars []expr.Variable, depth int) expr.Expression {
	if depth == 0 {
		switch r.Intn(8) {
		case 0:
			return expr.Constant(r.Intn(2) == 1)
		default:
			return vars[r.Intn(len(vars))]
		}
	}
	switch r.Intn(3) {
	case 0:
		return expr.Not(randomExpr(r, vars, depth-1))
	case 1:
		return expr.And(randomExpr(r, vars, depth-1), randomExpr(r, vars, depth-1))
	default:
		return expr.Or(randomExpr(r, vars, depth-1), randomExpr(r, vars, depth-1), randomExpr(r, vars, depth-1))
	}
}

// Formatting in any notation and parsing back yields the same expression.
func TestParse_roundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	vars := []expr.Variable{"A", "B", "C", "D"}
	notations := []expr.Notation{expr.Unicode, expr.Plain, expr.Programming, expr.CUPL}
	for i := 0; i < 200; i++ {
		e := randomExpr(r, vars, 1+i%4)
		for _, n := range notations {
			s := expr.Format(e, n)
			p, err := expr.Parse(s)
			if err != nil {
				t.Fatalf("%s: %v", s, err)
			}
			if !expr.Equal(e, p) {
				t.Fatalf("%s (%s): got %s, expected %s", s, n, p, e)
			}
		}
	}
}

func TestNotationByName(t *testing.T) {
	for _, n := range []expr.Notation{expr.Unicode, expr.Plain, expr.Programming, expr.CUPL} {
		got, err := expr.NotationByName(n.String())
		assert.NoError(t, err)
		assert.Equal(t, n, got)
	}
	n, err := expr.NotationByName("CUPL")
	assert.NoError(t, err)
	assert.Equal(t, expr.CUPL, n)
	_, err = expr.NotationByName("latex")
	assert.ErrorContains(t, err, `unknown notation "latex"`)
	assert.Equal(t, "unknown", expr.Notation(42).String())
}
