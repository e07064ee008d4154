// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package builder_test

import (
	"testing"

	"github.com/db47h/logicsim/builder"
	"github.com/db47h/logicsim/expr"
	"github.com/db47h/logicsim/hwtest"
	"github.com/db47h/logicsim/qmc"
	"github.com/retroenv/retrogolib/assert"
)

func mustParse(t *testing.T, s string) expr.Expression {
	t.Helper()
	e, err := expr.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestBuild(t *testing.T) {
	outs := map[string]string{
		"sum":   "a & !b & !cin | !a & b & !cin | !a & !b & cin | a & b & cin",
		"carry": "a & b | a & cin | b & cin",
		"nand":  "!(a & b)",
		"one":   "1",
		"zero":  "a & 0",
		"buf":   "cin",
		"same":  "!(a & b)",
	}
	b := builder.New()
	for _, name := range []string{"sum", "carry", "nand", "one", "zero", "buf", "same"} {
		assert.NoError(t, b.Add(name, mustParse(t, outs[name])))
	}
	assert.Equal(t, []expr.Variable{"a", "b", "cin"}, b.Inputs())

	c, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	for name, s := range outs {
		t.Run(name, func(t *testing.T) {
			hwtest.CompareExpression(t, c, name, mustParse(t, s))
		})
	}
}

// Common subexpressions are built once.
func TestBuild_shared(t *testing.T) {
	b := builder.New()
	assert.NoError(t, b.Add("z", mustParse(t, "a & b")))
	assert.NoError(t, b.Add("x", mustParse(t, "!(a & b) | c")))
	assert.NoError(t, b.Add("y", mustParse(t, "!(a & b) & c")))
	c, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	// z drives the negation, which is shared by x and y.
	assert.Len(t, c.Components(), 4)
	hwtest.CompareExpression(t, c, "z", mustParse(t, "a & b"))
	hwtest.CompareExpression(t, c, "y", mustParse(t, "!(a & b) & c"))
}

func TestBuild_minimized(t *testing.T) {
	vars := []expr.Variable{"A", "B", "C", "D"}
	tbl, err := qmc.ParseTable("0,0,0,0, 1,0,0,0, 1,x,1,1, 1,0,x,1")
	assert.NoError(t, err)
	e, err := qmc.Minimize(vars, tbl, &qmc.Exhaustive{})
	assert.NoError(t, err)

	b := builder.New()
	assert.NoError(t, b.Add("Y", e))
	c, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	hwtest.CompareExpression(t, c, "Y", e)
	assert.NoError(t, c.SetAll(map[string]uint64{"A": 1, "B": 1, "C": 0, "D": 0}))
	y, err := c.Get("Y")
	assert.NoError(t, err)
	assert.True(t, y.Bool())
}

func TestBuilder_errors(t *testing.T) {
	b := builder.New()
	_, err := b.Build()
	assert.ErrorContains(t, err, "no outputs")

	e := expr.Var("a")
	assert.ErrorContains(t, b.Add("a b", e), `invalid output name "a b"`)
	assert.ErrorContains(t, b.Add("a[2]", e), `invalid output name "a[2]"`)
	assert.ErrorContains(t, b.Add("", e), `invalid output name ""`)
	assert.ErrorContains(t, b.Add("clk", e), `reserved output name "clk"`)
	assert.ErrorContains(t, b.Add("true", e), `reserved output name "true"`)
	assert.NoError(t, b.Add("y", e))
	assert.ErrorContains(t, b.Add("y", e), `duplicate output "y"`)

	assert.NoError(t, b.Add("z", expr.Not(expr.Var("y"))))
	_, err = b.Build()
	assert.ErrorContains(t, err, "output y is also an input")
}
