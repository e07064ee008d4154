// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package qmc_test

import (
	"testing"

	"github.com/db47h/logicsim/expr"
	"github.com/db47h/logicsim/qmc"
	"github.com/retroenv/retrogolib/assert"
)

var abcd = []expr.Variable{"A", "B", "C", "D"}

// tableOf returns a table of 2^vars rows with the given One and DontCare rows.
func tableOf(vars int, ones, dcs []int) qmc.ByteTable {
	t := make(qmc.ByteTable, 1<<uint(vars))
	for _, m := range ones {
		t[m] = qmc.One
	}
	for _, m := range dcs {
		t[m] = qmc.DontCare
	}
	return t
}

func patterns(vars int, is []qmc.Implicant) []string {
	ps := make([]string, len(is))
	for i := range is {
		ps[i] = is[i].Pattern(vars)
	}
	return ps
}

func TestReduce(t *testing.T) {
	data := []struct {
		name     string
		vars     int
		ones     []int
		dcs      []int
		patterns []string
	}{
		{"empty", 3, nil, nil, []string{}},
		{"tautology", 2, []int{0, 1, 2, 3}, nil, []string{"--"}},
		{"no variables", 0, []int{0}, nil, []string{""}},
		{"single", 3, []int{5}, nil, []string{"101"}},
		{"don't care only", 2, nil, []int{1, 2}, []string{}},
		{"don't cares", 4, []int{4, 8, 10, 11, 12, 15}, []int{9, 14},
			[]string{"-100", "1--0", "10--", "1-1-"}},
		{"cyclic", 3, []int{0, 1, 2, 5, 6, 7}, nil,
			[]string{"0-0", "00-", "-01", "-10", "1-1", "11-"}},
		{"xor", 2, []int{1, 2}, nil, []string{"01", "10"}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			primes, err := qmc.Reduce(d.vars, tableOf(d.vars, d.ones, d.dcs))
			assert.NoError(t, err)
			assert.Equal(t, d.patterns, patterns(d.vars, primes))
		})
	}
}

func TestReduce_minterms(t *testing.T) {
	primes, err := qmc.Reduce(4, tableOf(4, []int{4, 8, 10, 11, 12, 15}, []int{9, 14}))
	assert.NoError(t, err)
	assert.Len(t, primes, 4)
	// don't care rows are not listed
	assert.Equal(t, []int{4, 12}, primes[0].Minterms)
	assert.Equal(t, []int{8, 10, 12}, primes[1].Minterms)
	assert.Equal(t, []int{8, 10, 11}, primes[2].Minterms)
	assert.Equal(t, []int{10, 11, 15}, primes[3].Minterms)
	for _, p := range primes {
		for _, m := range p.Minterms {
			assert.True(t, p.Covers(m))
		}
	}
	assert.False(t, primes[0].Covers(5))
	assert.Equal(t, 3, primes[0].Literals())
	assert.Equal(t, "B & !C & !D", primes[0].Expression(abcd).String())
	assert.Equal(t, "A & C", primes[3].Expression(abcd).String())
}

func TestReduce_errors(t *testing.T) {
	_, err := qmc.Reduce(expr.MaxVariables+1, qmc.ByteTable{})
	assert.Equal(t, qmc.ErrTooManyVariables, err)
	_, err = qmc.Reduce(3, make(qmc.ByteTable, 4))
	assert.ErrorContains(t, err, "table has 4 rows, expected 8 for 3 variables")
}

func TestTables(t *testing.T) {
	bt, err := qmc.ParseTable("0, 1,x X\t- 1")
	assert.NoError(t, err)
	assert.Equal(t, qmc.ByteTable{qmc.Zero, qmc.One, qmc.DontCare, qmc.DontCare, qmc.DontCare, qmc.One}, bt)
	_, err = qmc.ParseTable("0,1,2")
	assert.ErrorContains(t, err, `row 2: invalid value "2"`)

	ones, dcs := qmc.Minterms(bt)
	assert.Equal(t, []int{1, 5}, ones)
	assert.Equal(t, []int{2, 3, 4}, dcs)

	// rows span several words
	pt := qmc.NewBitTable(70)
	assert.Equal(t, 70, pt.Len())
	for i := 0; i < 70; i++ {
		pt.Set(i, qmc.ThreeState(i%3))
	}
	pt.Set(33, qmc.One)
	pt.Set(33, qmc.Zero)
	for i := 0; i < 70; i++ {
		want := qmc.ThreeState(i % 3)
		if i == 33 {
			want = qmc.Zero
		}
		assert.Equal(t, want, pt.Get(i))
	}
	assert.Equal(t, "x", qmc.DontCare.String())
	assert.Equal(t, "1", qmc.One.String())
}

func TestExpressionTable(t *testing.T) {
	e, err := expr.Parse("A & !C | B")
	assert.NoError(t, err)
	et, err := qmc.NewExpressionTable([]expr.Variable{"A", "B", "C"}, e)
	assert.NoError(t, err)
	assert.Equal(t, 8, et.Len())
	ones, dcs := qmc.Minterms(et)
	assert.Equal(t, []int{2, 3, 4, 6, 7}, ones)
	assert.Len(t, dcs, 0)

	_, err = qmc.NewExpressionTable([]expr.Variable{"A", "B"}, e)
	assert.ErrorContains(t, err, "variable C not in table variables")
}
