// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package qmc implements boolean function minimization with the
// Quine-McCluskey method.
//
// A function of n variables is given as a truth table of 2^n rows where
// each row is Zero, One or DontCare. The row index encodes the variable
// values, variable 0 being the most significant bit. Reduce computes the
// prime implicants of the function and a PrimeSelector chooses a set of
// primes covering all One rows:
//
//	vars := []expr.Variable{"A", "B", "C"}
//	t, _ := qmc.ParseTable("0,1,1,1,0,0,x,1")
//	e, err := qmc.Minimize(vars, t, qmc.Greedy{})
//
package qmc

import (
	"strings"

	"github.com/db47h/logicsim/expr"
	"github.com/pkg/errors"
)

// ThreeState is the value of a truth table row.
//
type ThreeState uint8

// Row values.
const (
	Zero ThreeState = iota
	One
	DontCare
)

func (s ThreeState) String() string {
	switch s {
	case Zero:
		return "0"
	case One:
		return "1"
	}
	return "x"
}

// BoolTable is a read only truth table.
//
type BoolTable interface {
	// Len returns the number of rows.
	Len() int
	// Get returns the value of row i.
	Get(i int) ThreeState
}

// ByteTable is a truth table with one byte per row.
//
type ByteTable []ThreeState

// Len implements BoolTable.
func (t ByteTable) Len() int { return len(t) }

// Get implements BoolTable.
func (t ByteTable) Get(i int) ThreeState { return t[i] }

// ParseTable parses a comma or space separated list of row values. Valid row
// values are 0, 1, x, X and -.
//
func ParseTable(s string) (ByteTable, error) {
	fs := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	t := make(ByteTable, len(fs))
	for i, f := range fs {
		switch f {
		case "0":
			t[i] = Zero
		case "1":
			t[i] = One
		case "x", "X", "-":
			t[i] = DontCare
		default:
			return nil, errors.Errorf("row %d: invalid value %q", i, f)
		}
	}
	return t, nil
}

// BitTable is a truth table packing 2 bits per row.
//
type BitTable struct {
	n     int
	words []uint64
}

// NewBitTable returns a new BitTable with the given row count. All rows are
// initially Zero.
//
func NewBitTable(rows int) *BitTable {
	return &BitTable{n: rows, words: make([]uint64, (rows+31)/32)}
}

// Len implements BoolTable.
func (t *BitTable) Len() int { return t.n }

// Get implements BoolTable.
func (t *BitTable) Get(i int) ThreeState {
	return ThreeState(t.words[i/32] >> (uint(i%32) * 2) & 3)
}

// Set sets the value of row i.
//
func (t *BitTable) Set(i int, s ThreeState) {
	sh := uint(i%32) * 2
	w := &t.words[i/32]
	*w = *w&^(3<<sh) | uint64(s&3)<<sh
}

// ExpressionTable is the truth table of an expression. Rows are computed on
// demand.
//
type ExpressionTable struct {
	e      expr.Expression
	filler *expr.ContextFiller
}

// NewExpressionTable returns the truth table of e over the given variables.
// Every variable of e must be in vars.
//
func NewExpressionTable(vars []expr.Variable, e expr.Expression) (*ExpressionTable, error) {
	f, err := expr.NewContextFiller(vars)
	if err != nil {
		return nil, err
	}
	known := make(map[expr.Variable]bool, len(vars))
	for _, v := range vars {
		known[v] = true
	}
	for _, v := range expr.Variables(e) {
		if !known[v] {
			return nil, errors.Errorf("variable %s not in table variables", v)
		}
	}
	return &ExpressionTable{e: e, filler: f}, nil
}

// Len implements BoolTable.
func (t *ExpressionTable) Len() int { return t.filler.Rows() }

// Get implements BoolTable. It is not safe for concurrent use.
func (t *ExpressionTable) Get(i int) ThreeState {
	v, err := t.e.Calculate(t.filler.Fill(i))
	if err != nil {
		// all variables are checked by NewExpressionTable
		panic(err)
	}
	if v {
		return One
	}
	return Zero
}

// Minterms returns the indices of the One and DontCare rows of t.
//
func Minterms(t BoolTable) (ones, dontCares []int) {
	n := t.Len()
	for i := 0; i < n; i++ {
		switch t.Get(i) {
		case One:
			ones = append(ones, i)
		case DontCare:
			dontCares = append(dontCares, i)
		}
	}
	return ones, dontCares
}
