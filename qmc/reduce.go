// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package qmc

import (
	"math/bits"
	"sort"
	"strings"

	"github.com/db47h/logicsim/expr"
	"github.com/pkg/errors"
)

// ErrTooManyVariables is returned when a table has more than
// expr.MaxVariables variables.
//
var ErrTooManyVariables = expr.ErrTooManyVariables

// Implicant is a product term. Bits set in Care are the variables present in
// the term and Value holds their polarity. Minterms lists the One rows covered
// by the term in ascending order; don't care rows are never listed.
//
type Implicant struct {
	Value    uint64
	Care     uint64
	Minterms []int
}

// Covers reports whether row m satisfies i.
//
func (i *Implicant) Covers(m int) bool {
	return uint64(m)&i.Care == i.Value
}

// Literals returns the number of literals in the term.
//
func (i *Implicant) Literals() int {
	return bits.OnesCount64(i.Care)
}

// Pattern returns the term as a string of 0, 1 and - for vars variables, most
// significant first.
//
func (i *Implicant) Pattern(vars int) string {
	var b strings.Builder
	for k := vars - 1; k >= 0; k-- {
		m := uint64(1) << uint(k)
		switch {
		case i.Care&m == 0:
			b.WriteByte('-')
		case i.Value&m != 0:
			b.WriteByte('1')
		default:
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Expression returns the product term for the given variables. A term without
// literals is expr.True.
//
func (i *Implicant) Expression(vars []expr.Variable) expr.Expression {
	n := len(vars)
	var lits []expr.Expression
	for k, v := range vars {
		m := uint64(1) << uint(n-1-k)
		if i.Care&m == 0 {
			continue
		}
		if i.Value&m != 0 {
			lits = append(lits, v)
		} else {
			lits = append(lits, expr.Not(v))
		}
	}
	return expr.And(lits...)
}

type term struct {
	value, care uint64
	ones        []int // covered One rows
	merged      bool
}

func (t *term) weight() int { return bits.OnesCount64(t.value) }

// Reduce returns the prime implicants of the boolean function of vars
// variables given by table. Don't care rows are used to merge terms but
// primes that only cover don't care rows are dropped.
//
// Primes are returned in a deterministic order: by first covered minterm, then
// by increasing literal count.
//
func Reduce(vars int, table BoolTable) ([]Implicant, error) {
	if vars < 0 || vars > expr.MaxVariables {
		return nil, ErrTooManyVariables
	}
	if table.Len() != 1<<uint(vars) {
		return nil, errors.Errorf("table has %d rows, expected %d for %d variables", table.Len(), 1<<uint(vars), vars)
	}
	full := uint64(1)<<uint(vars) - 1
	var terms []*term
	for i, n := 0, table.Len(); i < n; i++ {
		switch table.Get(i) {
		case One:
			terms = append(terms, &term{value: uint64(i), care: full, ones: []int{i}})
		case DontCare:
			terms = append(terms, &term{value: uint64(i), care: full})
		}
	}

	var primes []*term
	for len(terms) > 0 {
		groups := make([][]*term, vars+1)
		for _, t := range terms {
			w := t.weight()
			groups[w] = append(groups[w], t)
		}
		var next []*term
		index := make(map[[2]uint64]*term)
		for w := 0; w < vars; w++ {
			for _, a := range groups[w] {
				for _, b := range groups[w+1] {
					if a.care != b.care {
						continue
					}
					diff := a.value ^ b.value
					if bits.OnesCount64(diff) != 1 {
						continue
					}
					a.merged, b.merged = true, true
					key := [2]uint64{a.value, a.care &^ diff}
					if _, ok := index[key]; ok {
						// same cube, same rows
						continue
					}
					t := &term{value: a.value, care: a.care &^ diff, ones: union(a.ones, b.ones)}
					index[key] = t
					next = append(next, t)
				}
			}
		}
		for _, t := range terms {
			if !t.merged && len(t.ones) > 0 {
				primes = append(primes, t)
			}
		}
		terms = next
	}

	out := make([]Implicant, len(primes))
	for i, p := range primes {
		out[i] = Implicant{Value: p.value, Care: p.care, Minterms: p.ones}
	}
	sortImplicants(out)
	return out, nil
}

func sortImplicants(is []Implicant) {
	sort.SliceStable(is, func(i, j int) bool {
		a, b := &is[i], &is[j]
		if a.Minterms[0] != b.Minterms[0] {
			return a.Minterms[0] < b.Minterms[0]
		}
		if la, lb := a.Literals(), b.Literals(); la != lb {
			return la < lb
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Care < b.Care
	})
}

// union merges two sorted lists.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
