// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package qmc

import (
	"github.com/db47h/logicsim/expr"
	"github.com/pkg/errors"
)

// ToExpression returns the sum of the given product terms. An empty list
// returns expr.False.
//
func ToExpression(vars []expr.Variable, terms []Implicant) expr.Expression {
	args := make([]expr.Expression, len(terms))
	for i := range terms {
		args[i] = terms[i].Expression(vars)
	}
	return expr.Or(args...)
}

// Minimize returns a minimized sum of products for the given truth table.
// Row indices of table map to vars with vars[0] as the most significant bit.
// If sel is nil, Greedy is used.
//
func Minimize(vars []expr.Variable, table BoolTable, sel PrimeSelector) (expr.Expression, error) {
	terms, err := Select(len(vars), table, sel)
	if err != nil {
		return nil, err
	}
	return ToExpression(vars, terms), nil
}

// Select reduces table and returns the product terms chosen by sel.
//
func Select(vars int, table BoolTable, sel PrimeSelector) ([]Implicant, error) {
	if sel == nil {
		sel = Greedy{}
	}
	primes, err := Reduce(vars, table)
	if err != nil {
		return nil, err
	}
	ones, _ := Minterms(table)
	terms, err := sel.Select(primes, ones)
	if err != nil {
		return nil, errors.Wrap(err, "prime selection")
	}
	return terms, nil
}

// MinimizeExpression returns a minimized equivalent of e over its own
// variables.
//
func MinimizeExpression(e expr.Expression, sel PrimeSelector) (expr.Expression, error) {
	vars := expr.Variables(e)
	t, err := NewExpressionTable(vars, e)
	if err != nil {
		return nil, err
	}
	return Minimize(vars, t, sel)
}
