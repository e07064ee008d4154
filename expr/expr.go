// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package expr implements immutable boolean expressions.
//
// Expressions are trees of variables, constants, negations and n-ary And/Or
// operations. They are never mutated: every transformation returns a new
// tree.
//
//	e := expr.Or(expr.And(expr.Var("A"), expr.Not(expr.Var("B"))), expr.Var("C"))
//	fmt.Println(e) // A & !B | C
//
package expr

import (
	"sort"
)

// Expression is a boolean expression.
//
type Expression interface {
	// Calculate evaluates the expression in the given context.
	Calculate(ctx Context) (bool, error)
	String() string
	expr()
}

func (Variable) expr()   {}
func (Constant) expr()   {}
func (*NotExpr) expr()   {}
func (*Operation) expr() {}

// Variable is a named boolean input.
//
type Variable string

// Var returns the variable with the given name.
//
func Var(name string) Variable { return Variable(name) }

// Calculate implements Expression.
func (v Variable) Calculate(ctx Context) (bool, error) {
	return ctx.Get(v)
}

func (v Variable) String() string { return string(v) }

// Constant is a boolean constant.
//
type Constant bool

// Boolean constants.
const (
	True  Constant = true
	False Constant = false
)

// Calculate implements Expression.
func (c Constant) Calculate(Context) (bool, error) { return bool(c), nil }

func (c Constant) String() string { return Format(c, Plain) }

// NotExpr is the negation of an expression.
//
type NotExpr struct {
	X Expression
}

// Not returns the negation of e. Double negations are removed and constants
// are folded.
//
func Not(e Expression) Expression {
	switch e := e.(type) {
	case Constant:
		return !e
	case *NotExpr:
		return e.X
	}
	return &NotExpr{X: e}
}

// Calculate implements Expression.
func (n *NotExpr) Calculate(ctx Context) (bool, error) {
	v, err := n.X.Calculate(ctx)
	return !v, err
}

func (n *NotExpr) String() string { return Format(n, Plain) }

// Op is the kind of an Operation.
//
type Op int

// Operation kinds.
const (
	OpAnd Op = iota
	OpOr
)

func (o Op) String() string {
	if o == OpAnd {
		return "and"
	}
	return "or"
}

// identity returns the neutral element of o.
func (o Op) identity() Constant { return Constant(o == OpAnd) }

// Operation is an n-ary And or Or of its arguments. Argument order is
// preserved.
//
type Operation struct {
	Op   Op
	Args []Expression
}

// And returns the conjunction of args. Nested conjunctions are flattened and
// constants are folded. And with no argument returns True, and And with a
// single argument returns that argument.
//
func And(args ...Expression) Expression { return newOperation(OpAnd, args) }

// Or returns the disjunction of args. See And.
//
func Or(args ...Expression) Expression { return newOperation(OpOr, args) }

func newOperation(op Op, args []Expression) Expression {
	id := op.identity()
	flat := make([]Expression, 0, len(args))
	for _, a := range args {
		switch a := a.(type) {
		case Constant:
			if a != id {
				// absorbing element
				return a
			}
			continue
		case *Operation:
			if a.Op == op {
				flat = append(flat, a.Args...)
				continue
			}
		}
		flat = append(flat, a)
	}
	switch len(flat) {
	case 0:
		return id
	case 1:
		return flat[0]
	}
	return &Operation{Op: op, Args: flat}
}

// Calculate implements Expression.
func (o *Operation) Calculate(ctx Context) (bool, error) {
	id := bool(o.Op.identity())
	for _, a := range o.Args {
		v, err := a.Calculate(ctx)
		if err != nil {
			return false, err
		}
		if v != id {
			return v, nil
		}
	}
	return id, nil
}

func (o *Operation) String() string { return Format(o, Plain) }

// Equal reports whether a and b are structurally equal.
//
func Equal(a, b Expression) bool {
	switch a := a.(type) {
	case Variable:
		b, ok := b.(Variable)
		return ok && a == b
	case Constant:
		b, ok := b.(Constant)
		return ok && a == b
	case *NotExpr:
		b, ok := b.(*NotExpr)
		return ok && Equal(a.X, b.X)
	case *Operation:
		b, ok := b.(*Operation)
		if !ok || a.Op != b.Op || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Variables returns the variables used in e, sorted by name.
//
func Variables(e Expression) []Variable {
	seen := make(map[Variable]struct{})
	walk(e, func(v Variable) { seen[v] = struct{}{} })
	vs := make([]Variable, 0, len(seen))
	for v := range seen {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}

func walk(e Expression, fn func(Variable)) {
	switch e := e.(type) {
	case Variable:
		fn(e)
	case *NotExpr:
		walk(e.X, fn)
	case *Operation:
		for _, a := range e.Args {
			walk(a, fn)
		}
	}
}

// NegationNormalForm returns an equivalent expression where negations only
// apply to variables. De Morgan's laws are used to push negations down.
//
func NegationNormalForm(e Expression) Expression {
	return nnf(e, false)
}

func nnf(e Expression, neg bool) Expression {
	switch e := e.(type) {
	case Variable:
		if neg {
			return &NotExpr{X: e}
		}
		return e
	case Constant:
		if neg {
			return !e
		}
		return e
	case *NotExpr:
		return nnf(e.X, !neg)
	case *Operation:
		op := e.Op
		if neg {
			op = OpAnd + OpOr - op
		}
		args := make([]Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = nnf(a, neg)
		}
		return newOperation(op, args)
	}
	return e
}
