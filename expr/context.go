// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package expr

import (
	"github.com/pkg/errors"
)

// MaxVariables is the maximum number of variables a ContextFiller can
// enumerate.
//
const MaxVariables = 30

// ErrTooManyVariables is returned when a table or filler would need more than
// MaxVariables variables.
//
var ErrTooManyVariables = errors.Errorf("too many variables (max %d)", MaxVariables)

// Context assigns values to variables.
//
type Context map[Variable]bool

// Get returns the value of v in ctx. It returns an error if v is not defined.
//
func (ctx Context) Get(v Variable) (bool, error) {
	b, ok := ctx[v]
	if !ok {
		return false, errors.Errorf("undefined variable %s", v)
	}
	return b, nil
}

// Set sets the value of v in ctx.
//
func (ctx Context) Set(v Variable, b bool) { ctx[v] = b }

// ContextFiller enumerates all the assignments of a list of variables. Row
// index bits are assigned to variables from the most significant bit: for
// variables A, B, C, row 4 sets A and clears B and C.
//
type ContextFiller struct {
	vars []Variable
	ctx  Context
}

// NewContextFiller returns a ContextFiller for the given variables.
//
func NewContextFiller(vars []Variable) (*ContextFiller, error) {
	if len(vars) > MaxVariables {
		return nil, ErrTooManyVariables
	}
	f := &ContextFiller{
		vars: append([]Variable(nil), vars...),
		ctx:  make(Context, len(vars)),
	}
	f.Fill(0)
	return f, nil
}

// Vars returns the variables of f.
//
func (f *ContextFiller) Vars() []Variable { return f.vars }

// Rows returns the number of assignments, 2^len(Vars()).
//
func (f *ContextFiller) Rows() int { return 1 << uint(len(f.vars)) }

// Fill sets the variables for the given row and returns the context. The
// returned Context is reused by subsequent calls.
//
func (f *ContextFiller) Fill(row int) Context {
	n := len(f.vars)
	for i, v := range f.vars {
		f.ctx[v] = row&(1<<uint(n-1-i)) != 0
	}
	return f.ctx
}

// Table evaluates e for every row of f.
//
func (f *ContextFiller) Table(e Expression) ([]bool, error) {
	t := make([]bool, f.Rows())
	for i := range t {
		v, err := e.Calculate(f.Fill(i))
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		t[i] = v
	}
	return t, nil
}
