// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	"github.com/db47h/logicsim/expr"
)

// maximum number of input bits tested exhaustively.
const maxExhaustive = 12

func connString(pins ...[]circuit.Pin) string {
	var b strings.Builder
	for _, ps := range pins {
		for _, p := range ps {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteRune('=')
			b.WriteString(p.Name)
		}
	}
	return b.String()
}

func pinList(pins []circuit.Pin) string {
	var b strings.Builder
	for _, p := range pins {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Bits > 1 {
			b.WriteRune('[')
			b.WriteString(strconv.Itoa(p.Bits))
			b.WriteRune(']')
		}
	}
	return b.String()
}

func wrap(part circuit.NewPartFn) (*circuit.Circuit, error) {
	p := part("")
	return circuit.Build(pinList(p.Inputs), pinList(p.Outputs),
		circuit.Parts{part(connString(p.Inputs, p.Outputs))})
}

// inputSets calls fn with successive input assignments: all of them if the
// total width of the inputs is small enough, all zeros, all ones and random
// values otherwise.
func inputSets(ins []circuit.Pin, fn func(map[string]uint64) bool) {
	total := 0
	for _, p := range ins {
		total += p.Bits
	}
	vals := make(map[string]uint64, len(ins))
	if total <= maxExhaustive {
		for n := uint64(0); n < 1<<uint(total); n++ {
			v := n
			for i := len(ins) - 1; i >= 0; i-- {
				vals[ins[i].Name] = v & logicsim.Mask(ins[i].Bits)
				v >>= uint(ins[i].Bits)
			}
			if !fn(vals) {
				return
			}
		}
		return
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 2+1<<maxExhaustive; i++ {
		for _, p := range ins {
			switch i {
			case 0:
				vals[p.Name] = 0
			case 1:
				vals[p.Name] = logicsim.Mask(p.Bits)
			default:
				vals[p.Name] = rnd.Uint64() & logicsim.Mask(p.Bits)
			}
		}
		if !fn(vals) {
			return
		}
	}
}

func errString(vals map[string]uint64, ins []circuit.Pin, oname string, ex, got logicsim.Value) string {
	var b strings.Builder
	for _, p := range ins {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteRune('=')
		b.WriteString(strconv.FormatUint(vals[p.Name], 10))
	}
	return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
func ComparePart(t testing.TB, part1, part2 circuit.NewPartFn) {
	t.Helper()

	ps1, ps2 := part1(""), part2("")
	if pinList(ps1.Inputs) != pinList(ps2.Inputs) {
		t.Fatalf("input mismatch: %q != %q", pinList(ps1.Inputs), pinList(ps2.Inputs))
	}
	if pinList(ps1.Outputs) != pinList(ps2.Outputs) {
		t.Fatalf("output mismatch: %q != %q", pinList(ps1.Outputs), pinList(ps2.Outputs))
	}
	c1, err := wrap(part1)
	if err != nil {
		t.Fatal(err)
	}
	defer c1.Close()
	c2, err := wrap(part2)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()
	for _, c := range []*circuit.Circuit{c1, c2} {
		if err = c.Init(); err != nil {
			t.Fatal(err)
		}
	}

	start := time.Now()
	inputSets(ps1.Inputs, func(vals map[string]uint64) bool {
		for _, c := range []*circuit.Circuit{c1, c2} {
			if err = c.SetAll(vals); err != nil {
				t.Fatal(err)
			}
		}
		for _, o := range ps1.Outputs {
			v1, _ := c1.Get(o.Name)
			v2, _ := c2.Get(o.Name)
			if !v1.Equal(v2) {
				t.Fatal(errString(vals, ps1.Inputs, o.Name, v1, v2))
				return false
			}
		}
		return true
	})
	t.Logf("%d + %d components. %d steps in %v.", c1.Size(), c2.Size(), c1.Steps()+c2.Steps(), time.Since(start))
}

// CompareExpression checks that the given output of c matches e for all the
// assignments of the inputs of c. All inputs of c must be 1 bit wide and all
// variables of e must be inputs of c.
//
func CompareExpression(t testing.TB, c *circuit.Circuit, output string, e expr.Expression) {
	t.Helper()

	ins := c.Inputs()
	vars := make([]expr.Variable, len(ins))
	for i, p := range ins {
		if p.Bits != 1 {
			t.Fatalf("input %s is %d bits wide", p.Name, p.Bits)
		}
		vars[i] = expr.Var(p.Name)
	}
	f, err := expr.NewContextFiller(vars)
	if err != nil {
		t.Fatal(err)
	}
	if err = c.Init(); err != nil {
		t.Fatal(err)
	}
	vals := make(map[string]uint64, len(ins))
	for row := 0; row < f.Rows(); row++ {
		ctx := f.Fill(row)
		for _, v := range vars {
			vals[string(v)] = 0
			if ctx[v] {
				vals[string(v)] = 1
			}
		}
		want, err := e.Calculate(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if err = c.SetAll(vals); err != nil {
			t.Fatal(err)
		}
		got, err := c.Get(output)
		if err != nil {
			t.Fatal(err)
		}
		if got.Bool() != want {
			t.Fatal(errString(vals, ins, output, logicsim.Bool(want), got))
		}
	}
}
