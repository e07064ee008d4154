// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "fmt"

// A Node is a unit of combinational or sequential logic in a Model.
//
// Nodes are evaluated in two phases. ReadInputs computes the node's next state
// from its inputs into node local storage and must not touch any output.
// WriteOutputs then publishes that state to the outputs. Within one evaluation
// round, all dirty nodes read their inputs before any of them writes, so that
// the order of evaluation within a round does not matter.
//
type Node interface {
	// Inputs returns the values the node listens to.
	Inputs() []*ObservableValue
	// Outputs returns the values the node writes to.
	Outputs() []*ObservableValue
	ReadInputs() error
	WriteOutputs() error
}

// A Resetter is a Node with internal state. Reset is called by Model.Init.
//
type Resetter interface {
	Reset()
}

type named interface {
	Name() string
}

// NodeName returns the name of n if it has a Name method, or its type name.
//
func NodeName(n Node) string {
	if nn, ok := n.(named); ok {
		return nn.Name()
	}
	return fmt.Sprintf("%T", n)
}
