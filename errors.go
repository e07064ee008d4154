// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Model state errors.
var (
	ErrNotInitialized = errors.New("model not initialized or aborted by a previous error: call Init")
	ErrModelRunning   = errors.New("cannot add nodes to a running model")
	ErrModelClosed    = errors.New("model closed")
)

// BitsError reports a width mismatch between a node input and the value
// wired to it.
//
type BitsError struct {
	Name string // value name
	Want int
	Got  int
}

func (e *BitsError) Error() string {
	return "value " + e.Name + ": expected " + strconv.Itoa(e.Want) + " bits, got " + strconv.Itoa(e.Got)
}

// WiringError is returned while building a circuit.
// It is never returned by Model.DoStep.
//
type WiringError struct {
	Part string
	Pin  string
	Err  error
}

func (e *WiringError) Error() string {
	var b strings.Builder
	b.WriteString(e.Part)
	if e.Pin != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(e.Pin)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

// Cause returns the underlying error.
//
func (e *WiringError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
//
func (e *WiringError) Unwrap() error { return e.Err }

// ShortCircuitError is returned when more than one driver is active on a bus.
//
type ShortCircuitError struct {
	Node    string
	Drivers [2]string
}

func (e *ShortCircuitError) Error() string {
	return e.Node + ": short circuit between " + e.Drivers[0] + " and " + e.Drivers[1]
}

// SelectionError is returned when a multiplexer selects an input that is not
// wired.
//
type SelectionError struct {
	Node     string
	Selected uint64
	Inputs   int
}

func (e *SelectionError) Error() string {
	return e.Node + ": selected input " + strconv.FormatUint(e.Selected, 10) +
		" not present (" + strconv.Itoa(e.Inputs) + " inputs)"
}

// OscillationError is returned when a model does not settle within its
// evaluation limit.
//
type OscillationError struct {
	Evaluations int
	Nodes       []string // nodes still being triggered
}

func (e *OscillationError) Error() string {
	return "oscillation detected after " + strconv.Itoa(e.Evaluations) +
		" evaluations, nodes involved: " + strings.Join(e.Nodes, ", ")
}
