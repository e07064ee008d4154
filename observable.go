// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sync"

	"github.com/pkg/errors"
)

// NodeID is a handle to a node in a Model.
//
type NodeID int

// An ObservableValue is a signal line of fixed width. Nodes listening to it
// are marked dirty in the owning model whenever its state changes.
//
// Setting an ObservableValue on a running model must be done from within
// Model.Access or Model.AccessErr.
//
type ObservableValue struct {
	name  string
	bits  int
	mask  uint64
	value uint64
	highZ bool

	mu        sync.Mutex
	model     *Model
	listeners []NodeID
}

// NewObservableValue returns a new ObservableValue with the given name and width.
//
func NewObservableValue(name string, bits int) *ObservableValue {
	if bits < 1 || bits > MaxBits {
		panic(errors.Errorf("%s: invalid bit count %d", name, bits))
	}
	return &ObservableValue{name: name, bits: bits, mask: Mask(bits)}
}

// Name returns the name of v.
//
func (v *ObservableValue) Name() string { return v.name }

// SetName renames v. It must not be called once v is part of a running model.
//
func (v *ObservableValue) SetName(name string) { v.name = name }

// Bits returns the width of v.
//
func (v *ObservableValue) Bits() int { return v.bits }

// Get returns the current state of v.
//
func (v *ObservableValue) Get() Value {
	return Value{bits: uint8(v.bits), content: v.value, highZ: v.highZ}
}

// Uint returns the current value of v.
//
func (v *ObservableValue) Uint() uint64 { return v.value }

// Bool returns true if any bit of v is set.
//
func (v *ObservableValue) Bool() bool { return v.value != 0 }

// IsHighZ returns true if v is floating.
//
func (v *ObservableValue) IsHighZ() bool { return v.highZ }

// Set sets the state of v. The content of s is truncated to the width of v.
//
func (v *ObservableValue) Set(s Value) {
	v.set(s.content&v.mask, s.highZ)
}

// SetUint sets the value of v and clears its high-z flag.
//
func (v *ObservableValue) SetUint(n uint64) {
	v.set(n&v.mask, false)
}

// SetBool sets v to 1 or 0.
//
func (v *ObservableValue) SetBool(b bool) {
	if b {
		v.set(1, false)
	} else {
		v.set(0, false)
	}
}

// SetHighZ sets or clears the high-z flag of v. A floating value reads 0.
//
func (v *ObservableValue) SetHighZ(z bool) {
	if z {
		v.set(0, true)
	} else {
		v.set(v.value, false)
	}
}

func (v *ObservableValue) set(n uint64, z bool) {
	if n == v.value && z == v.highZ {
		return
	}
	v.value, v.highZ = n, z
	v.fireChanged()
}

func (v *ObservableValue) fireChanged() {
	v.mu.Lock()
	m, ls := v.model, v.listeners
	v.mu.Unlock()
	if m == nil {
		return
	}
	for _, id := range ls {
		m.markDirty(id)
	}
}

// AddListener adds the node with the given id to the set of listeners of v.
// Adding the same id twice is a no-op.
//
func (v *ObservableValue) AddListener(id NodeID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, l := range v.listeners {
		if l == id {
			return
		}
	}
	// copy on write so that fireChanged can iterate without holding the lock.
	ls := make([]NodeID, len(v.listeners), len(v.listeners)+1)
	copy(ls, v.listeners)
	v.listeners = append(ls, id)
}

// RemoveListener removes the node with the given id from the listeners of v.
//
func (v *ObservableValue) RemoveListener(id NodeID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	ls := make([]NodeID, 0, len(v.listeners))
	for _, l := range v.listeners {
		if l != id {
			ls = append(ls, l)
		}
	}
	v.listeners = ls
}

// Listeners returns the ids of the nodes listening to v.
//
func (v *ObservableValue) Listeners() []NodeID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]NodeID(nil), v.listeners...)
}

// CheckBits returns a *BitsError if the width of v is not bits.
//
func (v *ObservableValue) CheckBits(bits int) error {
	if v.bits != bits {
		return &BitsError{Name: v.name, Want: bits, Got: v.bits}
	}
	return nil
}

func (v *ObservableValue) attach(m *Model) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.model != nil && v.model != m {
		return errors.Errorf("value %s already used in another model", v.name)
	}
	v.model = m
	return nil
}

func (v *ObservableValue) String() string {
	return v.name + "=" + v.Get().String()
}
