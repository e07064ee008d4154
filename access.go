// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// scoped runs fn with exclusive access to m. If settle is true and fn
// succeeded, the model is stepped until it settles before the lock is released.
func scoped[T any](m *Model, settle bool, fn func() (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := fn()
	if err != nil || !settle {
		return r, err
	}
	return r, m.doStep()
}

// Access runs fn with exclusive access to the model, then runs the model until
// it settles. This is the way to modify inputs of a running model from
// concurrent goroutines:
//
//	err := m.Access(func() { in.SetUint(42) })
//
func (m *Model) Access(fn func()) error {
	_, err := scoped(m, true, func() (struct{}, error) {
		fn()
		return struct{}{}, nil
	})
	return err
}

// AccessErr is like Access but fn may return an error, in which case the model
// is not stepped and the error is returned.
//
func (m *Model) AccessErr(fn func() error) error {
	_, err := scoped(m, true, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Read runs fn with exclusive access to the model without stepping it.
// Use it to read a consistent snapshot of several values.
//
func (m *Model) Read(fn func()) {
	_, _ = scoped(m, false, func() (struct{}, error) {
		fn()
		return struct{}{}, nil
	})
}
