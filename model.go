// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Event is the kind of event reported to model observers.
//
type Event int

// Model events.
const (
	EventInit Event = iota // model initialized and settled
	EventStep              // model settled after a step
	EventClose             // model closed
)

func (e Event) String() string {
	switch e {
	case EventInit:
		return "init"
	case EventStep:
		return "step"
	case EventClose:
		return "close"
	}
	return "unknown"
}

// An Observer is notified once per settled step of a model. Observers are
// called with exclusive access to the model and must not call any of its
// methods.
//
type Observer func(m *Model, e Event)

type modelState int

const (
	stateCreated modelState = iota
	stateRunning
	stateFailed
	stateClosed
)

// Model is an event driven circuit simulation. It owns its nodes and drives
// them to a stable state on each step.
//
type Model struct {
	mu sync.Mutex

	cfg    *config
	log    *log.Logger
	nodes  []Node
	clocks []*Clock

	dirty  []NodeID // nodes to evaluate in the next round
	spare  []NodeID
	queued []bool // queued[id] is true if id is in dirty

	observers []Observer
	state     modelState
	evals     int  // node evaluations during the last step
	steps     uint // successful steps
}

// New returns a new empty Model.
//
func New(opts ...Option) *Model {
	cfg := makeConfig()
	for _, o := range opts {
		o(cfg)
	}
	l := cfg.logger
	if l == nil {
		l = defaultLogger()
	}
	return &Model{cfg: cfg, log: l}
}

// Add adds a node to the model and registers it as a listener of its inputs.
// Nodes cannot be added once the model has been initialized.
//
func (m *Model) Add(n Node) (NodeID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.add(n)
}

func (m *Model) add(n Node) (NodeID, error) {
	switch m.state {
	case stateCreated:
	case stateClosed:
		return -1, ErrModelClosed
	default:
		return -1, ErrModelRunning
	}
	id := NodeID(len(m.nodes))
	for _, in := range n.Inputs() {
		if in == nil {
			return -1, errors.Errorf("node %s: unconnected input", NodeName(n))
		}
		if err := in.attach(m); err != nil {
			return -1, errors.Wrap(err, NodeName(n))
		}
	}
	for _, in := range n.Inputs() {
		in.AddListener(id)
	}
	m.nodes = append(m.nodes, n)
	m.queued = append(m.queued, false)
	return id, nil
}

// AddClock adds a clock to the model. Clocks are toggled by Tick.
//
func (m *Model) AddClock(c *Clock) (NodeID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, err := m.add(c)
	if err != nil {
		return id, err
	}
	m.clocks = append(m.clocks, c)
	return id, nil
}

// Node returns the node with the given id.
//
func (m *Model) Node(id NodeID) Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodes[id]
}

// Size returns the node count in the model.
//
func (m *Model) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.nodes)
}

// Clocks returns the clocks of the model.
//
func (m *Model) Clocks() []*Clock {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clocks
}

// AddObserver registers an observer.
//
func (m *Model) AddObserver(o Observer) {
	m.mu.Lock()
	m.observers = append(m.observers, o)
	m.mu.Unlock()
}

// Evaluations returns the number of node evaluations performed during the
// last step.
//
func (m *Model) Evaluations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evals
}

// Steps returns the value of the step counter.
//
func (m *Model) Steps() uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps
}

func (m *Model) markDirty(id NodeID) {
	if int(id) >= len(m.queued) || m.queued[id] {
		return
	}
	m.queued[id] = true
	m.dirty = append(m.dirty, id)
}

func (m *Model) limit() int {
	l := m.cfg.iterationFactor * len(m.nodes)
	if l < m.cfg.minIterations {
		l = m.cfg.minIterations
	}
	return l
}

// Init resets all nodes to their initial state and runs the model until it
// settles. Init must be called before the first step and after a step
// returned an error.
//
func (m *Model) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.init()
}

func (m *Model) init() error {
	if m.state == stateClosed {
		return ErrModelClosed
	}
	m.clearDirty()
	for id, n := range m.nodes {
		if r, ok := n.(Resetter); ok {
			r.Reset()
		}
		m.markDirty(NodeID(id))
	}
	m.state = stateRunning
	if err := m.settle(); err != nil {
		return err
	}
	m.log.Debug("Model initialized",
		log.Int("nodes", len(m.nodes)),
		log.Int("evaluations", m.evals))
	m.notify(EventInit)
	return nil
}

// DoStep evaluates all dirty nodes until the model settles.
//
// If the model does not settle within its evaluation limit, DoStep returns an
// *OscillationError. Node errors like *ShortCircuitError or *SelectionError
// are returned as is. In all error cases, the state of the model's values is
// undefined and subsequent calls to DoStep return ErrNotInitialized until the
// model is re-initialized by Init.
//
func (m *Model) DoStep() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doStep()
}

func (m *Model) doStep() error {
	switch m.state {
	case stateRunning:
	case stateClosed:
		return ErrModelClosed
	default:
		return ErrNotInitialized
	}
	if err := m.settle(); err != nil {
		return err
	}
	m.notify(EventStep)
	return nil
}

func (m *Model) settle() error {
	m.evals = 0
	limit := m.limit()
	for len(m.dirty) > 0 {
		batch := m.dirty
		m.dirty = m.spare[:0]
		for _, id := range batch {
			m.queued[id] = false
		}
		if m.evals+len(batch) > limit {
			return m.fail(&OscillationError{Evaluations: m.evals, Nodes: m.names(batch)})
		}
		for _, id := range batch {
			if err := m.nodes[id].ReadInputs(); err != nil {
				return m.fail(err)
			}
		}
		m.evals += len(batch)
		for _, id := range batch {
			if err := m.nodes[id].WriteOutputs(); err != nil {
				return m.fail(err)
			}
		}
		m.spare = batch
	}
	m.steps++
	return nil
}

func (m *Model) fail(err error) error {
	m.state = stateFailed
	m.clearDirty()
	m.log.Error("Simulation step aborted",
		log.Int("evaluations", m.evals),
		log.Err(err))
	return err
}

func (m *Model) clearDirty() {
	for _, id := range m.dirty {
		m.queued[id] = false
	}
	// a failed round leaves dirty sharing its backing array with spare
	m.dirty = nil
}

func (m *Model) names(ids []NodeID) []string {
	ids = append([]NodeID(nil), ids...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, NodeName(m.nodes[id]))
	}
	return names
}

func (m *Model) notify(e Event) {
	for _, o := range m.observers {
		o(m, e)
	}
}

// Tick toggles all clocks and runs the model until it settles.
//
func (m *Model) Tick() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick()
}

func (m *Model) tick() error {
	if len(m.clocks) == 0 {
		return errors.New("model has no clock")
	}
	for _, c := range m.clocks {
		c.Toggle()
	}
	return m.doStep()
}

// TickTock runs the simulation for a whole clock cycle.
//
func (m *Model) TickTock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.tick(); err != nil {
		return err
	}
	return m.tick()
}

// Close releases all nodes and notifies observers. A closed model cannot be
// stepped anymore.
//
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateClosed {
		return
	}
	m.notify(EventClose)
	m.state = stateClosed
	m.nodes = nil
	m.clocks = nil
	m.dirty = nil
	m.spare = nil
	m.queued = nil
	m.observers = nil
}

// String returns a short description of the model state.
//
func (m *Model) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b strings.Builder
	b.WriteString("model{")
	switch m.state {
	case stateCreated:
		b.WriteString("created")
	case stateRunning:
		b.WriteString("running")
	case stateFailed:
		b.WriteString("failed")
	case stateClosed:
		b.WriteString("closed")
	}
	b.WriteByte('}')
	return b.String()
}
