// Package circuit sequences immutable gates into an ordered circuit.
package circuit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"qtermgate/gate"
)

// ErrOutOfRange is returned when a gate touches a qubit or classical bit the
// circuit does not have.
var ErrOutOfRange = errors.New("circuit: index out of range")

// Circuit holds gates by value in application order. It is not safe for
// concurrent writers; the gates themselves may be shared freely.
type Circuit struct {
	qubitCount int
	cbitCount  int
	gates      []gate.QuantumGate
}

// New returns an empty circuit over the given qubits. Classical bits default
// to one per qubit.
func New(qubits int) (*Circuit, error) {
	return NewWithCbits(qubits, qubits)
}

// NewWithCbits sets an explicit classical register size. Negative sizes are
// rejected with ErrOutOfRange.
func NewWithCbits(qubits, cbits int) (*Circuit, error) {
	if qubits < 0 || cbits < 0 {
		return nil, fmt.Errorf("%w: negative register size (%d qubits, %d cbits)", ErrOutOfRange, qubits, cbits)
	}
	return &Circuit{qubitCount: qubits, cbitCount: cbits}, nil
}

func (c *Circuit) QubitCount() int { return c.qubitCount }

func (c *Circuit) CbitCount() int { return c.cbitCount }

func (c *Circuit) Len() int { return len(c.gates) }

// Gates returns a copy of the gate sequence.
func (c *Circuit) Gates() []gate.QuantumGate { return slices.Clone(c.gates) }

// At returns the i-th gate.
func (c *Circuit) At(i int) gate.QuantumGate { return c.gates[i] }

// Add appends g after checking its indices fit the circuit.
func (c *Circuit) Add(g gate.QuantumGate) error {
	for _, q := range g.Qubits() {
		if q >= c.qubitCount {
			return fmt.Errorf("%w: %s uses qubit %d of %d", ErrOutOfRange, g.Name(), q, c.qubitCount)
		}
	}
	for _, b := range g.ClassicalIndices() {
		if b >= c.cbitCount {
			return fmt.Errorf("%w: %s uses classical bit %d of %d", ErrOutOfRange, g.Name(), b, c.cbitCount)
		}
	}
	c.gates = append(c.gates, g)
	return nil
}

// AddNew builds a gate and appends it.
func (c *Circuit) AddNew(name string, targets []int, opts ...gate.Option) (gate.QuantumGate, error) {
	g, err := gate.New(name, targets, opts...)
	if err != nil {
		return gate.QuantumGate{}, err
	}
	if err := c.Add(g); err != nil {
		return gate.QuantumGate{}, err
	}
	return g, nil
}

// RemoveAt deletes the i-th gate.
func (c *Circuit) RemoveAt(i int) error {
	if i < 0 || i >= len(c.gates) {
		return fmt.Errorf("%w: gate %d of %d", ErrOutOfRange, i, len(c.gates))
	}
	c.gates = slices.Delete(c.gates, i, i+1)
	return nil
}

// Reset drops every gate and keeps the registers.
func (c *Circuit) Reset() { c.gates = nil }

// Equal compares registers and the ordered gate sequence.
func (c *Circuit) Equal(o *Circuit) bool {
	return c.qubitCount == o.qubitCount && c.cbitCount == o.cbitCount &&
		slices.EqualFunc(c.gates, o.gates, gate.QuantumGate.Equal)
}

// Hash combines the gate hashes in order.
func (c *Circuit) Hash() uint64 {
	d := xxhash.New()
	var b [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(b[:], v)
		_, _ = d.Write(b[:])
	}
	put(uint64(c.qubitCount))
	put(uint64(c.cbitCount))
	put(uint64(len(c.gates)))
	for _, g := range c.gates {
		put(g.Hash())
	}
	return d.Sum64()
}
