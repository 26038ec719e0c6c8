package gate

import (
	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/floats"
)

// QuantumGate is a concrete, immutable operation applied to a circuit.
// The zero value is not a valid gate; use New.
type QuantumGate struct {
	name             string
	targetIndices    []int
	controlIndices   []int
	classicalIndices []int
	params           []float64
	pauliIDs         []uint8
	unitary          Matrix
}

// Option sets an optional QuantumGate field.
type Option func(*QuantumGate)

// WithControls sets the control qubits.
func WithControls(idx ...int) Option {
	return func(g *QuantumGate) { g.controlIndices = cloneInts(idx) }
}

// WithClassical sets the classical bit indices.
func WithClassical(idx ...int) Option {
	return func(g *QuantumGate) { g.classicalIndices = cloneInts(idx) }
}

// WithParams sets the continuous gate parameters.
func WithParams(p ...float64) Option {
	return func(g *QuantumGate) { g.params = cloneFloats(p) }
}

// WithPauliIDs sets the Pauli codes, one per target.
func WithPauliIDs(ids ...uint8) Option {
	return func(g *QuantumGate) { g.pauliIDs = cloneBytes(ids) }
}

// WithUnitary sets the explicit unitary. An empty matrix means absent.
func WithUnitary(rows [][]complex128) Option {
	return func(g *QuantumGate) { g.unitary = NewMatrix(rows) }
}

// WithMatrix is WithUnitary for an already built Matrix.
func WithMatrix(m Matrix) Option {
	return func(g *QuantumGate) { g.unitary = m }
}

// New builds and validates a QuantumGate. Nothing is returned on error.
func New(name string, targets []int, opts ...Option) (QuantumGate, error) {
	g := QuantumGate{
		name:             name,
		targetIndices:    cloneInts(targets),
		controlIndices:   []int{},
		classicalIndices: []int{},
		params:           []float64{},
		pauliIDs:         []uint8{},
	}
	for _, opt := range opts {
		opt(&g)
	}
	if err := g.validate(); err != nil {
		return QuantumGate{}, err
	}
	return g, nil
}

// MustNew is New that panics on error. Meant for fixed tables and tests.
func MustNew(name string, targets []int, opts ...Option) QuantumGate {
	g, err := New(name, targets, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g QuantumGate) validate() error {
	if err := validateStructure(g.name, g.targetIndices, g.controlIndices, g.classicalIndices, g.pauliIDs); err != nil {
		return err
	}
	if err := validateMatrix(g.name, g.targetIndices, g.unitary); err != nil {
		return err
	}
	if err := validateNumbers(g.name, g.params, g.unitary); err != nil {
		return err
	}
	k, ok := Lookup(g.name)
	if !ok || IsParametricName(g.name) {
		return invalid(g.name, "name", "unknown gate")
	}
	return validateKind(k, g.targetIndices, g.controlIndices, g.classicalIndices, g.params, g.pauliIDs, g.unitary)
}

func (g QuantumGate) Name() string { return g.name }

func (g QuantumGate) TargetIndices() []int { return cloneInts(g.targetIndices) }

func (g QuantumGate) ControlIndices() []int { return cloneInts(g.controlIndices) }

func (g QuantumGate) ClassicalIndices() []int { return cloneInts(g.classicalIndices) }

func (g QuantumGate) Params() []float64 { return cloneFloats(g.params) }

func (g QuantumGate) PauliIDs() []uint8 { return cloneBytes(g.pauliIDs) }

// UnitaryMatrix returns the explicit unitary; check Present on the result.
func (g QuantumGate) UnitaryMatrix() Matrix { return NewMatrix(g.unitary.rows) }

// HasUnitary reports whether the gate carries an explicit unitary.
func (g QuantumGate) HasUnitary() bool { return g.unitary.Present() }

// Qubits returns targets followed by controls.
func (g QuantumGate) Qubits() []int {
	out := make([]int, 0, len(g.targetIndices)+len(g.controlIndices))
	out = append(out, g.targetIndices...)
	return append(out, g.controlIndices...)
}

// Equal reports field-wise, order-sensitive equality. Floats and matrix
// entries compare with ==; construction rejects NaN so Equal is reflexive.
func (g QuantumGate) Equal(o QuantumGate) bool {
	return g.name == o.name &&
		equalInts(g.targetIndices, o.targetIndices) &&
		equalInts(g.controlIndices, o.controlIndices) &&
		equalInts(g.classicalIndices, o.classicalIndices) &&
		len(g.params) == len(o.params) && floats.Equal(g.params, o.params) &&
		string(g.pauliIDs) == string(o.pauliIDs) &&
		g.unitary.Equal(o.unitary)
}

// ApproxEqual is Equal with params and matrix entries compared within tol.
func ApproxEqual(a, b QuantumGate, tol float64) bool {
	return a.name == b.name &&
		equalInts(a.targetIndices, b.targetIndices) &&
		equalInts(a.controlIndices, b.controlIndices) &&
		equalInts(a.classicalIndices, b.classicalIndices) &&
		len(a.params) == len(b.params) && floats.EqualApprox(a.params, b.params, tol) &&
		string(a.pauliIDs) == string(b.pauliIDs) &&
		a.unitary.EqualApprox(b.unitary, tol)
}

// Hash is consistent with Equal.
func (g QuantumGate) Hash() uint64 {
	d := xxhash.New()
	h := hasher{d}
	h.str(string(TagQuantumGate))
	h.str(g.name)
	h.ints(g.targetIndices)
	h.ints(g.controlIndices)
	h.ints(g.classicalIndices)
	h.floats(g.params)
	h.str(string(g.pauliIDs))
	h.matrix(g.unitary)
	return d.Sum64()
}
