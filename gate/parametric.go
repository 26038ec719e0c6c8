package gate

import "github.com/cespare/xxhash/v2"

// ParametricQuantumGate is a gate template whose parameters are bound later.
// It carries no params, classical indices or unitary.
type ParametricQuantumGate struct {
	name           string
	targetIndices  []int
	controlIndices []int
	pauliIDs       []uint8
}

// ParametricOption sets an optional ParametricQuantumGate field.
type ParametricOption func(*ParametricQuantumGate)

func WithParametricControls(idx ...int) ParametricOption {
	return func(g *ParametricQuantumGate) { g.controlIndices = cloneInts(idx) }
}

func WithParametricPauliIDs(ids ...uint8) ParametricOption {
	return func(g *ParametricQuantumGate) { g.pauliIDs = cloneBytes(ids) }
}

// NewParametric builds a template. Any non-empty name is accepted; the known
// Parametric* names also get their shape checked.
func NewParametric(name string, targets []int, opts ...ParametricOption) (ParametricQuantumGate, error) {
	g := ParametricQuantumGate{
		name:           name,
		targetIndices:  cloneInts(targets),
		controlIndices: []int{},
		pauliIDs:       []uint8{},
	}
	for _, opt := range opts {
		opt(&g)
	}
	if err := validateStructure(g.name, g.targetIndices, g.controlIndices, nil, g.pauliIDs); err != nil {
		return ParametricQuantumGate{}, err
	}
	if IsParametricName(name) {
		k, _ := Lookup(name)
		// Params are bound later, so the param count is not checked here.
		k.Params = 0
		if err := validateKind(k, g.targetIndices, g.controlIndices, nil, nil, g.pauliIDs, NoMatrix); err != nil {
			return ParametricQuantumGate{}, err
		}
	}
	return g, nil
}

// MustNewParametric is NewParametric that panics on error.
func MustNewParametric(name string, targets []int, opts ...ParametricOption) ParametricQuantumGate {
	g, err := NewParametric(name, targets, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g ParametricQuantumGate) Name() string { return g.name }

func (g ParametricQuantumGate) TargetIndices() []int { return cloneInts(g.targetIndices) }

func (g ParametricQuantumGate) ControlIndices() []int { return cloneInts(g.controlIndices) }

func (g ParametricQuantumGate) PauliIDs() []uint8 { return cloneBytes(g.pauliIDs) }

func (g ParametricQuantumGate) Equal(o ParametricQuantumGate) bool {
	return g.name == o.name &&
		equalInts(g.targetIndices, o.targetIndices) &&
		equalInts(g.controlIndices, o.controlIndices) &&
		string(g.pauliIDs) == string(o.pauliIDs)
}

func (g ParametricQuantumGate) Hash() uint64 {
	d := xxhash.New()
	h := hasher{d}
	h.str(string(TagParametricQuantumGate))
	h.str(g.name)
	h.ints(g.targetIndices)
	h.ints(g.controlIndices)
	h.str(string(g.pauliIDs))
	return d.Sum64()
}
