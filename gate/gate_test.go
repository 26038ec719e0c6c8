package gate

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invSqrt2 = complex(1/math.Sqrt2, 0)

// sampleGates is a fixed corpus of valid gates used by the law tests.
func sampleGates() []QuantumGate {
	return []QuantumGate{
		MustNew(X, []int{0}),
		MustNew(H, []int{3}),
		MustNew(CNOT, []int{1}, WithControls(0)),
		MustNew(TOFFOLI, []int{2}, WithControls(0, 1)),
		MustNew(SWAP, []int{4, 1}),
		MustNew(RX, []int{2}, WithParams(math.Pi/2)),
		MustNew(U3, []int{0}, WithParams(0.1, -0.2, 1e-300)),
		MustNew(Pauli, []int{0, 1, 2}, WithPauliIDs(PauliX, PauliY, PauliZ)),
		MustNew(PauliRotation, []int{5, 2}, WithPauliIDs(PauliZ, PauliI), WithParams(0.75)),
		MustNew(Measurement, []int{0, 1}, WithClassical(1, 0)),
		MustNew(SingleQubitUnitaryMatrix, []int{0}, WithUnitary([][]complex128{
			{invSqrt2, invSqrt2},
			{invSqrt2, -invSqrt2},
		})),
		MustNew(UnitaryMatrix, []int{1, 0}, WithUnitary([][]complex128{
			{1, 0, 0, 0},
			{0, 1i, 0, 0},
			{0, 0, complex(0.6, 0.8), 0},
			{0, 0, 0, complex(-0.1234567890123, 0.9923544561)},
		})),
	}
}

func TestNewSingleTarget(t *testing.T) {
	g, err := New("X", []int{0})
	require.NoError(t, err)

	assert.Equal(t, "X", g.Name())
	assert.Equal(t, []int{0}, g.TargetIndices())
	assert.Empty(t, g.ControlIndices())
	assert.Empty(t, g.ClassicalIndices())
	assert.Empty(t, g.Params())
	assert.Empty(t, g.PauliIDs())
	assert.False(t, g.HasUnitary())
	assert.False(t, g.UnitaryMatrix().Present())
}

func TestNewCNOT(t *testing.T) {
	g, err := New("CNOT", []int{1}, WithControls(0))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, g.TargetIndices())
	assert.Equal(t, []int{0}, g.ControlIndices())
	assert.Equal(t, []int{1, 0}, g.Qubits())
}

func TestEmptyUnitaryIsAbsent(t *testing.T) {
	g, err := New(X, []int{0}, WithUnitary([][]complex128{}))
	require.NoError(t, err)
	assert.False(t, g.HasUnitary())
	assert.True(t, g.Equal(MustNew(X, []int{0})))
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		gate    string
		targets []int
		opts    []Option
		field   string
	}{
		{"empty name", "", []int{0}, nil, "name"},
		{"unknown name", "FOO", []int{0}, nil, "name"},
		{"parametric name", ParametricRX, []int{0}, nil, "name"},
		{"no targets", X, nil, nil, "target_indices"},
		{"negative target", X, []int{-1}, nil, "target_indices"},
		{"duplicate target", SWAP, []int{1, 1}, nil, "target_indices"},
		{"duplicate control", TOFFOLI, []int{2}, []Option{WithControls(0, 0)}, "control_indices"},
		{"control is target", CNOT, []int{1}, []Option{WithControls(1)}, "control_indices"},
		{"negative classical", Measurement, []int{0}, []Option{WithClassical(-3)}, "classical_indices"},
		{"pauli length", Pauli, []int{0, 1}, []Option{WithPauliIDs(PauliX)}, "pauli_ids"},
		{"pauli value", Pauli, []int{0}, []Option{WithPauliIDs(7)}, "pauli_ids"},
		{"pauli missing", Pauli, []int{0}, nil, "pauli_ids"},
		{"pauli on X", X, []int{0}, []Option{WithPauliIDs(PauliX)}, "pauli_ids"},
		{"wrong target count", SWAP, []int{0}, nil, "target_indices"},
		{"missing control", CNOT, []int{0}, nil, "control_indices"},
		{"missing param", RX, []int{0}, nil, "params"},
		{"extra param", H, []int{0}, []Option{WithParams(1)}, "params"},
		{"NaN param", RX, []int{0}, []Option{WithParams(math.NaN())}, "params"},
		{"NaN matrix entry", SingleQubitUnitaryMatrix, []int{0}, []Option{WithUnitary([][]complex128{{1, 0}, {0, complex(math.NaN(), 0)}})}, "unitary_matrix"},
		{"non-square matrix", UnitaryMatrix, []int{0}, []Option{WithUnitary([][]complex128{{1, 0}, {0}})}, "unitary_matrix"},
		{"matrix dimension", UnitaryMatrix, []int{0}, []Option{WithUnitary([][]complex128{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}})}, "unitary_matrix"},
		{"matrix missing", UnitaryMatrix, []int{0}, nil, "unitary_matrix"},
		{"matrix on H", H, []int{0}, []Option{WithUnitary([][]complex128{{1, 0}, {0, 1}})}, "unitary_matrix"},
		{"measurement cbits", Measurement, []int{0, 1}, []Option{WithClassical(0)}, "classical_indices"},
		{"cbits on X", X, []int{0}, []Option{WithClassical(0)}, "classical_indices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.gate, tt.targets, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, QuantumGate{}, g, "no partially built gate on error")
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew("nope", []int{0}) })
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := MustNew(UnitaryMatrix, []int{0}, WithUnitary([][]complex128{{0, 1}, {1, 0}}))
	pr := MustNew(PauliRotation, []int{0, 1}, WithPauliIDs(PauliX, PauliZ), WithParams(0.5))
	m := MustNew(Measurement, []int{0}, WithClassical(0))

	targets := g.TargetIndices()
	targets[0] = 9
	assert.Equal(t, []int{0}, g.TargetIndices())

	params := pr.Params()
	params[0] = 42
	assert.Equal(t, []float64{0.5}, pr.Params())

	ids := pr.PauliIDs()
	ids[0] = PauliY
	assert.Equal(t, []uint8{PauliX, PauliZ}, pr.PauliIDs())

	cbits := m.ClassicalIndices()
	cbits[0] = 5
	assert.Equal(t, []int{0}, m.ClassicalIndices())

	rows := g.UnitaryMatrix().Rows()
	rows[0][0] = 7
	assert.Equal(t, complex128(0), g.UnitaryMatrix().At(0, 0))
}

func TestConstructorCopiesInputs(t *testing.T) {
	targets := []int{0, 1}
	ids := []uint8{PauliX, PauliX}
	rows := [][]complex128{{0, 1}, {1, 0}}

	g := MustNew(Pauli, targets, WithPauliIDs(ids...))
	u := MustNew(SingleQubitUnitaryMatrix, []int{0}, WithUnitary(rows))
	targets[0] = 7
	ids[1] = PauliZ
	rows[1][0] = 5

	assert.Equal(t, []int{0, 1}, g.TargetIndices())
	assert.Equal(t, []uint8{PauliX, PauliX}, g.PauliIDs())
	assert.Equal(t, complex128(1), u.UnitaryMatrix().At(1, 0))
}

func TestDefaultsAreNotShared(t *testing.T) {
	a := MustNew(X, []int{0})
	b := MustNew(Y, []int{1})
	ca := a.ControlIndices()
	ca = append(ca, 3)
	assert.Len(t, ca, 1)
	assert.Empty(t, b.ControlIndices())
	assert.Empty(t, a.ControlIndices())
}

func TestEqualAndHash(t *testing.T) {
	gates := sampleGates()
	for i, a := range gates {
		assert.True(t, a.Equal(a), "reflexive: %s", a)
		for j, b := range gates {
			if i == j {
				continue
			}
			assert.False(t, a.Equal(b), "%s vs %s", a, b)
		}
		// A rebuilt copy is equal and hashes the same.
		c, err := Reconstruct(a.Tag(), a.Fields())
		require.NoError(t, err)
		assert.True(t, a.Equal(c.(QuantumGate)))
		assert.Equal(t, a.Hash(), c.(QuantumGate).Hash())
	}
}

func TestEqualIsOrderSensitive(t *testing.T) {
	a := MustNew(SWAP, []int{0, 1})
	b := MustNew(SWAP, []int{1, 0})
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestInfinityParamIsReflexive(t *testing.T) {
	g := MustNew(RZ, []int{0}, WithParams(math.Inf(1)))
	assert.True(t, g.Equal(g))

	b, err := Marshal(g)
	require.NoError(t, err)
	back, err := Unmarshal(b)
	require.NoError(t, err)
	assert.True(t, g.Equal(back.(QuantumGate)))
	assert.Equal(t, g.Hash(), back.(QuantumGate).Hash())
}

func TestHashSignedZero(t *testing.T) {
	a := MustNew(RZ, []int{0}, WithParams(0))
	b := MustNew(RZ, []int{0}, WithParams(math.Copysign(0, -1)))
	require.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestMatrixExactEquality(t *testing.T) {
	a := MustNew(SingleQubitUnitaryMatrix, []int{0}, WithUnitary([][]complex128{{1, 0}, {0, 1}}))
	b := MustNew(SingleQubitUnitaryMatrix, []int{0}, WithUnitary([][]complex128{{1, 0}, {0, 1 + 1e-15}}))
	assert.False(t, a.Equal(b))
	assert.True(t, ApproxEqual(a, b, 1e-12))
	assert.False(t, ApproxEqual(a, MustNew(X, []int{0}), 1))
}

func TestApproxEqualParams(t *testing.T) {
	a := MustNew(RX, []int{0}, WithParams(math.Pi))
	b := MustNew(RX, []int{0}, WithParams(math.Pi+1e-12))
	assert.False(t, a.Equal(b))
	assert.True(t, ApproxEqual(a, b, 1e-9))
	assert.False(t, ApproxEqual(a, b, 1e-14))
}

func TestConcurrentReaders(t *testing.T) {
	g := sampleGates()[len(sampleGates())-1]
	want := g.String()
	wantHash := g.Hash()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.Equal(t, want, g.String())
				assert.Equal(t, wantHash, g.Hash())
				_ = g.UnitaryMatrix().Rows()
			}
		}()
	}
	wg.Wait()
}
