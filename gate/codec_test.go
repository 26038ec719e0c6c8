package gate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestMarshalRoundTrip(t *testing.T) {
	for _, g := range sampleGates() {
		t.Run(g.Name(), func(t *testing.T) {
			b, err := Marshal(g)
			require.NoError(t, err)

			s, err := Unmarshal(b)
			require.NoError(t, err)
			got, ok := s.(QuantumGate)
			require.True(t, ok, "decoded %T", s)
			assert.True(t, g.Equal(got), "%s != %s", g, got)
			assert.Equal(t, g.Hash(), got.Hash())
			assert.Equal(t, g.String(), got.String())
		})
	}
}

func TestMarshalMatrixIsExact(t *testing.T) {
	entry := complex(math.Nextafter(1/math.Sqrt2, 1), -math.SmallestNonzeroFloat64)
	g := MustNew(SingleQubitUnitaryMatrix, []int{0}, WithUnitary([][]complex128{
		{entry, complex(math.MaxFloat64, 0)},
		{complex(0, math.Pi), -entry},
	}))
	b, err := Marshal(g)
	require.NoError(t, err)
	s, err := Unmarshal(b)
	require.NoError(t, err)

	got := s.(QuantumGate).UnitaryMatrix()
	want := g.UnitaryMatrix()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, want.At(i, j), got.At(i, j))
		}
	}
}

func TestParametricRoundTrip(t *testing.T) {
	gates := []ParametricQuantumGate{
		MustNewParametric(ParametricRX, []int{2}),
		MustNewParametric(ParametricPauliRotation, []int{0, 3}, WithParametricPauliIDs(PauliX, PauliY)),
		MustNewParametric("CustomTemplate", []int{1}, WithParametricControls(0, 2)),
	}
	for _, g := range gates {
		b, err := Marshal(g)
		require.NoError(t, err)
		s, err := Unmarshal(b)
		require.NoError(t, err)
		got, ok := s.(ParametricQuantumGate)
		require.True(t, ok)
		assert.True(t, g.Equal(got))

		s, err = Reconstruct(g.Tag(), g.Fields())
		require.NoError(t, err)
		assert.True(t, g.Equal(s.(ParametricQuantumGate)))
	}
}

func TestFieldsShape(t *testing.T) {
	g := MustNew(CNOT, []int{1}, WithControls(0))
	f := g.Fields()
	require.Len(t, f, 7)
	assert.Equal(t, "CNOT", f[0])
	assert.Equal(t, []int{1}, f[1])
	assert.Equal(t, []int{0}, f[2])
	assert.Nil(t, f[6])

	p := MustNewParametric(ParametricRZ, []int{0})
	assert.Len(t, p.Fields(), 4)
}

func TestReconstructErrors(t *testing.T) {
	tests := []struct {
		name      string
		tag       Tag
		fields    Fields
		validates bool
	}{
		{"unknown tag", "Bogus", Fields{"X"}, false},
		{"short tuple", TagQuantumGate, Fields{"X", []int{0}}, false},
		{"long tuple", TagParametricQuantumGate, Fields{"P", []int{0}, []int{}, []uint8{}, 1.0}, false},
		{"wrong name type", TagQuantumGate, Fields{1, []int{0}, []int{}, []int{}, []float64{}, []uint8{}, nil}, false},
		{"wrong params type", TagQuantumGate, Fields{"RX", []int{0}, []int{}, []int{}, []int{1}, []uint8{}, nil}, false},
		{"wrong matrix type", TagQuantumGate, Fields{"X", []int{0}, []int{}, []int{}, []float64{}, []uint8{}, "matrix"}, false},
		{"invalid gate", TagQuantumGate, Fields{"RX", []int{0}, []int{}, []int{}, []float64{}, []uint8{}, nil}, true},
		{"NaN param", TagQuantumGate, Fields{"RX", []int{0}, []int{}, []int{}, []float64{math.NaN()}, []uint8{}, nil}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Reconstruct(tt.tag, tt.fields)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrSerialization)
			if tt.validates {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NotErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	good, err := Marshal(MustNew(X, []int{0}))
	require.NoError(t, err)

	badVersion, err := msgpack.Marshal([]any{99, "QuantumGate"})
	require.NoError(t, err)
	badTag, err := msgpack.Marshal([]any{WireVersion, "Nope", "X"})
	require.NoError(t, err)
	wrongArity, err := msgpack.Marshal([]any{WireVersion, "ParametricQuantumGate", "X", []int{0}})
	require.NoError(t, err)
	negative, err := msgpack.Marshal([]any{WireVersion, "ParametricQuantumGate", "X", []int{-1}, []int{}, []int{}})
	require.NoError(t, err)

	tests := map[string][]byte{
		"empty":       nil,
		"truncated":   good[:len(good)-1],
		"trailing":    append(append([]byte{}, good...), 0xc0),
		"not array":   {0xa1, 'x'},
		"bad version": badVersion,
		"bad tag":     badTag,
		"arity":       wrongArity,
		"negative":    negative,
	}
	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := Unmarshal(b)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrSerialization)
		})
	}
}

func TestEmbeddedMsgpack(t *testing.T) {
	type envelope struct {
		Gates    []QuantumGate
		Template ParametricQuantumGate
	}
	in := envelope{
		Gates:    sampleGates(),
		Template: MustNewParametric(ParametricRY, []int{1}),
	}
	b, err := msgpack.Marshal(in)
	require.NoError(t, err)

	var out envelope
	require.NoError(t, msgpack.Unmarshal(b, &out))
	require.Len(t, out.Gates, len(in.Gates))
	for i := range in.Gates {
		assert.True(t, in.Gates[i].Equal(out.Gates[i]))
	}
	assert.True(t, in.Template.Equal(out.Template))
}

func TestDecodeMsgpackTagMismatch(t *testing.T) {
	b, err := Marshal(MustNewParametric(ParametricRX, []int{0}))
	require.NoError(t, err)
	var g QuantumGate
	err = msgpack.Unmarshal(b, &g)
	assert.ErrorIs(t, err, ErrSerialization)
}
