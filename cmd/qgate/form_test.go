package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtermgate/gate"
)

func TestParseIndexList(t *testing.T) {
	got, err := parseIndexList("0, 2 3")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, got)

	got, err = parseIndexList("  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseIndexList("0, x")
	assert.Error(t, err)
}

func TestParsePauliString(t *testing.T) {
	got, err := parsePauliString("xIz")
	require.NoError(t, err)
	assert.Equal(t, []uint8{gate.PauliX, gate.PauliI, gate.PauliZ}, got)

	got, err = parsePauliString("1, 2 3")
	require.NoError(t, err)
	assert.Equal(t, []uint8{gate.PauliX, gate.PauliY, gate.PauliZ}, got)

	_, err = parsePauliString("XQ")
	assert.Error(t, err)
}

func TestParseMatrix(t *testing.T) {
	got, err := parseMatrix("0, 1; 1, 0")
	require.NoError(t, err)
	assert.Equal(t, [][]complex128{{0, 1}, {1, 0}}, got)

	got, err = parseMatrix("1, 0; 0, -1i;")
	require.NoError(t, err)
	assert.Equal(t, [][]complex128{{1, 0}, {0, -1i}}, got)

	_, err = parseMatrix("1, nope")
	assert.Error(t, err)
}

func setField(f *gateForm, key, value string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(value)
		}
	}
}

func TestFormFieldsFollowGateKind(t *testing.T) {
	keys := func(f *gateForm) []string {
		var out []string
		for _, fld := range f.fields {
			out = append(out, fld.key)
		}
		return out
	}
	assert.Equal(t, []string{fieldTargets}, keys(newGateForm(gate.H)))
	assert.Equal(t, []string{fieldTargets, fieldControls}, keys(newGateForm(gate.CNOT)))
	assert.Equal(t, []string{fieldTargets, fieldParams}, keys(newGateForm(gate.U3)))
	assert.Equal(t, []string{fieldTargets, fieldParams, fieldPauli}, keys(newGateForm(gate.PauliRotation)))
	assert.Equal(t, []string{fieldTargets, fieldClassical}, keys(newGateForm(gate.Measurement)))
	assert.Equal(t, []string{fieldTargets, fieldMatrix}, keys(newGateForm(gate.SingleQubitUnitaryMatrix)))
}

func TestFormBuild(t *testing.T) {
	f := newGateForm(gate.RX)
	setField(f, fieldTargets, "1")
	setField(f, fieldParams, "pi/2")
	g, err := f.build()
	require.NoError(t, err)
	assert.Equal(t, gate.RX, g.Name())
	assert.Equal(t, []int{1}, g.TargetIndices())
	assert.InDelta(t, math.Pi/2, g.Params()[0], 1e-12)

	f = newGateForm(gate.CNOT)
	setField(f, fieldTargets, "1")
	setField(f, fieldControls, "0")
	g, err = f.build()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, g.ControlIndices())

	f = newGateForm(gate.SingleQubitUnitaryMatrix)
	setField(f, fieldTargets, "0")
	setField(f, fieldMatrix, "0,1;1,0")
	g, err = f.build()
	require.NoError(t, err)
	assert.True(t, g.HasUnitary())
}

func TestFormBuildErrors(t *testing.T) {
	f := newGateForm(gate.CNOT)
	setField(f, fieldTargets, "0")
	setField(f, fieldControls, "0")
	_, err := f.build()
	assert.ErrorIs(t, err, gate.ErrValidation)

	f = newGateForm(gate.H)
	setField(f, fieldTargets, "a")
	_, err = f.build()
	assert.ErrorContains(t, err, "targets")

	f = newGateForm(gate.RZ)
	setField(f, fieldTargets, "0")
	setField(f, fieldParams, "pi/")
	_, err = f.build()
	assert.ErrorContains(t, err, "params")
}

func TestFormMoveWraps(t *testing.T) {
	f := newGateForm(gate.CNOT)
	f.move(1)
	assert.Equal(t, 1, f.idx)
	f.move(1)
	assert.Equal(t, 0, f.idx)
	f.move(-1)
	assert.Equal(t, 1, f.idx)
}
