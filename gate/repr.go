package gate

import (
	"math"
	"strconv"
	"strings"
)

// formatTuple joins items as a tuple body; a single item keeps its trailing comma.
func formatTuple(items []string) string {
	out := strings.Join(items, ", ")
	if len(items) == 1 {
		out += ","
	}
	return out
}

func intItems(v []int) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = strconv.Itoa(x)
	}
	return out
}

func byteItems(v []uint8) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = strconv.Itoa(int(x))
	}
	return out
}

func floatItems(v []float64) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = formatFloat(x)
	}
	return out
}

// formatFloat never switches to exponent notation, so 1 prints as "1".
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if im < 0 || (im == 0 && math.Signbit(im)) {
		return formatFloat(re) + "-" + formatFloat(-im) + "i"
	}
	return formatFloat(re) + "+" + formatFloat(im) + "i"
}

func matrixItems(m Matrix) string {
	if !m.Present() {
		return "()"
	}
	rows := make([]string, m.Dim())
	for i, row := range m.rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = formatComplex(c)
		}
		rows[i] = "(" + formatTuple(cells) + ")"
	}
	return formatTuple(rows)
}

// String returns the canonical representation, covering every field.
func (g QuantumGate) String() string {
	var sb strings.Builder
	sb.WriteString("QuantumGate(name='")
	sb.WriteString(g.name)
	sb.WriteString("', target_indices=(")
	sb.WriteString(formatTuple(intItems(g.targetIndices)))
	sb.WriteString("), control_indices=(")
	sb.WriteString(formatTuple(intItems(g.controlIndices)))
	sb.WriteString("), classical_indices=(")
	sb.WriteString(formatTuple(intItems(g.classicalIndices)))
	sb.WriteString("), params=(")
	sb.WriteString(formatTuple(floatItems(g.params)))
	sb.WriteString("), pauli_ids=(")
	sb.WriteString(formatTuple(byteItems(g.pauliIDs)))
	sb.WriteString("), unitary_matrix=")
	sb.WriteString(matrixItems(g.unitary))
	sb.WriteString(")")
	return sb.String()
}

// GoString makes %#v print the canonical form.
func (g QuantumGate) GoString() string { return g.String() }

// Pretty is a short human form with pi-notation params, e.g. "RX(pi/2) q[0]".
// It is for display only and not guaranteed to include every field.
func (g QuantumGate) Pretty() string {
	var sb strings.Builder
	sb.WriteString(g.name)
	if len(g.params) > 0 {
		ps := make([]string, len(g.params))
		for i, p := range g.params {
			ps[i] = FormatParam(p)
		}
		sb.WriteString("(" + strings.Join(ps, ", ") + ")")
	}
	if len(g.pauliIDs) > 0 {
		sb.WriteString(" ")
		for _, p := range g.pauliIDs {
			sb.WriteByte("IXYZ"[p])
		}
	}
	for i, c := range g.controlIndices {
		if i == 0 {
			sb.WriteString(" ctrl")
		}
		sb.WriteString(" q[" + strconv.Itoa(c) + "]")
	}
	if len(g.targetIndices) > 0 {
		sb.WriteString(" ->")
		for _, t := range g.targetIndices {
			sb.WriteString(" q[" + strconv.Itoa(t) + "]")
		}
	}
	for _, c := range g.classicalIndices {
		sb.WriteString(" c[" + strconv.Itoa(c) + "]")
	}
	if g.unitary.Present() {
		sb.WriteString(" [" + strconv.Itoa(g.unitary.Dim()) + "x" + strconv.Itoa(g.unitary.Dim()) + " unitary]")
	}
	return sb.String()
}

func (g ParametricQuantumGate) String() string {
	var sb strings.Builder
	sb.WriteString("ParametricQuantumGate(name='")
	sb.WriteString(g.name)
	sb.WriteString("', target_indices=(")
	sb.WriteString(formatTuple(intItems(g.targetIndices)))
	sb.WriteString("), control_indices=(")
	sb.WriteString(formatTuple(intItems(g.controlIndices)))
	sb.WriteString("), pauli_ids=(")
	sb.WriteString(formatTuple(byteItems(g.pauliIDs)))
	sb.WriteString("))")
	return sb.String()
}

func (g ParametricQuantumGate) GoString() string { return g.String() }
