package circuit

import (
	"fmt"
	"strings"

	"qtermgate/gate"
)

// qelibNames maps gate names onto their qelib1.inc spelling.
var qelibNames = map[string]string{
	gate.Identity: "id",
	gate.X:        "x",
	gate.Y:        "y",
	gate.Z:        "z",
	gate.H:        "h",
	gate.S:        "s",
	gate.Sdag:     "sdg",
	gate.T:        "t",
	gate.Tdag:     "tdg",
	gate.SqrtX:    "sx",
	gate.SqrtXdag: "sxdg",
	gate.RX:       "rx",
	gate.RY:       "ry",
	gate.RZ:       "rz",
	gate.U1:       "u1",
	gate.U2:       "u2",
	gate.U3:       "u3",
	gate.CNOT:     "cx",
	gate.CZ:       "cz",
	gate.SWAP:     "swap",
	gate.TOFFOLI:  "ccx",
}

var pauliNames = [...]string{gate.PauliI: "id", gate.PauliX: "x", gate.PauliY: "y", gate.PauliZ: "z"}

// ToQASM renders the circuit as OpenQASM 2.0. Gates with no qelib1
// equivalent are kept as comments holding their canonical form.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", max(c.qubitCount, 1))
	fmt.Fprintf(&sb, "creg c[%d];\n\n", max(c.cbitCount, 1))

	for _, g := range c.gates {
		writeGateQASM(&sb, g)
	}
	return sb.String()
}

func qubitList(idx []int) string {
	parts := make([]string, len(idx))
	for i, q := range idx {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(parts, ", ")
}

func writeGateQASM(sb *strings.Builder, g gate.QuantumGate) {
	targets := g.TargetIndices()
	switch g.Name() {
	case gate.Measurement:
		cbits := g.ClassicalIndices()
		for i, q := range targets {
			fmt.Fprintf(sb, "measure q[%d] -> c[%d];\n", q, cbits[i])
		}
		return
	case gate.Pauli:
		for i, p := range g.PauliIDs() {
			if p == gate.PauliI {
				continue
			}
			fmt.Fprintf(sb, "%s q[%d];\n", pauliNames[p], targets[i])
		}
		return
	}

	name, ok := qelibNames[g.Name()]
	if !ok {
		fmt.Fprintf(sb, "// %s\n", g.String())
		return
	}
	if params := g.Params(); len(params) > 0 {
		ps := make([]string, len(params))
		for i, p := range params {
			ps[i] = gate.FormatQASMParam(p)
		}
		name += "(" + strings.Join(ps, ", ") + ")"
	}
	// Controls come first in qelib1 operand order.
	operands := append(g.ControlIndices(), targets...)
	fmt.Fprintf(sb, "%s %s;\n", name, qubitList(operands))
}
