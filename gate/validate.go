package gate

import (
	"math"
	"math/cmplx"
)

// maxMatrixQubits bounds 2^n so the shift below cannot overflow.
const maxMatrixQubits = 30

func checkIndices(name, field string, idx []int) error {
	seen := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		if i < 0 {
			return invalid(name, field, "index %d is negative", i)
		}
		if _, dup := seen[i]; dup {
			return invalid(name, field, "index %d appears more than once", i)
		}
		seen[i] = struct{}{}
	}
	return nil
}

// validateStructure applies the rules shared by both gate types.
func validateStructure(name string, targets, controls, classical []int, pauli []uint8) error {
	if name == "" {
		return invalid(name, "name", "must not be empty")
	}
	if len(targets) == 0 && len(classical) == 0 {
		return invalid(name, "target_indices", "must not be empty for a quantum operation")
	}
	if err := checkIndices(name, "target_indices", targets); err != nil {
		return err
	}
	if err := checkIndices(name, "control_indices", controls); err != nil {
		return err
	}
	if err := checkIndices(name, "classical_indices", classical); err != nil {
		return err
	}
	for _, c := range controls {
		for _, t := range targets {
			if c == t {
				return invalid(name, "control_indices", "qubit %d is also a target", c)
			}
		}
	}
	if len(pauli) > 0 && len(pauli) != len(targets) {
		return invalid(name, "pauli_ids", "length %d does not match %d targets", len(pauli), len(targets))
	}
	for _, p := range pauli {
		if p > PauliZ {
			return invalid(name, "pauli_ids", "unknown pauli id %d", p)
		}
	}
	return nil
}

func validateMatrix(name string, targets []int, m Matrix) error {
	if !m.Present() {
		return nil
	}
	if !m.IsSquare() {
		return invalid(name, "unitary_matrix", "matrix is not square")
	}
	if len(targets) > maxMatrixQubits || m.Dim() != 1<<len(targets) {
		return invalid(name, "unitary_matrix", "dimension %d does not match %d targets", m.Dim(), len(targets))
	}
	return nil
}

// validateNumbers rejects NaN, which would make a gate unequal to itself.
func validateNumbers(name string, params []float64, m Matrix) error {
	for i, p := range params {
		if math.IsNaN(p) {
			return invalid(name, "params", "param %d is NaN", i)
		}
	}
	for i, row := range m.rows {
		for j, c := range row {
			if cmplx.IsNaN(c) {
				return invalid(name, "unitary_matrix", "entry (%d, %d) is NaN", i, j)
			}
		}
	}
	return nil
}

// validateKind checks the field counts a registered name demands.
func validateKind(k Kind, targets, controls, classical []int, params []float64, pauli []uint8, m Matrix) error {
	n := k.Name
	if k.Targets == anyCount {
		if len(targets) < k.minTargets {
			return invalid(n, "target_indices", "need at least %d, got %d", k.minTargets, len(targets))
		}
	} else if len(targets) != k.Targets {
		return invalid(n, "target_indices", "need %d, got %d", k.Targets, len(targets))
	}
	if len(controls) != k.Controls {
		return invalid(n, "control_indices", "need %d, got %d", k.Controls, len(controls))
	}
	if len(params) != k.Params {
		return invalid(n, "params", "need %d, got %d", k.Params, len(params))
	}
	switch {
	case k.Pauli && len(pauli) == 0:
		return invalid(n, "pauli_ids", "required")
	case !k.Pauli && len(pauli) > 0:
		return invalid(n, "pauli_ids", "not accepted")
	}
	switch {
	case k.Matrix && !m.Present():
		return invalid(n, "unitary_matrix", "required")
	case !k.Matrix && m.Present():
		return invalid(n, "unitary_matrix", "not accepted")
	}
	switch {
	case k.Classical && len(classical) != len(targets):
		return invalid(n, "classical_indices", "need one per target, got %d for %d", len(classical), len(targets))
	case !k.Classical && len(classical) > 0:
		return invalid(n, "classical_indices", "not accepted")
	}
	return nil
}
