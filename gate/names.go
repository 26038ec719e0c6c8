package gate

import "sort"

// Gate names understood by New.
const (
	Identity                 = "Identity"
	X                        = "X"
	Y                        = "Y"
	Z                        = "Z"
	H                        = "H"
	S                        = "S"
	Sdag                     = "Sdag"
	SqrtX                    = "SqrtX"
	SqrtXdag                 = "SqrtXdag"
	SqrtY                    = "SqrtY"
	SqrtYdag                 = "SqrtYdag"
	T                        = "T"
	Tdag                     = "Tdag"
	RX                       = "RX"
	RY                       = "RY"
	RZ                       = "RZ"
	U1                       = "U1"
	U2                       = "U2"
	U3                       = "U3"
	CNOT                     = "CNOT"
	CZ                       = "CZ"
	SWAP                     = "SWAP"
	TOFFOLI                  = "TOFFOLI"
	Pauli                    = "Pauli"
	PauliRotation            = "PauliRotation"
	UnitaryMatrix            = "UnitaryMatrix"
	SingleQubitUnitaryMatrix = "SingleQubitUnitaryMatrix"
	TwoQubitUnitaryMatrix    = "TwoQubitUnitaryMatrix"
	Measurement              = "Measurement"
)

// Parametric template names with a known shape.
const (
	ParametricRX            = "ParametricRX"
	ParametricRY            = "ParametricRY"
	ParametricRZ            = "ParametricRZ"
	ParametricPauliRotation = "ParametricPauliRotation"
)

// Pauli operator codes stored in pauli_ids.
const (
	PauliI uint8 = iota
	PauliX
	PauliY
	PauliZ
)

// anyCount marks a field whose length is free (but see minTargets).
const anyCount = -1

// Kind describes the field shape a named gate must have.
type Kind struct {
	Name       string
	Targets    int // exact target count, or anyCount
	Controls   int // exact control count
	Params     int // exact param count
	Pauli      bool
	Matrix     bool
	Classical  bool // classical indices pair up with targets
	minTargets int
}

var kinds = map[string]Kind{}

func register(k Kind) {
	if k.Targets == anyCount && k.minTargets == 0 {
		k.minTargets = 1
	}
	kinds[k.Name] = k
}

func init() {
	for _, n := range []string{Identity, X, Y, Z, H, S, Sdag, SqrtX, SqrtXdag, SqrtY, SqrtYdag, T, Tdag} {
		register(Kind{Name: n, Targets: 1})
	}
	for _, n := range []string{RX, RY, RZ, U1} {
		register(Kind{Name: n, Targets: 1, Params: 1})
	}
	register(Kind{Name: U2, Targets: 1, Params: 2})
	register(Kind{Name: U3, Targets: 1, Params: 3})
	register(Kind{Name: CNOT, Targets: 1, Controls: 1})
	register(Kind{Name: CZ, Targets: 1, Controls: 1})
	register(Kind{Name: SWAP, Targets: 2})
	register(Kind{Name: TOFFOLI, Targets: 1, Controls: 2})
	register(Kind{Name: Pauli, Targets: anyCount, Pauli: true})
	register(Kind{Name: PauliRotation, Targets: anyCount, Params: 1, Pauli: true})
	register(Kind{Name: UnitaryMatrix, Targets: anyCount, Matrix: true})
	register(Kind{Name: SingleQubitUnitaryMatrix, Targets: 1, Matrix: true})
	register(Kind{Name: TwoQubitUnitaryMatrix, Targets: 2, Matrix: true})
	register(Kind{Name: Measurement, Targets: anyCount, Classical: true})

	for _, n := range []string{ParametricRX, ParametricRY, ParametricRZ} {
		register(Kind{Name: n, Targets: 1})
	}
	register(Kind{Name: ParametricPauliRotation, Targets: anyCount, Pauli: true})
}

// Lookup returns the shape registered for name.
func Lookup(name string) (Kind, bool) {
	k, ok := kinds[name]
	return k, ok
}

// Names returns every registered name in sorted order.
func Names() []string {
	out := make([]string, 0, len(kinds))
	for n := range kinds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// IsParametricName reports whether name is a known parametric template.
func IsParametricName(name string) bool {
	switch name {
	case ParametricRX, ParametricRY, ParametricRZ, ParametricPauliRotation:
		return true
	}
	return false
}
