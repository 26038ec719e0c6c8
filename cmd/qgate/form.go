package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qtermgate/gate"
)

// Field keys.
const (
	fieldTargets   = "targets"
	fieldControls  = "controls"
	fieldParams    = "params"
	fieldPauli     = "pauli"
	fieldClassical = "classical"
	fieldMatrix    = "matrix"
)

type formField struct {
	key   string
	label string
	input textinput.Model
}

// gateForm collects the fields a named gate needs.
type gateForm struct {
	gateName string
	fields   []formField
	idx      int
}

func countHint(n int) string {
	if n < 0 {
		return "one or more"
	}
	return strconv.Itoa(n)
}

func newField(key, label, placeholder string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	return formField{key: key, label: label, input: ti}
}

func newGateForm(name string) *gateForm {
	k, _ := gate.Lookup(name)
	f := &gateForm{gateName: name}
	f.fields = append(f.fields, newField(fieldTargets, fmt.Sprintf("Targets (%s)", countHint(k.Targets)), "0, 1"))
	if k.Controls > 0 {
		f.fields = append(f.fields, newField(fieldControls, fmt.Sprintf("Controls (%d)", k.Controls), "0"))
	}
	if k.Params > 0 {
		f.fields = append(f.fields, newField(fieldParams, fmt.Sprintf("Params (%d)", k.Params), "pi/2"))
	}
	if k.Pauli {
		f.fields = append(f.fields, newField(fieldPauli, "Pauli string", "XZ"))
	}
	if k.Classical {
		f.fields = append(f.fields, newField(fieldClassical, "Classical bits", "0"))
	}
	if k.Matrix {
		f.fields = append(f.fields, newField(fieldMatrix, "Matrix rows", "0,1; 1,0"))
	}
	f.fields[0].input.Focus()
	return f
}

// move shifts focus by delta, wrapping around.
func (f *gateForm) move(delta int) tea.Cmd {
	f.fields[f.idx].input.Blur()
	f.idx = (f.idx + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.idx].input.Focus()
}

func (f *gateForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.idx].input, cmd = f.fields[f.idx].input.Update(msg)
	return cmd
}

func (f *gateForm) value(key string) string {
	for _, fld := range f.fields {
		if fld.key == key {
			return fld.input.Value()
		}
	}
	return ""
}

// build parses every field and constructs the gate.
func (f *gateForm) build() (gate.QuantumGate, error) {
	targets, err := parseIndexList(f.value(fieldTargets))
	if err != nil {
		return gate.QuantumGate{}, fmt.Errorf("targets: %w", err)
	}
	var opts []gate.Option
	for _, fld := range f.fields {
		raw := fld.input.Value()
		switch fld.key {
		case fieldControls:
			idx, err := parseIndexList(raw)
			if err != nil {
				return gate.QuantumGate{}, fmt.Errorf("controls: %w", err)
			}
			opts = append(opts, gate.WithControls(idx...))
		case fieldClassical:
			idx, err := parseIndexList(raw)
			if err != nil {
				return gate.QuantumGate{}, fmt.Errorf("classical bits: %w", err)
			}
			opts = append(opts, gate.WithClassical(idx...))
		case fieldParams:
			params, err := gate.ParseParamList(raw)
			if err != nil {
				return gate.QuantumGate{}, fmt.Errorf("params: %w", err)
			}
			opts = append(opts, gate.WithParams(params...))
		case fieldPauli:
			ids, err := parsePauliString(raw)
			if err != nil {
				return gate.QuantumGate{}, fmt.Errorf("pauli: %w", err)
			}
			opts = append(opts, gate.WithPauliIDs(ids...))
		case fieldMatrix:
			rows, err := parseMatrix(raw)
			if err != nil {
				return gate.QuantumGate{}, fmt.Errorf("matrix: %w", err)
			}
			opts = append(opts, gate.WithUnitary(rows))
		}
	}
	return gate.New(f.gateName, targets, opts...)
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
}

// parseIndexList accepts comma or space separated integers.
func parseIndexList(s string) ([]int, error) {
	out := []int{}
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// parsePauliString accepts letters like "XIZ" or digits like "1 0 3".
func parsePauliString(s string) ([]uint8, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	out := []uint8{}
	for _, r := range s {
		switch r {
		case 'I', '0':
			out = append(out, gate.PauliI)
		case 'X', '1':
			out = append(out, gate.PauliX)
		case 'Y', '2':
			out = append(out, gate.PauliY)
		case 'Z', '3':
			out = append(out, gate.PauliZ)
		case ' ', ',':
		default:
			return nil, fmt.Errorf("unknown pauli %q", r)
		}
	}
	return out, nil
}

// parseMatrix reads rows separated by ';' and entries by ','. Entries use Go
// complex syntax: "1", "-1i", "0.5+0.5i".
func parseMatrix(s string) ([][]complex128, error) {
	var rows [][]complex128
	for _, line := range strings.Split(s, ";") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row []complex128
		for _, cell := range strings.Split(line, ",") {
			c, err := strconv.ParseComplex(strings.TrimSpace(cell), 128)
			if err != nil {
				return nil, fmt.Errorf("invalid entry %q", strings.TrimSpace(cell))
			}
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// render draws the form popup.
func (f *gateForm) render() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("New " + f.gateName))
	sb.WriteString("\n\n")
	for i, fld := range f.fields {
		label := fmt.Sprintf("%-16s", fld.label)
		if i == f.idx {
			sb.WriteString(menuSelectedStyle.Render("▸ " + label))
		} else {
			sb.WriteString(menuNormalStyle.Render("  " + label))
		}
		sb.WriteString(" ")
		sb.WriteString(fld.input.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Tab/↑↓ Field  ⏎ Add  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}
