package main

import (
	"fmt"
	"strings"

	"qtermgate/gate"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	label    string
	gateName string
	symbol   string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{label: "Identity", gateName: gate.Identity, symbol: "I"},
			{label: "Pauli-X (NOT)", gateName: gate.X, symbol: "X"},
			{label: "Pauli-Y", gateName: gate.Y, symbol: "Y"},
			{label: "Pauli-Z", gateName: gate.Z, symbol: "Z"},
			{label: "Hadamard", gateName: gate.H, symbol: "H"},
			{label: "Phase (S)", gateName: gate.S, symbol: "S"},
			{label: "S Dagger", gateName: gate.Sdag, symbol: "S†"},
			{label: "T Gate", gateName: gate.T, symbol: "T"},
			{label: "T Dagger", gateName: gate.Tdag, symbol: "T†"},
			{label: "√X", gateName: gate.SqrtX, symbol: "√X"},
			{label: "√X Dagger", gateName: gate.SqrtXdag, symbol: "√X†"},
			{label: "√Y", gateName: gate.SqrtY, symbol: "√Y"},
			{label: "√Y Dagger", gateName: gate.SqrtYdag, symbol: "√Y†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{label: "Rotate X", gateName: gate.RX, symbol: "RX"},
			{label: "Rotate Y", gateName: gate.RY, symbol: "RY"},
			{label: "Rotate Z", gateName: gate.RZ, symbol: "RZ"},
			{label: "Universal U1", gateName: gate.U1, symbol: "U1"},
			{label: "Universal U2", gateName: gate.U2, symbol: "U2"},
			{label: "Universal U3", gateName: gate.U3, symbol: "U3"},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{label: "CNOT", gateName: gate.CNOT, symbol: "●─⊕"},
			{label: "Controlled-Z", gateName: gate.CZ, symbol: "●─●"},
			{label: "SWAP", gateName: gate.SWAP, symbol: "×─×"},
			{label: "Toffoli", gateName: gate.TOFFOLI, symbol: "●─●─⊕"},
		},
	},
	{
		name: "Special",
		items: []menuItem{
			{label: "Pauli string", gateName: gate.Pauli, symbol: "P"},
			{label: "Pauli rotation", gateName: gate.PauliRotation, symbol: "e^iθP"},
			{label: "Unitary 1q", gateName: gate.SingleQubitUnitaryMatrix, symbol: "U"},
			{label: "Unitary 2q", gateName: gate.TwoQubitUnitaryMatrix, symbol: "U"},
			{label: "Unitary nq", gateName: gate.UnitaryMatrix, symbol: "U"},
			{label: "Measure", gateName: gate.Measurement, symbol: "M"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 46)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.label)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.label)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if k, ok := gate.Lookup(item.gateName); ok && k.Params > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%d params)", k.Params)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
