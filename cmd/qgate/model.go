package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"qtermgate/circuit"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusList focus = iota
	focusMenu
	focusForm
)

// Model represents the TUI application state.
type Model struct {
	circ      *circuit.Circuit
	path      string // save/load target
	log       zerolog.Logger
	width     int
	height    int
	focus     focus
	selected  int
	statusMsg string
	statusErr bool

	// Menu state
	menuCat  int
	menuItem int

	form *gateForm
}

var banner = figure.NewFigure("qgate", "", true).String()

func newModel(c *circuit.Circuit, path string, log zerolog.Logger) Model {
	return Model{circ: c, path: path, log: log}
}

func (m *Model) setStatus(err error, format string, args ...any) {
	if err != nil {
		m.statusMsg = err.Error()
		m.statusErr = true
		return
	}
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusErr = false
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusList:
			return m.updateList(key)
		case focusMenu:
			return m.updateMenu(key)
		case focusForm:
			return m.updateForm(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	m.statusMsg, m.statusErr = "", false
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < m.circ.Len()-1 {
			m.selected++
		}
	case "a":
		m.focus = focusMenu
		m.menuItem = 0
	case "d", "backspace", "delete":
		if m.circ.Len() == 0 {
			break
		}
		name := m.circ.At(m.selected).Name()
		if err := m.circ.RemoveAt(m.selected); err != nil {
			m.setStatus(err, "")
			break
		}
		m.log.Info().Str("gate", name).Int("index", m.selected).Msg("removed gate")
		m.selected = min(m.selected, max(m.circ.Len()-1, 0))
		m.setStatus(nil, "Removed %s", name)
	case "ctrl+r":
		m.circ.Reset()
		m.selected = 0
		m.log.Info().Msg("reset circuit")
		m.setStatus(nil, "Circuit cleared")
	case "ctrl+s":
		if err := m.circ.Save(m.path); err != nil {
			m.log.Error().Err(err).Str("path", m.path).Msg("save failed")
			m.setStatus(fmt.Errorf("save: %w", err), "")
			break
		}
		m.log.Info().Str("path", m.path).Int("gates", m.circ.Len()).Msg("saved circuit")
		m.setStatus(nil, "Saved %s", m.path)
	case "ctrl+o":
		c, err := circuit.Load(m.path)
		if err != nil {
			m.log.Error().Err(err).Str("path", m.path).Msg("load failed")
			m.setStatus(err, "")
			break
		}
		m.circ = c
		m.selected = 0
		m.log.Info().Str("path", m.path).Int("gates", c.Len()).Msg("loaded circuit")
		m.setStatus(nil, "Loaded %s", m.path)
	}
	return m, nil
}

func (m Model) updateMenu(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.focus = focusList
	case "left", "h":
		m.menuCat = (m.menuCat - 1 + len(gateMenu)) % len(gateMenu)
		m.menuItem = 0
	case "right", "l", "tab":
		m.menuCat = (m.menuCat + 1) % len(gateMenu)
		m.menuItem = 0
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "enter":
		item := gateMenu[m.menuCat].items[m.menuItem]
		m.form = newGateForm(item.gateName)
		m.focus = focusForm
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.focus = focusList
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		g, err := m.form.build()
		if err == nil {
			err = m.circ.Add(g)
		}
		if err != nil {
			m.log.Debug().Err(err).Str("gate", m.form.gateName).Msg("rejected gate")
			m.setStatus(err, "")
			return m, nil
		}
		m.log.Info().Str("gate", g.Name()).Uint64("hash", g.Hash()).Msg("added gate")
		m.selected = m.circ.Len() - 1
		m.form = nil
		m.focus = focusList
		m.setStatus(nil, "Added %s", g.Pretty())
		return m, nil
	}
	return m, m.form.update(msg)
}

// ──────────────────────────── View ────────────────────────────

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	listWidth := m.width - qasmWidth - 4
	controlsHeight := 6
	bodyHeight := max(m.height-controlsHeight-2, 6)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderListPanel(listWidth, bodyHeight),
		m.renderQASMPanel(qasmWidth, bodyHeight))
	frame := lipgloss.JoinVertical(lipgloss.Left, top, m.renderControlsPanel(m.width-4, controlsHeight-2))

	var popup string
	switch m.focus {
	case focusMenu:
		popup = m.renderMenu()
	case focusForm:
		popup = m.form.render()
		if m.statusErr {
			popup = lipgloss.JoinVertical(lipgloss.Left, popup, errorStyle.Render(m.statusMsg))
		}
	}
	if popup != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup,
			lipgloss.WithWhitespaceChars(" "))
	}
	return frame
}

func (m Model) renderListPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Circuit  %d qubits, %d gates", m.circ.QubitCount(), m.circ.Len())))
	sb.WriteString("\n\n")

	if m.circ.Len() == 0 {
		sb.WriteString(gateStyle.Render(banner))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("No gates yet. Press a to add one."))
	}
	for i, g := range m.circ.Gates() {
		line := fmt.Sprintf("%3d  %s", i, g.Pretty())
		if i == m.selected {
			sb.WriteString(menuSelectedStyle.Render("▸" + line))
		} else {
			sb.WriteString(" " + gateStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	if m.circ.Len() > 0 {
		g := m.circ.At(m.selected)
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render(fmt.Sprintf("hash %016x", g.Hash())))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(max(width-4, 10)).Render(g.String()))
	}

	return listStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("QASM"))
	sb.WriteString("\n\n")
	sb.WriteString(m.circ.ToQASM())
	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Select gate    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeGateStyle.Render("d"))
	sb.WriteString(" Delete\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("^S Save  ^O Load  ^R Reset  q/^C Quit\n")

	switch {
	case m.statusErr:
		sb.WriteString(errorStyle.Render(m.statusMsg))
	case m.statusMsg != "":
		sb.WriteString(dimStyle.Render(m.statusMsg))
	}

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// loadOrNew opens the circuit at path, or starts a fresh one when the file
// does not exist yet.
func loadOrNew(path string, qubits int) (*circuit.Circuit, error) {
	c, err := circuit.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return circuit.New(qubits)
	}
	return c, err
}
