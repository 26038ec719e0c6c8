// Command qgate builds, inspects and exports circuits of quantum gates.
//
// Usage:
//
//	qgate                 interactive gate builder
//	qgate inspect FILE    print every gate of a saved circuit with its hash
//	qgate qasm FILE       print a saved circuit as OpenQASM 2.0
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"qtermgate/circuit"
	"qtermgate/internal/config"
	"qtermgate/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "qgate: %v\n", err)
		os.Exit(1)
	}
}

// run wires config and logging, then dispatches to a subcommand or the editor.
func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logFile.Close()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: logFile})
	logger.SetGlobalLogger(log)

	if len(args) > 0 {
		return runCommand(args, stdout, log)
	}

	circ, err := loadOrNew(cfg.CircuitFile, cfg.Qubits)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.CircuitFile).Msg("cannot open circuit")
		return err
	}
	log.Info().Str("path", cfg.CircuitFile).Int("qubits", circ.QubitCount()).Msg("starting editor")

	p := tea.NewProgram(newModel(circ, cfg.CircuitFile, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("editor exited with error")
		return err
	}
	return nil
}

// runCommand handles the non-interactive subcommands.
func runCommand(args []string, w io.Writer, log zerolog.Logger) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: qgate [inspect|qasm] FILE")
	}
	c, err := circuit.Load(args[1])
	if err != nil {
		return err
	}
	log.Debug().Str("cmd", args[0]).Str("path", args[1]).Int("gates", c.Len()).Msg("loaded circuit")

	switch args[0] {
	case "inspect":
		fmt.Fprintf(w, "qubits=%d cbits=%d gates=%d hash=%016x\n", c.QubitCount(), c.CbitCount(), c.Len(), c.Hash())
		for i, g := range c.Gates() {
			fmt.Fprintf(w, "%d\t%016x\t%s\n", i, g.Hash(), g)
		}
	case "qasm":
		fmt.Fprint(w, c.ToQASM())
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}
