// Package config provides configuration for the qgate command.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// MaxQubits caps the editor register so matrices stay printable.
const MaxQubits = 16

// Config holds application configuration
type Config struct {
	LogLevel    string // debug, info, warn, error
	LogPretty   bool
	LogFile     string // TUI output owns stdout, so logs go here
	CircuitFile string // default save/load path
	Qubits      int    // register size of a new circuit
}

// Load reads .env files (default ".env", missing files ignored) and then the
// environment. Values already present in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	qubits, err := getEnvAsInt("QGATE_QUBITS", 4)
	if err != nil {
		return nil, err
	}
	pretty, err := getEnvAsBool("QGATE_LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:    getEnv("QGATE_LOG_LEVEL", "info"),
		LogPretty:   pretty,
		LogFile:     getEnv("QGATE_LOG_FILE", "qgate.log"),
		CircuitFile: getEnv("QGATE_CIRCUIT_FILE", "circuit.qgate"),
		Qubits:      qubits,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Qubits < 1 || c.Qubits > MaxQubits {
		return fmt.Errorf("QGATE_QUBITS must be between 1 and %d, got %d", MaxQubits, c.Qubits)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("QGATE_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if c.CircuitFile == "" {
		return fmt.Errorf("QGATE_CIRCUIT_FILE must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
