package signupcheck

import (
	"fmt"
	"os"

	"github.com/okian/mergington/pkg/logger"
)

// SetupLogging initializes the global logger for the tool.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the signup check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mergington Signup Check
=======================

A concurrent end-to-end check for the Mergington activities service.
Signs generated students up, probes duplicate rejection, unregisters
everyone again and verifies the registry after each round.

Usage:
  go run ./cmd/signup-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -students int
        Number of students to generate (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -activity string
        Sign every student up for this activity (default: round-robin)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check with default settings
  go run ./cmd/signup-check

  # Hammer a single activity
  go run ./cmd/signup-check -students 1000 -workers 32 -activity "Chess Club"
`)
}
