package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/mergington/internal/signupcheck"
)

// Default configuration constants.
const (
	defaultStudents    = 200
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8000", "Base URL of the service")
		students = flag.Int("students", defaultStudents, "Number of students to generate")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		activity = flag.String("activity", "", "Sign every student up for this activity (default: round-robin)")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		signupcheck.ShowHelp()
		return
	}

	if err := signupcheck.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &signupcheck.Config{
		BaseURL:     *baseURL,
		NumStudents: *students,
		Workers:     *workers,
		Activity:    *activity,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}

	if _, err := signupcheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Signup check failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
