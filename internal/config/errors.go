package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// wrap attaches a sentinel kind to an underlying error.
func wrap(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}

// invalid builds an ErrInvalidConfig with a message.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
