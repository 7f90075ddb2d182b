package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownModule is returned when a module id is not in the catalog
	ErrUnknownModule = errors.New("unknown module")
	// ErrUnknownBundle is returned when a bundle id is not in the catalog
	ErrUnknownBundle = errors.New("unknown bundle")
)

// ConfigurationError reports every consistency problem found while loading a catalog.
// A catalog that fails to load is never repaired; the caller refuses to start.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "catalog configuration error: " + e.Problems[0]
	}
	return fmt.Sprintf("catalog configuration error: %d problems: %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ConfigurationError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ConfigurationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// NewConfigurationError builds a ConfigurationError from a single problem
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	e := &ConfigurationError{}
	e.add(format, args...)
	return e
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

func unknownModule(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownModule, id)
}

func unknownBundle(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownBundle, id)
}
