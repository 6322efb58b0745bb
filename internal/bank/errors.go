package bank

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("question bank configuration error")

// ConfigurationError reports a missing, unreadable or malformed question
// bank. It is fatal at startup.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("question bank %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("question bank: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Err: fmt.Errorf(format, args...)}
}

// withPath attaches path to err when err is a ConfigurationError without one.
func withPath(err error, path string) error {
	var ce *ConfigurationError
	if errors.As(err, &ce) && ce.Path == "" {
		return &ConfigurationError{Path: path, Err: ce.Err}
	}
	return err
}
