package alg

import (
	"errors"
	"fmt"
)

// Registry and factory errors.
var (
	// ErrMalformedID indicates an ID text form that could not be parsed.
	ErrMalformedID = errors.New("alg: malformed algorithm id")

	// ErrUnknownAlgorithm indicates no constructor is registered for a name.
	ErrUnknownAlgorithm = errors.New("alg: unknown algorithm name")

	// ErrConfigNotFound indicates the config label has no parameter set.
	ErrConfigNotFound = errors.New("alg: parameter set not found")

	// ErrClosed indicates the registry has been shut down.
	ErrClosed = errors.New("alg: registry closed")
)

// ConfigError reports that an algorithm rejected the parameter set it was
// given (missing key, wrong type, out-of-range value).
type ConfigError struct {
	ID  ID
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("alg: configuring %s: %v", e.ID, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ReconfigError reports the failure of one pooled entry during
// ForceReconfigure. The instance keeps its previous parameters and stays in
// the pool.
type ReconfigError struct {
	ID  ID
	Err error
}

func (e *ReconfigError) Error() string {
	return fmt.Sprintf("alg: reconfiguring %s: %v", e.ID, e.Err)
}

func (e *ReconfigError) Unwrap() error {
	return e.Err
}
