package alg

import (
	"fmt"

	"github.com/nuphys/nusim/internal/params"
)

// Constructor allocates one unconfigured algorithm instance.
type Constructor func() Algorithm

// ResolverFunc maps a qualified algorithm name to its constructor. The
// catalog package provides the process-wide registration table.
type ResolverFunc func(name string) (Constructor, bool)

// Factory is the instantiation engine: it resolves an ID's name to a concrete
// implementation, constructs it and drives its configuration. It never
// touches the registry pool.
type Factory struct {
	resolve ResolverFunc
	store   *params.Store
}

// NewFactory wires the engine to a name resolver and a parameter store.
func NewFactory(resolve ResolverFunc, store *params.Store) *Factory {
	return &Factory{resolve: resolve, store: store}
}

// Store returns the parameter store the factory configures algorithms from.
func (f *Factory) Store() *params.Store { return f.store }

// Build constructs and configures the algorithm identified by id. On any
// failure no instance is returned; a half-configured object never escapes.
func (f *Factory) Build(id ID) (Algorithm, error) {
	ctor, ok := f.resolve(id.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, id.Name)
	}

	set, ok := f.store.Set(id.Label)
	if !ok {
		return nil, fmt.Errorf("%w: label %q (algorithm %q)", ErrConfigNotFound, id.Label, id.Name)
	}

	a := ctor()
	a.SetID(id)
	if err := a.Configure(set); err != nil {
		return nil, &ConfigError{ID: id, Err: err}
	}

	return a, nil
}
