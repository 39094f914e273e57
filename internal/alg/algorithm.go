package alg

import "github.com/nuphys/nusim/internal/params"

// Algorithm is the capability interface every physics and numeric model
// satisfies. Domain evaluation methods (cross sections, quadrature, branching
// fractions) live on the concrete types; the registry and factory depend only
// on this surface.
//
// Configure must be re-invocable: ForceReconfigure calls it again on live
// instances. Implementations read the full parameter set into locals, reject
// bad input, and only then overwrite internal state, so a failed call leaves
// the instance on its last-known-good parameters.
type Algorithm interface {
	ID() ID
	SetID(ID)
	Configure(set *params.Set) error
}

// Base supplies the ID bookkeeping; concrete algorithms embed it.
type Base struct {
	id ID
}

// ID returns the identity the factory assigned at construction.
func (b *Base) ID() ID { return b.id }

// SetID records the identity. Called once by the factory before Configure.
func (b *Base) SetID(id ID) { b.id = id }
