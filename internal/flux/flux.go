// Package flux provides neutrino flux models, registered in the catalog
// under "flux::*". A flux model returns the differential flux (arbitrary
// normalization) as a function of neutrino energy in GeV.
package flux

import "github.com/nuphys/nusim/internal/alg"

// Model is the capability surface of a flux algorithm.
type Model interface {
	alg.Algorithm

	Flux(e float64) float64
}
