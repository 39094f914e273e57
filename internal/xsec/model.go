package xsec

import "github.com/nuphys/nusim/internal/alg"

// Model is the capability surface of a cross-section algorithm.
type Model interface {
	alg.Algorithm

	// XSec returns the total cross section (1e-38 cm^2/nucleon) at neutrino
	// energy e (GeV).
	XSec(e float64) (float64, error)
}
