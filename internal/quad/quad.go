// Package quad provides one-dimensional numerical integrators, registered in
// the catalog under "quad::*". Drivers pick an integrator by name from the
// parameter store, so quadrature schemes are as interchangeable as the
// physics models they integrate.
package quad

import "github.com/nuphys/nusim/internal/alg"

// Func is the integrand signature.
type Func func(x float64) float64

// Integrator is the capability surface of a quadrature algorithm.
type Integrator interface {
	alg.Algorithm

	Integrate(f Func, a, b float64) (float64, error)
}
