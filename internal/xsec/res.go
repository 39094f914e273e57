package xsec

import (
	"fmt"
	"math"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// NameRES is the catalog name of the resonance-production model.
const NameRES = "xsec::RESBreitWigner"

const nucleonMass = 0.9389 // GeV

func init() {
	catalog.MustRegister(NameRES, func() alg.Algorithm { return NewRES() })
}

// RES models single-resonance production with a Breit-Wigner line shape in
// the hadronic invariant mass. Parameters: "MRes" (resonance mass, GeV),
// "Width" (full width, GeV), "ResNorm" (peak cross section, 1e-38 cm^2).
type RES struct {
	alg.Base

	mres  float64
	width float64
	norm  float64
}

func NewRES() *RES { return &RES{} }

func (r *RES) Configure(set *params.Set) error {
	mres, err := set.Float("MRes")
	if err != nil {
		return err
	}
	width, err := set.Float("Width")
	if err != nil {
		return err
	}
	norm, err := set.Float("ResNorm")
	if err != nil {
		return err
	}
	if mres <= nucleonMass {
		return fmt.Errorf("MRes must exceed the nucleon mass, got %v", mres)
	}
	if width <= 0 {
		return fmt.Errorf("Width must be positive, got %v", width)
	}

	r.mres = mres
	r.width = width
	r.norm = norm
	return nil
}

// XSec evaluates the resonant cross section at the invariant mass reachable
// for a neutrino of energy e on a nucleon at rest.
func (r *RES) XSec(e float64) (float64, error) {
	if e < 0 {
		return 0, fmt.Errorf("xsec: negative energy %v", e)
	}

	w := math.Sqrt(nucleonMass*nucleonMass + 2.0*nucleonMass*e)
	g2 := r.width * r.width / 4.0
	bw := g2 / ((w-r.mres)*(w-r.mres) + g2)

	return r.norm * bw, nil
}

// Peak returns the configured resonance mass.
func (r *RES) Peak() float64 { return r.mres }
