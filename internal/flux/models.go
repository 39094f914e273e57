package flux

import (
	"fmt"
	"math"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// Catalog names of the built-in flux models.
const (
	NamePowerLaw = "flux::PowerLaw"
	NameGaussian = "flux::Gaussian"
)

func init() {
	catalog.MustRegister(NamePowerLaw, func() alg.Algorithm { return NewPowerLaw() })
	catalog.MustRegister(NameGaussian, func() alg.Algorithm { return NewGaussian() })
}

// PowerLaw is an atmospheric-style falling spectrum. Parameters:
// "FluxNorm", "Index" (spectral index, flux ~ E^-Index).
type PowerLaw struct {
	alg.Base

	norm  float64
	index float64
}

func NewPowerLaw() *PowerLaw { return &PowerLaw{} }

func (p *PowerLaw) Configure(set *params.Set) error {
	norm, err := set.Float("FluxNorm")
	if err != nil {
		return err
	}
	index, err := set.Float("Index")
	if err != nil {
		return err
	}
	if index < 0 {
		return fmt.Errorf("Index must be non-negative, got %v", index)
	}

	p.norm = norm
	p.index = index
	return nil
}

func (p *PowerLaw) Flux(e float64) float64 {
	if e <= 0 {
		return 0
	}
	return p.norm * math.Pow(e, -p.index)
}

// Gaussian is a narrow-band beam spectrum. Parameters: "FluxNorm", "Peak"
// (GeV), "Sigma" (GeV).
type Gaussian struct {
	alg.Base

	norm  float64
	peak  float64
	sigma float64
}

func NewGaussian() *Gaussian { return &Gaussian{} }

func (g *Gaussian) Configure(set *params.Set) error {
	norm, err := set.Float("FluxNorm")
	if err != nil {
		return err
	}
	peak, err := set.Float("Peak")
	if err != nil {
		return err
	}
	sigma, err := set.Float("Sigma")
	if err != nil {
		return err
	}
	if sigma <= 0 {
		return fmt.Errorf("Sigma must be positive, got %v", sigma)
	}

	g.norm = norm
	g.peak = peak
	g.sigma = sigma
	return nil
}

func (g *Gaussian) Flux(e float64) float64 {
	if e <= 0 {
		return 0
	}
	z := (e - g.peak) / g.sigma
	return g.norm * math.Exp(-z*z/2)
}
