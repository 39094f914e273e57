package xsec

import (
	"fmt"
	"math"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// NameDIS is the catalog name of the deep-inelastic model.
const NameDIS = "xsec::DISLinear"

func init() {
	catalog.MustRegister(NameDIS, func() alg.Algorithm { return NewDIS() })
}

// DIS models the deep-inelastic region, where the total cross section scales
// linearly with energy. Parameters: "Slope" (1e-38 cm^2/GeV), "Threshold"
// (GeV) controlling the low-energy suppression of the scaling regime.
type DIS struct {
	alg.Base

	slope     float64
	threshold float64
}

func NewDIS() *DIS { return &DIS{} }

func (d *DIS) Configure(set *params.Set) error {
	slope, err := set.Float("Slope")
	if err != nil {
		return err
	}
	threshold, err := set.Float("Threshold")
	if err != nil {
		return err
	}
	if threshold <= 0 {
		return fmt.Errorf("Threshold must be positive, got %v", threshold)
	}

	d.slope = slope
	d.threshold = threshold
	return nil
}

func (d *DIS) XSec(e float64) (float64, error) {
	if e < 0 {
		return 0, fmt.Errorf("xsec: negative energy %v", e)
	}

	suppression := 1.0 - math.Exp(-(e/d.threshold)*(e/d.threshold))
	return d.slope * e * suppression, nil
}
