package xsec

import (
	"fmt"
	"math"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// NameQEL is the catalog name of the quasi-elastic model.
const NameQEL = "xsec::QELDipole"

const qelNorm = 0.95 // plateau cross section, 1e-38 cm^2

func init() {
	catalog.MustRegister(NameQEL, func() alg.Algorithm { return NewQEL() })
}

// QEL is a quasi-elastic charged-current model with a dipole axial form
// factor. Parameters: "Ma" (axial mass, GeV), "Scale" (overall normalization).
type QEL struct {
	alg.Base

	ma    float64
	scale float64
}

func NewQEL() *QEL { return &QEL{} }

// Configure reads and validates the full parameter set before touching any
// internal state, so a rejected set leaves the previous configuration intact.
func (q *QEL) Configure(set *params.Set) error {
	ma, err := set.Float("Ma")
	if err != nil {
		return err
	}
	if ma <= 0 {
		return fmt.Errorf("Ma must be positive, got %v", ma)
	}
	scale, err := set.Float("Scale")
	if err != nil {
		return err
	}

	q.ma = ma
	q.scale = scale
	return nil
}

// XSec evaluates the quasi-elastic cross section: a threshold rise saturating
// onto a dipole-suppressed plateau. The mean momentum transfer grows with
// energy, so the dipole term drives the high-energy falloff.
func (q *QEL) XSec(e float64) (float64, error) {
	if e < 0 {
		return 0, fmt.Errorf("xsec: negative energy %v", e)
	}
	if e == 0 {
		return 0, nil
	}

	rise := 1.0 - math.Exp(-e/0.25)
	q2 := 0.5 * e / (1.0 + e) // effective <Q^2> in GeV^2
	dipole := 1.0 / math.Pow(1.0+q2/(q.ma*q.ma), 2)

	return q.scale * qelNorm * rise * dipole, nil
}

// Ma returns the configured axial mass.
func (q *QEL) Ma() float64 { return q.ma }

// Scale returns the configured normalization.
func (q *QEL) Scale() float64 { return q.scale }
