package quad

import (
	"fmt"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// NameGauss is the catalog name of the Gauss-Legendre integrator.
const NameGauss = "quad::GaussLegendre"

func init() {
	catalog.MustRegister(NameGauss, func() alg.Algorithm { return NewGauss() })
}

// 5-point Gauss-Legendre nodes and weights on [-1, 1].
var (
	glNodes   = [5]float64{-0.9061798459386640, -0.5384693101056831, 0, 0.5384693101056831, 0.9061798459386640}
	glWeights = [5]float64{0.2369268850561891, 0.4786286704993665, 0.5688888888888889, 0.4786286704993665, 0.2369268850561891}
)

// Gauss is composite 5-point Gauss-Legendre quadrature. Parameter:
// "NIntervals" (subinterval count).
type Gauss struct {
	alg.Base

	nintervals int
}

func NewGauss() *Gauss { return &Gauss{} }

func (g *Gauss) Configure(set *params.Set) error {
	n, err := set.Int("NIntervals")
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("NIntervals must be >= 1, got %d", n)
	}

	g.nintervals = n
	return nil
}

func (g *Gauss) Integrate(f Func, a, b float64) (float64, error) {
	if b < a {
		return 0, fmt.Errorf("quad: inverted interval [%v, %v]", a, b)
	}
	if a == b {
		return 0, nil
	}

	h := (b - a) / float64(g.nintervals)
	total := 0.0
	for i := 0; i < g.nintervals; i++ {
		lo := a + float64(i)*h
		mid := lo + h/2
		half := h / 2
		for j := range glNodes {
			total += glWeights[j] * f(mid+half*glNodes[j])
		}
	}

	return total * h / 2, nil
}
