package quad

import (
	"fmt"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// NameSimpson is the catalog name of the composite Simpson integrator.
const NameSimpson = "quad::Simpson"

func init() {
	catalog.MustRegister(NameSimpson, func() alg.Algorithm { return NewSimpson() })
}

// Simpson is composite Simpson's rule. Parameter: "NSteps" (even panel count).
type Simpson struct {
	alg.Base

	nsteps int
}

func NewSimpson() *Simpson { return &Simpson{} }

func (s *Simpson) Configure(set *params.Set) error {
	n, err := set.Int("NSteps")
	if err != nil {
		return err
	}
	if n < 2 || n%2 != 0 {
		return fmt.Errorf("NSteps must be an even count >= 2, got %d", n)
	}

	s.nsteps = n
	return nil
}

func (s *Simpson) Integrate(f Func, a, b float64) (float64, error) {
	if b < a {
		return 0, fmt.Errorf("quad: inverted interval [%v, %v]", a, b)
	}
	if a == b {
		return 0, nil
	}

	h := (b - a) / float64(s.nsteps)
	sum := f(a) + f(b)
	for i := 1; i < s.nsteps; i++ {
		x := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}

	return sum * h / 3.0, nil
}
