package quad

import (
	"fmt"
	"math/rand"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// NameMonteCarlo is the catalog name of the Monte Carlo integrator.
const NameMonteCarlo = "quad::MonteCarlo"

func init() {
	catalog.MustRegister(NameMonteCarlo, func() alg.Algorithm { return NewMonteCarlo() })
}

// MonteCarlo is plain-sampling Monte Carlo integration. Parameters: "NCalls"
// (samples per integration), "Seed". Reconfiguring reseeds the generator, so
// results are reproducible per configuration.
type MonteCarlo struct {
	alg.Base

	ncalls int
	seed   int64
	rng    *rand.Rand
}

func NewMonteCarlo() *MonteCarlo { return &MonteCarlo{} }

func (m *MonteCarlo) Configure(set *params.Set) error {
	ncalls, err := set.Int("NCalls")
	if err != nil {
		return err
	}
	if ncalls < 1 {
		return fmt.Errorf("NCalls must be >= 1, got %d", ncalls)
	}
	seed := set.IntOr("Seed", 1)

	m.ncalls = ncalls
	m.seed = int64(seed)
	m.rng = rand.New(rand.NewSource(m.seed))
	return nil
}

func (m *MonteCarlo) Integrate(f Func, a, b float64) (float64, error) {
	if b < a {
		return 0, fmt.Errorf("quad: inverted interval [%v, %v]", a, b)
	}
	if a == b {
		return 0, nil
	}

	sum := 0.0
	for i := 0; i < m.ncalls; i++ {
		sum += f(a + (b-a)*m.rng.Float64())
	}

	return (b - a) * sum / float64(m.ncalls), nil
}
