// Package decay provides decay-mode tables as catalog algorithms.
package decay

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
)

// NameBranching is the catalog name of the branching-fraction table.
const NameBranching = "decay::BranchingTable"

const sumTolerance = 1e-6

func init() {
	catalog.MustRegister(NameBranching, func() alg.Algorithm { return NewBranching() })
}

// Branching holds the branching fractions of a decaying state, read from the
// nested "Channels" sub-configuration (mode name -> fraction). Fractions must
// sum to unity.
type Branching struct {
	alg.Base

	fractions map[string]float64
	modes     []string // sorted, for deterministic sampling
}

func NewBranching() *Branching { return &Branching{} }

// Configure parses and validates the whole channel table before installing
// it, so a malformed table never replaces a previously good one.
func (b *Branching) Configure(set *params.Set) error {
	channels, err := set.Sub("Channels")
	if err != nil {
		return err
	}

	modes := channels.Keys()
	if len(modes) == 0 {
		return fmt.Errorf("Channels table is empty")
	}

	fractions := make(map[string]float64, len(modes))
	sum := 0.0
	for _, mode := range modes {
		f, err := channels.Float(mode)
		if err != nil {
			return err
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("fraction for %q out of range: %v", mode, f)
		}
		fractions[mode] = f
		sum += f
	}
	if math.Abs(sum-1.0) > sumTolerance {
		return fmt.Errorf("fractions sum to %v, want 1", sum)
	}

	sort.Strings(modes)
	b.fractions = fractions
	b.modes = modes
	return nil
}

// Fraction returns the branching fraction for mode, zero if unknown.
func (b *Branching) Fraction(mode string) float64 {
	return b.fractions[mode]
}

// Modes returns the known decay modes, sorted.
func (b *Branching) Modes() []string {
	out := make([]string, len(b.modes))
	copy(out, b.modes)
	return out
}

// Sample draws a decay mode according to the table.
func (b *Branching) Sample(r *rand.Rand) string {
	u := r.Float64()
	acc := 0.0
	for _, mode := range b.modes {
		acc += b.fractions[mode]
		if u < acc {
			return mode
		}
	}
	return b.modes[len(b.modes)-1]
}
