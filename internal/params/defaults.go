package params

// Default parameter values for the built-in algorithm implementations.
const (
	DefaultLabel = "Default"

	DefaultMa        = 1.032
	DefaultMRes      = 1.232
	DefaultWidth     = 0.117
	DefaultDISSlope  = 0.677
	DefaultThreshold = 1.5
	DefaultNSteps    = 200
	DefaultNCalls    = 10000
	DefaultFluxIndex = 2.0
)

// Defaults returns a store pre-populated with the nominal parameter sets the
// built-in algorithms expect, plus a "Tuned" variant used by the examples.
// Loading a params file on top of this replaces whole labels, never merges.
func Defaults() *Store {
	st := NewStore()

	st.Put(DefaultLabel, map[string]any{
		// quasi-elastic dipole
		"Ma":    DefaultMa,
		"Scale": 1.0,
		// Delta resonance
		"MRes":    DefaultMRes,
		"Width":   DefaultWidth,
		"ResNorm": 1.0,
		// deep inelastic
		"Slope":     DefaultDISSlope,
		"Threshold": DefaultThreshold,
		// integrators
		"NSteps":     DefaultNSteps,
		"NIntervals": 64,
		"NCalls":     DefaultNCalls,
		"Seed":       1,
		// flux
		"FluxNorm": 1.0,
		"Index":    DefaultFluxIndex,
		"Peak":     0.6,
		"Sigma":    0.15,
		// decay table
		"Channels": map[string]any{
			"nu e e":   0.59,
			"nu mu mu": 0.29,
			"nu pi0":   0.12,
		},
	})

	st.Put("Tuned", map[string]any{
		"Ma":         1.21,
		"Scale":      1.05,
		"MRes":       DefaultMRes,
		"Width":      0.13,
		"ResNorm":    0.94,
		"Slope":      0.71,
		"Threshold":  1.7,
		"NSteps":     400,
		"NIntervals": 128,
		"NCalls":     50000,
		"Seed":       7,
		"FluxNorm":   1.0,
		"Index":      2.3,
		"Peak":       0.6,
		"Sigma":      0.15,
		"Channels": map[string]any{
			"nu e e":   0.60,
			"nu mu mu": 0.28,
			"nu pi0":   0.12,
		},
	})

	return st
}
