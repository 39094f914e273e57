// Package spectrum computes event-rate spectra by composing registry-built
// algorithms: a flux model, a cross-section model and a numerical integrator,
// each selected by ID at run time.
package spectrum

import (
	"context"
	"fmt"
	"sync"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/flux"
	"github.com/nuphys/nusim/internal/quad"
	"github.com/nuphys/nusim/internal/xsec"
)

// Config selects the algorithms and the energy grid of one scan. Algorithm
// fields are ID text forms ("name/label", label optional).
type Config struct {
	XSec       string
	Flux       string
	Integrator string
	EMin       float64 // GeV
	EMax       float64 // GeV
	Points     int
	Workers    int // parallel scan workers; <=0 means 4
}

// Result holds the scanned spectrum. Rates are flux-weighted cross sections
// per grid point; Total is the flux-folded rate integral over [EMin, EMax].
type Result struct {
	Energies []float64
	XSecs    []float64
	Rates    []float64
	Total    float64
}

// Scanner runs spectrum scans against a shared algorithm registry. Pooled
// lookups mean repeated scans with the same configuration reuse the same
// instances, and a ForceReconfigure between scans changes their output
// without rebuilding anything.
type Scanner struct {
	reg *alg.Registry
}

// New returns a scanner bound to the registry.
func New(reg *alg.Registry) *Scanner {
	return &Scanner{reg: reg}
}

func (c Config) validate() error {
	if c.Points < 2 {
		return fmt.Errorf("spectrum: need at least 2 grid points, got %d", c.Points)
	}
	if c.EMax <= c.EMin {
		return fmt.Errorf("spectrum: empty energy range [%v, %v]", c.EMin, c.EMax)
	}
	return nil
}

// resolve builds or fetches the three algorithms and checks their capability
// surfaces.
func (s *Scanner) resolve(cfg Config) (xsec.Model, flux.Model, quad.Integrator, error) {
	xsID, err := alg.ParseID(cfg.XSec)
	if err != nil {
		return nil, nil, nil, err
	}
	flID, err := alg.ParseID(cfg.Flux)
	if err != nil {
		return nil, nil, nil, err
	}
	inID, err := alg.ParseID(cfg.Integrator)
	if err != nil {
		return nil, nil, nil, err
	}

	xa, err := s.reg.GetPooled(xsID)
	if err != nil {
		return nil, nil, nil, err
	}
	xs, ok := xa.(xsec.Model)
	if !ok {
		return nil, nil, nil, fmt.Errorf("spectrum: %s is not a cross-section model", xsID)
	}

	fa, err := s.reg.GetPooled(flID)
	if err != nil {
		return nil, nil, nil, err
	}
	fl, ok := fa.(flux.Model)
	if !ok {
		return nil, nil, nil, fmt.Errorf("spectrum: %s is not a flux model", flID)
	}

	ia, err := s.reg.GetPooled(inID)
	if err != nil {
		return nil, nil, nil, err
	}
	integ, ok := ia.(quad.Integrator)
	if !ok {
		return nil, nil, nil, fmt.Errorf("spectrum: %s is not an integrator", inID)
	}

	return xs, fl, integ, nil
}

// Run scans the cross section and flux-weighted rate over the energy grid,
// then folds flux against cross section with the configured integrator.
func (s *Scanner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	xs, fl, integ, err := s.resolve(cfg)
	if err != nil {
		return nil, err
	}

	n := cfg.Points
	result := &Result{
		Energies: make([]float64, n),
		XSecs:    make([]float64, n),
		Rates:    make([]float64, n),
	}

	step := (cfg.EMax - cfg.EMin) / float64(n-1)
	errs := make([]error, n)

	scanChunked(n, cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			e := cfg.EMin + float64(i)*step
			sigma, err := xs.XSec(e)
			if err != nil {
				errs[i] = err
				continue
			}
			result.Energies[i] = e
			result.XSecs[i] = sigma
			result.Rates[i] = sigma * fl.Flux(e)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var integErr error
	var once sync.Once
	total, err := integ.Integrate(func(e float64) float64 {
		sigma, err := xs.XSec(e)
		if err != nil {
			once.Do(func() { integErr = err })
			return 0
		}
		return sigma * fl.Flux(e)
	}, cfg.EMin, cfg.EMax)
	if err != nil {
		return nil, err
	}
	if integErr != nil {
		return nil, integErr
	}
	result.Total = total

	return result, nil
}

// scanChunked splits [0, n) across workers. Adapted worker fan-out: the grid
// points are independent, so plain index chunks suffice.
func scanChunked(n, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = 4
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
