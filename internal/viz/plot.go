// Package viz renders spectra and registry diagnostics for the terminal.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/nuphys/nusim/internal/spectrum"
)

// PlotXSec renders the cross-section curve of a scan.
func PlotXSec(result *spectrum.Result, width, height int) string {
	caption := fmt.Sprintf("cross section vs energy [%.2f, %.2f] GeV",
		result.Energies[0], result.Energies[len(result.Energies)-1])
	return asciigraph.Plot(result.XSecs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotRate renders the flux-weighted event-rate curve of a scan.
func PlotRate(result *spectrum.Result, width, height int) string {
	caption := fmt.Sprintf("event rate vs energy (total %.4g)", result.Total)
	return asciigraph.Plot(result.Rates,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
