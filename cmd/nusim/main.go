package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/catalog"
	"github.com/nuphys/nusim/internal/params"
	"github.com/nuphys/nusim/internal/runstore"
	"github.com/nuphys/nusim/internal/spectrum"
	"github.com/nuphys/nusim/internal/tui"
	"github.com/nuphys/nusim/internal/viz"

	// implementation packages register their algorithms in init()
	_ "github.com/nuphys/nusim/internal/decay"
	_ "github.com/nuphys/nusim/internal/flux"
	_ "github.com/nuphys/nusim/internal/quad"
	_ "github.com/nuphys/nusim/internal/xsec"
)

var (
	dataDir    string
	paramsFile string
	xsecID     string
	fluxID     string
	quadID     string
	emin       float64
	emax       float64
	points     int
	workers    int
	verbose    bool
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	rootCmd := &cobra.Command{
		Use:   "nusim",
		Short: "neutrino interaction simulation toolkit",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nusim", "data directory")
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", "", "parameter file (yaml), layered over built-in defaults")

	algsCmd := &cobra.Command{
		Use:   "algs",
		Short: "list registered algorithms",
		RunE:  listAlgorithms,
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "scan a cross-section spectrum and fold it with a flux",
		RunE:  runScan,
	}
	addScanFlags(scanCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved scans",
		RunE:  listScans,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "live spectrum view, rescanning on parameter file edits",
		RunE:  runWatch,
	}
	addScanFlags(watchCmd)

	rootCmd.AddCommand(algsCmd, scanCmd, runsCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&xsecID, "xsec", "xsec::QELDipole", "cross-section algorithm id (name/label)")
	cmd.Flags().StringVar(&fluxID, "flux", "flux::PowerLaw", "flux algorithm id")
	cmd.Flags().StringVar(&quadID, "quad", "quad::Simpson", "integrator algorithm id")
	cmd.Flags().Float64Var(&emin, "emin", 0.1, "minimum energy (GeV)")
	cmd.Flags().Float64Var(&emax, "emax", 5.0, "maximum energy (GeV)")
	cmd.Flags().IntVar(&points, "points", 120, "grid points")
	cmd.Flags().IntVar(&workers, "workers", 4, "scan workers")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print pool contents")
}

// loadStore layers the optional params file over the built-in defaults.
func loadStore() (*params.Store, error) {
	store := params.Defaults()
	if paramsFile == "" {
		return store, nil
	}
	loaded, err := params.Load(paramsFile)
	if err != nil {
		return nil, err
	}
	store.Merge(loaded)
	return store, nil
}

func scanConfig() spectrum.Config {
	return spectrum.Config{
		XSec:       xsecID,
		Flux:       fluxID,
		Integrator: quadID,
		EMin:       emin,
		EMax:       emax,
		Points:     points,
		Workers:    workers,
	}
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "NAME")
	for _, name := range catalog.Names() {
		fmt.Fprintln(w, name)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nparameter sets: %v\n", store.Labels())
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	reg := alg.NewRegistry(alg.NewFactory(catalog.Resolve, store))
	defer reg.Close()

	cfg := scanConfig()
	scanner := spectrum.New(reg)

	result, err := scanner.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render("cross section"))
	fmt.Println(viz.PlotXSec(result, 80, 12))
	fmt.Println()
	fmt.Println(viz.HeaderStyle.Render("event rate"))
	fmt.Println(viz.PlotRate(result, 80, 12))
	fmt.Println()
	fmt.Println(viz.KV("total rate", fmt.Sprintf("%.6g", result.Total)))

	if verbose {
		fmt.Println()
		fmt.Println(viz.Pool(reg.Describe()))
	}

	scans := runstore.New(dataDir)
	if err := scans.Init(); err != nil {
		return err
	}
	scanID, err := scans.Save(cfg, result)
	if err != nil {
		return err
	}
	slog.Info("scan saved", "id", scanID, "dir", dataDir)

	return nil
}

func listScans(cmd *cobra.Command, args []string) error {
	scans, err := runstore.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Println("no scans found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tXSEC\tFLUX\tTOTAL")
	for _, s := range scans {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\n",
			s.ID, s.Timestamp.Format("2006-01-02 15:04:05"), s.XSec, s.Flux, s.Total)
	}
	return w.Flush()
}

func runWatch(cmd *cobra.Command, args []string) error {
	if paramsFile == "" {
		return fmt.Errorf("watch needs --params pointing at a yaml file to watch")
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	reg := alg.NewRegistry(alg.NewFactory(catalog.Resolve, store))
	defer reg.Close()

	reloads := make(chan tui.Reload, 1)
	watcher, err := params.NewWatcher(paramsFile, func(st *params.Store, err error) {
		tui.Offer(reloads, tui.Reload{Store: st, Err: err})
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	model := tui.NewModel(spectrum.New(reg), reg, store, scanConfig(), reloads)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
