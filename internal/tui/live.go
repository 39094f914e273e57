// Package tui provides the live spectrum view: the scan re-runs whenever the
// parameter file is reloaded and the pooled algorithms are reconfigured, so
// edits to the file show up in the plot without restarting.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nuphys/nusim/internal/alg"
	"github.com/nuphys/nusim/internal/params"
	"github.com/nuphys/nusim/internal/spectrum"
	"github.com/nuphys/nusim/internal/viz"
)

// Reload carries the outcome of one parameter-file reload into the view.
type Reload struct {
	Store *params.Store
	Err   error
}

// Offer queues r for the view, replacing any reload it has not yet consumed.
// It never blocks, so a watcher callback cannot park after the program exits.
func Offer(ch chan Reload, r Reload) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- r:
	default:
	}
}

type scanMsg struct {
	result *spectrum.Result
	err    error
}

type reloadMsg Reload

// Model is the bubbletea model for `nusim watch`.
type Model struct {
	scanner *spectrum.Scanner
	reg     *alg.Registry
	store   *params.Store
	cfg     spectrum.Config
	reloads <-chan Reload

	result  *spectrum.Result
	err     error
	reloadN int
	width   int

	// scan commands run on their own goroutine and read the pooled
	// algorithms, so reconfiguration is deferred while one is in flight
	scanning      bool
	pendingReload bool
	pendingStore  *params.Store
}

// NewModel wires the view to a scanner, the live store and the reload feed.
func NewModel(scanner *spectrum.Scanner, reg *alg.Registry, store *params.Store, cfg spectrum.Config, reloads <-chan Reload) Model {
	return Model{
		scanner: scanner,
		reg:     reg,
		store:   store,
		cfg:     cfg,
		reloads: reloads,
		width:   80,
		// Init launches the first scan
		scanning: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scan(), m.waitForReload())
}

func (m Model) scan() tea.Cmd {
	return func() tea.Msg {
		result, err := m.scanner.Run(context.Background(), m.cfg)
		return scanMsg{result: result, err: err}
	}
}

func (m Model) waitForReload() tea.Cmd {
	return func() tea.Msg {
		r, ok := <-m.reloads
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// manual reconfigure against the current store
			m.pendingReload = true
			if m.scanning {
				return m, nil
			}
			cmd := m.applyPending()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case scanMsg:
		m.scanning = false
		m.result = msg.result
		m.err = msg.err
		if m.pendingReload {
			cmd := m.applyPending()
			return m, cmd
		}

	case reloadMsg:
		m.reloadN++
		if msg.Err != nil {
			m.err = msg.Err
			return m, m.waitForReload()
		}
		m.pendingStore = msg.Store
		m.pendingReload = true
		if m.scanning {
			return m, m.waitForReload()
		}
		cmd := m.applyPending()
		return m, tea.Batch(cmd, m.waitForReload())
	}

	return m, nil
}

// applyPending layers any stashed reload over the live store (keeping
// default labels), reconfigures the pooled instances and starts the next
// scan. Only ever called between scans: pooled algorithms must not be
// reconfigured while a scan goroutine is reading them.
func (m *Model) applyPending() tea.Cmd {
	if m.pendingStore != nil {
		m.store.Merge(m.pendingStore)
		m.pendingStore = nil
	}
	m.pendingReload = false
	m.err = m.reg.ForceReconfigure()
	m.scanning = true
	return m.scan()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(viz.HeaderStyle.Render("nusim live spectrum"))
	b.WriteString("\n")
	b.WriteString(viz.KV("cross section", m.cfg.XSec) + "\n")
	b.WriteString(viz.KV("flux", m.cfg.Flux) + "\n")
	b.WriteString(viz.KV("integrator", m.cfg.Integrator) + "\n")
	b.WriteString(viz.KV("reloads", fmt.Sprintf("%d", m.reloadN)) + "\n\n")

	if m.err != nil {
		b.WriteString(viz.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.result != nil {
		width := m.width - 10
		if width < 20 {
			width = 20
		}
		b.WriteString(viz.PlotRate(m.result, width, 14))
		b.WriteString("\n\n")
	}

	b.WriteString(viz.Pool(m.reg.Describe()))
	b.WriteString("\n")
	b.WriteString(viz.HelpStyle.Render("r: reconfigure  q: quit  (edit the params file to trigger a reload)"))

	return b.String()
}
