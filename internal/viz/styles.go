package viz

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	PoolStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

// KV renders one aligned "label: value" line.
func KV(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// Pool renders a registry Describe listing in a bordered block.
func Pool(describe string) string {
	if describe == "" {
		describe = "(pool empty)"
	}
	return PoolStyle.Render(describe)
}
