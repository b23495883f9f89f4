package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphbash/pkg/config"
	"github.com/matzehuels/graphbash/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleDim renders secondary text.
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber renders panel indices.
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleCode        = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled status lines for humans. Machine-readable output
// (JSON, codes) never goes through it.
type printer struct{ w io.Writer }

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) status(icon string, color lipgloss.Color, format string, args []any) {
	fmt.Fprintln(p.w, lipgloss.NewStyle().Foreground(color).Render(icon)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.status("✓", colorGreen, format, args) }
func (p printer) info(format string, args ...any)    { p.status("›", colorGray, format, args) }

func (p printer) warning(format string, args ...any) {
	p.status("!", colorYellow, "%s", []any{StyleWarning.Render(fmt.Sprintf(format, args...))})
}

// detail prints an indented secondary line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints the path of a written file.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// stats prints the graph size and whether it came from the cache.
func (p printer) stats(nodes, edges int, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(p.w, "  "+
		StyleDim.Render(fmt.Sprintf("%d panels", nodes))+sep+
		StyleDim.Render(fmt.Sprintf("%d moves", edges))+sep+origin)
}

// nextStep suggests a follow-up command.
func (p printer) nextStep(description, command string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}

// =============================================================================
// Routes
// =============================================================================

// writeCode prints one code block: a heading naming the destination and
// the step count, then the inputs.
func writeCode(w io.Writer, destination string, code []string) {
	fmt.Fprintf(w, "path to %s in %d steps:\n", destination, len(code))
	fmt.Fprintln(w, "  "+styleCode.Render("["+strings.Join(code, " ")+"]"))
}

// writeRoute prints every segment of res and then the combined code.
func writeRoute(w io.Writer, res *pipeline.Result, cfg *config.Config) {
	names := make([]string, len(res.Segments))
	for i, seg := range res.Segments {
		names[i] = targetLabel(cfg, seg.Goal)
		writeCode(w, names[i], seg.Code)
	}
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("== all in one (total cost: %s) ==", formatCost(res.Cost))))
	writeCode(w, "["+strings.Join(names, " ")+"]", res.Code)
}

// writeNoRoute prints the message for an unreachable goal set.
func writeNoRoute(w io.Writer) {
	fmt.Fprintln(w, StyleWarning.Render("no path found"))
}

// targetLabel names a panel by its target name when it has one.
func targetLabel(cfg *config.Config, node int32) string {
	name := cfg.Name(node)
	if name == strconv.Itoa(int(node)) {
		return name
	}
	return fmt.Sprintf("%s (%d)", name, node)
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

// =============================================================================
// Targets
// =============================================================================

// targetsTable renders the configured targets as a table.
func targetsTable(targets []config.Target) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(targets))
	for i, t := range targets {
		optional := ""
		if t.Optional {
			optional = "yes"
		}
		rows[i] = []string{t.Name, strconv.Itoa(int(t.Node)), optional, t.Description}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Target", "Panel", "Optional", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			if row >= 0 && row < len(targets) && targets[row].Optional {
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
