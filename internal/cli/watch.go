package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lhartmann/forcefield/internal/demo"
	"github.com/lhartmann/forcefield/pkg/fetch"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/layout"
	"github.com/lhartmann/forcefield/pkg/pipeline"
)

// ticksPerFrame trades animation smoothness against convergence speed.
const ticksPerFrame = 3

// newWatchCmd creates the watch command: an interactive terminal view of
// the simulation converging.
func newWatchCmd() *cobra.Command {
	var size int
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "watch [graph.json|dataset]",
		Short: "Watch the simulation converge in the terminal",
		Long: `Watch the simulation converge in the terminal.

The argument is a graph.json file or the name of a built-in demo
dataset. The view shows the cooling curve and a live map of node
positions. Press space to pause, r to reheat, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfig(cmd.Context(), &opts)
			return runWatch(cmd.Context(), args[0], size, opts)
		},
	}

	cmd.Flags().IntVarP(&size, "nodes", "n", 0, "approximate node count (demo datasets only)")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runWatch loads the input and runs the bubbletea program.
func runWatch(ctx context.Context, input string, size int, opts pipeline.Options) error {
	g, err := loadWatchGraph(ctx, input, size)
	if err != nil {
		return err
	}

	stepper, err := layout.NewStepper(g, opts.LayoutOptions())
	if err != nil {
		return err
	}

	model := newWatchModel(g, stepper)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// loadWatchGraph reads a graph file or URL, falling back to the demo
// dataset of the same name when no such file exists.
func loadWatchGraph(ctx context.Context, input string, size int) (*graph.Graph, error) {
	if fetch.IsURL(input) {
		return readGraph(ctx, configFromContext(ctx), input)
	}
	g, err := graph.ReadFile(input)
	if err == nil {
		return g, nil
	}
	if _, statErr := os.Stat(input); os.IsNotExist(statErr) {
		if demoGraph, demoErr := demo.Build(input, size); demoErr == nil {
			return demoGraph, nil
		}
	}
	return nil, err
}

// =============================================================================
// WatchModel - Live simulation view
// =============================================================================

// frameMsg drives the animation.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(40*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// watchModel is the bubbletea model for the watch command.
type watchModel struct {
	graph   *graph.Graph
	stepper *layout.Stepper

	alphas []float64
	paused bool
	done   bool

	width  int
	height int
}

func newWatchModel(g *graph.Graph, s *layout.Stepper) watchModel {
	return watchModel{
		graph:   g,
		stepper: s,
		width:   80,
		height:  24,
	}
}

func (m watchModel) Init() tea.Cmd {
	return frameTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.stepper.Reheat()
			m.done = false
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case frameMsg:
		if !m.paused && !m.done {
			for i := 0; i < ticksPerFrame; i++ {
				if !m.stepper.Step() {
					m.done = true
					break
				}
			}
			m.alphas = append(m.alphas, m.stepper.Alpha())
		}
		return m, frameTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("forcefield watch"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("space pause  r reheat  q quit"))
	b.WriteString("\n\n")

	status := "running"
	if m.paused {
		status = "paused"
	} else if m.done {
		status = StyleSuccess.Render("settled")
	}
	b.WriteString(fmt.Sprintf("  %s · %s · %s · %s\n\n",
		StyleValue.Render(fmt.Sprintf("%d nodes", len(m.graph.Nodes))),
		StyleValue.Render(fmt.Sprintf("tick %d", m.stepper.Ticks())),
		StyleValue.Render(fmt.Sprintf("alpha %.4f", m.stepper.Alpha())),
		status))

	if plot := m.alphaPlot(); plot != "" {
		b.WriteString(plot)
		b.WriteString("\n\n")
	}

	if canvas, err := m.positionCanvas(); err == nil {
		b.WriteString(canvas)
	}

	return b.String()
}

// alphaPlot renders the cooling curve as a sparkline.
func (m watchModel) alphaPlot() string {
	if len(m.alphas) < 2 {
		return ""
	}
	width := m.width - 12
	if width < 20 {
		width = 20
	}
	series := m.alphas
	if len(series) > width {
		series = series[len(series)-width:]
	}
	return asciigraph.Plot(series,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.Caption("alpha"))
}

// positionCanvas draws the current node positions on a character grid.
func (m watchModel) positionCanvas() (string, error) {
	l, err := m.stepper.Snapshot()
	if err != nil {
		return "", err
	}

	cols := m.width - 4
	rows := m.height - 14
	if cols < 20 {
		cols = 20
	}
	if rows < 6 {
		rows = 6
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	for i := range l.Graph.Nodes {
		n := &l.Graph.Nodes[i]
		c := int(n.X / l.Width * float64(cols))
		r := int(n.Y / l.Height * float64(rows))
		if c < 0 || c >= cols || r < 0 || r >= rows {
			continue
		}
		if n.Pinned() {
			grid[r][c] = '+'
		} else {
			grid[r][c] = '•'
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString("  ")
		b.WriteString(StyleHighlight.Render(string(row)))
		b.WriteString("\n")
	}
	return b.String(), nil
}
