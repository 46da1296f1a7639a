package cli

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/network"
	"github.com/matzehuels/ecolayout/pkg/style"
)

var (
	previewDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewKeyStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	previewEdgeStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewNegStyle  = lipgloss.NewStyle().Foreground(colorRed).Faint(true)
)

const (
	minPlotCols = 20
	minPlotRows = 8
)

type previewKeyMap struct {
	Mode    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Color   key.Binding
	Overlay key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var previewKeys = previewKeyMap{
	Mode: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "circle/radial/organic/force"),
	),
	Next: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "next module"),
	),
	Prev: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "prev module"),
	),
	Color: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "color"),
	),
	Overlay: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "overlay"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k previewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Next, k.Color, k.Help, k.Quit}
}

func (k previewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode},
		{k.Next, k.Prev},
		{k.Color, k.Overlay},
		{k.Help, k.Quit},
	}
}

func newPreviewHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = previewKeyStyle
	h.Styles.ShortDesc = previewDimStyle
	h.Styles.ShortSeparator = previewDimStyle
	h.Styles.FullKey = previewKeyStyle
	h.Styles.FullDesc = previewDimStyle
	h.Styles.FullSeparator = previewDimStyle
	return h
}

// PreviewModel is the bubbletea model behind the preview command. It holds
// the UI state (mode, color mode, highlighted module) and recomputes the
// layout only when the mode changes; color and highlight only restyle.
type PreviewModel struct {
	Network   *network.Network
	Mode      layout.Mode
	ColorMode style.ColorMode
	Highlight *int
	Overlay   bool

	Coords layout.Coordinates
	Scene  style.Scene

	modules []int
	cols    int
	rows    int
	help    help.Model
}

// NewPreviewModel lays out n with mode and styles it.
func NewPreviewModel(n *network.Network, mode layout.Mode, colorMode style.ColorMode) PreviewModel {
	m := PreviewModel{
		Network:   n,
		Mode:      mode,
		ColorMode: colorMode,
		modules:   network.ModuleIDs(n),
		cols:      72,
		rows:      22,
		help:      newPreviewHelp(),
	}
	m.relayout()
	return m
}

func (m *PreviewModel) relayout() {
	m.Coords = layout.ComputeNetwork(m.Mode, m.Network)
	m.restyle()
}

func (m *PreviewModel) restyle() {
	m.Scene = style.Assemble(m.Network.Nodes, m.Network.Edges, m.Coords, style.Options{
		ColorMode: m.ColorMode,
		Highlight: m.Highlight,
		Overlay:   m.Overlay,
	})
}

// cycleHighlight steps through none → first module → ... → last → none.
func (m *PreviewModel) cycleHighlight(step int) {
	if len(m.modules) == 0 {
		return
	}
	// position -1 stands for no highlight
	pos := -1
	if m.Highlight != nil {
		pos = slices.Index(m.modules, *m.Highlight)
	}
	n := len(m.modules) + 1
	pos = ((pos+1+step)%n+n)%n - 1
	if pos < 0 {
		m.Highlight = nil
	} else {
		id := m.modules[pos]
		m.Highlight = &id
	}
	m.restyle()
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, previewKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, previewKeys.Mode):
			mode := layout.Modes[msg.String()[0]-'1']
			if mode != m.Mode {
				m.Mode = mode
				m.relayout()
			}
		case key.Matches(msg, previewKeys.Next):
			m.cycleHighlight(1)
		case key.Matches(msg, previewKeys.Prev):
			m.cycleHighlight(-1)
		case key.Matches(msg, previewKeys.Color):
			m.ColorMode = (m.ColorMode + 1) % (style.Enrichment + 1)
			m.restyle()
		case key.Matches(msg, previewKeys.Overlay):
			m.Overlay = !m.Overlay
			m.restyle()
		case key.Matches(msg, previewKeys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, minPlotCols)
		m.rows = max(msg.Height-6, minPlotRows)
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Network Preview"))
	b.WriteString("  ")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("%d nodes · %d edges · %d modules",
		len(m.Network.Nodes), len(m.Network.Edges), len(m.modules))))
	b.WriteString("\n\n")

	grid := plotScene(m.Scene, m.cols, m.rows)
	for _, row := range grid {
		for _, cell := range row {
			b.WriteString(cell.render())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	highlight := "none"
	if m.Highlight != nil {
		highlight = fmt.Sprintf("module %d", *m.Highlight)
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		previewDimStyle.Render("mode"), StyleValue.Render(m.Mode.String()),
		previewDimStyle.Render("color"), StyleValue.Render(m.ColorMode.String()),
		previewDimStyle.Render("highlight"), StyleValue.Render(highlight)))
	b.WriteString(m.help.View(previewKeys))

	return b.String()
}

// cell is one character of the plot.
type cell struct {
	ch    rune
	color string
	dim   bool
	neg   bool
}

func (c cell) render() string {
	switch {
	case c.ch == ' ':
		return " "
	case c.color == "":
		if c.neg {
			return previewNegStyle.Render(string(c.ch))
		}
		return previewEdgeStyle.Render(string(c.ch))
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(c.color))
	if c.dim {
		s = s.Faint(true)
	}
	return s.Render(string(c.ch))
}

// symbolRune maps node symbols to terminal glyphs.
func symbolRune(s style.Symbol) rune {
	switch s {
	case style.SymbolDiamond:
		return '◆'
	case style.SymbolTriangleUp:
		return '▲'
	case style.SymbolTriangleDown:
		return '▼'
	default:
		return '●'
	}
}

// plotScene rasterizes a scene onto a cols×rows character grid. Edges are
// drawn first as dotted segments, nodes on top. Y grows upward as in the
// layout, so rows are flipped.
func plotScene(scene style.Scene, cols, rows int) [][]cell {
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{ch: ' '}
		}
	}
	if len(scene.Nodes) == 0 || cols < 1 || rows < 1 {
		return grid
	}

	minX, minY, maxX, maxY := scene.Bounds()
	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	project := func(x, y float64) (int, int) {
		c := int(math.Round((x - minX) / spanX * float64(cols-1)))
		r := int(math.Round((maxY - y) / spanY * float64(rows-1)))
		return min(max(c, 0), cols-1), min(max(r, 0), rows-1)
	}

	for _, e := range scene.Edges {
		if e.Opacity < 0.3 {
			continue
		}
		c1, r1 := project(e.X1, e.Y1)
		c2, r2 := project(e.X2, e.Y2)
		steps := max(abs(c2-c1), abs(r2-r1))
		for s := 1; s < steps; s++ {
			t := float64(s) / float64(steps)
			c := int(math.Round(float64(c1) + t*float64(c2-c1)))
			r := int(math.Round(float64(r1) + t*float64(r2-r1)))
			grid[r][c] = cell{ch: '·', neg: e.Correlation < 0}
		}
	}

	for _, n := range scene.Nodes {
		c, r := project(n.X, n.Y)
		grid[r][c] = cell{ch: symbolRune(n.Symbol), color: n.Color, dim: n.Opacity < 0.5}
	}
	return grid
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
