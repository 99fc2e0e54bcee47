package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringstack/pkg/io"
	"github.com/matzehuels/ringstack/pkg/pipeline"
	"github.com/matzehuels/ringstack/pkg/raster"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// Preview styles
var (
	previewCanvasStyle = lipgloss.NewStyle().Foreground(colorYellow)
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// shades maps block occupancy to glyphs, emptiest first.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// defaultPreviewCols is the canvas width before the terminal size is known.
const defaultPreviewCols = 64

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	opts := pipeline.Options{}
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Regenerate stacks interactively in the terminal",
		Long: `Regenerate stacks interactively in the terminal.

Keys:
  r, space   sample the next seed
  b          go back to the previous seed
  s          save the current stack as ringstack-<seed>.json
  q          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runPreview(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", pipeline.DefaultSeed, "first seed")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", pipeline.DefaultCount, "number of resonators to sample")
	cmd.Flags().IntVar(&opts.MaxSize, "max-size", pipeline.DefaultMaxSize, "side length of the outermost resonator")
	cmd.Flags().IntVar(&opts.CanvasSize, "canvas-size", 0, "raster canvas side length")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if opts.Seed == 0 {
		opts.Seed = pipeline.DefaultSeed
	}

	p := tea.NewProgram(newPreviewModel(ctx, runner, opts), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if m, ok := final.(previewModel); ok && m.saved != "" {
		printSuccess("Saved stack")
		printFile(m.saved)
	}
	return nil
}

// =============================================================================
// previewModel - Interactive stack regeneration
// =============================================================================

// previewFrame is one generated stack and its raster.
type previewFrame struct {
	seed   uint64
	sample resonator.SampleResult
	canvas *raster.Canvas
}

// previewFrameMsg delivers a generated frame to the model.
type previewFrameMsg struct {
	frame previewFrame
	err   error
}

// previewModel is the bubbletea model behind the preview command.
type previewModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	opts    pipeline.Options
	frame   *previewFrame
	err     error
	busy    bool
	cols    int
	saved   string
	message string
}

func newPreviewModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) previewModel {
	return previewModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		busy:   true,
		cols:   defaultPreviewCols,
	}
}

// generate samples and rasterizes the stack for seed.
func (m previewModel) generate(seed uint64) tea.Cmd {
	opts := m.opts
	opts.Seed = seed
	return func() tea.Msg {
		sampled, err := m.runner.Sample(m.ctx, opts)
		if err != nil {
			return previewFrameMsg{err: err}
		}
		geo, err := m.runner.Geometry(m.ctx, sampled.Stack, opts)
		if err != nil {
			return previewFrameMsg{err: err}
		}
		return previewFrameMsg{frame: previewFrame{seed: seed, sample: sampled, canvas: geo.Canvas}}
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.generate(m.opts.Seed)
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", " ":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.message = ""
			m.opts.Seed++
			return m, m.generate(m.opts.Seed)
		case "b":
			if m.busy || m.opts.Seed <= 1 {
				return m, nil
			}
			m.busy = true
			m.message = ""
			m.opts.Seed--
			return m, m.generate(m.opts.Seed)
		case "s":
			if m.frame == nil {
				return m, nil
			}
			m.save()
		}
	case previewFrameMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			f := msg.frame
			m.frame = &f
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-4, 16)
	}
	return m, nil
}

// save writes the current stack next to the working directory.
func (m *previewModel) save() {
	f := m.frame
	path := fmt.Sprintf("%s-%d.json", appName, f.seed)
	seed := f.seed
	if err := io.ExportJSON(io.NewDocument(f.sample.Stack, &seed, f.sample.Truncated), path); err != nil {
		m.message = StyleWarning.Render("save failed: " + err.Error())
		return
	}
	m.saved = path
	m.message = StyleSuccess.Render("saved " + path)
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ringstack Preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("seed %d", m.opts.Seed)))
	if m.busy {
		b.WriteString(StyleDim.Render("  sampling..."))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
	case m.frame != nil:
		s := m.frame.sample
		b.WriteString(previewCanvasStyle.Render(asciiCanvas(m.frame.canvas, m.cols)))
		b.WriteString("\n")
		b.WriteString(stackTable(s.Stack, s.Stack.Overlapping()))
		b.WriteString("\n")
		if s.Truncated {
			b.WriteString(StyleWarning.Render(fmt.Sprintf("truncated: %d of %d resonators fit", s.Actual, s.Requested)))
			b.WriteString("\n")
		}
	}

	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	b.WriteString(previewHelpStyle.Render("r next  b back  s save  q quit"))
	return b.String()
}

// asciiCanvas draws c in at most cols columns. Each glyph covers a step×2step
// block of pixels since terminal cells are about twice as tall as wide.
func asciiCanvas(c *raster.Canvas, cols int) string {
	if c == nil || c.Size() == 0 {
		return ""
	}
	size := c.Size()
	step := max((size+cols-1)/max(cols, 1), 1)

	var b strings.Builder
	for y := 0; y < size; y += 2 * step {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < size; x += step {
			b.WriteRune(shade(c, x, y, step, 2*step))
		}
	}
	return b.String()
}

// shade returns the glyph for the w×h block at (x0, y0).
func shade(c *raster.Canvas, x0, y0, w, h int) rune {
	var sum float64
	n := 0
	for y := y0; y < min(y0+h, c.Size()); y++ {
		for x := x0; x < min(x0+w, c.Size()); x++ {
			sum += c.At(x, y)
			n++
		}
	}
	if n == 0 || sum == 0 {
		return shades[0]
	}
	i := 1 + int(sum/float64(n)*float64(len(shades)-2)+0.5)
	return shades[min(i, len(shades)-1)]
}
