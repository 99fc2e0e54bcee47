package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringstack/pkg/io"
	"github.com/matzehuels/ringstack/pkg/pipeline"
)

// outputFlags are shared by the commands that write artifacts.
type outputFlags struct {
	formats string
	output  string
	noCache bool
	quiet   bool
}

// addRenderFlags registers the geometry and output flags.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, out *outputFlags) {
	cmd.Flags().StringVarP(&out.output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(&out.formats, "format", "f", "", "output format(s): svg (default), json, png, preview (comma-separated)")
	cmd.Flags().BoolVar(&out.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&out.quiet, "quiet", "q", false, "do not print the stack table")

	cmd.Flags().IntVar(&opts.CanvasSize, "canvas-size", 0, "raster canvas side length (default: max(128, outer size))")
	cmd.Flags().IntVar(&opts.Layer, "layer", pipeline.DefaultLayer, "fabrication layer of the polygons")
	cmd.Flags().BoolVar(&opts.PerResonatorLayers, "per-resonator-layers", false, "put each resonator on its own layer")
	cmd.Flags().IntVar(&opts.Scale, "scale", pipeline.DefaultScale, "pixel scale of the canvas PNG")
	cmd.Flags().IntVar(&opts.PreviewSize, "preview-size", pipeline.DefaultPreviewSize, "side length of the preview PNG")
}

// generateCommand creates the generate command: sample a stack and render it.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		out  outputFlags
		save string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Sample a resonator stack and render it",
		Long: `Sample a stack of concentric split-ring resonators and render it.

Sampling is deterministic: the same seed, count and max size always give the
same stack. The sampler stops early when the remaining space cannot hold
another resonator; the stack is then shorter than requested.

Sampled stacks and rendered artifacts are cached locally.`,
		Example: `  ringstack generate -s 7 -n 5 -f svg,png
  ringstack generate --max-size 200 -f json -o layers.json
  ringstack generate --save stack.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			opts.Formats = c.formatsFor(out.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, out, save)
		},
	}

	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", pipeline.DefaultSeed, "random seed")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", pipeline.DefaultCount, "number of resonators to sample")
	cmd.Flags().IntVar(&opts.MaxSize, "max-size", pipeline.DefaultMaxSize, "side length of the outermost resonator")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "resample even when the stack is cached")
	cmd.Flags().StringVar(&save, "save", "", "also write the stack as JSON to this file")
	addRenderFlags(cmd, &opts, &out)

	return cmd
}

// runGenerate samples, renders and writes the requested artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, out outputFlags, save string) error {
	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := c.execute(ctx, runner, opts, fmt.Sprintf("Sampling seed %d...", opts.Seed))
	if err != nil {
		return err
	}

	if save != "" {
		seed := opts.Seed
		if err := io.ExportJSON(io.NewDocument(result.Stack, &seed, result.Truncated), save); err != nil {
			return fmt.Errorf("save stack: %w", err)
		}
	}

	base := basePath(out.output, fmt.Sprintf("%s-%d", appName, opts.Seed))
	return c.report(ctx, result, opts.Formats, out, base, save)
}

// execute runs the pipeline behind a spinner.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, msg string) (*pipeline.Result, error) {
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, msg)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return nil, err
	}
	spinner.Stop()
	return result, nil
}

// report writes the artifacts and prints a summary.
func (c *CLI) report(ctx context.Context, result *pipeline.Result, formats []string, out outputFlags, base, saved string) error {
	prog := newProgress(loggerFromContext(ctx))

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formats,
		base:      base,
		output:    out.output,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	if out.output == stdoutPath {
		return nil
	}

	printSuccess("Generated %s", StyleHighlight.Render(fmt.Sprintf("%d resonators", result.Stack.Len())))
	printStats(result.Stack.Len(), result.Requested, len(result.Overlapping), result.CacheInfo.SampleHit)
	if result.CacheInfo.RenderHit {
		printDetail("Artifacts served from cache")
	}
	if result.Truncated {
		printWarning("Stack truncated: %d of %d resonators fit", result.Stack.Len(), result.Requested)
	}
	if !out.quiet {
		fmt.Fprintln(stdout, stackTable(result.Stack, result.Overlapping))
	}
	for _, p := range paths {
		printFile(p)
	}
	if saved != "" {
		printFile(saved)
		printNewline()
		printNextStep("Render it again with", "ringstack render "+saved+" -f png")
	}
	return nil
}
