package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringstack/pkg/io"
	"github.com/matzehuels/ringstack/pkg/pipeline"
)

// renderCommand creates the render command for stacks saved as JSON.
func (c *CLI) renderCommand() *cobra.Command {
	var out outputFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [stack.json]",
		Short: "Render a stack saved as JSON",
		Long: `Render a stack saved as JSON.

The file holds either a document written by 'generate --save' or a bare array
of resonators, outermost first:

  [{"size": 100, "frame_width": 8, "gap_size": 20, "gap_side": "top"}, ...]

The stack is validated and rendered as is; nothing is sampled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			opts.Formats = c.formatsFor(out.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, out)
		},
	}

	addRenderFlags(cmd, &opts, &out)

	return cmd
}

// runRender loads the stack from input and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, out outputFlags) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	doc, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load stack %s: %w", input, err)
	}
	logger.Infof("Loaded stack: %d resonators", doc.Resonators.Len())

	stack := doc.Resonators
	opts.Stack = &stack

	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := c.execute(ctx, runner, opts, fmt.Sprintf("Rendering %d resonators...", stack.Len()))
	if err != nil {
		return err
	}

	return c.report(ctx, result, opts.Formats, out, basePath(out.output, input), "")
}
