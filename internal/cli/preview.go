package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/erdlayout/pkg/layout"
	"github.com/matzehuels/erdlayout/pkg/preview"
)

// previewCommand creates the preview command for rendering layout files.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output  string
		dotOnly bool
		opts    preview.Options
	)

	cmd := &cobra.Command{
		Use:   "preview [layout.json]",
		Short: "Render a layout file to SVG",
		Long: `Render a layout file to SVG.

Tables are drawn at exactly the positions in the layout file; Graphviz (neato)
only routes the relationship lines. Use --dot to write the Graphviz source
instead of rendering it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], output, dotOnly, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg or .dot)")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "write Graphviz DOT instead of SVG")
	cmd.Flags().BoolVar(&opts.Columns, "columns", false, "list columns inside each table")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input, output string, dotOnly bool, opts preview.Options) error {
	res, err := layout.ReadResultFile(input)
	if err != nil {
		return err
	}

	dot := preview.ToDOT(res, opts)
	if dotOnly {
		path := outputPath(output, input, ".dot")
		if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printSuccess("DOT written")
		printFile(path)
		return nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
	spinner.Start()
	svg, err := preview.RenderSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	path := outputPath(output, input, ".svg")
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printSuccess("Preview rendered")
	printFile(path)
	printDetail("%d tables, %d relationships", len(res.Tables), len(res.Relationships))
	return nil
}
