package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/erdlayout/pkg/layout"
	"github.com/matzehuels/erdlayout/pkg/pipeline"
)

// layoutCommand creates the layout command for computing table positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	flags := newSettingsFlags()

	cmd := &cobra.Command{
		Use:   "layout [schema.json|schema.yaml]",
		Short: "Compute a diagram layout from a schema file",
		Long: `Compute a diagram layout from a schema file.

The schema lists tables (name and columns) and relationships between them.
The output is a layout.json file with a rectangle per table plus cluster and
quality statistics. It can be rendered with 'preview' or browsed with 'inspect'.

Settings come from the defaults, an optional --config TOML file and the
setting flags, in that order. Results are cached locally; use --refresh to
recompute or --no-cache to bypass the cache entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, settings, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().Float64Var(&opts.Width, "width", layout.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", layout.DefaultHeight, "canvas height")
	flags.register(cmd)

	return cmd
}

// runLayout loads the schema, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, settings layout.Settings, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(noCache, settings)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	res, err := runner.Execute(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := outputPath(output, input, layoutSuffix)
	if err := layout.WriteResultFile(res.Layout, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Laid out %d tables", res.Stats.TableCount))

	printSuccess("Layout complete")
	printFile(path)
	printStats(res.Stats.TableCount, res.Stats.RelationshipCount, res.CacheInfo.LayoutHit)
	if res.Stats.DanglingCount > 0 {
		printWarning("%d relationships reference unknown tables and were ignored", res.Stats.DanglingCount)
	}
	if d := res.Layout.Diagnostics; d != nil && !d.OverlapsResolved {
		printWarning("Some overlaps could not be resolved")
	}
	printLayoutStats(res.Layout.Statistics)
	printNewline()
	printNextStep("Preview", appName+" preview "+path)

	return nil
}
