package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/erdlayout/pkg/layout"
)

// =============================================================================
// Settings Flags
// =============================================================================

// settingsFlags binds one flag per engine setting plus --config. Only flags
// the user actually set become overrides, so file values survive untouched
// defaults.
type settingsFlags struct {
	config string
	values layout.Settings
}

func newSettingsFlags() *settingsFlags {
	return &settingsFlags{values: layout.DefaultSettings()}
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	v := &f.values
	fs.StringVar(&f.config, "config", "", "TOML settings file")
	fs.Float64Var(&v.MinTableDistance, "min-table-distance", v.MinTableDistance, "minimum gap between tables")
	fs.Float64Var(&v.MinConnectionDistance, "min-connection-distance", v.MinConnectionDistance, "extra spring length between related tables")
	fs.Float64Var(&v.GridSize, "grid-size", v.GridSize, "grid size (reserved)")
	fs.IntVar(&v.MaxIterations, "max-iterations", v.MaxIterations, "force simulation iteration cap")
	fs.Float64Var(&v.ForceStrength, "force-strength", v.ForceStrength, "force strength (reserved)")
	fs.Float64Var(&v.DampingFactor, "damping-factor", v.DampingFactor, "velocity damping in (0, 1]")
	fs.Float64Var(&v.RepulsionForce, "repulsion-force", v.RepulsionForce, "pairwise repulsion constant")
	fs.Float64Var(&v.AttractionForce, "attraction-force", v.AttractionForce, "relationship spring constant")
	fs.Float64Var(&v.BoundaryPadding, "boundary-padding", v.BoundaryPadding, "canvas edge padding")
	fs.Float64Var(&v.ClusterSeparation, "cluster-separation", v.ClusterSeparation, "gap between packed clusters")
	fs.Float64Var(&v.OrphanPadding, "orphan-padding", v.OrphanPadding, "gap above and between orphan tables")
	fs.BoolVar(&v.CountCrossings, "crossings", v.CountCrossings, "count relationship crossings in statistics")
}

// overrides returns the values of the flags set on the command line.
func (f *settingsFlags) overrides(cmd *cobra.Command) layout.Overrides {
	var o layout.Overrides
	changed := cmd.Flags().Changed
	v := &f.values
	if changed("min-table-distance") {
		o.MinTableDistance = &v.MinTableDistance
	}
	if changed("min-connection-distance") {
		o.MinConnectionDistance = &v.MinConnectionDistance
	}
	if changed("grid-size") {
		o.GridSize = &v.GridSize
	}
	if changed("max-iterations") {
		o.MaxIterations = &v.MaxIterations
	}
	if changed("force-strength") {
		o.ForceStrength = &v.ForceStrength
	}
	if changed("damping-factor") {
		o.DampingFactor = &v.DampingFactor
	}
	if changed("repulsion-force") {
		o.RepulsionForce = &v.RepulsionForce
	}
	if changed("attraction-force") {
		o.AttractionForce = &v.AttractionForce
	}
	if changed("boundary-padding") {
		o.BoundaryPadding = &v.BoundaryPadding
	}
	if changed("cluster-separation") {
		o.ClusterSeparation = &v.ClusterSeparation
	}
	if changed("orphan-padding") {
		o.OrphanPadding = &v.OrphanPadding
	}
	if changed("crossings") {
		o.CountCrossings = &v.CountCrossings
	}
	return o
}

// resolve layers defaults, the --config file and explicit flags, in that
// order, and validates the result.
func (f *settingsFlags) resolve(cmd *cobra.Command) (layout.Settings, error) {
	var file layout.Overrides
	if f.config != "" {
		var err error
		if file, err = layout.LoadSettingsFile(f.config); err != nil {
			return layout.Settings{}, err
		}
	}
	s := layout.DefaultSettings().Merge(file, f.overrides(cmd))
	if err := s.Validate(); err != nil {
		return layout.Settings{}, err
	}
	return s, nil
}

// =============================================================================
// settings Command
// =============================================================================

// settingsCommand prints the effective settings as TOML.
func (c *CLI) settingsCommand() *cobra.Command {
	flags := newSettingsFlags()

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective layout settings as TOML",
		Long: `Print the effective layout settings as TOML.

Settings are resolved from the built-in defaults, then --config, then any
setting flags. The output is a valid settings file for --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return s.WriteTOML(cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}
