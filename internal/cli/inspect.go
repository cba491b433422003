package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/erdlayout/pkg/layout"
)

// inspectCommand creates the inspect command, an interactive table browser.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse the tables of a layout file",
		Long: `Browse the tables of a layout file.

Shows each table's cluster, position, size and relationship count. Press
enter to list the columns of the selected table. Tables without
relationships are dimmed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := layout.ReadResultFile(args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewTableListModel(res), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
