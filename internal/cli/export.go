package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/losm/pkg/graph"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags  loadFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [nodes edges landmarks]",
		Short: "Write a loaded data set as a JSON snapshot",
		Long: `Write a loaded data set as a JSON snapshot.

The snapshot holds every node, edge, and landmark along with the resolution
mode used. Edge endpoints are written both as uids and as indexes into the
node list, with -1 for an unresolved endpoint.

Examples:
  losm export nodes.dat edges.dat landmarks.dat -o city.json
  losm export > city.json             # data set from losm.toml`,
		Args: dataSetArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.runLoad(cmd.Context(), args, flags)
			if err != nil {
				return err
			}

			if output == "" {
				return graph.WriteGraph(res.Store, cmd.OutOrStdout())
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			if err := graph.WriteGraphFile(res.Store, output); err != nil {
				return err
			}
			prog.done("Wrote snapshot")
			printSuccess("Exported data set")
			printFile(output)
			printStats(res.Stats, res.CacheHit)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
