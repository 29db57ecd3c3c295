package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/losm/pkg/buildinfo"
	"github.com/matzehuels/losm/pkg/config"
	"github.com/matzehuels/losm/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the root applies --verbose, reads the config
// file, registers the CLI's observability hooks, and attaches the logger to
// the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "losm loads and queries LOSM road network data sets",
		Long: `losm loads road network data sets stored as three comma-separated files
(nodes, edges, and landmarks), builds the node adjacency index, and answers
neighbor queries. It also converts OpenStreetMap extracts into that format.

Loaded data sets are cached as snapshots keyed by file content, so repeated
loads of unchanged files skip parsing.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			c.hooks.verbose = c.verbose
			observability.SetLoadHooks(c.hooks)
			observability.SetConvertHooks(c.hooks)
			observability.SetCacheHooks(c.hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")

	root.AddCommand(c.loadCommand())
	root.AddCommand(c.neighborsCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints the full build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
