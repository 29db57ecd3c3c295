package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/losm/pkg/pipeline"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		opts    pipeline.ConvertOptions
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "convert <extract.osm|extract.pbf> [prefix]",
		Short: "Build a data set from an OpenStreetMap extract",
		Long: `Build a data set from an OpenStreetMap extract.

Ways tagged as motorway, trunk, primary, secondary, tertiary, unclassified, or
residential roads (and their links) become edges between consecutive nodes,
measured in miles along the great circle. Nodes whose amenity tag is listed
with --interest become landmarks.

The files are written as <prefix>nodes.dat, <prefix>edges.dat, and
<prefix>landmarks.dat. Interest and simplify default to the [convert]
section of losm.toml.

Examples:
  losm convert boston.osm.pbf data/boston_
  losm convert town.osm --interest hospital,school --simplify`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if len(args) == 2 {
				opts.Prefix = args[1]
			}
			if !cmd.Flags().Changed("interest") {
				opts.Interest = c.cfg.Convert.Interest
			}
			if !cmd.Flags().Changed("simplify") {
				opts.Simplify = c.cfg.Convert.Simplify
			}
			return c.runConvert(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Interest, "interest", nil, "amenity values kept as landmarks (comma-separated)")
	cmd.Flags().BoolVar(&opts.Simplify, "simplify", false, "collapse chains of degree-2 nodes into single edges")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "reconvert even if the result is cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, opts pipeline.ConvertOptions, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", opts.Input))
	detach := c.hooks.attach(spinner)
	spinner.Start()

	res, err := runner.Convert(ctx, opts)
	detach()
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return err
	}
	spinner.Stop()

	printSuccess("Converted %s", opts.Input)
	for _, f := range res.Files {
		printFile(f)
	}
	printDetail("%s", res)
	if res.CacheHit {
		printDetail("restored from cache")
	}
	if res.Missing > 0 {
		printWarning("%d way node references were missing from the extract", res.Missing)
	}
	printNextStep("Load", "losm load "+strings.Join(res.Files[:], " "))
	return nil
}
