package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/losm/pkg/losm"
	"github.com/matzehuels/losm/pkg/pipeline"
)

// loadFlags are shared by every command that loads a data set.
type loadFlags struct {
	strict  bool // fail on edges naming unknown nodes
	noCache bool // skip the snapshot cache entirely
	refresh bool // reparse even when a snapshot exists
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when an edge references an unknown node")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the snapshot cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "reparse the files even if a snapshot is cached")
}

// dataSetArgs accepts either no data set files (use the config file) or all
// three, followed by extra trailing arguments.
func dataSetArgs(extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != extra && len(args) != extra+3 {
			return fmt.Errorf("accepts %d or %d arg(s), received %d", extra, extra+3, len(args))
		}
		return nil
	}
}

// loadCommand creates the load command.
func (c *CLI) loadCommand() *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "load [nodes edges landmarks]",
		Short: "Load a data set and report its contents",
		Long: `Load a data set and report its contents.

The nodes file is parsed first, then the edges file is resolved against it
and the neighbor index is built, then the landmarks file is parsed. Edges that
name an unknown node are kept with an unresolved endpoint unless --strict is
set, in which case the load fails.

Without file arguments, the [data] section of losm.toml is used.

Examples:
  losm load nodes.dat edges.dat landmarks.dat
  losm load --strict data/nodes.dat data/edges.dat data/landmarks.dat
  losm --config boston.toml load`,
		Args: dataSetArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.runLoad(cmd.Context(), args, flags)
			if err != nil {
				return err
			}
			reportLoad(res, args)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

// runLoad loads the data set named by files (or the config) through the
// cached pipeline, showing a spinner while it runs.
func (c *CLI) runLoad(ctx context.Context, files []string, flags loadFlags) (*pipeline.Result, error) {
	opts, err := c.loadOptions(files)
	if err != nil {
		return nil, err
	}
	if flags.strict {
		opts.Resolution = losm.Strict
	}
	opts.Refresh = flags.refresh

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading data set...")
	detach := c.hooks.attach(spinner)
	spinner.Start()

	res, err := runner.Load(ctx, opts)
	detach()
	if err != nil {
		spinner.StopWithError("Load failed")
		return nil, err
	}
	spinner.Stop()
	return res, nil
}

func reportLoad(res *pipeline.Result, files []string) {
	printSuccess("Loaded data set in %s", res.Duration.Round(time.Millisecond))
	printStats(res.Stats, res.CacheHit)
	printKeyValue("Resolution", res.Store.Options().Resolution.String())
	printKeyValue("Indexed", fmt.Sprintf("%d nodes with neighbors", res.Stats.Indexed))
	printKeyValue("Load ID", res.LoadID)

	if res.Stats.Unresolved > 0 {
		printWarning("%d edge endpoints reference unknown nodes", res.Stats.Unresolved)
	}
	if n := len(res.DegreeMismatches); n > 0 {
		printWarning("%d nodes have a degree that differs from their neighbor count", n)
		printDetail("first: %s", mismatchSample(res, 3))
	}

	if nodes := res.Store.Nodes(); len(nodes) > 0 {
		args := append(slices.Clone(files), fmt.Sprint(nodes[0].UID))
		printNextStep("Query neighbors", "losm neighbors "+strings.Join(args, " "))
	}
}

func mismatchSample(res *pipeline.Result, n int) string {
	var uids []string
	for _, ref := range res.DegreeMismatches[:min(n, len(res.DegreeMismatches))] {
		if node, ok := res.Store.Node(ref); ok {
			uids = append(uids, fmt.Sprintf("uid %d", node.UID))
		}
	}
	return strings.Join(uids, ", ")
}
