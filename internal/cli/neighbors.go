package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/losm"
)

// neighborsCommand creates the neighbors command.
func (c *CLI) neighborsCommand() *cobra.Command {
	var (
		flags     loadFlags
		landmarks bool
	)

	cmd := &cobra.Command{
		Use:   "neighbors [nodes edges landmarks] <uid>",
		Short: "List the nodes one edge away from a node",
		Long: `List the nodes one edge away from the node with the given uid.

Neighbors are listed in edges file order. A node joined to another by two
edges appears twice. Unresolved endpoints are skipped.

Examples:
  losm neighbors nodes.dat edges.dat landmarks.dat 1042
  losm neighbors 1042                 # data set from losm.toml`,
		Args: dataSetArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.ParseInt(args[len(args)-1], 10, 64)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid uid %q", args[len(args)-1])
			}

			res, err := c.runLoad(cmd.Context(), args[:len(args)-1], flags)
			if err != nil {
				return err
			}
			s := res.Store

			ref, ok := s.Lookup(uid)
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no node with uid %d", uid)
			}
			nodes, err := s.NeighborNodes(ref)
			if errors.Is(err, errors.ErrCodeNotFound) {
				printInfo("Node %d is not on any edge", uid)
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, n := range nodes {
				fmt.Fprintln(out, n)
			}
			if landmarks {
				node, _ := s.Node(ref)
				for _, l := range nearbyLandmarks(s, node) {
					fmt.Fprintln(out, l)
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&landmarks, "landmarks", false, "also list landmarks at the node's coordinates")

	return cmd
}

// nearbyLandmarks returns the landmarks located exactly at n.
func nearbyLandmarks(s *losm.Store, n losm.Node) []losm.Landmark {
	var out []losm.Landmark
	for _, l := range s.Landmarks() {
		if l.X == n.X && l.Y == n.Y {
			out = append(out, l)
		}
	}
	return out
}
