package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpgalab/placeview/pkg/netgraph"
	"github.com/mpgalab/placeview/pkg/placement"
)

// graphCommand creates the graph command for connectivity diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [placement.json]",
		Short: "Render placement connectivity as a node-link diagram",
		Long: `Render placement connectivity as a node-link diagram.

Geometry is ignored: cells become nodes, connections become weighted
edges, and Graphviz lays out the topology. High-thermal cells are
outlined in red. Use --format dot to get the raw DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := placement.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("load placement %s: %w", args[0], err)
			}
			rec.Name = recordName(args[0])

			dot := netgraph.ToDOT(rec, netgraph.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = netgraph.RenderSVG(cmd.Context(), dot)
			case "png":
				data, err = netgraph.RenderPNG(cmd.Context(), dot)
			default:
				return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot)", format)
			}
			if err != nil {
				return fmt.Errorf("render graph: %w", err)
			}

			path := output
			if path == "" {
				base := strings.TrimSuffix(args[0], ".json")
				path = base + "_net." + format
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Rendered connectivity of %s", rec.Name)
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include thermal and power values in node labels")

	return cmd
}
