package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpgalab/placeview/pkg/metrics"
	"github.com/mpgalab/placeview/pkg/placement"
)

// metricsCommand creates the metrics command for a single placement.
func (c *CLI) metricsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metrics [placement.json]",
		Short: "Compute metrics for a placement",
		Long: `Compute metrics for a placement.

Reports the declared entity counts plus the derived quality metrics:
average weighted connection length (Manhattan) and thermal clustering
(mean pairwise distance between high-thermal cell centroids; lower
means hot cells sit closer together).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			rec, err := placement.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("load placement %s: %w", args[0], err)
			}
			rec.Name = recordName(args[0])
			m := metrics.Compute(rec)
			p.done(fmt.Sprintf("Computed metrics for %d cells", m.CellCount))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}

			fmt.Println(StyleTitle.Render(m.Name))
			printKeyValue("Cells", fmt.Sprintf("%d", m.CellCount))
			printKeyValue("Connections", fmt.Sprintf("%d", m.ConnCount))
			printKeyValue("Total weight", fmt.Sprintf("%.2f", m.TotalWeight))
			printKeyValue("Avg length", fmt.Sprintf("%.4f", m.AvgLength))
			printKeyValue("Hot cells", fmt.Sprintf("%d (thermal > %.1f)", m.HighThermalCount, placement.HighThermalThreshold))
			printKeyValue("Clustering", fmt.Sprintf("%.4f", m.ThermalClustering))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print metrics as JSON")
	return cmd
}
