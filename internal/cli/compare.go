package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpgalab/placeview/pkg/metrics"
	"github.com/mpgalab/placeview/pkg/placement"
)

// compareCommand creates the compare command for ranking placements.
func (c *CLI) compareCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare [placement.json...]",
		Short: "Compare metrics across placements",
		Long: `Compare metrics across two or more placements.

Each placement's metrics are computed over the same definitions, then
the minimum average length and minimum thermal clustering are flagged
as the winners. Ties flag every tied placement.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			recs := make([]*placement.Record, 0, len(args))
			for _, path := range args {
				rec, err := placement.ParseFile(path)
				if err != nil {
					return fmt.Errorf("load placement %s: %w", path, err)
				}
				rec.Name = recordName(path)
				recs = append(recs, rec)
			}

			rows, err := metrics.Compare(recs)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Compared %d placements", len(rows)))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			fmt.Println(metricsTable(rows))
			printDetail("%s best value (lower is better)", iconSuccess)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print comparison as JSON")
	return cmd
}
