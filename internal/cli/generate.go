package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpgalab/placeview/pkg/scheme"
)

// generateCommand creates the generate command for producing synthetic
// placement schemes.
func (c *CLI) generateCommand() *cobra.Command {
	params := scheme.DefaultParams()
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random placement scheme",
		Long: `Generate a random placement scheme.

Cells get orthogonal outlines (rectangles and L/T/U/Z variants) placed
at random positions, realistic block names, and thermal and power
values. Connections come from a sparse random netlist. Pass --seed for
a reproducible scheme.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			rec, err := scheme.Generate(params)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			if err := scheme.EncodeJSON(f, rec); err != nil {
				return err
			}

			p.done(fmt.Sprintf("Generated %d cells, %d connections", len(rec.Cells), len(rec.Conns)))
			printSuccess("Scheme written")
			printFile(output)
			printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "scheme.json", "output file path")
	cmd.Flags().IntVarP(&params.NumCells, "cells", "n", params.NumCells, "number of cells")
	cmd.Flags().IntVar(&params.Rows, "rows", params.Rows, "field rows")
	cmd.Flags().IntVar(&params.Cols, "cols", params.Cols, "field columns")
	cmd.Flags().BoolVar(&params.AllowFillers, "allow-fillers", false, "allow filler cells")
	cmd.Flags().Int64Var(&params.Seed, "seed", 0, "random seed (0 = time-based)")

	return cmd
}
