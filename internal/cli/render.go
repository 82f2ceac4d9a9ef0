package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpgalab/placeview/pkg/pipeline"
)

// renderCommand creates the render command for generating thermal maps.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [placement.json]",
		Short: "Render a placement to SVG or JSON",
		Long: `Render a placement to SVG or JSON.

Cells are filled through the thermal palette, connections route
orthogonally between cell centroids with width scaled by weight, and
large cells carry their name. Results are cached locally for faster
subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if opts.Palette == "" {
				opts.Palette = c.Config.Palette
			}
			if err := pipeline.ValidatePalette(opts.Palette); err != nil {
				return err
			}
			if opts.Width == 0 {
				opts.Width = c.Config.Width
			}
			opts.Path = args[0]
			opts.Refresh = refresh
			return c.runRender(cmd, opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "thermal palette: hot (default), viridis, plasma, inferno, magma, coolwarm")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "output width in pixels")
	cmd.Flags().BoolVar(&opts.HideConnections, "no-connections", false, "hide routed connections")
	cmd.Flags().BoolVar(&opts.HideLabels, "no-labels", false, "hide cell labels")
	cmd.Flags().BoolVar(&opts.FlatFill, "flat", false, "flat fill instead of thermal coloring")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(cmd.Context())

	spinner := newSpinnerWithContext(cmd.Context(), "Rendering placement...")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	cached := result.CacheInfo.EncodeHit
	printStats(result.Stats.CellCount, result.Stats.ConnCount, cached)

	for _, format := range opts.Formats {
		path := artifactPath(opts.Path, output, format, len(opts.Formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printSuccess("Rendered %s", recordName(opts.Path))
	return nil
}

// artifactPath derives the output path for one format. With multiple
// formats the output acts as a base path and the format becomes the
// extension.
func artifactPath(input, output, format string, multi bool) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + "." + format
	}
	if multi {
		base := strings.TrimSuffix(output, filepath.Ext(output))
		return base + "." + format
	}
	return output
}
