package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scenesnap/scenesnap/pkg/pipeline"
)

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		selectIDs  []string
		output     string
		detailed   bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [file-or-url]",
		Short: "Render a scene selection as a diagram",
		Long: `Render a scene selection as a diagram.

The render command runs the snapshot pipeline and draws the selection tree
with Graphviz. Hidden nodes are dashed and component instances are filled.

Supported formats: dot (Graphviz source), svg, json (the snapshot payload).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Input:    args[0],
				Select:   selectIDs,
				Formats:  parseFormats(formatsStr),
				Detailed: detailed,
				Refresh:  refresh,
			}
			if args[0] == "-" {
				loaded, err := loadOptions(args[0])
				if err != nil {
					return err
				}
				opts.Input = ""
				opts.Document = loaded.Document
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "svg", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringSliceVarP(&selectIDs, "select", "s", nil, "node id(s) to select (overrides the document's selection)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include geometry and text in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached documents and snapshots")

	return cmd
}

// runRender executes the pipeline and writes the rendered artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering selection...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(result.Envelope.SelectedNodes), result.Stats.NodeCount, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered format to its own file and returns the
// written paths. A single format goes to output directly (or <input>.<format>
// when output is empty); multiple formats share a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if len(formats) == 1 {
		format := formats[0]
		path := output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		if err := writePayload(artifacts[format], path); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writePayload(artifacts[format], path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, .json), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
