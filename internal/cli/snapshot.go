package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenesnap/scenesnap/pkg/errors"
	"github.com/scenesnap/scenesnap/pkg/pipeline"
	"github.com/scenesnap/scenesnap/pkg/snapshot"
)

// snapshotCommand creates the snapshot command for serializing selections.
func (c *CLI) snapshotCommand() *cobra.Command {
	var (
		selectIDs []string
		output    string
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot [file-or-url]",
		Short: "Serialize a scene selection to JSON",
		Long: `Serialize a scene selection to JSON.

The snapshot command reads a scene document from a file, a URL, or stdin
(use "-"), resolves the selection, and writes the serialized snapshot as
pretty-printed JSON.

By default the document's own selection is used; when the document carries
no selection, every top-level node is serialized. Use --select to override
the selection with explicit node ids.

Results are cached locally for faster subsequent runs.

Examples:
  scenesnap snapshot design.json                      # Document's selection
  scenesnap snapshot design.json -s 1:2 -s 1:9        # Explicit selection
  scenesnap snapshot https://example.com/design.json  # Remote document
  cat design.json | scenesnap snapshot -              # From stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshot(cmd.Context(), args[0], selectIDs, output, noCache, refresh)
		},
	}

	cmd.Flags().StringSliceVarP(&selectIDs, "select", "s", nil, "node id(s) to select (overrides the document's selection)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached documents and snapshots")

	return cmd
}

// runSnapshot executes the pipeline and writes the snapshot payload.
// An empty selection is not a failure: the structured error payload is
// written instead, matching what the HTTP API reports.
func (c *CLI) runSnapshot(ctx context.Context, input string, selectIDs []string, output string, noCache, refresh bool) error {
	opts, err := loadOptions(input)
	if err != nil {
		return err
	}
	opts.Select = selectIDs
	opts.Refresh = refresh
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = c.Logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Serializing selection...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if errors.Is(err, errors.ErrCodeEmptySelection) {
			spinner.Stop()
			return c.writeEmptySelection(output)
		}
		spinner.StopWithError("Snapshot failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writePayload(result.Artifacts[pipeline.FormatJSON], output); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Snapshot complete")
		printFile(output)
		printStats(len(result.Envelope.SelectedNodes), result.Stats.NodeCount, result.CacheInfo.SnapshotHit)
		printNewline()
		printNextStep("Render", "scenesnap render "+input)
	}
	return nil
}

// writeEmptySelection writes the structured empty-selection payload.
func (c *CLI) writeEmptySelection(output string) error {
	data, err := snapshot.Payload("", "", nil)
	if err != nil {
		return err
	}
	if err := writePayload(data, output); err != nil {
		return err
	}
	if output != "" {
		printWarning(snapshot.EmptySelectionMessage)
	}
	return nil
}

// loadOptions builds pipeline options for the input argument. "-" reads the
// document from stdin; everything else is passed through as a path or URL.
func loadOptions(input string) (pipeline.Options, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("read stdin: %w", err)
		}
		return pipeline.Options{Document: string(data)}, nil
	}
	return pipeline.Options{Input: input}, nil
}

// writePayload writes data to the given path, or stdout if the path is empty.
func writePayload(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
