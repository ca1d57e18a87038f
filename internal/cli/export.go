package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/cli/pagination"
	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/engine/batch"
	"github.com/rshade/portalgun/internal/logging"
)

// NewExportCmd creates the export command, which streams every matching item.
func NewExportCmd() *cobra.Command {
	params := pagination.NewParams()
	var (
		output    string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "export [kind]",
		Short: "Stream every matching item as JSON or NDJSON",
		Long: `Drains the kind, applies filters and sort, and writes every matching item
regardless of paging. Items are written in batches; progress is logged at info
level.`,
		Example: `  # Every character as NDJSON
  portalgun export character > characters.ndjson

  # Locations in C-137 as a JSON array, sorted by resident count
  portalgun export location --filter dimension=c-137 --sort residents:desc --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, *params, output, batchSize)
		},
	}

	addQueryFlags(cmd, params, false)
	cmd.Flags().StringVarP(&output, "output", "o", config.FormatNDJSON, "output format: json or ndjson")
	cmd.Flags().IntVar(&batchSize, "batch-size", batch.DefaultBatchSize, "items written per batch")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, params pagination.Params, output string, batchSize int) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	if output != config.FormatJSON && output != config.FormatNDJSON {
		return fmt.Errorf("%w: %q (valid: json, ndjson)", config.ErrInvalidFormat, output)
	}
	processor, err := batch.NewProcessor[catalog.Item](batchSize)
	if err != nil {
		return err
	}
	kind, err := parseKindArg(args, cfg)
	if err != nil {
		return err
	}
	q, err := params.Resolve(kind, cfg.Query.DefaultPageSize)
	if err != nil {
		return err
	}

	ctrl, err := newController(ctx, cfg)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	st, err := runQuery(ctx, ctrl, q)
	if err != nil {
		if st.Err != nil {
			_ = renderDrainError(cmd.OutOrStdout(), output, st.Err)
		}
		return err
	}
	// One window over everything that matched.
	if st.Total > 0 {
		if err = ctrl.SetPageSize(st.Total); err != nil {
			return err
		}
		st = ctrl.State()
	}

	err = writeExport(ctx, cmd.OutOrStdout(), output, processor, st.Items)
	if isBrokenPipe(err) {
		return nil
	}
	return err
}

// writeExport writes items batch by batch, as one JSON array or as NDJSON.
func writeExport(
	ctx context.Context,
	w io.Writer,
	format string,
	processor *batch.Processor[catalog.Item],
	items []catalog.Item,
) error {
	log := logging.FromContext(ctx)
	asArray := format == config.FormatJSON

	processor.WithProgressCallback(func(s batch.ProgressSnapshot) {
		log.Info().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "export").
			Int("processed", s.ProcessedItems).
			Int("total", s.TotalItems).
			Float64("percent", s.PercentComplete).
			Msg("export progress")
	})

	if asArray {
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
	}

	written := 0
	err := processor.Process(ctx, items, func(_ context.Context, chunk []catalog.Item, _ int) error {
		for _, it := range chunk {
			data, err := json.Marshal(it)
			if err != nil {
				return fmt.Errorf("encoding item %d: %w", it.ID, err)
			}
			sep := "\n"
			if asArray && written > 0 {
				sep = ",\n"
			}
			if !asArray {
				sep = ""
				data = append(data, '\n')
			}
			if _, err = io.WriteString(w, sep); err != nil {
				return err
			}
			if _, err = w.Write(data); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if asArray {
		_, err = io.WriteString(w, "\n]\n")
	}
	return err
}
