package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/logging"
)

// kindCount is one row of the summary.
type kindCount struct {
	Kind  catalog.Kind `json:"kind"  yaml:"kind"`
	Count int          `json:"count" yaml:"count"`
}

// summaryOutput is the JSON and YAML shape of the summary.
type summaryOutput struct {
	Kinds []kindCount `json:"kinds" yaml:"kinds"`
	Total int         `json:"total" yaml:"total"`
}

// NewSummaryCmd creates the summary command, which counts every kind.
func NewSummaryCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count the items of every kind",
		Long:  "Drains every kind concurrently and prints how many items each holds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml (default from config)")

	return cmd
}

func runSummary(cmd *cobra.Command, output string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(output)
	if err != nil {
		return err
	}
	pf, err := newPageFetcher(ctx, cfg)
	if err != nil {
		return err
	}

	kinds := catalog.Kinds()
	counts := make([]kindCount, len(kinds))

	// Each kind is its own pipeline; pages within a kind stay sequential.
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			raws, drainErr := pf.Drain(gctx, kind)
			if drainErr != nil {
				return drainErr
			}
			counts[i] = kindCount{Kind: kind, Count: len(raws)}
			log.Debug().Ctx(gctx).
				Str("component", "cli").
				Str("operation", "summary").
				Str("kind", kind.String()).
				Int("count", len(raws)).
				Msg("kind drained")
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		_ = renderDrainError(cmd.OutOrStdout(), format, err)
		return err
	}

	out := summaryOutput{Kinds: counts}
	for _, c := range counts {
		out.Total += c.Count
	}

	switch format {
	case config.FormatJSON, config.FormatNDJSON:
		return renderJSON(cmd.OutOrStdout(), out)
	case config.FormatYAML:
		return renderYAML(cmd.OutOrStdout(), out)
	default:
		return renderSummaryTable(cmd.OutOrStdout(), out)
	}
}

func renderSummaryTable(w io.Writer, out summaryOutput) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "KIND\tCOUNT\t")
	fmt.Fprintln(tw, "----\t-----\t")
	for _, c := range out.Kinds {
		fmt.Fprintf(tw, "%s\t%s\t\n", c.Kind.Plural(), p.Sprintf("%d", c.Count))
	}
	fmt.Fprintf(tw, "total\t%s\t\n", p.Sprintf("%d", out.Total))
	return tw.Flush()
}
