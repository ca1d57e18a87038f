package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/logging"
)

// ErrItemNotFound is returned by show when no item has the requested ID.
var ErrItemNotFound = errors.New("item not found")

// NewShowCmd creates the show command, which prints one item in detail.
func NewShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show every field of one item",
		Example: `  # Rick Sanchez
  portalgun show character 1

  # Pilot episode as YAML
  portalgun show episode 1 --output yaml`,
		Args: cobra.ExactArgs(2), //nolint:mnd // kind and id
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], args[1], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml (default from config)")

	return cmd
}

func runShow(cmd *cobra.Command, kindArg, idArg, output string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(output)
	if err != nil {
		return err
	}
	kind, err := catalog.ParseKind(kindArg)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(idArg)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid id %q: must be a positive integer", idArg)
	}

	pf, err := newPageFetcher(ctx, cfg)
	if err != nil {
		return err
	}
	items, err := pf.DrainItems(ctx, kind)
	if err != nil {
		_ = renderDrainError(cmd.OutOrStdout(), format, err)
		return err
	}

	for _, it := range items {
		if it.ID != id {
			continue
		}
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "show").
			Str("kind", kind.String()).
			Int("id", id).
			Msg("item found")
		return renderItem(cmd, format, it)
	}

	return fmt.Errorf("%w: %s %d (%s)", ErrItemNotFound, kind, id, pf.Endpoint(kind))
}

func renderItem(cmd *cobra.Command, format string, it catalog.Item) error {
	w := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return renderJSON(w, it)
	case config.FormatNDJSON:
		err := renderNDJSONItem(w, it)
		if isBrokenPipe(err) {
			return nil
		}
		return err
	case config.FormatYAML:
		return renderYAML(w, it)
	default:
		return renderDetails(w, it)
	}
}

// renderNDJSONItem writes a single compact JSON line.
func renderNDJSONItem(w io.Writer, it catalog.Item) error {
	if err := json.NewEncoder(w).Encode(it); err != nil {
		return fmt.Errorf("encoding NDJSON: %w", err)
	}
	return nil
}
