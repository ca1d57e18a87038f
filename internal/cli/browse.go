package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/query"
	"github.com/rshade/portalgun/internal/tui"
)

// ErrNotInteractive is returned when browse runs without a terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal; use list or export instead")

// NewBrowseCmd creates the browse command, the interactive catalog browser.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [kind]",
		Short: "Browse the catalog interactively",
		Long: `Opens a full-screen browser over one kind. Filters, sorting and paging are
applied to the drained collection without refetching; switching kind or
pressing R drains again.`,
		Example: `  # Browse characters
  portalgun browse

  # Start on episodes
  portalgun browse episode`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	kind, err := parseKindArg(args, cfg)
	if err != nil {
		return err
	}
	if tui.DetectOutputMode(false, false) != tui.OutputModeInteractive || !isTerminal(os.Stdin) {
		return ErrNotInteractive
	}

	// Console logging would draw over the alternate screen.
	if debug, _ := cmd.Flags().GetBool("debug"); debug || cfg.Logging.File == "" {
		ctx = zerolog.Nop().WithContext(ctx)
	}

	return tui.Run(ctx, kind, func(onChange func(query.State)) (*query.Controller, error) {
		return newController(ctx, cfg, query.WithOnChange(onChange))
	})
}
