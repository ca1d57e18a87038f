package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/portalgun/internal/cli/pagination"
	"github.com/rshade/portalgun/internal/config"
)

// addQueryFlags registers the filter, sort and paging flags on cmd.
func addQueryFlags(cmd *cobra.Command, params *pagination.Params, withPaging bool) {
	cmd.Flags().StringArrayVar(&params.Filters, "filter", nil,
		"filter as field=pattern, repeatable ("+pagination.FilterHelp()+")")
	cmd.Flags().StringVar(&params.Sort, "sort", "",
		"sort as field or field:asc|desc ("+pagination.SortHelp()+")")
	if withPaging {
		cmd.Flags().IntVar(&params.Page, "page", pagination.DefaultPage, "1-based page number")
		cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "items per page (0 = config default)")
	}
}

// NewListCmd creates the list command, which prints one page of a kind.
func NewListCmd() *cobra.Command {
	params := pagination.NewParams()
	var output string

	cmd := &cobra.Command{
		Use:   "list [kind]",
		Short: "List one page of characters, locations or episodes",
		Long: `Drains every page of the kind from the catalog API, then filters, sorts and
pages the collection locally. Filters on the same command are combined with AND.
Name, status, species, type, dimension and episode filters match substrings;
gender matches exactly. Matching ignores case.`,
		Example: `  # First page of characters
  portalgun list character

  # Dead humans, oldest entries first
  portalgun list character --filter status=dead --filter species=human --sort created

  # Page 3 of locations in C-137, 5 per page, as JSON
  portalgun list location --filter dimension=c-137 --page 3 --page-size 5 --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, *params, output)
		},
	}

	addQueryFlags(cmd, params, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml, ndjson (default from config)")

	return cmd
}

func runList(cmd *cobra.Command, args []string, params pagination.Params, output string) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(output)
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
			_ = renderDrainError(cmd.OutOrStdout(), format, st.Err)
		}
		return err
	}

	return renderState(cmd.OutOrStdout(), format, st)
}
