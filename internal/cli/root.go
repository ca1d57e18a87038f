package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the portalgun CLI.
// It resolves configuration, wires up logging and tracing, and registers the
// catalog, config and cache subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "portalgun",
		Short:   "Query the Rick and Morty catalog from the terminal",
		Long:    "portalgun drains a cursor-paginated catalog API, then filters, sorts and pages it locally",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Negative values cause undefined cache expiry behavior.
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			if err := loadConfig(cmd); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file merged over ~/.portalgun/config.yaml")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .portalgun/config.yaml")
	cmd.PersistentFlags().String("base-url", "", "catalog API base URL (overrides config file and env var)")
	cmd.PersistentFlags().Bool("cache", false, "cache fetched pages on disk")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default, overrides config file and env var)")

	cmd.AddCommand(
		NewListCmd(), NewShowCmd(), NewExportCmd(), NewSummaryCmd(), NewBrowseCmd(),
		newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

// loadConfig resolves the project overlay, initializes the global config and
// applies explicitly set global flags on top of it.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	projectFlag, _ := flags.GetString("project-dir")
	cwd, _ := os.Getwd()
	projectDir := config.ResolveProjectDir(ctx, projectFlag, cwd)
	config.SetResolvedProjectDir(projectDir)
	config.InitGlobalConfigWithProject(ctx, projectDir)

	cfg := config.GetGlobalConfig()

	if path, _ := flags.GetString("config"); path != "" {
		if err := config.ShallowMergeYAML(cfg, path); err != nil {
			return fmt.Errorf("loading --config: %w", err)
		}
		cfg.SetConfigPath(path)
	}
	if flags.Changed("base-url") {
		cfg.API.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("cache") {
		cfg.Cache.Enabled, _ = flags.GetBool("cache")
	}
	if ttl, _ := flags.GetInt("cache-ttl"); ttl > 0 {
		cfg.Cache.TTLSeconds = ttl
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigPathCmd(), NewConfigValidateCmd())
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Page cache maintenance commands"}
	cmd.AddCommand(NewCacheStatsCmd(), NewCacheClearCmd(), NewCachePruneCmd())
	return cmd
}

const rootCmdExample = `  # List the first page of characters
  portalgun list character

  # Alive characters named Smith, sorted by name descending, 10 per page
  portalgun list character --filter name=smith --filter status=alive --sort name:desc --page-size 10

  # Show one location in detail
  portalgun show location 3

  # Export every episode as NDJSON
  portalgun export episode --output ndjson > episodes.ndjson

  # Count every kind
  portalgun summary

  # Browse interactively
  portalgun browse character

  # Initialize configuration
  portalgun config init`
