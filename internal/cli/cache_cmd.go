package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/engine/cache"
	"github.com/rshade/portalgun/internal/logging"
)

// openCacheStore opens the configured cache directory for maintenance,
// whether or not caching is enabled for queries.
func openCacheStore() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening page cache: %w", err)
	}
	return store, nil
}

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many pages are cached and their size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheStore()
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return err
			}

			cfg := config.GetGlobalConfig()
			p := message.NewPrinter(language.English)
			cmd.Printf("Directory: %s\n", store.Directory())
			cmd.Printf("Enabled for queries: %t\n", cfg.Cache.Enabled)
			cmd.Printf("TTL: %s\n", cache.FormatDuration(time.Duration(store.TTL())*time.Second))
			cmd.Print(p.Sprintf("Entries: %d\n", stats.Entries))
			cmd.Print(p.Sprintf("Size: %d bytes\n", stats.Bytes))
			return nil
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sweepCache(cmd, "clear", (*cache.FileStore).Clear)
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete expired cached pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sweepCache(cmd, "prune", (*cache.FileStore).CleanupExpired)
		},
	}
}

func sweepCache(cmd *cobra.Command, operation string, sweep func(*cache.FileStore) error) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	store, err := openCacheStore()
	if err != nil {
		return err
	}
	before, err := store.Stats()
	if err != nil {
		return err
	}
	if err = sweep(store); err != nil {
		return fmt.Errorf("cache %s failed: %w", operation, err)
	}
	after, err := store.Stats()
	if err != nil {
		return err
	}

	removed := before.Entries - after.Entries
	log.Info().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "cache_"+operation).
		Int("removed", removed).
		Int("remaining", after.Entries).
		Msg("cache swept")
	cmd.Printf("Removed %d cached page(s), %d remaining\n", removed, after.Entries)
	return nil
}
