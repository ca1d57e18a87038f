package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/engine"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a directory tree with .portalgun/, or --project-dir) it
// writes the project overlay; otherwise it writes ~/.portalgun/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When a project directory is resolved, creates $PROJECT/.portalgun/config.yaml with
a .gitignore that keeps cached pages and logs out of version control. Use
--global to initialize ~/.portalgun/config.yaml even inside a project.`,
		Example: `  # Create project-local configuration
  portalgun config init --project-dir .

  # Create global configuration
  portalgun config init --global

  # Create configuration, overwriting existing
  portalgun config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")

	return cmd
}

// checkWritable refuses to replace an existing file unless force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates projectDir/config.yaml and its .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Defaults()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore for cached pages and logs\n")
	}

	return nil
}

// initGlobalConfig creates ~/.portalgun/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Defaults()
	if err := checkWritable(cfg.ConfigPath(), force); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after files, environment and flags are applied.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if output == config.FormatJSON {
				return renderJSON(cmd.OutOrStdout(), cfg)
			}
			return renderYAML(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.FormatYAML, "output format: yaml or json")

	return cmd
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file and project directory in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("Configuration file: %s\n", config.GetGlobalConfig().ConfigPath())
			if projectDir := config.GetResolvedProjectDir(); projectDir != "" {
				cmd.Printf("Project directory: %s\n", projectDir)
			}
			return nil
		},
	}
}

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Example: `  # Validate current configuration
  portalgun config validate

  # Validate and show the values that were checked
  portalgun config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Printf("Configuration is valid\n")
			if verbose {
				printVerboseDetails(cmd, cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Printf("\nConfiguration details:\n")
	cmd.Printf("  API base URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API timeout: %s\n", cfg.API.Timeout)
	cmd.Printf("  Default page size: %d\n", cfg.Query.DefaultPageSize)
	if !engine.IsOffered(cfg.Query.DefaultPageSize) {
		cmd.Printf("    (not one of the browser's sizes %v; +/- will snap to them)\n", engine.PageSizeOptions())
	}
	cmd.Printf("  Default output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Cache enabled: %t (ttl %ds, %s)\n", cfg.Cache.Enabled, cfg.Cache.TTLSeconds, cfg.Cache.Directory)
	cmd.Printf("  Log level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
