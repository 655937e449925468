package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NaiHeeeee/repkg-gui/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "paths.workshop_dir:           %s\n", cfg.Paths.WorkshopDir)
			fmt.Fprintf(out, "paths.extract_dir:            %s\n", cfg.Paths.ExtractDir)
			fmt.Fprintf(out, "paths.data_dir:               %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "paths.log_dir:                %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "catalog.scan_workers:         %d\n", cfg.Catalog.ScanWorkers)
			fmt.Fprintf(out, "catalog.preload_count:        %d\n", cfg.Catalog.PreloadCount)
			fmt.Fprintf(out, "catalog.preload_stagger_ms:   %d\n", cfg.Catalog.PreloadStagger)
			fmt.Fprintf(out, "catalog.proximity_margin_px:  %d\n", cfg.Catalog.ProximityMargin)
			fmt.Fprintf(out, "extraction.binary:            %s\n", cfg.Extraction.Binary)
			fmt.Fprintf(out, "extraction.timeout_seconds:   %d\n", cfg.Extraction.TimeoutSeconds)
			fmt.Fprintf(out, "logging.format:               %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level:                %s\n", cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point paths.workshop_dir at your Steam workshop directory.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}
