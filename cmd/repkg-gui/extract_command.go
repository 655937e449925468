package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NaiHeeeee/repkg-gui/internal/catalog"
	"github.com/NaiHeeeee/repkg-gui/internal/extraction"
	"github.com/NaiHeeeee/repkg-gui/internal/history"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		outFlag          string
		onlyImagesFlag   bool
		noTexConvertFlag bool
		flatFlag         bool
		overwriteFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "extract <bundle-dir-or-pkg>...",
		Short: "Extract one or more bundles through RePKG",
		Long: "Extract accepts workshop bundle directories or .pkg files directly. " +
			"The batch runs sequentially and continues past individual failures.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.settingsStore()
			if err != nil {
				return err
			}
			persisted, err := store.Load()
			if err != nil {
				return err
			}

			opts := persisted.ExtractionOptions()
			if cmd.Flags().Changed("only-images") {
				opts.OnlyImages = onlyImagesFlag
			}
			if cmd.Flags().Changed("no-tex-convert") {
				opts.NoTexConvert = noTexConvertFlag
			}
			if cmd.Flags().Changed("flat") {
				opts.IgnoreDirStructure = flatFlag
			}
			if cmd.Flags().Changed("overwrite") {
				opts.Overwrite = overwriteFlag
			}

			destination, err := resolveDestination(ctx, outFlag, persisted.ExtractPath)
			if err != nil {
				return err
			}

			sources, err := resolveSources(args)
			if err != nil {
				return err
			}

			unpacker, err := ctx.unpackerClient()
			if err != nil {
				return err
			}

			var job *extraction.Job
			runErr := ctx.withHistory(func(hist *history.Store) error {
				orchestrator := extraction.NewOrchestrator(unpacker, hist, ctx.ensureLogger())
				job, err = orchestrator.Run(cmd.Context(), sources, destination, opts)
				return err
			})
			if runErr != nil {
				return runErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "job %s: %d succeeded, %d failed -> %s\n",
				job.ID, job.Success, job.Failure, destination)
			for _, item := range job.Items {
				if !item.OK {
					fmt.Fprintf(cmd.OutOrStdout(), "  failed %s: %s\n", item.Source, item.Detail)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Destination directory (default from settings, then config)")
	cmd.Flags().BoolVar(&onlyImagesFlag, "only-images", false, "Keep only media files after extraction")
	cmd.Flags().BoolVar(&noTexConvertFlag, "no-tex-convert", false, "Do not convert tex assets to images")
	cmd.Flags().BoolVar(&flatFlag, "flat", false, "Flatten the archive's directory structure")
	cmd.Flags().BoolVar(&overwriteFlag, "overwrite", false, "Overwrite existing files in the destination")

	return cmd
}

func resolveDestination(ctx *commandContext, flag, persisted string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		return flag, nil
	}
	if strings.TrimSpace(persisted) != "" {
		return persisted, nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Paths.ExtractDir, nil
}

// resolveSources maps each argument to a .pkg archive: bundle directories
// contribute their manifest, files pass through as-is.
func resolveSources(args []string) ([]string, error) {
	sources := make([]string, 0, len(args))
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", arg, err)
		}
		if info.IsDir() {
			manifest := filepath.Join(arg, catalog.ManifestFile)
			if _, err := os.Stat(manifest); err != nil {
				return nil, fmt.Errorf("source %s: no %s manifest: %w", arg, catalog.ManifestFile, err)
			}
			sources = append(sources, manifest)
			continue
		}
		sources = append(sources, arg)
	}
	return sources, nil
}
