package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/NaiHeeeee/repkg-gui/internal/catalog"
	"github.com/NaiHeeeee/repkg-gui/internal/classify"
	"github.com/NaiHeeeee/repkg-gui/internal/config"
	"github.com/NaiHeeeee/repkg-gui/internal/preview"
	"github.com/NaiHeeeee/repkg-gui/internal/render"
	"github.com/NaiHeeeee/repkg-gui/internal/view"
	"github.com/NaiHeeeee/repkg-gui/internal/workshop"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		sortFlag      string
		directionFlag string
		searchFlag    string
		ratingsFlag   []string
		previewsFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "scan [workshop-dir]",
		Short: "Scan the workshop directory and list bundles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			root, err := resolveWorkshopRoot(ctx, args)
			if err != nil {
				return err
			}

			scanner := catalog.NewScanner(cfg.Catalog.ScanWorkers, logger)
			entries, err := scanner.Scan(cmd.Context(), root)
			if err != nil {
				return err
			}

			cache := classify.NewCache(classify.DescriptorReader(), logger)
			if len(ratingsFlag) > 0 {
				// The filter consults the cache synchronously, so resolve
				// every entry before applying it.
				for _, entry := range entries {
					if _, err := cache.Get(cmd.Context(), entry.CacheKey()); err != nil {
						return err
					}
				}
			}

			filter := view.FilterState{SearchText: searchFlag, SelectedRatings: ratingsFlag}
			visible := filter.Visible(entries, cache)

			sortKey, sortDirection := sortFlag, directionFlag
			if store, storeErr := ctx.settingsStore(); storeErr == nil {
				if persisted, loadErr := store.Load(); loadErr == nil {
					if !cmd.Flags().Changed("sort") && persisted.SortKey != "" {
						sortKey = persisted.SortKey
					}
					if !cmd.Flags().Changed("direction") && persisted.SortDirection != "" {
						sortDirection = persisted.SortDirection
					}
				}
			}
			state, err := sortStateFromFlags(sortKey, sortDirection)
			if err != nil {
				return err
			}
			view.NewSorter().Sort(visible, state)

			printCatalog(cmd, visible, cache)
			fmt.Fprintf(cmd.OutOrStdout(), "%d bundle(s) in %s\n", len(visible), root)

			if previewsFlag {
				ready, failed := preloadPreviews(cmd, cfg.Catalog, visible, logger)
				fmt.Fprintf(cmd.OutOrStdout(), "previews: %d ready, %d failed\n", ready, failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "date", "Sort key: name or date")
	cmd.Flags().StringVar(&directionFlag, "direction", "", "Sort direction: asc or desc")
	cmd.Flags().StringVar(&searchFlag, "search", "", "Case-insensitive name or id filter")
	cmd.Flags().StringSliceVar(&ratingsFlag, "rating", nil, "Keep only bundles with one of these content ratings")
	cmd.Flags().BoolVar(&previewsFlag, "previews", false, "Eagerly encode the leading previews and report the outcome")

	return cmd
}

func resolveWorkshopRoot(ctx *commandContext, args []string) (string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	logger := ctx.ensureLogger()

	locator := workshop.NewLocator(logger)
	if len(args) > 0 {
		if resolved, ok := locator.Locate(args[0]); ok {
			return resolved, nil
		}
		// Let the scanner surface the error for a path that truly does
		// not exist.
		return args[0], nil
	}

	store, err := ctx.settingsStore()
	if err != nil {
		return "", err
	}
	persisted, err := store.Load()
	if err != nil {
		return "", err
	}
	if resolved, ok := locator.Locate(persisted.WorkshopPath); ok {
		return resolved, nil
	}
	return cfg.Paths.WorkshopDir, nil
}

func sortStateFromFlags(key, direction string) (*view.SortState, error) {
	state := view.DefaultSortState()

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "date":
		if strings.EqualFold(direction, "asc") {
			state.Toggle(view.KeyDate)
		}
	case "name":
		state.Toggle(view.KeyName)
		if strings.EqualFold(direction, "desc") {
			state.Toggle(view.KeyName)
		}
	default:
		return nil, fmt.Errorf("unknown sort key %q (name or date)", key)
	}

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc", "desc":
	default:
		return nil, fmt.Errorf("unknown sort direction %q (asc or desc)", direction)
	}
	return state, nil
}

func printCatalog(cmd *cobra.Command, entries []catalog.Entry, ratings view.RatingSource) {
	out := cmd.OutOrStdout()
	headers := []string{"ID", "NAME", "RATING", "PREVIEW", "MODIFIED"}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rating := "-"
		if value, resolved := ratings.Peek(entry.CacheKey()); resolved && value != "" {
			rating = value
		}
		modified := "-"
		if entry.ModifiedAt != nil {
			modified = entry.ModifiedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			entry.ID, entry.DisplayName, rating, string(entry.PreviewKind), modified,
		})
	}

	if writerIsTerminal(out) {
		fmt.Fprintln(out, renderTable(headers, rows, nil))
		return
	}
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

// preloadPreviews drives the lazy-render scheduler the way the interactive
// surface would on first paint: eager encode of the leading entries, staggered.
func preloadPreviews(cmd *cobra.Command, tuning config.Catalog, entries []catalog.Entry, logger *slog.Logger) (int, int) {
	encoder := preview.NewEncoder(logger)

	var (
		mu     sync.Mutex
		ready  int
		failed int
	)
	scheduler := render.NewScheduler(
		func(ctx context.Context, entry catalog.Entry) preview.Handle {
			if entry.PreviewKind == catalog.PreviewNone {
				return preview.Handle{State: preview.StateFailed}
			}
			handle, _ := encoder.Encode(entry.PreviewPath)
			return handle
		},
		func(result render.Result) {
			mu.Lock()
			defer mu.Unlock()
			if result.Handle.State == preview.StateReady {
				ready++
			} else {
				failed++
			}
		},
		render.Options{
			PreloadCount:    tuning.PreloadCount,
			PreloadStagger:  time.Duration(tuning.PreloadStagger) * time.Millisecond,
			ProximityMargin: tuning.ProximityMargin,
		},
		logger,
	)

	scheduler.Reset(cmd.Context(), entries)
	scheduler.Wait()

	mu.Lock()
	defer mu.Unlock()
	return ready, failed
}
