package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/NaiHeeeee/repkg-gui/internal/logging"
	"github.com/NaiHeeeee/repkg-gui/internal/services"
)

// Scanner builds the in-memory catalog from a workshop root directory.
type Scanner struct {
	workers int
	logger  *slog.Logger
}

// NewScanner constructs a Scanner. workers bounds per-bundle concurrency; a
// value below one falls back to serial scanning.
func NewScanner(workers int, logger *slog.Logger) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "catalog"),
	}
}

// Scan enumerates the immediate subdirectories of root and returns one entry
// per valid bundle, in discovery order. Directories without the scene.pkg
// manifest are dropped silently. A per-bundle failure degrades that entry to
// minimal fields; only an unreadable root is an error. Zero bundles found is
// a valid empty result, not an error.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "catalog", "scan", fmt.Sprintf("read workshop root %q", root), err)
	}

	candidates := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			candidates = append(candidates, de.Name())
		}
	}

	results := make([]*Entry, len(candidates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i, name := range candidates {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(slot int, dirName string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[slot] = s.processBundle(root, dirName)
		}(i, name)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	s.logger.Info("catalog scan complete",
		logging.String("root", root),
		logging.Int("candidates", len(candidates)),
		logging.Int("bundles", len(entries)))

	return entries, nil
}

// processBundle returns nil when the directory is not a valid bundle. Any
// failure after the manifest gate keeps the entry with degraded fields.
func (s *Scanner) processBundle(root, dirName string) *Entry {
	bundlePath := filepath.Join(root, dirName)

	if !fileExists(filepath.Join(bundlePath, ManifestFile)) {
		s.logger.Debug("skipping directory without manifest", logging.String(logging.FieldBundleID, dirName))
		return nil
	}

	entry := Entry{
		ID:          dirName,
		DisplayName: fallbackDisplayName(dirName),
		BundlePath:  bundlePath,
		PreviewKind: PreviewNone,
		HasManifest: true,
	}

	if desc := ReadDescriptor(bundlePath); desc.Title != "" {
		entry.DisplayName = desc.Title
	}

	entry.PreviewPath, entry.PreviewKind = ResolvePreview(bundlePath)
	if entry.PreviewKind == PreviewNone {
		s.logger.Debug("no preview asset found", logging.String(logging.FieldBundleID, dirName))
	}

	if info, err := os.Stat(bundlePath); err == nil {
		modified := info.ModTime()
		entry.ModifiedAt = &modified
	} else {
		s.logger.Debug("bundle stat failed",
			logging.String(logging.FieldBundleID, dirName),
			logging.Error(err))
	}

	return &entry
}

func fallbackDisplayName(id string) string {
	return "Wallpaper " + id
}
