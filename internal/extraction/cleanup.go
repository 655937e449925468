package extraction

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NaiHeeeee/repkg-gui/internal/logging"
)

// mediaExtensions is the allow-list applied by the only-images cleanup pass.
var mediaExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".mp4":  {},
	".webm": {},
	".bmp":  {},
	".tiff": {},
	".webp": {},
	".avi":  {},
	".mov":  {},
	".mkv":  {},
}

// CleanupNonMedia deletes every file under root whose extension is outside
// the media allow-list, including extensionless files, then prunes directories
// the deletions emptied. The pass is best effort: individual failures are
// logged and skipped, and the returned count covers deleted files only.
func CleanupNonMedia(root string, logger *slog.Logger) int {
	if logger == nil {
		logger = logging.NewNop()
	}

	deleted := 0
	var dirs []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("cleanup walk error", logging.String("path", path), logging.Error(err))
			return nil
		}
		if entry.IsDir() {
			if path != root {
				dirs = append(dirs, path)
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, keep := mediaExtensions[ext]; keep {
			return nil
		}
		if removeErr := os.Remove(path); removeErr != nil {
			logger.Warn("cleanup delete failed", logging.String("path", path), logging.Error(removeErr))
			return nil
		}
		deleted++
		return nil
	})
	if err != nil {
		logger.Warn("cleanup aborted", logging.String("root", root), logging.Error(err))
	}

	// Deepest first so nested empty directories collapse upward.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		entries, readErr := os.ReadDir(dir)
		if readErr != nil || len(entries) > 0 {
			continue
		}
		if removeErr := os.Remove(dir); removeErr != nil {
			logger.Warn("cleanup prune failed", logging.String("path", dir), logging.Error(removeErr))
		}
	}

	return deleted
}
