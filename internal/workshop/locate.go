package workshop

import (
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/NaiHeeeee/repkg-gui/internal/logging"
)

// AppID is Wallpaper Engine's Steam application id.
const AppID = "431960"

// ContentSuffix is the workshop content directory relative to a Steam
// library root.
const ContentSuffix = "steamapps/workshop/content/" + AppID

// Locator resolves the workshop root from a user-supplied or remembered
// path. The exists probe is injectable for tests.
type Locator struct {
	exists func(string) bool
	logger *slog.Logger
}

// Option configures the locator.
type Option func(*Locator)

// WithExists replaces the directory probe (primarily for tests).
func WithExists(exists func(string) bool) Option {
	return func(l *Locator) {
		if exists != nil {
			l.exists = exists
		}
	}
}

func NewLocator(logger *slog.Logger, opts ...Option) *Locator {
	if logger == nil {
		logger = logging.NewNop()
	}
	locator := &Locator{
		exists: dirExists,
		logger: logging.NewComponentLogger(logger, "workshop"),
	}
	for _, opt := range opts {
		opt(locator)
	}
	return locator
}

// Complete expands a partial path toward the workshop content directory.
// A path already pointing inside workshop content passes through untouched;
// otherwise common Steam library layouts under the base are probed. Returns
// "" when nothing under the base exists.
func (l *Locator) Complete(base string) string {
	base = normalize(base)
	if base == "" {
		return ""
	}

	if strings.Contains(base, "workshop/content/"+AppID) {
		return base
	}

	if idx := strings.Index(base, "steamapps"); idx != -1 {
		if candidate := base + "/workshop/content/" + AppID; l.exists(candidate) {
			return candidate
		}
		// Rebuild from the steamapps segment in case the input wandered
		// deeper into the library.
		root := base[:idx+len("steamapps")]
		if candidate := root + "/workshop/content/" + AppID; l.exists(candidate) {
			return candidate
		}
	}

	patterns := []string{
		base + "/" + ContentSuffix,
		base + "/Steam/" + ContentSuffix,
		base + "/SteamLibrary/" + ContentSuffix,
		base + "/.steam/steam/" + ContentSuffix,
		base + "/.local/share/Steam/" + ContentSuffix,
	}
	for _, candidate := range patterns {
		if l.exists(candidate) {
			return candidate
		}
	}
	return ""
}

// Locate returns the first usable workshop root: the remembered path (after
// completion) when it exists, otherwise the first default candidate present
// on this machine. The second return reports success.
func (l *Locator) Locate(remembered string) (string, bool) {
	if remembered != "" {
		if completed := l.Complete(remembered); completed != "" && l.exists(completed) {
			if completed != normalize(remembered) {
				l.logger.Info("workshop path completed",
					logging.String("input", remembered), logging.String("resolved", completed))
			}
			return completed, true
		}
		l.logger.Warn("remembered workshop path unusable", logging.String("path", remembered))
	}

	for _, candidate := range DefaultCandidates() {
		if l.exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// DefaultCandidates lists the workshop content directories of the usual
// Steam install locations.
func DefaultCandidates() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		path.Join(home, ".steam/steam", ContentSuffix),
		path.Join(home, ".local/share/Steam", ContentSuffix),
		path.Join(home, ".var/app/com.valvesoftware.Steam/.local/share/Steam", ContentSuffix),
		path.Join(home, "snap/steam/common/.local/share/Steam", ContentSuffix),
	}
}

func normalize(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimRight(p, "/")
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
