package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/NaiHeeeee/repkg-gui/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkshopDir = filepath.Join(base, "workshop")
	cfg.Paths.ExtractDir = filepath.Join(base, "extract")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}
