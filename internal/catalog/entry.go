package catalog

import (
	"path/filepath"
	"time"
)

// ManifestFile marks a directory as a valid bundle. Directories lacking it are
// dropped at scan time, not hidden at display time.
const ManifestFile = "scene.pkg"

// DescriptorFile is the optional sidecar metadata file adjacent to a bundle.
const DescriptorFile = "project.json"

// PreviewKind classifies a resolved preview asset.
type PreviewKind string

const (
	PreviewImage PreviewKind = "image"
	PreviewVideo PreviewKind = "video"
	PreviewNone  PreviewKind = "none"
)

// Entry is one catalog row. Entries are value objects: a rescan rebuilds the
// catalog wholesale rather than patching entries in place.
type Entry struct {
	ID          string
	DisplayName string
	BundlePath  string
	PreviewPath string
	PreviewKind PreviewKind
	ModifiedAt  *time.Time
	HasManifest bool
}

// CacheKey returns the content-stable identifier used to correlate this entry
// across rescans: the normalized absolute bundle path.
func (e Entry) CacheKey() string {
	abs, err := filepath.Abs(filepath.Clean(e.BundlePath))
	if err != nil {
		return e.BundlePath
	}
	return abs
}

// ManifestPath returns the path of the bundle's scene.pkg archive.
func (e Entry) ManifestPath() string {
	return filepath.Join(e.BundlePath, ManifestFile)
}
