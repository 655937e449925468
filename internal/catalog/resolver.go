package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// previewExtensions is the ordered probe list for canonical preview files.
// Images come before videos at equal candidacy.
var previewExtensions = []string{"jpg", "jpeg", "png", "gif", "mp4", "webm"}

var videoExtensions = map[string]struct{}{
	"mp4":  {},
	"webm": {},
}

// ResolvePreview locates a best-effort preview asset inside a bundle
// directory. Probe order: canonical preview.<ext> names, then the first
// matching file in the directory itself, then the assets/ subdirectory.
// Directory listings are sorted by name, so the fallback tie-break is
// deterministic. Filesystem errors during any probe count as "not found";
// resolution always terminates with a value.
func ResolvePreview(bundleDir string) (string, PreviewKind) {
	for _, ext := range previewExtensions {
		candidate := filepath.Join(bundleDir, "preview."+ext)
		if fileExists(candidate) {
			return candidate, kindForExtension(ext)
		}
	}

	if path, kind := firstMediaFile(bundleDir); kind != PreviewNone {
		return path, kind
	}

	if path, kind := firstMediaFile(filepath.Join(bundleDir, "assets")); kind != PreviewNone {
		return path, kind
	}

	return "", PreviewNone
}

func firstMediaFile(dir string) (string, PreviewKind) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", PreviewNone
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := normalizeExtension(entry.Name())
		if !isPreviewExtension(ext) {
			continue
		}
		return filepath.Join(dir, entry.Name()), kindForExtension(ext)
	}
	return "", PreviewNone
}

func isPreviewExtension(ext string) bool {
	for _, known := range previewExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

func kindForExtension(ext string) PreviewKind {
	if _, ok := videoExtensions[ext]; ok {
		return PreviewVideo
	}
	return PreviewImage
}

func normalizeExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
