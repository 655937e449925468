package catalog

import (
	"path/filepath"
	"testing"

	"github.com/NaiHeeeee/repkg-gui/internal/testsupport"
)

func TestResolvePreviewCanonicalName(t *testing.T) {
	root := t.TempDir()
	dir := testsupport.WriteBundle(t, root, "100", testsupport.WithFiles("preview.png", "other.jpg"))

	path, kind := ResolvePreview(dir)
	if kind != PreviewImage {
		t.Fatalf("kind = %q, want image", kind)
	}
	if filepath.Base(path) != "preview.png" {
		t.Errorf("canonical preview should win over directory scan, got %s", path)
	}
}

func TestResolvePreviewCanonicalOrder(t *testing.T) {
	root := t.TempDir()
	dir := testsupport.WriteBundle(t, root, "101", testsupport.WithFiles("preview.mp4", "preview.jpg"))

	path, kind := ResolvePreview(dir)
	if kind != PreviewImage {
		t.Fatalf("kind = %q, want image (jpg probes before mp4)", kind)
	}
	if filepath.Base(path) != "preview.jpg" {
		t.Errorf("expected preview.jpg, got %s", path)
	}
}

func TestResolvePreviewDirectoryFallback(t *testing.T) {
	root := t.TempDir()
	dir := testsupport.WriteBundle(t, root, "102", testsupport.WithFiles("wallpaper.webm", "scene.json"))

	path, kind := ResolvePreview(dir)
	if kind != PreviewVideo {
		t.Fatalf("kind = %q, want video", kind)
	}
	if filepath.Base(path) != "wallpaper.webm" {
		t.Errorf("expected wallpaper.webm, got %s", path)
	}
}

func TestResolvePreviewDirectoryFallbackIsSorted(t *testing.T) {
	root := t.TempDir()
	dir := testsupport.WriteBundle(t, root, "103", testsupport.WithFiles("zebra.png", "alpha.gif"))

	path, _ := ResolvePreview(dir)
	if filepath.Base(path) != "alpha.gif" {
		t.Errorf("sorted listing should pick alpha.gif first, got %s", path)
	}
}

func TestResolvePreviewAssetsFallback(t *testing.T) {
	root := t.TempDir()
	dir := testsupport.WriteBundle(t, root, "104",
		testsupport.WithFiles("scene.json", filepath.Join("assets", "bg.jpg")))

	path, kind := ResolvePreview(dir)
	if kind != PreviewImage {
		t.Fatalf("kind = %q, want image", kind)
	}
	if filepath.Base(path) != "bg.jpg" {
		t.Errorf("expected assets/bg.jpg, got %s", path)
	}
}

func TestResolvePreviewNone(t *testing.T) {
	root := t.TempDir()
	dir := testsupport.WriteBundle(t, root, "105", testsupport.WithFiles("scene.json"))

	path, kind := ResolvePreview(dir)
	if kind != PreviewNone || path != "" {
		t.Errorf("expected no preview, got (%q, %q)", path, kind)
	}
}

func TestResolvePreviewMissingDirectory(t *testing.T) {
	path, kind := ResolvePreview(filepath.Join(t.TempDir(), "missing"))
	if kind != PreviewNone || path != "" {
		t.Errorf("missing directory should resolve to none, got (%q, %q)", path, kind)
	}
}

func TestResolvePreviewIgnoresSubdirectoriesInScan(t *testing.T) {
	root := t.TempDir()
	dir := testsupport.WriteBundle(t, root, "106",
		testsupport.WithFiles(filepath.Join("materials.png", "inner.txt"), "real.png"))

	path, kind := ResolvePreview(dir)
	if kind != PreviewImage {
		t.Fatalf("kind = %q, want image", kind)
	}
	if filepath.Base(path) != "real.png" {
		t.Errorf("directories with media-like names must be skipped, got %s", path)
	}
}
