package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the provided contents, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// BundleOption customizes a generated test bundle.
type BundleOption func(*bundleBuilder)

type bundleBuilder struct {
	manifest   bool
	descriptor map[string]any
	files      []string
}

// WithoutManifest omits scene.pkg so the directory fails the manifest gate.
func WithoutManifest() BundleOption {
	return func(b *bundleBuilder) { b.manifest = false }
}

// WithDescriptor writes a project.json sidecar with the given fields.
func WithDescriptor(fields map[string]any) BundleOption {
	return func(b *bundleBuilder) { b.descriptor = fields }
}

// WithFiles creates the named files (relative to the bundle dir) with
// placeholder contents.
func WithFiles(names ...string) BundleOption {
	return func(b *bundleBuilder) { b.files = append(b.files, names...) }
}

// WriteBundle lays out a workshop bundle directory under root and returns its
// path. By default the bundle carries a scene.pkg manifest and nothing else.
func WriteBundle(t testing.TB, root, id string, opts ...BundleOption) string {
	t.Helper()

	builder := &bundleBuilder{manifest: true}
	for _, opt := range opts {
		opt(builder)
	}

	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bundle %s: %v", dir, err)
	}

	if builder.manifest {
		WriteFile(t, filepath.Join(dir, "scene.pkg"), []byte("pkg"))
	}

	if builder.descriptor != nil {
		data, err := json.Marshal(builder.descriptor)
		if err != nil {
			t.Fatalf("marshal descriptor: %v", err)
		}
		WriteFile(t, filepath.Join(dir, "project.json"), data)
	}

	for _, name := range builder.files {
		WriteFile(t, filepath.Join(dir, name), []byte("media"))
	}

	return dir
}
