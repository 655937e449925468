package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/NaiHeeeee/repkg-gui/internal/services"
	"github.com/NaiHeeeee/repkg-gui/internal/testsupport"
)

func TestScanManifestGate(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteBundle(t, root, "A", testsupport.WithFiles("preview.png"))
	testsupport.WriteBundle(t, root, "B")
	testsupport.WriteBundle(t, root, "C", testsupport.WithoutManifest())

	scanner := NewScanner(2, nil)
	entries, err := scanner.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byID := map[string]Entry{}
	for _, entry := range entries {
		if !entry.HasManifest {
			t.Errorf("entry %s must carry the manifest flag", entry.ID)
		}
		byID[entry.ID] = entry
	}

	if byID["A"].PreviewKind != PreviewImage {
		t.Errorf("A.PreviewKind = %q, want image", byID["A"].PreviewKind)
	}
	if byID["B"].PreviewKind != PreviewNone {
		t.Errorf("B.PreviewKind = %q, want none", byID["B"].PreviewKind)
	}
	if _, ok := byID["C"]; ok {
		t.Error("C lacks the manifest and must not appear")
	}
}

func TestScanDiscoveryOrderIsDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"30", "10", "20"} {
		testsupport.WriteBundle(t, root, id)
	}

	scanner := NewScanner(4, nil)
	entries, err := scanner.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := make([]string, 0, len(entries))
	for _, entry := range entries {
		got = append(got, entry.ID)
	}
	want := []string{"10", "20", "30"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestScanDisplayNameFromDescriptor(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteBundle(t, root, "42", testsupport.WithDescriptor(map[string]any{"title": "Rainy Window"}))
	testsupport.WriteBundle(t, root, "43")

	scanner := NewScanner(1, nil)
	entries, err := scanner.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	byID := map[string]Entry{}
	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	if byID["42"].DisplayName != "Rainy Window" {
		t.Errorf("DisplayName = %q, want descriptor title", byID["42"].DisplayName)
	}
	if byID["43"].DisplayName != "Wallpaper 43" {
		t.Errorf("DisplayName = %q, want synthesized placeholder", byID["43"].DisplayName)
	}
}

func TestScanUnreadableRoot(t *testing.T) {
	scanner := NewScanner(1, nil)
	_, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("unreadable root must be surfaced to the caller")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("error should carry the not-found marker, got %v", err)
	}
}

func TestScanEmptyRootIsNotAnError(t *testing.T) {
	scanner := NewScanner(1, nil)
	entries, err := scanner.Scan(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("empty root should scan cleanly: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected zero entries, got %d", len(entries))
	}
}

func TestScanRecordsModifiedAt(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteBundle(t, root, "55")

	scanner := NewScanner(1, nil)
	entries, err := scanner.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ModifiedAt == nil {
		t.Error("ModifiedAt should be populated from the directory stat")
	}
}

func TestEntryCacheKeyIsNormalized(t *testing.T) {
	entry := Entry{BundlePath: "/workshop/./123"}
	if entry.CacheKey() != "/workshop/123" {
		t.Errorf("CacheKey = %q", entry.CacheKey())
	}
}
