package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/NaiHeeeee/repkg-gui/internal/settings"
	"github.com/NaiHeeeee/repkg-gui/internal/testsupport"
	"github.com/NaiHeeeee/repkg-gui/internal/view"
)

func TestSortStateFromFlags(t *testing.T) {
	cases := []struct {
		key, direction string
		wantKey        view.Key
		wantDirection  view.Direction
	}{
		{"", "", view.KeyDate, view.Descending},
		{"date", "asc", view.KeyDate, view.Ascending},
		{"name", "", view.KeyName, view.Ascending},
		{"name", "desc", view.KeyName, view.Descending},
	}
	for _, tc := range cases {
		state, err := sortStateFromFlags(tc.key, tc.direction)
		if err != nil {
			t.Fatalf("sortStateFromFlags(%q, %q) failed: %v", tc.key, tc.direction, err)
		}
		if state.Key() != tc.wantKey || state.Direction(state.Key()) != tc.wantDirection {
			t.Errorf("(%q, %q) = %s %s, want %s %s", tc.key, tc.direction,
				state.Key(), state.Direction(state.Key()), tc.wantKey, tc.wantDirection)
		}
	}
}

func TestSortStateFromFlagsRejectsUnknowns(t *testing.T) {
	if _, err := sortStateFromFlags("size", ""); err == nil {
		t.Error("unknown sort key should be rejected")
	}
	if _, err := sortStateFromFlags("name", "sideways"); err == nil {
		t.Error("unknown direction should be rejected")
	}
}

func TestResolveSources(t *testing.T) {
	root := t.TempDir()
	bundle := testsupport.WriteBundle(t, root, "77")
	loose := filepath.Join(root, "loose.pkg")
	testsupport.WriteFile(t, loose, []byte("pkg"))

	sources, err := resolveSources([]string{bundle, loose})
	if err != nil {
		t.Fatalf("resolveSources failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources", len(sources))
	}
	if sources[0] != filepath.Join(bundle, "scene.pkg") {
		t.Errorf("bundle dir should map to its manifest, got %s", sources[0])
	}
	if sources[1] != loose {
		t.Errorf("file should pass through, got %s", sources[1])
	}
}

func TestResolveSourcesRejectsManifestlessDir(t *testing.T) {
	root := t.TempDir()
	bare := testsupport.WriteBundle(t, root, "78", testsupport.WithoutManifest())

	if _, err := resolveSources([]string{bare}); err == nil {
		t.Error("directory without a manifest should be rejected")
	}
}

func TestApplySetting(t *testing.T) {
	var s settings.Settings
	if err := applySetting(&s, "only_images", "true"); err != nil {
		t.Fatalf("applySetting failed: %v", err)
	}
	if !s.OnlyImages {
		t.Error("only_images not applied")
	}

	if err := applySetting(&s, "workshop_path", "/srv/workshop"); err != nil {
		t.Fatalf("applySetting failed: %v", err)
	}
	if s.WorkshopPath != "/srv/workshop" {
		t.Errorf("workshop_path = %q", s.WorkshopPath)
	}

	if err := applySetting(&s, "sort_key", "name"); err != nil {
		t.Fatalf("applySetting failed: %v", err)
	}
	if s.SortKey != "name" {
		t.Errorf("sort_key = %q", s.SortKey)
	}

	if err := applySetting(&s, "only_images", "maybe"); err == nil {
		t.Error("non-boolean value should be rejected")
	}
	if err := applySetting(&s, "sort_key", "size"); err == nil {
		t.Error("invalid sort key should be rejected")
	}
	if err := applySetting(&s, "theme", "dark"); err == nil {
		t.Error("unknown key should be rejected")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	output := renderTable(
		[]string{"ID", "NAME", "RATING"},
		[][]string{{"1", "Alpha"}},
		nil,
	)
	if !strings.Contains(output, "Alpha") {
		t.Errorf("row content missing:\n%s", output)
	}
	if !strings.Contains(output, "RATING") {
		t.Errorf("header missing:\n%s", output)
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"scan", "extract", "info", "history", "settings", "config"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
