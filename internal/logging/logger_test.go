package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/NaiHeeeee/repkg-gui/internal/services"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	NewComponentLogger(logger, "catalog").Info("scan complete",
		Int("entries", 12), String("root", "/workshop path"))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO catalog: scan complete") {
		t.Errorf("line missing level/component/message: %q", line)
	}
	if !strings.Contains(line, "entries=12") {
		t.Errorf("line missing int attr: %q", line)
	}
	if !strings.Contains(line, `root="/workshop path"`) {
		t.Errorf("values with spaces should be quoted: %q", line)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", output)
	}
	if !strings.Contains(output, "WARN visible") {
		t.Errorf("warn line missing: %q", output)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithGroup("job").Info("started", String("id", "abc"))

	if !strings.Contains(buf.String(), "job.id=abc") {
		t.Errorf("grouped attrs should flatten with dots: %q", buf.String())
	}
}

func TestJSONHandlerFieldNames(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Error("boom", Error(errors.New("disk full")))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if payload["msg"] != "boom" {
		t.Errorf("msg = %v", payload["msg"])
	}
	if payload["level"] != "error" {
		t.Errorf("level = %v, want lowercase", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Error("timestamp key should be ts")
	}
	if payload["error"] != "disk full" {
		t.Errorf("error = %v", payload["error"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("unknown format should be rejected")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	for _, level := range []string{"", "verbose", "INFO"} {
		logger, err := New(Options{Level: level, Format: "console", Output: &bytes.Buffer{}})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", level, err)
		}
		_ = logger
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithBundleID(ctx, "431960001")
	ctx = services.WithJobID(ctx, "job-xyz")
	ctx = services.WithOperation(ctx, "extract")

	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	WithContext(ctx, logger).Info("contextual log")

	line := buf.String()
	for _, want := range []string{"bundle_id=431960001", "job_id=job-xyz", "operation=extract"} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %s: %q", want, line)
		}
	}
}

func TestWithContextPlainContext(t *testing.T) {
	logger, err := New(Options{Format: "console", Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := WithContext(context.Background(), logger); got != logger {
		t.Error("unannotated context should return the logger unchanged")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic and must not write anywhere.
	NewNop().Error("ignored", String("k", "v"))
	NewComponentLogger(nil, "x").Info("also ignored")
}
