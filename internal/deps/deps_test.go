package deps

import (
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/config"
)

func TestCheckResolvesBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	statuses := Check([]Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	if !statuses[0].Available {
		t.Fatalf("expected present binary to resolve, got %#v", statuses[0])
	}
	if statuses[0].Path == "" {
		t.Error("resolved path not recorded")
	}
	if statuses[1].Available {
		t.Error("missing binary reported available")
	}
	if statuses[1].Detail == "" {
		t.Error("missing binary has no detail")
	}
	if statuses[2].Detail != "command not configured" {
		t.Errorf("blank command detail = %q", statuses[2].Detail)
	}
}

func TestRequirementsMarksOpenCCOptional(t *testing.T) {
	cfg := &config.Config{}
	cfg.Whisper.Binary = "whisper"

	reqs := Requirements(cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	byName := map[string]Requirement{}
	for _, req := range reqs {
		byName[req.Name] = req
	}
	if byName["FFmpeg"].Optional || byName["Whisper"].Optional {
		t.Error("ffmpeg and whisper must be mandatory")
	}
	if !byName["OpenCC"].Optional {
		t.Error("opencc should be optional")
	}
}

func TestMissingFiltersOptional(t *testing.T) {
	statuses := []Status{
		{Name: "A", Available: false, Optional: false},
		{Name: "B", Available: false, Optional: true},
		{Name: "C", Available: true},
	}
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "A" {
		t.Fatalf("unexpected missing set: %#v", missing)
	}
}
