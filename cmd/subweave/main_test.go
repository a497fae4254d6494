package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subweave/internal/runlog"
)

// writeTestConfig creates an isolated config whose directories live under a
// temp root, and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	return writeTestConfigIn(t, t.TempDir())
}

// writeTestConfigIn writes the config under root, for tests that need to
// inspect the files a command creates (or must not create).
func writeTestConfigIn(t *testing.T, root string) string {
	t.Helper()
	content := fmt.Sprintf(`[paths]
video_dir = %q
audio_dir = %q
transcript_dir = %q
log_dir = %q
glossary_path = %q
run_log_path = %q

[logging]
format = "console"
level = "error"
`,
		filepath.Join(root, "videos"),
		filepath.Join(root, "audios"),
		filepath.Join(root, "transcripts"),
		filepath.Join(root, "logs"),
		filepath.Join(root, "glossary.json"),
		filepath.Join(root, "runs.db"),
	)
	path := filepath.Join(root, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := runCommand(t, "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, name := range []string{"process", "translate", "watch", "glossary", "runs", "status", "verify", "config"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %q", name)
		}
	}
}

func TestGlossaryRoundTrip(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCommand(t, "--config", cfg, "glossary", "set", "LLM", "大语言模型")
	if err != nil {
		t.Fatalf("set failed: %v\n%s", err, out)
	}

	out, err = runCommand(t, "--config", cfg, "glossary", "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "LLM") || !strings.Contains(out, "大语言模型") {
		t.Errorf("list output missing term:\n%s", out)
	}

	out, err = runCommand(t, "--config", cfg, "glossary", "rm", "LLM")
	if err != nil {
		t.Fatalf("rm failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Removed 1") {
		t.Errorf("rm output = %q", out)
	}

	out, err = runCommand(t, "--config", cfg, "glossary", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Glossary is empty.") {
		t.Errorf("expected empty glossary, got:\n%s", out)
	}
}

func TestGlossaryImport(t *testing.T) {
	cfg := writeTestConfig(t)

	source := filepath.Join(t.TempDir(), "terms.txt")
	if err := os.WriteFile(source, []byte("API=接口\ncache=缓存\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", cfg, "glossary", "import", source)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 2 term(s)") {
		t.Errorf("import output = %q", out)
	}
}

func TestRunsEmpty(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCommand(t, "--config", cfg, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("unexpected runs output:\n%s", out)
	}
}

func TestRunsListsRecordedRun(t *testing.T) {
	root := t.TempDir()
	cfg := writeTestConfigIn(t, root)

	store, err := runlog.Open(filepath.Join(root, "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	run := &runlog.Run{
		ID:    "f00dfeedcafe4321",
		Input: "/videos/lecture.mp4",
		Mode:  runlog.ModeVideo,
		Model: "base",
	}
	if err := store.Create(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	run.Status = runlog.StatusCompleted
	run.Source = "en-GB"
	run.Target = "zh-CN"
	if err := store.Finish(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", cfg, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "f00dfeed") {
		t.Errorf("output missing shortened run ID:\n%s", out)
	}
	if !strings.Contains(out, "lecture.mp4") {
		t.Errorf("output missing input name:\n%s", out)
	}
	if !strings.Contains(out, "en-GB -> zh-CN") {
		t.Errorf("output missing language pair:\n%s", out)
	}
	if !strings.Contains(out, string(runlog.StatusCompleted)) {
		t.Errorf("output missing run status:\n%s", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	_, err = runCommand(t, "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestProcessRejectsMissingFile(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCommand(t, "--config", cfg, "process", filepath.Join(t.TempDir(), "absent.mp4"))
	if err == nil {
		t.Fatal("expected error for missing input video")
	}
}

func TestProcessRejectsUnknownModelBeforeStarting(t *testing.T) {
	root := t.TempDir()
	cfg := writeTestConfigIn(t, root)
	video := filepath.Join(t.TempDir(), "talk.mp4")
	if err := os.WriteFile(video, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", cfg, "process", video, "--model", "bogus")
	if err == nil {
		t.Fatalf("expected error for unknown model, got output:\n%s", out)
	}
	if !strings.Contains(err.Error(), `"bogus"`) || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("error = %q", err)
	}
	// Rejection must happen before any run is recorded.
	if _, statErr := os.Stat(filepath.Join(root, "runs.db")); !os.IsNotExist(statErr) {
		t.Errorf("run-log database should not exist after rejected model: %v", statErr)
	}
}
