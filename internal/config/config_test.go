package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WHISPER_MODEL", "")
	t.Setenv("CLEANUP_AFTER_PROCESS", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantVideos := filepath.Join(tempHome, ".local", "share", "subweave", "videos")
	if cfg.Paths.VideoDir != wantVideos {
		t.Fatalf("unexpected video dir: got %q want %q", cfg.Paths.VideoDir, wantVideos)
	}
	if cfg.Paths.RunLogPath != filepath.Join(tempHome, ".local", "share", "subweave", "runs.db") {
		t.Fatalf("unexpected run log path: %q", cfg.Paths.RunLogPath)
	}
	if cfg.Whisper.Model != "base" {
		t.Fatalf("unexpected whisper model: %q", cfg.Whisper.Model)
	}
	if cfg.Whisper.Binary != "whisper" {
		t.Fatalf("unexpected whisper binary: %q", cfg.Whisper.Binary)
	}
	if cfg.Translate.BaseURL == "" {
		t.Fatal("expected baseline translate URL default")
	}
	if cfg.Workflow.CleanupAfterProcess {
		t.Fatal("expected cleanup disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.VideoDir, cfg.Paths.AudioDir, cfg.Paths.TranscriptDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subweave.toml")

	body := `
[whisper]
model = "Small"

[ai]
provider = "Gemini"
api_key = "from-file"

[workflow]
cleanup_after_process = true

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != configPath {
		t.Fatalf("resolved = %q, want %q", resolved, configPath)
	}
	if cfg.Whisper.Model != "small" {
		t.Fatalf("whisper model = %q", cfg.Whisper.Model)
	}
	if cfg.AI.Provider != "gemini" {
		t.Fatalf("ai provider = %q", cfg.AI.Provider)
	}
	if cfg.AI.APIKey != "from-file" {
		t.Fatalf("ai api key = %q", cfg.AI.APIKey)
	}
	if !cfg.Workflow.CleanupAfterProcess {
		t.Fatal("expected cleanup enabled")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WHISPER_MODEL", "medium")
	t.Setenv("CLEANUP_AFTER_PROCESS", "true")
	t.Setenv("SUBWEAVE_AI_API_KEY", "env-key")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Whisper.Model != "medium" {
		t.Fatalf("whisper model = %q", cfg.Whisper.Model)
	}
	if !cfg.Workflow.CleanupAfterProcess {
		t.Fatal("expected cleanup enabled via env")
	}
	if cfg.AI.APIKey != "env-key" {
		t.Fatalf("ai api key = %q", cfg.AI.APIKey)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"whisper model", "[whisper]\nmodel = \"enormous\"\n"},
		{"ai provider", "[ai]\nprovider = \"claude\"\n"},
		{"log level", "[logging]\nlevel = \"trace\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "subweave.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestIsAllowedWhisperModel(t *testing.T) {
	for _, model := range []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3"} {
		if !config.IsAllowedWhisperModel(model) {
			t.Errorf("model %q should be allowed", model)
		}
	}
	for _, model := range []string{"", "Base", "enormous", "large-v4"} {
		if config.IsAllowedWhisperModel(model) {
			t.Errorf("model %q should be rejected", model)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("sample config is empty")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Whisper.Model != "base" {
		t.Fatalf("sample should keep defaults, got model %q", cfg.Whisper.Model)
	}
}
