package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"subweave/internal/services"
)

func TestConsoleHandlerRendersComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child := NewComponentLogger(logger, "pipeline")
	child.Info("stage complete", Args(String("stage", "transcribe"), Int("segments", 42))...)

	line := buf.String()
	if !strings.Contains(line, "INFO pipeline: stage complete") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "stage=transcribe") || !strings.Contains(line, "segments=42") {
		t.Errorf("missing attrs: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("done", Args(String("file", "my talk.mp4"))...)
	if !strings.Contains(buf.String(), `file="my talk.mp4"`) {
		t.Errorf("expected quoted value: %q", buf.String())
	}
}

func TestJSONHandlerFieldNames(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("slow translate", Args(Float64("seconds", 3.5))...)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record["level"] != "warn" {
		t.Errorf("level = %v", record["level"])
	}
	if record["msg"] != "slow translate" {
		t.Errorf("msg = %v", record["msg"])
	}
	if _, ok := record["ts"]; !ok {
		t.Error("missing ts field")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info record should be filtered: %q", buf.String())
	}
	logger.Error("shown")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Errorf("error record missing: %q", buf.String())
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := services.WithStage(services.WithJobID(context.Background(), "job-1"), "translate")
	WithContext(ctx, logger).Info("progress")

	line := buf.String()
	if !strings.Contains(line, "job_id=job-1") || !strings.Contains(line, "stage=translate") {
		t.Errorf("missing context fields: %q", line)
	}
}
