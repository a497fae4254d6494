package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"subweave/internal/logging"
	"subweave/internal/services"
)

// CommandRunner executes an external binary. Tests inject fakes here.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Extractor converts video files to audio suitable for transcription.
// Output is mono 16 kHz PCM WAV, the format whisper handles best.
type Extractor struct {
	binary        string
	logger        *slog.Logger
	commandRunner CommandRunner
}

// NewExtractor creates an audio extractor using the given ffmpeg binary.
func NewExtractor(binary string, logger *slog.Logger) *Extractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Extractor{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "media"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner CommandRunner) {
	e.commandRunner = runner
}

// AudioPath returns the destination WAV path inside audioDir for a video.
func AudioPath(audioDir, videoPath string) string {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(audioDir, base+".wav")
}

// Extract writes the audio track of videoPath to audioPath. Existing output
// is reused so re-processing a video skips the ffmpeg run.
func (e *Extractor) Extract(ctx context.Context, videoPath, audioPath string) (cached bool, err error) {
	if info, statErr := os.Stat(audioPath); statErr == nil && !info.IsDir() && info.Size() > 0 {
		e.logger.Debug("reusing extracted audio", logging.String("audio", audioPath))
		return true, nil
	}
	if err := os.MkdirAll(filepath.Dir(audioPath), 0o755); err != nil {
		return false, services.Wrap(services.ErrTransient, "prepare", "extract audio", "create audio directory", err)
	}

	args := buildExtractArgs(videoPath, audioPath)
	e.logger.Debug("extracting audio",
		logging.String("video", videoPath),
		logging.String("audio", audioPath))
	if err := e.run(ctx, e.binary, args...); err != nil {
		return false, services.Wrap(services.ErrExternalTool, "prepare", "ffmpeg", "extract audio", err)
	}
	return false, nil
}

func (e *Extractor) run(ctx context.Context, name string, args ...string) error {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildExtractArgs(source, dest string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		dest,
	}
}
