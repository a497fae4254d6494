package opencc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"subweave/internal/logging"
	"subweave/internal/services"
	"subweave/internal/subtitle"
)

// Conversion modes map to opencc's bundled configs.
const (
	ModeToSimplified  = "t2s"
	ModeToTraditional = "s2t"
)

// ModeForSource returns the conversion mode matching a normalized source
// language code, or "" when no conversion applies.
func ModeForSource(normalized string) string {
	switch normalized {
	case "zh-cn":
		return ModeToSimplified
	case "zh-tw":
		return ModeToTraditional
	default:
		return ""
	}
}

// Converter shells out to opencc for script conversion.
type Converter struct {
	binary        string
	logger        *slog.Logger
	commandRunner func(ctx context.Context, input string, name string, args ...string) (string, error)
}

// NewConverter creates a converter using the given opencc binary name.
func NewConverter(binary string, logger *slog.Logger) *Converter {
	if binary == "" {
		binary = "opencc"
	}
	return &Converter{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "opencc"),
	}
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// receives stdin content and returns stdout content.
func (c *Converter) WithCommandRunner(runner func(ctx context.Context, input string, name string, args ...string) (string, error)) {
	c.commandRunner = runner
}

// Available reports whether the opencc binary can be found on PATH.
func (c *Converter) Available() bool {
	if c.commandRunner != nil {
		return true
	}
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// Convert runs a single text through opencc in the given mode.
func (c *Converter) Convert(ctx context.Context, text, mode string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	output, err := c.run(ctx, text, c.binary, "-c", mode+".json")
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "transcribe", "opencc", "script conversion failed", err)
	}
	return strings.TrimRight(output, "\n"), nil
}

// ConvertSegments converts every segment text, returning a slice of the same
// length with timing and indices untouched.
func (c *Converter) ConvertSegments(ctx context.Context, segments []subtitle.Segment, mode string) ([]subtitle.Segment, error) {
	converted := make([]subtitle.Segment, len(segments))
	for i, seg := range segments {
		text, err := c.Convert(ctx, seg.Text, mode)
		if err != nil {
			return nil, err
		}
		converted[i] = seg.WithText(text)
	}
	return converted, nil
}

func (c *Converter) run(ctx context.Context, input, name string, args ...string) (string, error) {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, input, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
