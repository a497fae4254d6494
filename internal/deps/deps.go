// Package deps checks the external tools the pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"subweave/internal/config"
)

// Requirement describes one external binary the pipeline needs.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the resolved availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Requirements lists the tools for the configured binaries. ffmpeg and
// whisper are mandatory; opencc only matters for Chinese script conversion.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Extracts transcription audio from video files",
		},
		{
			Name:        "Whisper",
			Command:     cfg.Whisper.Binary,
			Description: "Transcribes audio to timed segments",
		},
		{
			Name:        "OpenCC",
			Command:     cfg.OpenCCBinary(),
			Description: "Converts Chinese subtitles between scripts",
			Optional:    true,
		},
	}
}

// Check resolves each requirement on PATH.
func Check(requirements []Requirement) []Status {
	statuses := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		statuses = append(statuses, checkOne(req))
	}
	return statuses
}

func checkOne(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Available = true
	status.Path = path
	return status
}

// Missing returns the unavailable mandatory statuses.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
