package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subweave/internal/services"
)

var allowedVideoExtensions = map[string]struct{}{
	".mp4": {},
	".avi": {},
	".mov": {},
	".mkv": {},
}

// ValidateVideoInput checks that a video path exists and carries a supported
// extension before a job starts.
func ValidateVideoInput(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := allowedVideoExtensions[ext]; !ok {
		return services.Wrap(services.ErrValidation, "input", "check video",
			fmt.Sprintf("unsupported video extension %q (mp4, avi, mov, mkv)", ext), nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "input", "check video", "video file not found", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, "input", "check video", "path is a directory", nil)
	}
	return nil
}

// ValidateSubtitleInput checks that a subtitle path exists and is an SRT file.
func ValidateSubtitleInput(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".srt") {
		return services.Wrap(services.ErrValidation, "input", "check subtitle", "subtitle file must be .srt", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "input", "check subtitle", "subtitle file not found", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, "input", "check subtitle", "path is a directory", nil)
	}
	return nil
}

// IsSupportedVideo reports whether the filename has an allowed video extension.
// Used by the directory watcher to filter events.
func IsSupportedVideo(path string) bool {
	_, ok := allowedVideoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
