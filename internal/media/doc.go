// Package media extracts audio tracks from video files with ffmpeg and
// validates incoming media paths before a pipeline run starts.
package media
