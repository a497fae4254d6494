package subtitle

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var blockSplitRE = regexp.MustCompile(`\n\s*\n`)

// ParseTimestamp converts an SRT timestamp of the form HH:MM:SS,mmm to
// seconds. A period is accepted in place of the comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatTimestamp renders seconds in the SRT HH:MM:SS,mmm form.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	millis := int(math.Round((seconds - math.Floor(seconds)) * 1000))
	if millis >= 1000 {
		millis -= 1000
		secs++
		if secs >= 60 {
			secs -= 60
			minutes++
			if minutes >= 60 {
				minutes -= 60
				hours++
			}
		}
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Parse splits raw SRT content into segments. Blocks without a parseable
// timing line are dropped. Both the classic 3-line form (leading numeric
// index) and the 2-line form without it are accepted. Raw text lines are
// preserved on each segment for downstream bilingual detection.
func Parse(content string) []Segment {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return nil
	}

	var segments []Segment
	for _, block := range blockSplitRE.Split(content, -1) {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, strings.TrimRight(line, " \t"))
			}
		}
		if len(lines) < 2 {
			continue
		}

		var timeLine string
		var textLines []string
		if strings.Contains(lines[0], "-->") {
			timeLine = lines[0]
			textLines = lines[1:]
		} else {
			if len(lines) < 3 {
				continue
			}
			timeLine = lines[1]
			textLines = lines[2:]
		}
		if !strings.Contains(timeLine, "-->") {
			continue
		}

		parts := strings.SplitN(timeLine, "-->", 2)
		start, errStart := ParseTimestamp(parts[0])
		end, errEnd := ParseTimestamp(parts[1])
		if errStart != nil || errEnd != nil {
			continue
		}

		segments = append(segments, Segment{
			Index: len(segments),
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(strings.Join(textLines, "\n")),
			Lines: textLines,
		})
	}
	return segments
}

// ParseFile reads and parses an SRT file.
func ParseFile(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return Parse(string(data)), nil
}

// Render serializes segments as SRT text with 1-based sequential indices and
// a trailing blank line after the final entry.
func Render(segments []Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte('\n')
		sb.WriteString(FormatTimestamp(seg.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(seg.End))
		sb.WriteByte('\n')
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// WriteFile serializes segments to an SRT file.
func WriteFile(segments []Segment, path string) error {
	if err := os.WriteFile(path, []byte(Render(segments)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// RenderDual serializes a bilingual SRT: translated text on the first line,
// original text on the second, using the original segment's timing. The two
// sequences must be positionally aligned; a length or index mismatch is an
// error rather than a silent truncation.
func RenderDual(original, translated []Segment) (string, error) {
	if len(original) != len(translated) {
		return "", fmt.Errorf("dual srt: segment count mismatch: %d original, %d translated", len(original), len(translated))
	}
	var sb strings.Builder
	for i := range original {
		if original[i].Index != translated[i].Index {
			return "", fmt.Errorf("dual srt: segment %d: index mismatch (%d vs %d)", i, original[i].Index, translated[i].Index)
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte('\n')
		sb.WriteString(FormatTimestamp(original[i].Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(original[i].End))
		sb.WriteByte('\n')
		sb.WriteString(strings.TrimSpace(translated[i].Text))
		sb.WriteByte('\n')
		sb.WriteString(strings.TrimSpace(original[i].Text))
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

// WriteDualFile serializes a bilingual SRT to a file.
func WriteDualFile(original, translated []Segment, path string) error {
	content, err := RenderDual(original, translated)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write dual srt: %w", err)
	}
	return nil
}
