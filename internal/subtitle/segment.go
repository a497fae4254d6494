package subtitle

import "strings"

// Segment is the atomic unit of a subtitle stream.
//
// A sequence of N segments must stay length N through every transformation;
// positional correspondence is the alignment mechanism between the original
// and translated streams. Index is assigned once at parse or transcription
// time and carried through transformations so dual emission can verify the
// correspondence instead of trusting list position alone.
type Segment struct {
	// Index is the stable 0-based position assigned when the segment was created.
	Index int
	// Start and End are offsets in seconds. End > Start for valid segments.
	Start float64
	End   float64
	// Text is the subtitle text for the interval. May be empty (silence) but
	// the segment itself is never dropped.
	Text string
	// Lines preserves the raw text lines as originally authored, so a source
	// line can be told apart from a previously baked translation line.
	Lines []string
}

// WithText returns a copy of the segment with replacement text. Timings,
// index, and raw lines are preserved.
func (s Segment) WithText(text string) Segment {
	s.Text = text
	return s
}

// IsEmpty reports whether the segment carries no visible text.
func (s Segment) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == ""
}

// JoinText concatenates the non-empty segment texts with a separator.
func JoinText(segments []Segment, sep string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, sep)
}
