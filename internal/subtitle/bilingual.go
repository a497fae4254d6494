package subtitle

import (
	"strings"

	"subweave/internal/language"
)

// bilingualThreshold is the minimum ratio of multi-line blocks whose first
// and last lines classify to different known scripts for a file to be judged
// bilingual.
const bilingualThreshold = 0.6

// IsBilingual reports whether a parsed subtitle file already carries two
// languages per block. Only blocks with at least two raw lines participate.
func IsBilingual(segments []Segment) bool {
	hits := 0
	total := 0
	for _, seg := range segments {
		if len(seg.Lines) < 2 {
			continue
		}
		first := strings.TrimSpace(seg.Lines[0])
		last := strings.TrimSpace(seg.Lines[len(seg.Lines)-1])
		if first == "" || last == "" {
			continue
		}
		scriptA := language.DetectScript(first)
		scriptB := language.DetectScript(last)
		total++
		if scriptA != language.ScriptUnknown && scriptB != language.ScriptUnknown && scriptA != scriptB {
			hits++
		}
	}
	if total == 0 {
		return false
	}
	return float64(hits)/float64(total) >= bilingualThreshold
}

// ExtractSource returns the source-language rendition of each segment. For
// bilingual files the last line of each block is taken, matching the dual
// layout convention of translation first, original last. Output length always
// equals input length.
func ExtractSource(segments []Segment, bilingual bool) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if bilingual && len(seg.Lines) >= 2 {
			text = strings.TrimSpace(seg.Lines[len(seg.Lines)-1])
		}
		out = append(out, Segment{Index: seg.Index, Start: seg.Start, End: seg.End, Text: text})
	}
	return out
}
