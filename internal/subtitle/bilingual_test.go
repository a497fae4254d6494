package subtitle

import "testing"

func bilingualSegments() []Segment {
	return []Segment{
		{Index: 0, Start: 1, End: 2, Text: "你好\nHello", Lines: []string{"你好", "Hello"}},
		{Index: 1, Start: 3, End: 4, Text: "世界\nWorld", Lines: []string{"世界", "World"}},
		{Index: 2, Start: 5, End: 6, Text: "再见\nGoodbye", Lines: []string{"再见", "Goodbye"}},
	}
}

func TestIsBilingual(t *testing.T) {
	if !IsBilingual(bilingualSegments()) {
		t.Error("expected bilingual detection for han/latin pairs")
	}
}

func TestIsBilingualMonolingual(t *testing.T) {
	segments := []Segment{
		{Index: 0, Lines: []string{"Hello", "there"}},
		{Index: 1, Lines: []string{"General", "Kenobi"}},
	}
	if IsBilingual(segments) {
		t.Error("same-script multi-line blocks should not count as bilingual")
	}
}

func TestIsBilingualBelowThreshold(t *testing.T) {
	segments := []Segment{
		{Index: 0, Lines: []string{"你好", "Hello"}},
		{Index: 1, Lines: []string{"just", "english"}},
		{Index: 2, Lines: []string{"more", "english"}},
	}
	// 1 hit out of 3 multi-line blocks is under the 0.6 threshold.
	if IsBilingual(segments) {
		t.Error("hit ratio below threshold should not be bilingual")
	}
}

func TestIsBilingualNoMultiLineBlocks(t *testing.T) {
	segments := []Segment{
		{Index: 0, Lines: []string{"single"}},
	}
	if IsBilingual(segments) {
		t.Error("single-line blocks cannot be bilingual")
	}
	if IsBilingual(nil) {
		t.Error("empty input cannot be bilingual")
	}
}

func TestExtractSourceBilingual(t *testing.T) {
	out := ExtractSource(bilingualSegments(), true)
	if len(out) != 3 {
		t.Fatalf("length = %d, want 3", len(out))
	}
	if out[0].Text != "Hello" || out[1].Text != "World" {
		t.Errorf("source extraction should take the last line: %q, %q", out[0].Text, out[1].Text)
	}
	if out[0].Start != 1 || out[0].End != 2 || out[0].Index != 0 {
		t.Errorf("timing/index not preserved: %+v", out[0])
	}
}

func TestExtractSourcePlain(t *testing.T) {
	segments := []Segment{{Index: 0, Start: 1, End: 2, Text: "  padded  ", Lines: []string{"padded"}}}
	out := ExtractSource(segments, false)
	if out[0].Text != "padded" {
		t.Errorf("text = %q, want trimmed original", out[0].Text)
	}
}
