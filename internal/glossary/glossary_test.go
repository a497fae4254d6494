package glossary

import (
	"testing"
)

func TestParseText(t *testing.T) {
	input := `# comment line

cat -> chat
dog = chien
bare ->
  spaced  ->  padded value
no separator here
`
	g := ParseText(input)
	tests := []struct {
		term     string
		expected string
	}{
		{"cat", "chat"},
		{"dog", "chien"},
		{"bare", "bare"}, // empty rendering falls back to term
		{"spaced", "padded value"},
	}
	for _, tt := range tests {
		if got := g[tt.term]; got != tt.expected {
			t.Errorf("ParseText()[%q] = %q, want %q", tt.term, got, tt.expected)
		}
	}
	if len(g) != 4 {
		t.Errorf("len = %d, want 4: %v", len(g), g)
	}
}

func TestParseTextArrowBeforeEquals(t *testing.T) {
	// "->" takes precedence over "=" when both appear.
	g := ParseText("a=b -> c=d")
	if got := g["a=b"]; got != "c=d" {
		t.Errorf("got %q, want %q", got, "c=d")
	}
}

func TestMergeLaterWins(t *testing.T) {
	a := Glossary{"term": "first", "only-a": "a"}
	b := Glossary{"term": "second"}
	c := Glossary{"term": "third", "  ": "dropped"}
	merged := Merge(a, b, c)
	if merged["term"] != "third" {
		t.Errorf("precedence: got %q, want third", merged["term"])
	}
	if merged["only-a"] != "a" {
		t.Errorf("only-a lost: %v", merged)
	}
	if len(merged) != 2 {
		t.Errorf("blank terms should be dropped: %v", merged)
	}
}

func TestMergeAssociative(t *testing.T) {
	a := Glossary{"x": "1"}
	b := Glossary{"x": "2", "y": "2"}
	c := Glossary{"y": "3"}
	left := Merge(Merge(a, b), c)
	flat := Merge(a, b, c)
	if len(left) != len(flat) {
		t.Fatalf("len mismatch: %v vs %v", left, flat)
	}
	for term, rendering := range flat {
		if left[term] != rendering {
			t.Errorf("term %q: %q vs %q", term, left[term], rendering)
		}
	}
}

func TestApplyWordBoundary(t *testing.T) {
	g := Glossary{"cat": "chat"}
	tests := []struct {
		input    string
		expected string
	}{
		{"category", "category"}, // no partial-word corruption
		{"the cat sat", "the chat sat"},
		{"Cat at the start", "chat at the start"}, // lowercase term matches case-insensitively
		{"concat", "concat"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Apply(tt.input, g); got != tt.expected {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestApplyCaseSensitiveWhenMixedCase(t *testing.T) {
	g := Glossary{"GPU": "graphics card"}
	if got := Apply("the gpu and the GPU", g); got != "the gpu and the graphics card" {
		t.Errorf("got %q", got)
	}
}

func TestApplyLongestFirst(t *testing.T) {
	g := Glossary{"neural net": "neural network", "net": "mesh"}
	if got := Apply("a neural net and a net", g); got != "a neural network and a mesh" {
		t.Errorf("got %q", got)
	}
}

func TestApplyLiteralForNonAlnumTerms(t *testing.T) {
	g := Glossary{"机器学习": "machine learning"}
	if got := Apply("我在学机器学习呢", g); got != "我在学machine learning呢" {
		t.Errorf("got %q", got)
	}
}

func TestApplyEmpty(t *testing.T) {
	if got := Apply("unchanged", nil); got != "unchanged" {
		t.Errorf("got %q", got)
	}
	if got := Apply("", Glossary{"a": "b"}); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestInferFromFilename(t *testing.T) {
	g := InferFromFilename("KubeCon2024_keynote_final_v2.mp4")
	for _, want := range []string{"Kube", "Con", "keynote"} {
		if _, ok := g[want]; !ok {
			t.Errorf("missing token %q in %v", want, g)
		}
	}
	for _, dropped := range []string{"final", "v2", "2024", "mp4"} {
		if _, ok := g[dropped]; ok {
			t.Errorf("token %q should be dropped: %v", dropped, g)
		}
	}
	for term, rendering := range g {
		if term != rendering {
			t.Errorf("inferred entries must be self-mapped: %q -> %q", term, rendering)
		}
	}
}

func TestInferFromFilenameEmpty(t *testing.T) {
	if g := InferFromFilename(""); len(g) != 0 {
		t.Errorf("got %v", g)
	}
}
