package language

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Chinese variants
		{"zh", "zh"},
		{"zh-CN", "zh-cn"},
		{"zh-SG", "zh-cn"},
		{"zh-Hans", "zh-cn"},
		{"zh-Hans-CN", "zh-cn"},
		{"zh-TW", "zh-tw"},
		{"zh-HK", "zh-tw"},
		{"zh-MO", "zh-tw"},
		{"zh-Hant", "zh-tw"},
		{"zh-Hant-TW", "zh-tw"},
		{"ZH_TW", "zh-tw"},
		// English collapses
		{"en", "en"},
		{"en-US", "en"},
		{"en-GB", "en"},
		{"EN-us", "en"},
		// Primary subtag fallback
		{"ja-JP", "ja"},
		{"ko", "ko"},
		{"pt-BR", "pt"},
		{"ru_RU", "ru"},
		// Unknown
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveAutoTarget(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"zh-CN", "en-GB"},
		{"zh-Hans", "en-GB"},
		{"en", "zh-CN"},
		{"en-GB", "zh-CN"},
		{"fr", "en-GB"},
		{"", "en-GB"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := ResolveAutoTarget(tt.source); got != tt.expected {
				t.Errorf("ResolveAutoTarget(%q) = %q, want %q", tt.source, got, tt.expected)
			}
		})
	}
}

func TestResolveAutoSource(t *testing.T) {
	tests := []struct {
		detected string
		expected string
	}{
		{"zh", "zh-CN"},
		{"zh-CN", "zh-CN"},
		{"en", "en-GB"},
		{"ja", "ja"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.detected, func(t *testing.T) {
			if got := ResolveAutoSource(tt.detected); got != tt.expected {
				t.Errorf("ResolveAutoSource(%q) = %q, want %q", tt.detected, got, tt.expected)
			}
		})
	}
}

func TestEngineHint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"auto", ""},
		{"zh-CN", "zh"},
		{"zh-Hant-TW", "zh"},
		{"en-GB", "en"},
		{"ja-JP", "ja"},
		{"fr", "fr"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EngineHint(tt.input); got != tt.expected {
				t.Errorf("EngineHint(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"en-GB", "en-gb"},
		{"zh_CN", "zh-cn"},
		{" ja ", "ja"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatTag(tt.input); got != tt.expected {
				t.Errorf("FormatTag(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetectScript(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Script
	}{
		{"han", "你好世界", ScriptHan},
		{"kana", "こんにちは", ScriptKana},
		{"hangul", "안녕하세요", ScriptHangul},
		{"cyrillic", "привет", ScriptCyrillic},
		{"latin", "hello there", ScriptLatin},
		{"digits only", "12345", ScriptUnknown},
		{"empty", "", ScriptUnknown},
		{"mixed favors majority", "hello 你", ScriptLatin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectScript(tt.text); got != tt.expected {
				t.Errorf("DetectScript(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestDetectFromText(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"你好世界", "zh-CN"},
		{"こんにちは", "ja"},
		{"안녕하세요", "ko"},
		{"привет мир", "ru"},
		{"hello world", "en"},
		{"12345", ""},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := DetectFromText(tt.text); got != tt.expected {
				t.Errorf("DetectFromText(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}
