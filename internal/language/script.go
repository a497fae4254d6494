package language

// Script is a coarse writing-system classification used for bilingual block
// detection and for guessing the language of untagged subtitle text.
type Script string

const (
	ScriptHan      Script = "han"
	ScriptKana     Script = "kana"
	ScriptHangul   Script = "hangul"
	ScriptCyrillic Script = "cyrillic"
	ScriptLatin    Script = "latin"
	ScriptUnknown  Script = "unknown"
)

// DetectScript classifies text by counting code points per script range and
// returning the dominant one. Returns ScriptUnknown when nothing matches.
func DetectScript(text string) Script {
	counts := map[Script]int{}
	for _, r := range text {
		switch {
		case (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF):
			counts[ScriptHan]++
		case r >= 0x3040 && r <= 0x30FF:
			counts[ScriptKana]++
		case r >= 0xAC00 && r <= 0xD7AF:
			counts[ScriptHangul]++
		case r >= 0x0400 && r <= 0x04FF:
			counts[ScriptCyrillic]++
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			counts[ScriptLatin]++
		}
	}
	best := ScriptUnknown
	bestCount := 0
	for _, script := range []Script{ScriptHan, ScriptKana, ScriptHangul, ScriptCyrillic, ScriptLatin} {
		if counts[script] > bestCount {
			best = script
			bestCount = counts[script]
		}
	}
	return best
}

// DetectFromText guesses a language code from the dominant script of text.
// Returns "" when the script is unknown.
func DetectFromText(text string) string {
	switch DetectScript(text) {
	case ScriptKana:
		return "ja"
	case ScriptHangul:
		return "ko"
	case ScriptHan:
		return "zh-CN"
	case ScriptCyrillic:
		return "ru"
	case ScriptLatin:
		return "en"
	default:
		return ""
	}
}
