package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Chinese region subtags that pin a script when no explicit script marker is present.
var (
	traditionalRegions = map[string]struct{}{"tw": {}, "hk": {}, "mo": {}}
	simplifiedRegions  = map[string]struct{}{"cn": {}, "sg": {}}
)

// Normalize returns the canonical comparison form of a language tag.
//
// Empty input normalizes to "" (unknown). Chinese tags collapse to zh-tw,
// zh-cn, or bare zh depending on script and region markers. English variants
// collapse to en. Everything else reduces to the primary subtag.
func Normalize(code string) string {
	code = canonTag(code)
	if code == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(code, "zh"):
		script, region := zhScriptRegion(code)
		if script == "hant" {
			return "zh-tw"
		}
		if _, ok := traditionalRegions[region]; ok {
			return "zh-tw"
		}
		if script == "hans" {
			return "zh-cn"
		}
		if _, ok := simplifiedRegions[region]; ok {
			return "zh-cn"
		}
		return "zh"
	case strings.HasPrefix(code, "en"):
		return "en"
	}
	if idx := strings.IndexByte(code, '-'); idx >= 0 {
		return code[:idx]
	}
	return code
}

// ResolveAutoTarget applies the auto target policy for a resolved source code.
//
// Policy table (documented verbatim for testability):
//
//	zh-cn -> en-GB
//	en    -> zh-CN
//	other -> en-GB
func ResolveAutoTarget(source string) string {
	switch Normalize(source) {
	case "zh-cn":
		return "en-GB"
	case "en":
		return "zh-CN"
	default:
		return "en-GB"
	}
}

// ResolveAutoSource maps an engine-detected language to the effective source
// used for the rest of the run. Bare Chinese defaults to Simplified.
func ResolveAutoSource(detected string) string {
	if strings.TrimSpace(detected) == "" {
		return ""
	}
	switch Normalize(detected) {
	case "zh", "zh-cn":
		return "zh-CN"
	case "en":
		return "en-GB"
	default:
		return detected
	}
}

// EngineHint reduces a user-facing language tag to the hint accepted by the
// speech-to-text engine. Empty or "auto" means no constraint.
func EngineHint(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, "auto") {
		return ""
	}
	norm := Normalize(code)
	if strings.HasPrefix(norm, "zh") {
		return "zh"
	}
	if norm == "en" {
		return "en"
	}
	if idx := strings.IndexByte(code, '-'); idx >= 0 {
		return strings.ToLower(code[:idx])
	}
	return strings.ToLower(code)
}

// FormatTag renders a language code as a filename-safe lowercase tag.
// Unknown codes render as "unknown".
func FormatTag(code string) string {
	tag := canonTag(code)
	if tag == "" {
		return "unknown"
	}
	return tag
}

func canonTag(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, "_", "-")
	return strings.ToLower(code)
}

// zhScriptRegion extracts the explicit script and region markers from a
// Chinese tag. BCP-47 parsing is tried first; confidence must be Exact so
// inferred defaults (bare "zh" parses with an implied Hans script) do not
// count as markers. Unparseable tags fall back to subtag scanning.
func zhScriptRegion(code string) (script, region string) {
	if tag, err := language.Parse(code); err == nil {
		if s, conf := tag.Script(); conf == language.Exact {
			script = strings.ToLower(s.String())
		}
		if r, conf := tag.Region(); conf == language.Exact {
			region = strings.ToLower(r.String())
		}
		if script != "" || region != "" {
			return script, region
		}
	}
	for _, part := range strings.Split(code, "-")[1:] {
		switch part {
		case "hant", "hans":
			script = part
		case "tw", "hk", "mo", "cn", "sg":
			region = part
		}
	}
	return script, region
}
