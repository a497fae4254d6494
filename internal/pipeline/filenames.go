package pipeline

import (
	"path/filepath"
	"strings"

	"subweave/internal/language"
)

// BuildSRTName assembles an output filename from a base name and language
// tags: {base}.{src}.srt, {base}.{src}__{tgt}.srt, and with dual set,
// {base}.{src}__{tgt}.dual.srt.
func BuildSRTName(base, src, tgt string, dual bool) string {
	name := base
	switch {
	case src != "" && tgt != "":
		name = base + "." + src + "__" + tgt
	case src != "":
		name = base + "." + src
	}
	if dual {
		name += ".dual"
	}
	return name + ".srt"
}

// baseName strips the extension and the ".uploaded" marker some inputs carry.
func baseName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(base, ".uploaded")
}

// langTag renders a language code for filenames: lowercased, "_" replaced
// with "-", empty mapped to "unknown".
func langTag(code string) string {
	return language.FormatTag(code)
}
