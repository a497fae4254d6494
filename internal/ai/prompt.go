package ai

import (
	"regexp"
	"sort"
	"strings"
)

const expansionSystemPrompt = "You generate a compact keyword bag to help a speech-to-text model correctly recognize technical terms and proper nouns.\n\n" +
	"Rules:\n" +
	"- Output ONLY a single line of comma-separated keywords.\n" +
	"- No sentences, no explanations, no numbering, no quotes, no brackets.\n" +
	"- Prefer: technical terms, proper names, acronyms, product/library names, datasets, version numbers.\n" +
	"- Avoid generic filler words. Avoid duplicates.\n" +
	"- 20–80 keywords total.\n" +
	"- If glossary terms are provided, include them verbatim (do NOT translate glossary terms)."

const translationSystemPrompt = "You are translating subtitle text.\n\n" +
	"Rules:\n" +
	"- Output ONLY the translated text. No preamble, no quotes, no extra commentary.\n" +
	"- Preserve line breaks exactly.\n" +
	"- Preserve tone and register (formal/informal) from the source.\n" +
	"- Keep proper nouns consistent; follow the glossary if provided.\n" +
	"- If target language is English, use British spelling."

var keywordSplitRE = regexp.MustCompile(`[,\n;\x{FF0C}]`)

// SanitizeKeywords cleans an AI-generated keyword string for whisper
// consumption: splits on common separators, strips markdown decoration and
// quotes, deduplicates case-insensitively, and caps the list length.
func SanitizeKeywords(text string, maxKeywords int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	seen := make(map[string]struct{})
	clean := make([]string, 0, maxKeywords)
	for _, raw := range keywordSplitRE.Split(text, -1) {
		keyword := strings.TrimSpace(raw)
		keyword = strings.Trim(keyword, `"'*-_`)
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		lower := strings.ToLower(keyword)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		clean = append(clean, keyword)
		if len(clean) >= maxKeywords {
			break
		}
	}
	return strings.Join(clean, ", ")
}

func buildExpansionPrompt(filename, userPrompt string, glossary map[string]string) string {
	var b strings.Builder
	b.WriteString("Video title / filename: ")
	b.WriteString(filename)
	b.WriteString("\n")
	if userPrompt != "" {
		b.WriteString("User context (optional): ")
		b.WriteString(userPrompt)
		b.WriteString("\n")
	}
	if len(glossary) > 0 {
		b.WriteString("\nGlossary terms (optional, verbatim; one per line):\n")
		b.WriteString(strings.Join(sortedKeys(glossary), "\n"))
	}
	return b.String()
}

func buildTranslationPrompt(text, targetLang string, glossary map[string]string) string {
	var b strings.Builder
	b.WriteString("Target language: ")
	b.WriteString(targetLang)
	b.WriteString("\n\n")
	if len(glossary) > 0 {
		b.WriteString("Glossary (optional, term = preferred translation):\n")
		for _, term := range sortedKeys(glossary) {
			b.WriteString(term)
			b.WriteString(" = ")
			b.WriteString(glossary[term])
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Text:\n")
	b.WriteString(text)
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
