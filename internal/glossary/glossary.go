package glossary

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Glossary maps a source term to its preferred target rendering.
type Glossary map[string]string

var (
	alnumRE      = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	wordSplitRE  = regexp.MustCompile(`[^\w]+`)
	camelSplitRE = regexp.MustCompile(`([a-z])([A-Z0-9])|([A-Z])([A-Z][a-z])`)
)

// filenameStopWords are tokens too generic to be useful topic hints.
var filenameStopWords = map[string]struct{}{
	"final": {}, "draft": {}, "v1": {}, "v2": {}, "v3": {},
	"video": {}, "audio": {}, "sub": {}, "subs": {},
}

// ParseText parses line-oriented glossary input. Blank lines and lines
// starting with # are ignored. Each remaining line needs a "->" or "="
// separator, checked in that order; an empty rendering falls back to the
// term itself.
func ParseText(text string) Glossary {
	result := Glossary{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var term, rendering string
		if idx := strings.Index(line, "->"); idx >= 0 {
			term, rendering = line[:idx], line[idx+2:]
		} else if idx := strings.Index(line, "="); idx >= 0 {
			term, rendering = line[:idx], line[idx+1:]
		} else {
			continue
		}
		term = strings.TrimSpace(term)
		rendering = strings.TrimSpace(rendering)
		if term == "" {
			continue
		}
		if rendering == "" {
			rendering = term
		}
		result[term] = rendering
	}
	return result
}

// Merge combines glossaries with later arguments taking precedence for the
// same term. Empty or whitespace-only terms are dropped.
func Merge(glossaries ...Glossary) Glossary {
	merged := Glossary{}
	for _, g := range glossaries {
		for term, rendering := range g {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			rendering = strings.TrimSpace(rendering)
			if rendering == "" {
				rendering = term
			}
			merged[term] = rendering
		}
	}
	return merged
}

// Apply substitutes glossary terms in text, longest terms first so shorter
// terms cannot shadow a longer match. Terms made up solely of ASCII
// alphanumerics match on word boundaries (case-insensitively when the term is
// fully lowercase); all other terms are literal substring replacements.
func Apply(text string, g Glossary) string {
	if text == "" || len(g) == 0 {
		return text
	}
	terms := make([]string, 0, len(g))
	for term := range g {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})

	for _, term := range terms {
		rendering := g[term]
		if !alnumRE.MatchString(term) {
			text = strings.ReplaceAll(text, term, rendering)
			continue
		}
		pattern := `\b` + regexp.QuoteMeta(term) + `\b`
		if term == strings.ToLower(term) {
			pattern = `(?i)` + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		text = re.ReplaceAllLiteralString(text, rendering)
	}
	return text
}

// InferFromFilename derives self-mapped topic keywords from a file name.
// Tokens are split on non-word characters and camel-case boundaries; pure
// numbers, short tokens, and stop words are dropped. The result is used as a
// hint bag for prompt expansion, not for substitution.
func InferFromFilename(name string) Glossary {
	if strings.TrimSpace(name) == "" {
		return Glossary{}
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	var tokens []string
	for _, chunk := range wordSplitRE.Split(base, -1) {
		if chunk == "" {
			continue
		}
		split := camelSplitRE.ReplaceAllString(chunk, "$1$3 $2$4")
		for _, part := range strings.Fields(split) {
			tokens = append(tokens, part)
		}
	}

	result := Glossary{}
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if len(token) < 2 {
			continue
		}
		if isDigits(token) {
			continue
		}
		if _, ok := filenameStopWords[strings.ToLower(token)]; ok {
			continue
		}
		result[token] = token
	}
	return result
}

// Terms returns the glossary terms in sorted order.
func (g Glossary) Terms() []string {
	terms := make([]string, 0, len(g))
	for term := range g {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
