package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// record is one entry of the list-shaped JSON glossary format.
type record struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
}

// DecodeJSON decodes a JSON glossary. Two shapes are accepted, tried in
// order: a flat term-to-rendering map, then a list of {term, translation}
// records. The shape is decoded explicitly rather than sniffed at runtime.
func DecodeJSON(data []byte) (Glossary, error) {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err == nil {
		result := Glossary{}
		for term, rendering := range flat {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			result[term] = rendering
		}
		return result, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("glossary json: unsupported shape: %w", err)
	}
	result := Glossary{}
	for _, rec := range records {
		term := strings.TrimSpace(rec.Term)
		if term == "" {
			continue
		}
		rendering := strings.TrimSpace(rec.Translation)
		if rendering == "" {
			rendering = term
		}
		result[term] = rendering
	}
	return result, nil
}

// ParseFile loads a glossary file. JSON extensions delegate to the structured
// decoder; any other extension is treated as line-oriented text.
func ParseFile(path string) (Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsn":
		return DecodeJSON(data)
	default:
		return ParseText(string(data)), nil
	}
}
