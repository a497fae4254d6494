// Package glossary merges user-supplied term mappings from inline text,
// uploaded files, and the persisted store, and applies them to translated
// text with longest-match-first, word-boundary-aware substitution.
package glossary
