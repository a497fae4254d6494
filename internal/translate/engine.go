package translate

import "context"

// Engine translates a single block of text.
type Engine interface {
	// Name identifies the engine in logs and run records.
	Name() string
	// Translate renders text from source into target. source may be empty
	// or "auto" for detection by the backend.
	Translate(ctx context.Context, text, source, target string) (string, error)
}
