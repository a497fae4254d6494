package translate

import (
	"context"
	"log/slog"
	"strings"

	"subweave/internal/glossary"
	"subweave/internal/logging"
	"subweave/internal/subtitle"
)

// Progress reports per-segment translation progress.
type Progress func(current, total int)

// Translator runs segment translation through an engine chain.
type Translator struct {
	engines  []Engine
	glossary glossary.Glossary
	logger   *slog.Logger
}

// New builds a translator. Engines are tried in order for every segment.
func New(gloss glossary.Glossary, logger *slog.Logger, engines ...Engine) *Translator {
	return &Translator{
		engines:  engines,
		glossary: gloss,
		logger:   logging.NewComponentLogger(logger, "translate"),
	}
}

// TranslateSegments translates every segment into target, preserving timing,
// index, and slice length. Empty segments pass through untouched; a segment
// that every engine fails on keeps its original text. progress fires once per
// segment, including skipped ones.
func (t *Translator) TranslateSegments(ctx context.Context, segments []subtitle.Segment, source, target string, progress Progress) []subtitle.Segment {
	total := len(segments)
	translated := make([]subtitle.Segment, total)

	for i, seg := range segments {
		translated[i] = seg

		text := strings.TrimSpace(seg.Text)
		if text == "" {
			if progress != nil {
				progress(i+1, total)
			}
			continue
		}

		if result, ok := t.translateOne(ctx, text, source, target, seg.Index); ok {
			translated[i] = seg.WithText(glossary.Apply(result, t.glossary))
		}
		if progress != nil {
			progress(i+1, total)
		}
	}
	return translated
}

func (t *Translator) translateOne(ctx context.Context, text, source, target string, index int) (string, bool) {
	for _, engine := range t.engines {
		result, err := engine.Translate(ctx, text, source, target)
		if err != nil {
			t.logger.Warn("engine failed for segment",
				logging.String("engine", engine.Name()),
				logging.Int("segment", index),
				logging.Error(err))
			continue
		}
		result = strings.TrimSpace(result)
		if result == "" {
			continue
		}
		return result, true
	}
	t.logger.Warn("all engines failed, keeping original text",
		logging.Int("segment", index))
	return "", false
}
