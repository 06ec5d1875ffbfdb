// Package nlp holds the language collaborators of the annotation workflow:
// entity recognition, intent matching and the retrieval model behind test_bot.
package nlp

import (
	"context"
	"strings"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
)

// EntityRecognizer turns text into labelled entity spans.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]models.EntitySpan, error)
}

// RecognizerFunc adapts a function to EntityRecognizer.
type RecognizerFunc func(ctx context.Context, text string) ([]models.EntitySpan, error)

// Recognize calls f.
func (f RecognizerFunc) Recognize(ctx context.Context, text string) ([]models.EntitySpan, error) {
	return f(ctx, text)
}

// NoopRecognizer finds no entities.
type NoopRecognizer struct{}

// Recognize always returns an empty list.
func (NoopRecognizer) Recognize(context.Context, string) ([]models.EntitySpan, error) {
	return []models.EntitySpan{}, nil
}

// NormalizingRecognizer maps the labels of an inner recognizer through NormalizeLabel.
type NormalizingRecognizer struct {
	Inner EntityRecognizer
}

// Recognize runs the inner recognizer and normalises its output.
func (r NormalizingRecognizer) Recognize(ctx context.Context, text string) ([]models.EntitySpan, error) {
	spans, err := r.Inner.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}

	out := make([]models.EntitySpan, 0, len(spans))
	for _, span := range spans {
		span.Text = strings.TrimSpace(span.Text)
		if span.Text == "" {
			continue
		}
		span.Label = NormalizeLabel(span.Label)
		out = append(out, span)
	}
	return out, nil
}
