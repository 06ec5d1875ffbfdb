package nlp

import (
	"fmt"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// NewRecognizer builds the recognizer selected by cfg. The returned close
// function releases model resources and is never nil.
func NewRecognizer(cfg *config.NLPSettings) (EntityRecognizer, func() error, error) {
	var (
		recognizer EntityRecognizer
		closeFn    = func() error { return nil }
	)

	switch cfg.Recognizer {
	case constants.RecognizerNone:
		recognizer = NoopRecognizer{}
	case constants.RecognizerHugot, "":
		hr, err := NewHugotRecognizer(cfg)
		if err != nil {
			return nil, nil, err
		}
		recognizer = hr
		closeFn = hr.Close
	default:
		return nil, nil, fmt.Errorf("unsupported entity recognizer: %s", cfg.Recognizer)
	}

	if cfg.LabelNormalization() {
		recognizer = NormalizingRecognizer{Inner: recognizer}
	}
	return recognizer, closeFn, nil
}
