package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/nlp"
)

func TestNormalizeLabel(t *testing.T) {
	tests := map[string]string{
		"GPE":      "location",
		"LOC":      "location",
		"B-LOC":    "location",
		"I-PER":    "person",
		"PERSON":   "person",
		"ORG":      "organization",
		"DATE":     "date",
		"TIME":     "date",
		"MISC":     "misc",
		"MONEY":    "money",
		" B-ORG ":  "organization",
		"B-":       "b-",
		"CARDINAL": "cardinal",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, nlp.NormalizeLabel(input))
		})
	}
}
