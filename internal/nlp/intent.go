package nlp

import (
	"strings"
	"unicode"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// IntentMatcher picks an intent for a sentence among dataset candidates.
type IntentMatcher interface {
	Match(sentence string, candidates []string) string
}

// IntentMatcherFunc adapts a function to IntentMatcher.
type IntentMatcherFunc func(sentence string, candidates []string) string

// Match calls f.
func (f IntentMatcherFunc) Match(sentence string, candidates []string) string {
	return f(sentence, candidates)
}

// KeywordMatcher returns the first candidate, in order, that contains any
// whitespace-separated token of the sentence, ignoring case. Containment is
// plain substring search, so short tokens match inside longer words.
type KeywordMatcher struct{}

// Match implements IntentMatcher. It returns "Unknown" when nothing matches.
func (KeywordMatcher) Match(sentence string, candidates []string) string {
	tokens := strings.Fields(strings.ToLower(sentence))
	if len(tokens) == 0 {
		return constants.UnknownIntent
	}

	for _, candidate := range candidates {
		lowered := strings.ToLower(candidate)
		for _, token := range tokens {
			if strings.Contains(lowered, token) {
				return candidate
			}
		}
	}
	return constants.UnknownIntent
}

// Hint is a named intent with the keywords that suggest it.
type Hint struct {
	Intent   string
	Keywords []string
}

// KeywordHints lists the dashboard's intent shortcuts in display order.
var KeywordHints = []Hint{
	{Intent: "book_flight", Keywords: []string{"book", "flight", "ticket", "plane"}},
	{Intent: "check_weather", Keywords: []string{"weather", "temperature", "rain", "forecast"}},
	{Intent: "find_restaurant", Keywords: []string{"restaurant", "food", "eat", "dinner", "lunch"}},
}

// ActiveHints returns the intents whose keywords appear as words of sentence, in hint order.
func ActiveHints(sentence string) []string {
	words := map[string]bool{}
	for _, w := range Words(sentence) {
		words[w] = true
	}

	var active []string
	for _, hint := range KeywordHints {
		for _, kw := range hint.Keywords {
			if words[kw] {
				active = append(active, hint.Intent)
				break
			}
		}
	}
	return active
}

// SuggestIntent returns the first active hint, or "" when none applies.
func SuggestIntent(sentence string) string {
	if active := ActiveHints(sentence); len(active) > 0 {
		return active[0]
	}
	return ""
}

// Words lowercases text and splits it on anything that is not a letter or digit.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
