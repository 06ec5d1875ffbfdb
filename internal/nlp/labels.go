package nlp

import "strings"

// labelAliases maps recognizer labels onto the dashboard's entity vocabulary.
var labelAliases = map[string]string{
	"gpe":    "location",
	"loc":    "location",
	"org":    "organization",
	"date":   "date",
	"time":   "date",
	"person": "person",
	"per":    "person",
	"misc":   "misc",
}

// NormalizeLabel strips BIO prefixes and maps known labels to
// location, organization, date, person or misc. Unknown labels are lowercased.
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if len(label) > 2 && (label[:2] == "B-" || label[:2] == "I-" || label[:2] == "b-" || label[:2] == "i-") {
		label = label[2:]
	}

	lowered := strings.ToLower(label)
	if mapped, ok := labelAliases[lowered]; ok {
		return mapped
	}
	return lowered
}
