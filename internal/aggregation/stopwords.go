package aggregation

import "strings"

// defaultStopwords are high-frequency English function words that carry no
// signal for the word-frequency maps.
var defaultStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"been": {}, "but": {}, "by": {}, "can": {}, "did": {}, "do": {},
	"does": {}, "for": {}, "from": {}, "had": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "it's": {}, "just": {}, "me": {},
	"my": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "our": {},
	"she": {}, "so": {}, "that": {}, "the": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "they": {}, "this": {}, "to": {}, "too": {},
	"up": {}, "us": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "which": {}, "who": {}, "will": {}, "with": {}, "would": {},
	"you": {}, "your": {},
}

func buildStopwords(words []string) map[string]struct{} {
	if words == nil {
		return defaultStopwords
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		// Tokens are lowercased before lookup, so the configured list
		// has to match that casing.
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
