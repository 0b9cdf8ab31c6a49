package classifier

import (
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9']+`)

// Tokenize lowercases text and splits it into alphanumeric tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Vectorizer maps review text onto fixed-size bag-of-words count vectors
// over the vocabulary of one batch. The vocabulary is sorted so vector
// layout is deterministic for a given batch.
type Vectorizer struct {
	terms []string
	index map[string]int
}

// NewVectorizer builds the batch vocabulary from every text it is given.
func NewVectorizer(texts []string) *Vectorizer {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			seen[tok] = struct{}{}
		}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	return &Vectorizer{terms: terms, index: index}
}

// VocabSize returns the number of distinct terms in the batch vocabulary.
func (v *Vectorizer) VocabSize() int { return len(v.terms) }

// Vectorize returns the term-count vector for one text. Out-of-vocabulary
// tokens are ignored (cannot happen for texts the vocabulary was built on).
func (v *Vectorizer) Vectorize(text string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, tok := range Tokenize(text) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	return vec
}
