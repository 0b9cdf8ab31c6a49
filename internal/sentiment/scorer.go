package sentiment

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/reviewlens/internal/models"
)

// ErrBlankText is returned when a review's text is empty or whitespace-only.
var ErrBlankText = errors.New("review text is empty or whitespace-only")

// keywordOverridePolarity is the polarity forced onto any text containing a
// fraud keyword. Strongly negative, but short of -1.0 so lexical nuance in
// the rest of the batch still spreads scores out.
const keywordOverridePolarity = -0.8

const (
	defaultPositiveThreshold = 0.1
	defaultNegativeThreshold = -0.1
	defaultMaxScoreLength    = 4000
)

// DefaultFraudKeywords are terms that flag a review as describing fraud or
// abuse regardless of its lexical polarity.
var DefaultFraudKeywords = []string{
	"scam", "scum", "useless", "fraud", "fake", "deceptive", "ripoff",
	"unresponsive", "broken", "glitch", "buggy", "crash", "malware",
	"phishing", "steal", "stolen", "lie", "lying", "cheat", "cheating",
	"misleading", "unreliable", "waste of time", "terrible", "horrible",
	"worst", "bad experience", "do not install", "uninstall", "delete",
	"warning", "beware", "deceitful", "untrustworthy",
}

// Config holds the scorer tunables. Nil thresholds mean the +0.1/-0.1
// defaults; a pointer to zero is an explicit zero threshold. Nil keywords
// mean DefaultFraudKeywords and a non-positive cutoff means 4000 runes.
type Config struct {
	PositiveThreshold *float64
	NegativeThreshold *float64
	FraudKeywords     []string
	MaxScoreLength    int
}

// Scorer assigns a VADER polarity and a sentiment class to review text,
// with a fraud-keyword override that outranks the lexical score.
type Scorer struct {
	analyzer       *govader.SentimentIntensityAnalyzer
	positive       float64
	negative       float64
	maxScoreLength int
	keywords       []string
}

// NewScorer builds a Scorer, applying the Config defaults.
func NewScorer(cfg Config) *Scorer {
	s := &Scorer{
		analyzer:       govader.NewSentimentIntensityAnalyzer(),
		positive:       defaultPositiveThreshold,
		negative:       defaultNegativeThreshold,
		maxScoreLength: defaultMaxScoreLength,
	}
	if cfg.PositiveThreshold != nil {
		s.positive = *cfg.PositiveThreshold
	}
	if cfg.NegativeThreshold != nil {
		s.negative = *cfg.NegativeThreshold
	}
	if cfg.MaxScoreLength > 0 {
		s.maxScoreLength = cfg.MaxScoreLength
	}

	keywords := cfg.FraudKeywords
	if keywords == nil {
		keywords = DefaultFraudKeywords
	}
	s.keywords = make([]string, len(keywords))
	for i, kw := range keywords {
		s.keywords[i] = strings.ToLower(kw)
	}

	return s
}

func RemoveLinks(input string) string {
	linkPattern := regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text

	urlPattern := regexp.MustCompile(`https?://\S+|www\.\S+`)
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// ConvertMarkdownToText reduces markdown to the bare words a lexical
// scorer can use: links go first, while the markdown syntax is still
// intact, then the rendered HTML is stripped of tags and entities.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)

	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	plainText = html.UnescapeString(plainText)

	return strings.Join(strings.Fields(plainText), " ")
}

// Score computes the polarity and sentiment class for one review text.
// Fraud keywords force a strongly negative polarity before thresholding.
// The full text is kept by the caller; only scoring sees the cutoff.
func (s *Scorer) Score(text string) (float64, models.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return 0, "", ErrBlankText
	}

	if runes := []rune(text); len(runes) > s.maxScoreLength {
		text = string(runes[:s.maxScoreLength])
	}

	var polarity float64
	if s.HasFraudKeyword(text) {
		polarity = keywordOverridePolarity
		// A negative threshold configured below the override would undo
		// the keyword verdict, so floor the polarity until it lands in
		// the negative bucket for any threshold above -1.
		if polarity >= s.negative {
			polarity = -1
		}
	} else {
		plainText := ConvertMarkdownToText(text)
		polarity = s.analyzer.PolarityScores(plainText).Compound
	}

	return polarity, s.classify(polarity), nil
}

func (s *Scorer) classify(polarity float64) models.Sentiment {
	switch {
	case polarity > s.positive:
		return models.SentimentPositive
	case polarity < s.negative:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// HasFraudKeyword reports whether text contains any configured fraud term.
func (s *Scorer) HasFraudKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range s.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DetectRiskKeywords returns every configured fraud term found in text, in
// configuration order, for "why was this flagged" evidence.
func (s *Scorer) DetectRiskKeywords(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, kw := range s.keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}
