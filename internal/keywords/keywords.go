package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Phrase is a ranked key phrase.
type Phrase struct {
	Text  string
	Score float64
}

// Extractor ranks the key phrases of a piece of text, relevance descending.
// The pipeline treats the ranker as a black box; implementations must be
// safe for concurrent use.
type Extractor interface {
	Extract(text string, topK int) []Phrase
}

// Local is a frequency-based n-gram ranker. It is the shipped Extractor
// implementation; a phrase's score is its occurrence count normalized by the
// total candidate count.
type Local struct {
	// Lang selects the stop-word list; only "en" ships a list, other
	// codes disable stop-word filtering.
	Lang string
	// MaxNgram is the longest phrase length in words.
	MaxNgram int
}

// NewLocal returns a Local ranker with the given language and maximum
// phrase length. MaxNgram values below 1 are treated as 1.
func NewLocal(lang string, maxNgram int) *Local {
	if maxNgram < 1 {
		maxNgram = 1
	}
	return &Local{Lang: lang, MaxNgram: maxNgram}
}

var wordPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z'-]*`)

// Extract ranks up to topK phrases by frequency, breaking ties by first
// occurrence so output is deterministic for a given input.
func (l *Local) Extract(text string, topK int) []Phrase {
	if text == "" || topK <= 0 {
		return nil
	}

	words := l.tokenize(text)
	if len(words) == 0 {
		return nil
	}

	type candidate struct {
		count int
		first int
	}
	counts := make(map[string]*candidate)
	total := 0
	position := 0
	for n := 1; n <= l.MaxNgram; n++ {
		for i := 0; i+n <= len(words); i++ {
			gram := words[i : i+n]
			if l.skipGram(gram) {
				continue
			}
			phrase := strings.Join(gram, " ")
			if c, ok := counts[phrase]; ok {
				c.count++
			} else {
				counts[phrase] = &candidate{count: 1, first: position}
			}
			total++
			position++
		}
	}
	if total == 0 {
		return nil
	}

	phrases := make([]Phrase, 0, len(counts))
	firsts := make(map[string]int, len(counts))
	for phrase, c := range counts {
		phrases = append(phrases, Phrase{Text: phrase, Score: float64(c.count) / float64(total)})
		firsts[phrase] = c.first
	}
	sort.SliceStable(phrases, func(i, j int) bool {
		if phrases[i].Score != phrases[j].Score {
			return phrases[i].Score > phrases[j].Score
		}
		return firsts[phrases[i].Text] < firsts[phrases[j].Text]
	})

	if len(phrases) > topK {
		phrases = phrases[:topK]
	}
	return phrases
}

// tokenize lower-cases and splits the text into word tokens.
func (l *Local) tokenize(text string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, w := range raw {
		if len(w) >= 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// skipGram drops candidates that begin or end with a stop word, and
// single-word candidates that are stop words or too short to carry meaning.
func (l *Local) skipGram(gram []string) bool {
	if l.Lang != "en" {
		return false
	}
	if len(gram) == 1 {
		return len(gram[0]) < 3 || stopWords[gram[0]]
	}
	return stopWords[gram[0]] || stopWords[gram[len(gram)-1]]
}

// Phrases returns just the ordered phrase texts, the only part of the
// ranking the record pipeline consumes.
func Phrases(ranked []Phrase) []string {
	out := make([]string, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, p.Text)
	}
	return out
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "you": true, "your": true, "we": true,
	"our": true, "they": true, "their": true, "he": true, "she": true,
	"as": true, "so": true, "not": true, "no": true, "very": true,
}
