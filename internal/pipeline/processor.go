package pipeline

import (
	"github.com/staylens/core/internal/extract"
	"github.com/staylens/core/internal/keywords"
	"github.com/staylens/core/internal/source"
)

// Default keyword ranking parameters, matching the notification-template
// tuning: two-word English phrases, five per record.
const (
	DefaultKeywordLang  = "en"
	DefaultKeywordNgram = 2
	DefaultKeywordTopK  = 5
)

// Processor turns raw messages into review records. All extraction steps
// are pure and stateless between messages, so one Processor is safe for
// concurrent use; callers that parallelize must still preserve input order
// in their output.
type Processor struct {
	ranker keywords.Extractor
	topK   int
}

// NewProcessor creates a Processor with the given keyword ranker. A nil
// ranker gets the local frequency ranker with default parameters.
func NewProcessor(ranker keywords.Extractor, topK int) *Processor {
	if ranker == nil {
		ranker = keywords.NewLocal(DefaultKeywordLang, DefaultKeywordNgram)
	}
	if topK <= 0 {
		topK = DefaultKeywordTopK
	}
	return &Processor{ranker: ranker, topK: topK}
}

// Process extracts, segments, classifies and assembles one record from one
// raw message. Deterministic for a given message; no state is retained.
func (p *Processor) Process(msg source.RawMessage) Record {
	fields := extract.ExtractFields(msg.Subject, msg.Body)
	thread := extract.Thread(msg.Body)

	// Classification and keywords both read the review text when present,
	// else the whole body.
	text := fields.ReviewText
	if text == "" {
		text = msg.Body
	}
	hasSuggestion := extract.HasSuggestion(fields.Rating, text)
	kws := keywords.Phrases(p.ranker.Extract(text, p.topK))

	return Assemble(msg, fields, thread, kws, hasSuggestion)
}

// ProcessAll processes a batch in arrival order; output position i always
// corresponds to input message i.
func (p *Processor) ProcessAll(msgs []source.RawMessage) []Record {
	records := make([]Record, 0, len(msgs))
	for _, msg := range msgs {
		records = append(records, p.Process(msg))
	}
	return records
}
