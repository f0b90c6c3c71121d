package pipeline

import (
	"github.com/staylens/core/internal/extract"
	"github.com/staylens/core/internal/source"
)

// Record is one assembled review record. The struct field order is the
// output allow-list: serialization emits fields in exactly this order,
// omits absent optional fields, and never emits anything else. ReviewLink
// and MessageThread are part of the wire contract as string-or-null, so
// they are always present. A Record is constructed once and never mutated.
type Record struct {
	From          *string  `json:"from,omitempty"`
	To            *string  `json:"to,omitempty"`
	Subject       *string  `json:"subject,omitempty"`
	Date          *string  `json:"date,omitempty"`
	Body          *string  `json:"body,omitempty"`
	CustomerName  *string  `json:"customer_name,omitempty"`
	Rating        *string  `json:"rating,omitempty"`
	Place         *string  `json:"place,omitempty"`
	ReviewText    *string  `json:"review_text,omitempty"`
	ReviewLink    *string  `json:"review_link"`
	Dates         *string  `json:"dates,omitempty"`
	Keywords      []string `json:"keywords"`
	HasSuggestion bool     `json:"has_suggestion"`
	MessageThread *string  `json:"message_thread"`
}

// AllowList is the fixed ordered set of field names permitted in the output
// projection.
var AllowList = []string{
	"from", "to", "subject", "date", "body",
	"customer_name", "rating", "place", "review_text", "review_link",
	"dates", "keywords", "has_suggestion", "message_thread",
}

// Assemble merges one raw message with its extraction outputs into an
// immutable Record. Empty-string extraction results become absent fields;
// a nil thread serializes as an explicit null.
func Assemble(msg source.RawMessage, fields extract.Fields, thread []string, kws []string, hasSuggestion bool) Record {
	if kws == nil {
		kws = []string{}
	}
	return Record{
		From:          optional(msg.From),
		To:            optional(msg.To),
		Subject:       optional(msg.Subject),
		Date:          optional(msg.Date),
		Body:          optional(msg.Body),
		CustomerName:  optional(fields.CustomerName),
		Rating:        optional(fields.Rating),
		Place:         optional(fields.Place),
		ReviewText:    optional(fields.ReviewText),
		ReviewLink:    optional(fields.ReviewLink),
		Dates:         optional(fields.Dates),
		Keywords:      kws,
		HasSuggestion: hasSuggestion,
		MessageThread: optionalThread(thread),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalThread(segments []string) *string {
	if len(segments) == 0 {
		return nil
	}
	joined := extract.SerializeThread(segments)
	return &joined
}
