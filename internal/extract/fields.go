package extract

import (
	"regexp"
	"strings"
)

// Field extractors for booking-platform review notification emails.
// Each extractor is a pure single-pass heuristic over subject and/or body
// text and returns "" when nothing matches. Absence is a normal, expected
// outcome for these templates, never an error.

const (
	// softBreak is a quoted-printable soft line break that survives into
	// decoded bodies of this template family.
	softBreak = "=20"
	// translationMarker starts the platform's machine-translation
	// disclaimer; review text is truncated before it.
	translationMarker = "Automatically translated from original message"
)

// Customer name patterns over the subject line, ordered by priority.
var customerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+)\s+wrote\s+you\s+a\s+review`),
	regexp.MustCompile(`(?i)(\w+)\s+left\s+a\s+\d+-star\s+review`),
}

// Rating patterns over the body, ordered by priority. The captured digit
// string is returned verbatim: out-of-range values are preserved, not
// clamped or rejected.
var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)-star\s+review`),
	regexp.MustCompile(`(?i)RATED THEIR STAY (\d+) STARS`),
}

var placePattern = regexp.MustCompile(`"([^"]+)"`)

// reviewTextPatterns is the priority cascade for locating the review body.
// Evaluation stops at the first pattern that matches at all, even if the
// captured block cleans down to nothing; the quoted/paragraph fallbacks
// then take over.
var reviewTextPatterns = []*regexp.Regexp{
	// Signature block ("Booker") followed by the review paragraph.
	regexp.MustCompile(`(?is)Booker\s*(?:=20)?\s*\n+([\s\S]+)`),
	// "OVERALL RATING N" header followed by the review line.
	regexp.MustCompile(`(?i)OVERALL RATING\s*\d+\s*\n([^\n]+)`),
	regexp.MustCompile(`(?i)OVERALL RATING \d+\s*([^\n]+)`),
	// Trailing non-quoted paragraph.
	regexp.MustCompile(`(?i)\n\n([^"\n]{5,})\n*$`),
	// Labeled review/comment blocks.
	regexp.MustCompile(`(?i)review(?:\s*text)?[:\-\s]+"?([^\n"]+)"?`),
	regexp.MustCompile(`(?i)comment[:\-\s]+"?([^\n"]+)"?`),
	regexp.MustCompile(`(?i)(?:review|feedback|comment)[^\n]*\n([^\n]{10,})`),
	// Long quoted substring after the ratings header.
	regexp.MustCompile(`(?is)FEEDBACK FROM THEIR STAY.*?"([^"]+)",`),
	// Bare long quoted substring.
	regexp.MustCompile(`(?is)"([^"]{10,})"`),
}

var quotedLongPattern = regexp.MustCompile(`(?s)"([^"]{10,})"`)

var datesPattern = regexp.MustCompile(`(\w+\s+\d+\s*[–-]\s*\d+(?:,\s*\d{4})?)`)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// CustomerName extracts the reviewer's first name from the subject line.
func CustomerName(subject string) string {
	for _, pattern := range customerNamePatterns {
		if m := pattern.FindStringSubmatch(subject); m != nil {
			return m[1]
		}
	}
	return ""
}

// Rating extracts the star rating from the body as its literal digit string.
func Rating(body string) string {
	for _, pattern := range ratingPatterns {
		if m := pattern.FindStringSubmatch(body); m != nil {
			return m[1]
		}
	}
	return ""
}

// Place extracts the listing name, which the template renders as the first
// double-quoted substring in the body.
func Place(body string) string {
	if m := placePattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// ReviewText extracts the customer's review text using the pattern cascade,
// falling back to the longest quoted substring and then the longest
// blank-line-delimited paragraph.
func ReviewText(body string) string {
	var text string
	for _, pattern := range reviewTextPatterns {
		if m := pattern.FindStringSubmatch(body); m != nil {
			text = cleanReviewBlock(m[1])
			break
		}
	}
	if text == "" {
		text = longestQuoted(body)
	}
	if text == "" {
		text = longestParagraph(body)
	}
	return text
}

// cleanReviewBlock trims a captured review block down to the first
// contiguous run of genuine lines: leading blank and soft-break lines are
// skipped, collection stops at the next blank or soft-break line, and a
// trailing translation disclaimer is cut off.
func cleanReviewBlock(block string) string {
	var kept []string
	started := false
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !started {
			if line != "" && line != softBreak {
				started = true
				kept = append(kept, line)
			}
			continue
		}
		if line == "" || line == softBreak {
			break
		}
		kept = append(kept, line)
	}
	text := strings.TrimSpace(strings.Join(kept, " "))
	if i := strings.Index(text, translationMarker); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	return text
}

// longestQuoted returns the longest double-quoted substring of at least 10
// characters. Earlier matches win ties.
func longestQuoted(body string) string {
	var longest string
	for _, m := range quotedLongPattern.FindAllStringSubmatch(body, -1) {
		if len(m[1]) > len(longest) {
			longest = m[1]
		}
	}
	return longest
}

// longestParagraph returns the longest blank-line-delimited paragraph longer
// than 10 characters. Earlier paragraphs win ties.
func longestParagraph(body string) string {
	var longest string
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.TrimSpace(p)
		if len(p) > 10 && len(p) > len(longest) {
			longest = p
		}
	}
	return longest
}

// Dates extracts the stay date range, e.g. "Jun 10 – 12" or "Jun 10 - 12, 2024".
func Dates(body string) string {
	if m := datesPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// ReviewLink picks the canonical review URL from the body: the first URL
// containing "review" (case-insensitive) wins, otherwise the first URL of
// any kind. Returns "" when the body has no URLs at all.
func ReviewLink(body string) string {
	urls := urlPattern.FindAllString(body, -1)
	if len(urls) == 0 {
		return ""
	}
	for _, url := range urls {
		if strings.Contains(strings.ToLower(url), "review") {
			return url
		}
	}
	return urls[0]
}

// Fields holds the independently optional outputs of the field extractors.
// An empty string means the field was absent from the message.
type Fields struct {
	CustomerName string
	Rating       string
	Place        string
	ReviewText   string
	Dates        string
	ReviewLink   string
}

// ExtractFields runs every field extractor over one message.
func ExtractFields(subject, body string) Fields {
	return Fields{
		CustomerName: CustomerName(subject),
		Rating:       Rating(body),
		Place:        Place(body),
		ReviewText:   ReviewText(body),
		Dates:        Dates(body),
		ReviewLink:   ReviewLink(body),
	}
}
