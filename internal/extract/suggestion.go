package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Implicit-suggestion classifier: flags reviews that pair a high rating with
// a buried improvement request ("great, but the wifi could be better").
// Deliberately conservative; it prefers missing a suggestion over flagging a
// neutral high-rating review.

// minSuggestionRating is the rating floor below which the classifier never
// fires.
const minSuggestionRating = 4

// Hard veto: an explicit "no issues" statement overrides every marker.
var noIssuePattern = regexp.MustCompile(`no (issues?|problems?)`)

// suggestionPatterns match lower-cased text. Ordered roughly by specificity;
// any single match flags the review.
var suggestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwish\b`),
	regexp.MustCompile(`\bit would be better if\b`),
	regexp.MustCompile(`\bit would help if\b`),
	regexp.MustCompile(`\bif only\b`),
	regexp.MustCompile(`\bexcept that\b`),
	// Contrastive marker followed by an improvement-related term.
	regexp.MustCompile(`\bbut\b.*(could|should|would|wasn't|isn't|not|problem|issue|improve|change)`),
	regexp.MustCompile(`\bhowever\b.*(could|should|would|wasn't|isn't|not|problem|issue|improve|change)`),
	// "recommend" only counts when followed by a complement or gerund.
	regexp.MustCompile(`\brecommend (that|to|you|adding|changing|improving|fixing|making|doing|considering|trying)\b`),
}

// HasSuggestion reports whether a review embeds an implicit improvement
// request. The rating is the literal digit string captured upstream; an
// unparsable rating counts as 0 and therefore never fires.
func HasSuggestion(rating, text string) bool {
	value, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		value = 0
	}
	if !(value >= minSuggestionRating) {
		return false
	}

	text = strings.ToLower(text)
	if noIssuePattern.MatchString(text) {
		return false
	}
	for _, pattern := range suggestionPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
