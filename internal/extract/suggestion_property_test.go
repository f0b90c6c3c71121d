package extract

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: the classifier never fires below the rating floor, no matter
// what the review text says.

func TestProperty_SuggestionRatingFloor(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	lowRatingGen := gen.IntRange(0, 3)
	textGen := gen.OneConstOf(
		"I wish the pool had been open",
		"great but the wifi could be better",
		"however the heating should be fixed",
		"if only the parking were closer",
	)

	properties.Property("low_rating_never_flags", prop.ForAll(
		func(rating int, text string) bool {
			return !HasSuggestion(fmt.Sprintf("%d", rating), text)
		},
		lowRatingGen,
		textGen,
	))

	properties.Property("unparsable_rating_never_flags", prop.ForAll(
		func(text string) bool {
			return !HasSuggestion("", text) && !HasSuggestion("five", text)
		},
		textGen,
	))

	properties.TestingRun(t)
}

// Property: an explicit "no issues" statement vetoes every suggestion
// marker at any rating.

func TestProperty_SuggestionNoIssueVeto(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	ratingGen := gen.IntRange(4, 5)
	markerGen := gen.OneConstOf(
		"I wish the host replied faster",
		"good but the door could close better",
		"however the stove should be replaced",
	)

	properties.Property("no_issue_overrides_markers", prop.ForAll(
		func(rating int, marker string) bool {
			text := "No issues really. " + marker
			return !HasSuggestion(fmt.Sprintf("%d", rating), text)
		},
		ratingGen,
		markerGen,
	))

	properties.Property("classifier_deterministic", prop.ForAll(
		func(rating int, text string) bool {
			return HasSuggestion(fmt.Sprintf("%d", rating), text) ==
				HasSuggestion(fmt.Sprintf("%d", rating), text)
		},
		gen.IntRange(0, 9),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
