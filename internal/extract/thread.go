package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Thread reconstruction: recover the customer-authored message segments from
// a body dominated by platform boilerplate. Tuned against one booking
// platform's notification template; the catalogs below are process-wide,
// compiled once and never mutated.

// ThreadSeparator joins accepted segments when a thread is serialized.
const ThreadSeparator = "\n\n---\n\n"

// minSegmentLength is the acceptance floor for a cleaned block. Genuine
// messages shorter than this are lost; precision over recall.
const minSegmentLength = 30

// profilesSplitPhrase marks the end of the review-published banner; when it
// occurs inside a block only the text after it is customer-authored.
const profilesSplitPhrase = "Now that you and your guest have both written reviews, we've posted them to your Airbnb profiles."

// Coarse block boundaries: blank-line runs and line-initial reply headers.
var blockSplitPattern = regexp.MustCompile(`(?m)(?:\n\s*\n|^On .+wrote:|^From:|^Sent:|^To:|^Subject:|^Date:)`)

// Promotional lead-in sentence stripped from the start of a block.
var leadInPattern = regexp.MustCompile(`(?i)^[A-Za-z]+ had great things to say about their stay[—-]read on for a snapshot of what they loved most\. Now that you and your guest have both written reviews, we've posted them to your Airbnb profiles\.\s*-*`)

// boilerplatePhrases is the catalog of platform boilerplate. A sub-block
// matching any entry is dropped; a cleaned block matching any entry is
// rejected outright.
var boilerplatePhrases = []string{
	`^[A-Za-z]+ had great things to say about their stay[—-]read on for a snapshot of what they loved most\. Now that you and your guest have both written reviews, we've posted them to your Airbnb profiles\.\s*-*`,
	`read on for a snapshot`,
	`keep hosting 5-star stays`,
	`get more 5-star reviews`,
	`add details guests will love`,
	`connect with other hosts`,
	`visit the airbnb community center`,
	`airbnb, inc\.`,
	`888 brannan st`,
	`san francisco, ca`,
	`write a response`,
	`overlook lux dome`,
	`looked like the photos`,
	`proactive`,
	`peaceful`,
	`special thanks`,
	`now that you and your guest have both written reviews`,
	`we've posted them to your airbnb profiles`,
	`https://`, // a block that is just a link
	`facebook.com/airbnb`,
	`instagram.com/airbnb`,
	`twitter.com/airbnb`,
	`10 min read`,
	`6 min read`,
	`%opentrack%`,
}

var boilerplatePattern = regexp.MustCompile(`(?i)` + strings.Join(boilerplatePhrases, "|"))

// Sub-block boundaries inside a coarse block.
var subBlockSplitPattern = regexp.MustCompile(`(?:\n---|\n)`)

// All-caps ratings banner, e.g. "JANE RATED THEIR STAY 5 STARS!".
var ratingsBannerPattern = regexp.MustCompile(`(?i)^[A-Z ]+RATED THEIR STAY \d STARS!?$`)

// Quoting markers, reply headers and sign-off phrases that disqualify a
// block from being a genuine customer message.
var signOffPattern = regexp.MustCompile(`(?i)^(on |from:|sent:|to:|subject:|date:|>|---|--|regards,|best,|cheers|thank you|sincerely|kind regards|warm regards|with appreciation|with gratitude|respectfully|faithfully|truly|appreciatively|cordially|love|take care|see you|goodbye|bye|ps|p.s.)`)

var bareURLPrefixPattern = regexp.MustCompile(`^https?://`)

var sentencePunctPattern = regexp.MustCompile(`[.!?]`)

// Message-thread URL shape used as a fallback when no genuine text survives.
var threadURLPattern = regexp.MustCompile(`https://www\.airbnb\.com/messages/thread/\d+`)

// Thread extracts the ordered customer-authored message segments from a
// body. When every block is boilerplate it falls back to the first
// message-thread URL as a single-element thread; nil means absent.
func Thread(body string) []string {
	if body == "" {
		return nil
	}

	var segments []string
	for _, block := range blockSplitPattern.Split(body, -1) {
		block = cleanThreadBlock(block)
		if acceptSegment(block) {
			segments = append(segments, block)
		}
	}
	if len(segments) > 0 {
		return segments
	}

	if url := threadURLPattern.FindString(body); url != "" {
		return []string{url}
	}
	return nil
}

// SerializeThread joins thread segments with the fixed separator. Returns
// "" for an absent thread.
func SerializeThread(segments []string) string {
	return strings.Join(segments, ThreadSeparator)
}

// cleanThreadBlock strips the promotional lead-in and everything before the
// profiles-published split phrase, then drops boilerplate sub-blocks and
// rejoins the survivors with single spaces.
func cleanThreadBlock(block string) string {
	block = strings.TrimSpace(block)
	block = strings.TrimSpace(leadInPattern.ReplaceAllString(block, ""))
	if i := strings.Index(block, profilesSplitPhrase); i >= 0 {
		block = strings.TrimLeft(block[i+len(profilesSplitPhrase):], " -–—")
	}

	var kept []string
	for _, sub := range subBlockSplitPattern.Split(block, -1) {
		sub = strings.TrimSpace(sub)
		if sub == "" || boilerplatePattern.MatchString(sub) {
			continue
		}
		if ratingsBannerPattern.MatchString(sub) {
			continue
		}
		kept = append(kept, sub)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// acceptSegment decides whether a cleaned block is a genuine customer
// message.
func acceptSegment(block string) bool {
	return utf8.RuneCountInString(block) > minSegmentLength &&
		!boilerplatePattern.MatchString(block) &&
		!signOffPattern.MatchString(block) &&
		!bareURLPrefixPattern.MatchString(block) &&
		sentencePunctPattern.MatchString(block)
}
