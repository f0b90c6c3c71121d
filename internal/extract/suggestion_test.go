package extract

import "testing"

func TestHasSuggestion(t *testing.T) {
	tests := []struct {
		name   string
		rating string
		text   string
		want   bool
	}{
		{"contrastive marker", "5", "It was great but the wifi could be better", true},
		{"wish marker", "4", "I wish the pool had been open", true},
		{"however marker", "5", "Lovely stay, however the heating should be fixed", true},
		{"if only marker", "4", "If only the parking were closer", true},
		{"except that marker", "5", "Perfect except that the shower dripped", true},
		{"recommend with complement", "5", "I recommend adding a second set of keys", true},
		{"recommend without complement", "5", "I highly recommend this place", false},
		{"bare but without improvement term", "5", "Small place but very cozy overall", false},
		{"no issue veto", "5", "No issues at all, but the host could reply faster", false},
		{"no problems veto", "4", "We had no problems, I wish every stay was like this", false},
		{"rating below floor", "3", "I wish the pool had been open", false},
		{"rating exactly at floor", "4", "I wish the pool had been open", true},
		{"decimal rating parses", "4.5", "I wish the pool had been open", true},
		{"unparsable rating never fires", "", "I wish the pool had been open", false},
		{"garbage rating never fires", "five", "I wish the pool had been open", false},
		{"case insensitive matching", "5", "GREAT BUT THE WIFI COULD BE BETTER", true},
		{"empty text", "5", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasSuggestion(tt.rating, tt.text); got != tt.want {
				t.Errorf("HasSuggestion(%q, %q) = %v, want %v", tt.rating, tt.text, got, tt.want)
			}
		})
	}
}
