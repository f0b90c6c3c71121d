package extract

import (
	"reflect"
	"testing"
)

func TestThread(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			"genuine message kept, footer dropped",
			"Hi! Thanks for hosting us, the apartment was spotless and cozy.\n\nAirbnb, Inc.\n888 Brannan St",
			[]string{"Hi! Thanks for hosting us, the apartment was spotless and cozy."},
		},
		{
			"order preserved across blocks",
			"First we want to say the check-in process was seamless and quick.\n\nSecond, the neighborhood guide you left was incredibly helpful to us.",
			[]string{
				"First we want to say the check-in process was seamless and quick.",
				"Second, the neighborhood guide you left was incredibly helpful to us.",
			},
		},
		{
			"boilerplate lines dropped inside a block",
			"The house was wonderful and very clean throughout.\nWrite a response\nWe would definitely return next summer!",
			[]string{"The house was wonderful and very clean throughout. We would definitely return next summer!"},
		},
		{
			"ratings banner dropped",
			"JANE RATED THEIR STAY 5 STARS!\nEverything about the cottage exceeded our expectations.",
			[]string{"Everything about the cottage exceeded our expectations."},
		},
		{
			"text before profiles banner discarded",
			"Some header text. Now that you and your guest have both written reviews, we've posted them to your Airbnb profiles. — We absolutely loved our stay here, best host ever in town.",
			[]string{"We absolutely loved our stay here, best host ever in town."},
		},
		{
			"thread url fallback when all boilerplate",
			"Keep hosting 5-star stays with these tips.\n\nhttps://www.airbnb.com/messages/thread/12345",
			[]string{"https://www.airbnb.com/messages/thread/12345"},
		},
		{
			"all boilerplate without thread url",
			"Visit the Airbnb Community Center today.",
			nil,
		},
		{
			"too short rejected",
			"Great stay. Thanks!",
			nil,
		},
		{
			"sign-off prefix rejected",
			"Thank you so much for everything, we truly loved our stay here.",
			nil,
		},
		{
			"no sentence punctuation rejected",
			"a long enough run of words with no ending punctuation at all",
			nil,
		},
		{
			"bare url prefix rejected",
			"http://example.com/x plus enough text to pass thirty characters.",
			nil,
		},
		{
			"empty body",
			"",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Thread(tt.body); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Thread(%q) = %#v, want %#v", tt.body, got, tt.want)
			}
		})
	}
}

func TestSerializeThread(t *testing.T) {
	if got := SerializeThread(nil); got != "" {
		t.Errorf("SerializeThread(nil) = %q, want empty", got)
	}
	got := SerializeThread([]string{"first segment", "second segment"})
	want := "first segment\n\n---\n\nsecond segment"
	if got != want {
		t.Errorf("SerializeThread = %q, want %q", got, want)
	}
}
