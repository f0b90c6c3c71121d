package keywords

import (
	"math"
	"reflect"
	"testing"
)

func TestLocalExtract(t *testing.T) {
	ranker := NewLocal("en", 2)

	got := ranker.Extract("the wifi wifi wifi was great great", 2)
	want := []string{"wifi", "great"}
	if !reflect.DeepEqual(Phrases(got), want) {
		t.Fatalf("Extract phrases = %v, want %v", Phrases(got), want)
	}
	// wifi appears 3 times among 8 candidates.
	if math.Abs(got[0].Score-3.0/8.0) > 1e-9 {
		t.Errorf("top score = %v, want %v", got[0].Score, 3.0/8.0)
	}
}

func TestLocalExtractStopWordsOnly(t *testing.T) {
	ranker := NewLocal("en", 2)
	if got := ranker.Extract("the of and to from", 5); got != nil {
		t.Errorf("Extract on stop words = %v, want nil", got)
	}
}

func TestLocalExtractNonEnglishSkipsFiltering(t *testing.T) {
	ranker := NewLocal("fr", 1)
	got := Phrases(ranker.Extract("le la le", 2))
	want := []string{"le", "la"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestLocalExtractTopKBounds(t *testing.T) {
	ranker := NewLocal("en", 1)

	if got := ranker.Extract("wonderful stay", 0); got != nil {
		t.Errorf("topK 0 = %v, want nil", got)
	}
	if got := ranker.Extract("", 5); got != nil {
		t.Errorf("empty text = %v, want nil", got)
	}
	if got := ranker.Extract("wonderful stay", 10); len(got) != 2 {
		t.Errorf("topK above candidate count = %d phrases, want 2", len(got))
	}
}

func TestLocalExtractDeterministic(t *testing.T) {
	ranker := NewLocal("en", 2)
	text := "clean house clean garden quiet street quiet night"
	first := Phrases(ranker.Extract(text, 5))
	for i := 0; i < 10; i++ {
		if got := Phrases(ranker.Extract(text, 5)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %v, earlier run = %v", i, got, first)
		}
	}
}

func TestNewLocalClampsNgram(t *testing.T) {
	if got := NewLocal("en", 0).MaxNgram; got != 1 {
		t.Errorf("MaxNgram = %d, want 1", got)
	}
}

func TestPhrases(t *testing.T) {
	if got := Phrases(nil); len(got) != 0 {
		t.Errorf("Phrases(nil) = %v, want empty", got)
	}
	got := Phrases([]Phrase{{Text: "a", Score: 1}, {Text: "b", Score: 0.5}})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Phrases = %v", got)
	}
}
