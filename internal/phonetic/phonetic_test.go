package phonetic_test

import (
	"testing"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/phonetic"
	"github.com/clarionvoice/clarion/internal/scoring"
)

func sentenceFixture() catalog.Sentence {
	return catalog.Sentence{
		ID:          8,
		Text:        "Red lorry, yellow lorry, red lorry, yellow lorry.",
		Difficulty:  catalog.DifficultyHard,
		PhonemeTags: []string{"L/R", "Rhythm"},
	}
}

func TestAnalyze_PerfectTranscript(t *testing.T) {
	t.Parallel()
	a := phonetic.New()
	sentence := sentenceFixture()

	got := a.Analyze(sentence, "red lorry yellow lorry red lorry yellow lorry")
	if got.SentenceID != 8 {
		t.Errorf("sentence id = %d, want 8", got.SentenceID)
	}
	if len(got.Observations) != 2 {
		t.Fatalf("observations = %d, want one per tag", len(got.Observations))
	}
	for _, obs := range got.Observations {
		if obs.Accuracy != 100 {
			t.Errorf("%s accuracy = %d, want 100 for a verbatim transcript", obs.Phoneme, obs.Accuracy)
		}
		if obs.Issue != "" {
			t.Errorf("%s should carry no issue, got %q", obs.Phoneme, obs.Issue)
		}
	}
}

func TestAnalyze_EmptyTranscript(t *testing.T) {
	t.Parallel()
	a := phonetic.New()
	got := a.Analyze(sentenceFixture(), "")
	if len(got.Observations) != 0 {
		t.Errorf("empty transcript should yield no observations, got %v", got.Observations)
	}
}

func TestAnalyze_ConfusedLiquidsScoreLower(t *testing.T) {
	t.Parallel()
	a := phonetic.New()
	sentence := sentenceFixture()

	perfect := a.Analyze(sentence, "red lorry yellow lorry red lorry yellow lorry")
	// An L/R learner rendition: liquids swapped throughout.
	confused := a.Analyze(sentence, "led lolly yellow lolly led lolly yellow lolly")

	perfectLR := observationFor(t, perfect.Observations, "L/R")
	confusedLR := observationFor(t, confused.Observations, "L/R")

	if confusedLR.Accuracy >= perfectLR.Accuracy {
		t.Errorf("confused accuracy %d should be below perfect %d", confusedLR.Accuracy, perfectLR.Accuracy)
	}
}

func TestAnalyze_GarbledTranscriptCarriesIssue(t *testing.T) {
	t.Parallel()
	a := phonetic.New()
	sentence := catalog.Sentence{
		ID:          7,
		Text:        "It's much warmer than I expected.",
		PhonemeTags: []string{"TH"},
	}

	got := a.Analyze(sentence, "zzz bzz vvv grk")
	obs := observationFor(t, got.Observations, "TH")
	if obs.Accuracy >= 70 {
		t.Errorf("accuracy = %d, want below 70 for a garbled transcript", obs.Accuracy)
	}
	if obs.Issue == "" {
		t.Error("low accuracy should carry an issue description")
	}
}

func TestAnalyze_PhoneticVariantBeatsUnrelatedWord(t *testing.T) {
	t.Parallel()
	a := phonetic.New()
	sentence := catalog.Sentence{
		ID:          1,
		Text:        "Hello",
		PhonemeTags: []string{"Greetings"},
	}

	// "helo" sounds identical; "window" does not.
	variant := a.Analyze(sentence, "helo")
	unrelated := a.Analyze(sentence, "window")

	v := observationFor(t, variant.Observations, "Greetings")
	u := observationFor(t, unrelated.Observations, "Greetings")
	if v.Accuracy <= u.Accuracy {
		t.Errorf("phonetic variant scored %d, unrelated word %d", v.Accuracy, u.Accuracy)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	t.Parallel()
	a := phonetic.New(phonetic.WithPhoneticThreshold(0.75))
	sentence := sentenceFixture()
	const transcript = "red lorry yellow laurie red lolly yellow lorry"

	first := a.Analyze(sentence, transcript)
	for range 3 {
		again := a.Analyze(sentence, transcript)
		if len(again.Observations) != len(first.Observations) {
			t.Fatal("observation count changed between runs")
		}
		for i := range first.Observations {
			if again.Observations[i] != first.Observations[i] {
				t.Fatalf("observation %d changed: %+v vs %+v", i, again.Observations[i], first.Observations[i])
			}
		}
	}
}

func observationFor(t *testing.T, observations []scoring.PhonemeObservation, tag string) scoring.PhonemeObservation {
	t.Helper()
	for _, obs := range observations {
		if obs.Phoneme == tag {
			return obs
		}
	}
	t.Fatalf("no observation for tag %q", tag)
	panic("unreachable")
}
