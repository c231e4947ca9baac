package analysis

import (
	"math"
	"testing"

	"github.com/reflectlab/JournalPipe/internal/models"
)

func TestAnalyze_BasicCounts(t *testing.T) {
	a := Analyze("I felt stressed. I could not sleep!", "Emotions")
	if a.WordCount != 7 {
		t.Errorf("expected 7 words, got %d", a.WordCount)
	}
	if a.CharacterCount != 35 {
		t.Errorf("expected 35 characters, got %d", a.CharacterCount)
	}
	if a.SentenceCount != 2 {
		t.Errorf("expected 2 sentences, got %d", a.SentenceCount)
	}
}

func TestAnalyze_ScoresStayInRange(t *testing.T) {
	inputs := []string{
		"I feel anxious and worried because of work deadlines today.",
		"nothing much happened",
		"I realize I notice a pattern because when I feel stressed I avoid people, which leads to feeling worse.",
	}
	for _, input := range inputs {
		a := Analyze(input, "Thoughts")
		for name, score := range map[string]float64{
			"emotional_depth":    a.EmotionalDepth,
			"specificity":        a.SpecificityScore,
			"insight":            a.InsightLevel,
			"category_relevance": a.CategoryRelevance,
			"readability":        a.ReadabilityScore,
			"overall_quality":    a.OverallQualityScore,
		} {
			if score < 0 || score > 100 {
				t.Errorf("%s out of range for %q: %f", name, input, score)
			}
		}
	}
}

func TestAnalyze_UnknownCategoryDefaults(t *testing.T) {
	a := Analyze("I went for a long walk this morning to clear my head.", "General")
	if a.CategoryRelevance != 50.0 {
		t.Errorf("expected default relevance 50, got %f", a.CategoryRelevance)
	}
}

func TestAnalyze_CategoryRelevanceRatio(t *testing.T) {
	// "feel" and "emotion" hit 2 of the 5 Emotions keywords.
	a := Analyze("I feel a strong emotion about this whole situation right now.", "Emotions")
	if math.Abs(a.CategoryRelevance-40.0) > 0.001 {
		t.Errorf("expected relevance 40, got %f", a.CategoryRelevance)
	}
}

func TestAnalyze_ReadabilityZeroWithoutPunctuation(t *testing.T) {
	a := Analyze("this response has no sentence ending punctuation at all", "General")
	if a.ReadabilityScore != 0 {
		t.Errorf("expected readability 0, got %f", a.ReadabilityScore)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"cake", 1}, // silent e
		{"beautiful", 3},
		{"rhythm", 1}, // y is the only vowel group
		{"b", 1},      // floor of one
	}
	for _, tt := range tests {
		if got := countSyllables(tt.word); got != tt.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestQualityScore_EmptyComponents(t *testing.T) {
	// With every component zero, the default relevance (50) is the only
	// contribution: 0.2 * 50 = 10.
	a := Analysis{CategoryRelevance: 50}
	if got := qualityScore(a); math.Abs(got-10.0) > 0.001 {
		t.Errorf("expected quality 10, got %f", got)
	}
}

func TestAnalyze_TherapeuticIndicatorCounts(t *testing.T) {
	a := Analyze("I notice I avoid people when I feel overwhelmed. I will plan better next time.", "General")
	if a.TherapeuticIndicators["self_awareness"] < 1 {
		t.Errorf("expected self_awareness hit, got %d", a.TherapeuticIndicators["self_awareness"])
	}
	if a.TherapeuticIndicators["behavioral_insight"] < 1 {
		t.Errorf("expected behavioral_insight hit, got %d", a.TherapeuticIndicators["behavioral_insight"])
	}
	if a.TherapeuticIndicators["future_orientation"] < 2 {
		t.Errorf("expected will+plan+next time hits, got %d", a.TherapeuticIndicators["future_orientation"])
	}
}

func TestFeedbackSuggestions_PersonalityVariants(t *testing.T) {
	low := Analysis{EmotionalDepth: 10, SpecificityScore: 10, InsightLevel: 10}

	neutral := FeedbackSuggestions(low, models.PersonalityNeutral)
	if len(neutral) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(neutral))
	}

	extraversion := FeedbackSuggestions(low, models.PersonalityExtraversion)
	if len(extraversion) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(extraversion))
	}
	if neutral[0] == extraversion[0] {
		t.Error("expected personality-specific suggestion text")
	}

	high := Analysis{EmotionalDepth: 90, SpecificityScore: 90, InsightLevel: 90}
	if got := FeedbackSuggestions(high, models.PersonalityNeutral); len(got) != 0 {
		t.Errorf("expected no suggestions for strong answer, got %v", got)
	}
}

func TestTherapeuticProgress(t *testing.T) {
	answers := map[string]string{
		"thoughts": "i realize i feel anxious before meetings",
		"planning": "i will plan my mornings and manage my time",
	}
	progress := TherapeuticProgress(answers)
	if progress["self_awareness_growth"] < 1 {
		t.Errorf("expected self-awareness hit, got %f", progress["self_awareness_growth"])
	}
	if progress["future_planning"] < 2 {
		t.Errorf("expected will+plan hits, got %f", progress["future_planning"])
	}
	if progress["coping_strategies"] < 1 {
		t.Errorf("expected manage hit, got %f", progress["coping_strategies"])
	}
}

func TestSessionAnalytics(t *testing.T) {
	answers := map[string]string{
		"situation": "My manager criticized my report in front of the whole team yesterday.",
		"emotions":  "I felt embarrassed and anxious, and my mood stayed low all afternoon.",
	}
	analytics := SessionAnalytics(answers)
	if analytics.TotalResponses != 2 {
		t.Errorf("expected 2 responses, got %d", analytics.TotalResponses)
	}
	if analytics.TotalWordCount != 24 {
		t.Errorf("expected 24 total words, got %d", analytics.TotalWordCount)
	}
	if math.Abs(analytics.AvgResponseLength-12.0) > 0.001 {
		t.Errorf("expected avg length 12, got %f", analytics.AvgResponseLength)
	}
	if analytics.AvgQualityScore <= 0 {
		t.Errorf("expected positive quality, got %f", analytics.AvgQualityScore)
	}
	if len(analytics.TherapeuticOutcomes) != 5 {
		t.Errorf("expected 5 outcome dimensions, got %d", len(analytics.TherapeuticOutcomes))
	}
	if len(analytics.ProgressIndicators) != 5 {
		t.Errorf("expected 5 progress indicators, got %d", len(analytics.ProgressIndicators))
	}
	// "mood" marks one of the two answers, so emotional processing
	// scores 50 percent.
	if got := analytics.TherapeuticOutcomes["emotional_processing_depth"]; math.Abs(got-50.0) > 0.001 {
		t.Errorf("expected emotional processing 50%%, got %f", got)
	}
}

func TestTherapeuticOutcomes(t *testing.T) {
	answers := map[string]string{
		"q1": "I feel calmer when I plan my day the night before.",
		"q2": "My feelings about work shifted once I found a more balanced view.",
		"q3": "I tried a breathing exercise before the meeting.",
		"q4": "I feel like my reaction was out of proportion.",
	}
	outcomes := TherapeuticOutcomes(answers)

	// Three of four answers carry emotion vocabulary.
	if got := outcomes["emotional_processing_depth"]; math.Abs(got-75.0) > 0.001 {
		t.Errorf("expected emotional processing 75%%, got %f", got)
	}
	// One of four mentions a balanced view.
	if got := outcomes["cognitive_restructuring_evidence"]; math.Abs(got-25.0) > 0.001 {
		t.Errorf("expected cognitive restructuring 25%%, got %f", got)
	}
	// Presence is counted once per answer, never above 100.
	for name, got := range outcomes {
		if got < 0 || got > 100 {
			t.Errorf("outcome %s = %f, want within 0..100", name, got)
		}
	}

	if got := TherapeuticOutcomes(nil); len(got) != 0 {
		t.Errorf("expected no outcomes for empty session, got %v", got)
	}
}

func TestSessionAnalytics_Empty(t *testing.T) {
	analytics := SessionAnalytics(nil)
	if analytics.TotalResponses != 0 || analytics.AvgQualityScore != 0 {
		t.Errorf("expected zero-value analytics, got %+v", analytics)
	}
}
