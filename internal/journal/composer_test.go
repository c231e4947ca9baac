package journal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reflectlab/JournalPipe/internal/flow"
	"github.com/reflectlab/JournalPipe/internal/models"
)

var renderTime = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestRender_FullStressSession(t *testing.T) {
	answers := map[string]string{
		"situation":        "a conflict with my manager over the project deadline",
		"hot_thought":      "I am going to lose my job",
		"emotions":         "fear and frustration",
		"behaviors":        "avoiding my inbox all afternoon",
		"physical":         "tight shoulders and a racing heart",
		"balanced_thought": "one disagreement does not define my performance",
		"new_belief":       "I can handle difficult conversations",
		"helpful_action":   "scheduling a follow-up conversation",
	}

	journal, err := Render(models.ConditionStress, models.PersonalityNeutral, answers, renderTime)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"# Stress Management CBT Session",
		"**Condition Focus:** Stress",
		"**Chatbot Personality:** Neutral",
		"**Session Date:** June 15, 2025 at 2:30 PM",
		"## Session Summary",
		"a conflict with my manager over the project deadline",
		"*\"I am going to lose my job\"*",
		"### New Empowering Belief",
		"### Committed Action\n**scheduling a follow-up conversation**",
		"## Final Reflection",
		"### Next Steps",
	} {
		if !strings.Contains(journal, want) {
			t.Errorf("journal missing %q", want)
		}
	}

	// Answered questions are grouped under their category headers.
	f, _ := flow.GetFlow(models.ConditionStress)
	step := f.StepByID("situation")
	if !strings.Contains(journal, "## "+step.Category) {
		t.Errorf("journal missing category header %q", step.Category)
	}
	if !strings.Contains(journal, "**Q:** "+step.Prompt) {
		t.Error("journal missing question text")
	}
}

func TestRender_EmptyAnswersUsesPlaceholders(t *testing.T) {
	journal, err := Render(models.ConditionStress, models.PersonalityNeutral, nil, renderTime)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, want := range []string{
		"a challenging situation",
		"a distressing thought",
		"a more balanced perspective",
	} {
		if !strings.Contains(journal, want) {
			t.Errorf("expected placeholder %q in summary", want)
		}
	}
	if strings.Contains(journal, "### New Empowering Belief") {
		t.Error("belief quote should be omitted without a new_belief answer")
	}
	if strings.Contains(journal, "### Committed Action") {
		t.Error("action quote should be omitted without action answers")
	}
	if strings.Contains(journal, "**Q:**") {
		t.Error("no Q/A sections expected without answers")
	}
}

func TestRender_ConditionTemplates(t *testing.T) {
	tests := []struct {
		condition models.Condition
		title     string
		phrase    string
	}{
		{models.ConditionStress, "# Stress Management CBT Session", "mind-body connection"},
		{models.ConditionAnxiety, "# Anxiety Management CBT Session", "overestimating danger"},
		{models.ConditionLowMood, "# Low Mood Recovery CBT Session", "harsh inner critic"},
	}
	for _, tt := range tests {
		t.Run(string(tt.condition), func(t *testing.T) {
			journal, err := Render(tt.condition, models.PersonalityExtraversion, map[string]string{}, renderTime)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !strings.Contains(journal, tt.title) {
				t.Errorf("missing title %q", tt.title)
			}
			if !strings.Contains(journal, tt.phrase) {
				t.Errorf("missing condition phrase %q", tt.phrase)
			}
		})
	}
}

func TestRender_ActionKeyPreference(t *testing.T) {
	// small_step outranks tomorrow_activity when both are present.
	answers := map[string]string{
		"small_step":        "saying hello to a colleague",
		"tomorrow_activity": "a short morning walk",
	}
	journal, err := Render(models.ConditionAnxiety, models.PersonalityNeutral, answers, renderTime)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(journal, "### Committed Action\n**saying hello to a colleague**") {
		t.Error("expected small_step as committed action")
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render("insomnia", models.PersonalityNeutral, nil, renderTime); !errors.Is(err, models.ErrUnknownCondition) {
		t.Errorf("expected ErrUnknownCondition, got %v", err)
	}
	if _, err := Render(models.ConditionStress, "openness", nil, renderTime); !errors.Is(err, models.ErrUnknownPersonality) {
		t.Errorf("expected ErrUnknownPersonality, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	got := Filename(models.ConditionLowMood, models.PersonalityConscientiousness, renderTime)
	want := "cbt-journal-lowMood-conscientiousness-2025-06-15.md"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestExportData(t *testing.T) {
	answers := map[string]string{
		"situation": "I realized the pattern because of the evidence we reviewed.",
		"emotions":  "I want to manage this and get support from a friend.",
	}
	export, err := ExportData(models.ConditionStress, models.PersonalityNeutral, answers, renderTime)
	if err != nil {
		t.Fatalf("ExportData failed: %v", err)
	}

	if export.Metadata.ResponseCount != 2 {
		t.Errorf("expected 2 responses, got %d", export.Metadata.ResponseCount)
	}
	wantPct := 2.0 / 28.0 * 100
	if diff := export.Metadata.CompletionPercentage - wantPct; diff > 0.001 || diff < -0.001 {
		t.Errorf("completion = %f, want %f", export.Metadata.CompletionPercentage, wantPct)
	}
	if export.Metadata.Filename != "cbt-journal-stress-neutral-2025-06-15.md" {
		t.Errorf("unexpected filename %q", export.Metadata.Filename)
	}
	if export.Analysis.TotalWordCount != 21 {
		t.Errorf("expected 21 words, got %d", export.Analysis.TotalWordCount)
	}
	if export.Analysis.KeyInsightsIdentified < 3 {
		t.Errorf("expected insight hits for realized/pattern/because/evidence, got %d", export.Analysis.KeyInsightsIdentified)
	}

	themes := strings.Join(export.Analysis.TherapeuticThemes, ",")
	for _, want := range []string{"cognitive_restructuring", "coping_strategies", "support_seeking"} {
		if !strings.Contains(themes, want) {
			t.Errorf("expected theme %q in %v", want, export.Analysis.TherapeuticThemes)
		}
	}
}

func TestExportData_Empty(t *testing.T) {
	export, err := ExportData(models.ConditionAnxiety, models.PersonalityNeutral, nil, renderTime)
	if err != nil {
		t.Fatalf("ExportData failed: %v", err)
	}
	if export.Metadata.CompletionPercentage != 0 || export.Analysis.AvgResponseLength != 0 {
		t.Errorf("expected zeroed metrics, got %+v", export)
	}
}
