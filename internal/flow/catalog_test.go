package flow

import (
	"errors"
	"testing"

	"github.com/reflectlab/JournalPipe/internal/models"
)

func TestGetFlow_StepCounts(t *testing.T) {
	tests := []struct {
		condition models.Condition
		steps     int
	}{
		{models.ConditionStress, 28},
		{models.ConditionAnxiety, 30},
		{models.ConditionLowMood, 29},
	}
	for _, tt := range tests {
		t.Run(string(tt.condition), func(t *testing.T) {
			f, err := GetFlow(tt.condition)
			if err != nil {
				t.Fatalf("GetFlow failed: %v", err)
			}
			if f.Len() != tt.steps {
				t.Errorf("expected %d steps, got %d", tt.steps, f.Len())
			}
			if f.Intro == "" {
				t.Error("expected a condition introduction")
			}
		})
	}
}

func TestGetFlow_UnknownCondition(t *testing.T) {
	if _, err := GetFlow("insomnia"); !errors.Is(err, models.ErrUnknownCondition) {
		t.Errorf("expected ErrUnknownCondition, got %v", err)
	}
}

func TestFlows_StepIDsUniqueAndComplete(t *testing.T) {
	for _, condition := range Conditions() {
		f, err := GetFlow(condition)
		if err != nil {
			t.Fatalf("GetFlow(%s) failed: %v", condition, err)
		}
		seen := make(map[string]bool)
		for i, step := range f.Steps {
			if step.ID == "" || step.Prompt == "" || step.Category == "" {
				t.Errorf("%s step %d has empty fields: %+v", condition, i, step)
			}
			if seen[step.ID] {
				t.Errorf("%s: duplicate step id %q", condition, step.ID)
			}
			seen[step.ID] = true
		}
	}
}

func TestGetStep(t *testing.T) {
	step, ok, err := GetStep(models.ConditionStress, 0)
	if err != nil || !ok {
		t.Fatalf("GetStep(stress, 0) = %v, %v", ok, err)
	}
	if step.ID != "situation" {
		t.Errorf("expected first stress step to be situation, got %q", step.ID)
	}

	// Past the end signals completion, not an error.
	step, ok, err = GetStep(models.ConditionStress, 28)
	if err != nil {
		t.Fatalf("expected nil error past the end, got %v", err)
	}
	if ok || step != nil {
		t.Errorf("expected no step past the end, got %+v", step)
	}

	if _, _, err = GetStep("insomnia", 0); !errors.Is(err, models.ErrUnknownCondition) {
		t.Errorf("expected ErrUnknownCondition, got %v", err)
	}
}

func TestFlow_Categories(t *testing.T) {
	f, err := GetFlow(models.ConditionStress)
	if err != nil {
		t.Fatalf("GetFlow failed: %v", err)
	}
	categories := f.Categories()
	if len(categories) == 0 {
		t.Fatal("expected at least one category")
	}
	if categories[0] != f.Steps[0].Category {
		t.Errorf("expected first-appearance order, got %q first", categories[0])
	}
	seen := make(map[string]bool)
	for _, c := range categories {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
}

func TestFlow_StepByID(t *testing.T) {
	f, _ := GetFlow(models.ConditionAnxiety)
	if step := f.StepByID("hot_thought"); step == nil {
		t.Error("expected hot_thought step in anxiety flow")
	}
	if step := f.StepByID("missing"); step != nil {
		t.Errorf("expected nil for unknown id, got %+v", step)
	}
}
