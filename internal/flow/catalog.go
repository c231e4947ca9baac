// Package flow provides the CBT question catalog and the per-participant
// session state machine for JournalPipe.
//
// The catalog is a static, immutable definition of three named question
// sequences ("stress", "anxiety", "lowMood"); callers never mutate it.
package flow

import (
	"fmt"
	"log/slog"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// Step is a single question within a flow. The ID is unique within its
// flow and doubles as the answer key in session records and journals.
type Step struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
}

// Flow is a named ordered question sequence for one condition.
type Flow struct {
	Condition models.Condition `json:"condition"`
	Intro     string           `json:"intro"` // condition introduction shown after the welcome
	Steps     []Step           `json:"steps"`
}

// Len returns the number of steps in the flow.
func (f *Flow) Len() int {
	return len(f.Steps)
}

// Categories returns the distinct step categories in first-appearance order.
func (f *Flow) Categories() []string {
	seen := make(map[string]bool, len(f.Steps))
	var out []string
	for _, s := range f.Steps {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

// StepByID returns the step with the given id, or nil if absent.
func (f *Flow) StepByID(id string) *Step {
	for i := range f.Steps {
		if f.Steps[i].ID == id {
			return &f.Steps[i]
		}
	}
	return nil
}

var catalog = map[models.Condition]*Flow{
	models.ConditionStress:  stressFlow,
	models.ConditionAnxiety: anxietyFlow,
	models.ConditionLowMood: lowMoodFlow,
}

// GetFlow returns the flow for a condition. Unknown conditions are a
// caller error and return models.ErrUnknownCondition.
func GetFlow(condition models.Condition) (*Flow, error) {
	f, ok := catalog[condition]
	if !ok {
		slog.Warn("flow.GetFlow: unknown condition", "condition", condition)
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownCondition, condition)
	}
	return f, nil
}

// GetStep returns the step at the given index within a condition's flow.
// An index past the end is not an error: it signals flow completion and
// is reported with ok=false and a nil error. Unknown conditions return
// models.ErrUnknownCondition.
func GetStep(condition models.Condition, index int) (*Step, bool, error) {
	f, err := GetFlow(condition)
	if err != nil {
		return nil, false, err
	}
	if index < 0 || index >= len(f.Steps) {
		return nil, false, nil
	}
	return &f.Steps[index], true, nil
}

// Conditions returns the supported condition identifiers in a fixed order.
func Conditions() []models.Condition {
	return []models.Condition{models.ConditionStress, models.ConditionAnxiety, models.ConditionLowMood}
}
