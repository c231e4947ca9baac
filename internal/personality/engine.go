package personality

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// Engine composes personality-conditioned feedback, question framing,
// and welcome/closing text. Feedback composition is fully deterministic
// in (personality, category, stepIndex); only question lead-in choice
// draws from the injected random source.
type Engine struct {
	intn func(n int) int
}

// NewEngine creates an Engine using math/rand/v2 for lead-in selection.
func NewEngine() *Engine {
	return &Engine{intn: rand.IntN}
}

// NewEngineWithRand creates an Engine with a caller-supplied random
// source, so tests can pin the lead-in choice.
func NewEngineWithRand(intn func(n int) int) *Engine {
	if intn == nil {
		return NewEngine()
	}
	return &Engine{intn: intn}
}

// GetProfile returns the immutable profile for a personality. The
// personality set is closed; anything else is a caller error.
func GetProfile(p models.Personality) (*Profile, error) {
	switch p {
	case models.PersonalityNeutral:
		return neutralProfile, nil
	case models.PersonalityConscientiousness:
		return conscientiousnessProfile, nil
	case models.PersonalityExtraversion:
		return extraversionProfile, nil
	default:
		slog.Warn("personality.GetProfile: unknown personality", "personality", p)
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownPersonality, p)
	}
}

// stepInsightBucket maps a step index to the insight bucket: <5, <10, else.
func stepInsightBucket(stepIndex int) int {
	switch {
	case stepIndex < 5:
		return 0
	case stepIndex < 10:
		return 1
	default:
		return 2
	}
}

// ComposeFeedback builds the acknowledgement message for an accepted
// answer. The base template is chosen by stepIndex modulo bank size and
// its {context}, {category_context}, and {insight} slots are filled
// from the profile's lookup tables; unmapped categories produce empty
// inserts rather than errors.
func (e *Engine) ComposeFeedback(p models.Personality, category string, stepIndex int) (string, error) {
	profile, err := GetProfile(p)
	if err != nil {
		return "", err
	}
	if stepIndex < 0 {
		stepIndex = 0
	}

	base := profile.PhraseBank[stepIndex%len(profile.PhraseBank)]
	slots := map[string]string{
		"context":          profile.CategoryContext[category],
		"category_context": profile.CategoryInsight[category],
		"insight":          profile.StepInsights[stepInsightBucket(stepIndex)],
	}
	return RenderSlots(base, slots, ""), nil
}

// ComposeNextQuestion frames the literal question text for delivery.
// Extraversion and conscientiousness prefix a randomly chosen lead-in
// phrase; neutral returns the question unmodified. The question text is
// always preserved verbatim at the end of the result.
func (e *Engine) ComposeNextQuestion(p models.Personality, questionText string) string {
	profile, err := GetProfile(p)
	if err != nil || len(profile.QuestionLeadIns) == 0 {
		return questionText
	}
	lead := profile.QuestionLeadIns[e.intn(len(profile.QuestionLeadIns))]
	return lead + " " + questionText
}

// Welcome returns the fixed per-personality session welcome.
func (e *Engine) Welcome(p models.Personality) (string, error) {
	profile, err := GetProfile(p)
	if err != nil {
		return "", err
	}
	return profile.Welcome, nil
}

// Closing returns the fixed per-personality session closing.
func (e *Engine) Closing(p models.Personality) (string, error) {
	profile, err := GetProfile(p)
	if err != nil {
		return "", err
	}
	return profile.Closing, nil
}
