package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reflectlab/JournalPipe/internal/analysis"
	"github.com/reflectlab/JournalPipe/internal/models"
	"github.com/reflectlab/JournalPipe/internal/personality"
)

// CompletionMessage closes the conversation once the last step is answered.
const CompletionMessage = "You've completed the CBT reflection process! Would you like me to generate a journal summary of your session?"

// FeedbackFunc generates feedback for an accepted answer from an
// external source. Returning an error or an empty string makes the
// session fall back to local composition; the session never fails a
// turn on feedback problems.
type FeedbackFunc func(ctx context.Context, p models.Personality, step *Step, answer string, stepIndex int) (string, error)

// AnalyzeFunc classifies an answer's sentiment and key themes through
// an external source. Errors make the session fall back to the local
// heuristics.
type AnalyzeFunc func(ctx context.Context, text string) (models.Sentiment, []string, error)

// Turn is the outcome of one submitAnswer call.
type Turn struct {
	Accepted     bool            `json:"accepted"`
	Reason       string          `json:"reason,omitempty"` // validation reason when rejected
	Feedback     string          `json:"feedback,omitempty"`
	NextQuestion string          `json:"next_question,omitempty"`
	Completed    bool            `json:"completed"`
	Progress     models.Progress `json:"progress"`
}

// Session is the per-participant conversation state machine. It is an
// explicit value owned by the caller and is not safe for concurrent
// use; the presentation shell serializes access.
//
// States: no condition selected, in progress, complete. Rejected
// answers mutate nothing.
type Session struct {
	participant string
	personality models.Personality
	condition   models.Condition
	flow        *Flow
	currentStep int
	answers     map[string]string
	transcript  []models.Message
	completed   bool
	startedAt   time.Time

	engine   *personality.Engine
	feedback FeedbackFunc
	analyze  AnalyzeFunc
	now      func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPersonality sets the initial personality style. Invalid values
// are ignored and the neutral default stays in place.
func WithPersonality(p models.Personality) SessionOption {
	return func(s *Session) {
		if models.IsValidPersonality(p) {
			s.personality = p
		}
	}
}

// WithFeedbackFunc installs an external feedback source tried before
// local composition.
func WithFeedbackFunc(fn FeedbackFunc) SessionOption {
	return func(s *Session) { s.feedback = fn }
}

// WithAnalyzeFunc installs an external sentiment source tried before
// the local heuristics.
func WithAnalyzeFunc(fn AnalyzeFunc) SessionOption {
	return func(s *Session) { s.analyze = fn }
}

// WithEngine replaces the default personality engine, letting tests pin
// the lead-in random source.
func WithEngine(e *personality.Engine) SessionOption {
	return func(s *Session) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithClock replaces the transcript timestamp source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession creates a session for a participant with no condition
// selected and the neutral personality.
func NewSession(participant string, opts ...SessionOption) *Session {
	s := &Session{
		participant: participant,
		personality: models.PersonalityNeutral,
		answers:     make(map[string]string),
		engine:      personality.NewEngine(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Participant returns the owning participant id.
func (s *Session) Participant() string { return s.participant }

// Personality returns the active personality style.
func (s *Session) Personality() models.Personality { return s.personality }

// Condition returns the active condition, empty before StartCondition.
func (s *Session) Condition() models.Condition { return s.condition }

// Completed reports whether every step has been answered.
func (s *Session) Completed() bool { return s.completed }

// StartedAt returns when the current condition was started.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// SetPersonality switches the communication style. It applies to all
// subsequent composition; already-transcribed messages keep their
// original wording.
func (s *Session) SetPersonality(p models.Personality) error {
	if !models.IsValidPersonality(p) {
		slog.Warn("Session.SetPersonality: unknown personality", "participant", s.participant, "personality", p)
		return fmt.Errorf("%w: %s", models.ErrUnknownPersonality, p)
	}
	s.personality = p
	return nil
}

// StartCondition begins the question flow for a condition. It may only
// be called when no condition is active; use SwitchCondition to change
// flows. The transcript opens with the personality welcome, the
// condition introduction, and the styled first question.
func (s *Session) StartCondition(condition models.Condition) error {
	slog.Debug("Session.StartCondition: starting flow", "participant", s.participant, "condition", condition)

	if s.condition != "" {
		return fmt.Errorf("%w: %s", models.ErrSessionInProgress, s.condition)
	}

	f, err := GetFlow(condition)
	if err != nil {
		return err
	}

	welcome, err := s.engine.Welcome(s.personality)
	if err != nil {
		return err
	}

	s.condition = condition
	s.flow = f
	s.currentStep = 0
	s.answers = make(map[string]string)
	s.transcript = nil
	s.completed = false
	s.startedAt = s.now()

	s.appendBot(welcome)
	s.appendBot(f.Intro)
	s.appendBot(s.engine.ComposeNextQuestion(s.personality, f.Steps[0].Prompt))
	return nil
}

// SwitchCondition abandons the current flow and starts another. Any
// answers already given are discarded from the session; persisting them
// first is the caller's job.
func (s *Session) SwitchCondition(condition models.Condition) error {
	slog.Debug("Session.SwitchCondition: switching flow", "participant", s.participant,
		"from", s.condition, "to", condition)

	if _, err := GetFlow(condition); err != nil {
		return err
	}
	s.Reset()
	return s.StartCondition(condition)
}

// Reset clears all conversation state back to the no-condition state.
// The personality choice survives.
func (s *Session) Reset() {
	s.condition = ""
	s.flow = nil
	s.currentStep = 0
	s.answers = make(map[string]string)
	s.transcript = nil
	s.completed = false
	s.startedAt = time.Time{}
}

// SubmitAnswer validates and records one answer. A rejected answer
// returns the reason and leaves the session untouched, including the
// transcript. An accepted answer is recorded, acknowledged with
// feedback, and either advances to the styled next question or
// completes the flow.
func (s *Session) SubmitAnswer(ctx context.Context, text string) (*Turn, error) {
	slog.Debug("Session.SubmitAnswer: processing answer", "participant", s.participant,
		"condition", s.condition, "step", s.currentStep)

	if s.condition == "" {
		return nil, models.ErrSessionNotStarted
	}
	if s.completed {
		return nil, models.ErrSessionComplete
	}

	if result := analysis.Validate(text); !result.Valid {
		slog.Debug("Session.SubmitAnswer: answer rejected", "participant", s.participant,
			"step", s.currentStep, "reason", result.Reason)
		return &Turn{Accepted: false, Reason: result.Reason, Progress: s.progress()}, nil
	}

	answer := strings.TrimSpace(text)
	step := &s.flow.Steps[s.currentStep]
	feedback := s.composeFeedback(ctx, step, answer)

	s.answers[step.ID] = answer
	s.appendMessage(models.SpeakerUser, answer, step.ID)
	s.appendBot(feedback)
	s.currentStep++

	turn := &Turn{Accepted: true, Feedback: feedback}
	if s.currentStep >= s.flow.Len() {
		s.completed = true
		s.appendBot(CompletionMessage)
		turn.Completed = true
	} else {
		next := s.engine.ComposeNextQuestion(s.personality, s.flow.Steps[s.currentStep].Prompt)
		s.appendBot(next)
		turn.NextQuestion = next
	}
	turn.Progress = s.progress()
	return turn, nil
}

// composeFeedback tries the external source first and falls back to
// local composition annotated with local sentiment and key themes.
func (s *Session) composeFeedback(ctx context.Context, step *Step, answer string) string {
	if s.feedback != nil {
		text, err := s.feedback(ctx, s.personality, step, answer, s.currentStep)
		if err != nil {
			slog.Warn("Session.composeFeedback: external feedback failed, using local",
				"participant", s.participant, "step", step.ID, "error", err)
		} else if text != "" {
			return text
		}
	}

	text, err := s.engine.ComposeFeedback(s.personality, step.Category, s.currentStep)
	if err != nil {
		// Unreachable while the personality is kept valid by SetPersonality.
		text = "Thank you for sharing that."
	}

	sentiment, keywords := s.analyzeAnswer(ctx, answer)
	text += fmt.Sprintf(" I sense you may be feeling **%s**.", sentiment)
	if len(keywords) > 0 {
		text += fmt.Sprintf(" Key themes I noticed: *%s*.", strings.Join(keywords, ", "))
	}
	return text
}

// analyzeAnswer prefers the external classifier and degrades to the
// local heuristics on any failure.
func (s *Session) analyzeAnswer(ctx context.Context, answer string) (models.Sentiment, []string) {
	if s.analyze != nil {
		sentiment, keywords, err := s.analyze(ctx, answer)
		if err == nil {
			return sentiment, keywords
		}
		slog.Warn("Session.analyzeAnswer: external analysis failed, using local",
			"participant", s.participant, "error", err)
	}
	return analysis.LocalSentiment(answer), analysis.LocalKeywords(answer)
}

// GetProgress reports position within the active flow.
func (s *Session) GetProgress() (models.Progress, error) {
	if s.condition == "" {
		return models.Progress{}, models.ErrSessionNotStarted
	}
	return s.progress(), nil
}

func (s *Session) progress() models.Progress {
	p := models.Progress{
		Condition:   s.condition,
		Personality: s.personality,
		CurrentStep: s.currentStep,
		Answered:    len(s.answers),
		Completed:   s.completed,
	}
	if s.flow != nil {
		p.TotalSteps = s.flow.Len()
	}
	return p
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []models.Message {
	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Answers returns a copy of the recorded answers keyed by step id.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

func (s *Session) appendBot(text string) {
	s.appendMessage(models.SpeakerBot, text, "")
}

func (s *Session) appendMessage(speaker models.Speaker, text, stepID string) {
	s.transcript = append(s.transcript, models.Message{
		Speaker:   speaker,
		Text:      text,
		StepID:    stepID,
		Timestamp: s.now(),
	})
}
