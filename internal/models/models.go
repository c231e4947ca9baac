// Package models defines the core data structures for JournalPipe.
//
// It includes the condition and personality identifiers, conversation
// transcript types, and the API response types shared across modules.
package models

import (
	"errors"
	"time"
)

// Condition identifies one of the fixed CBT question flows.
type Condition string

const (
	// ConditionStress is the stress-focused flow (CBT 5-Part Model).
	ConditionStress Condition = "stress"
	// ConditionAnxiety is the anxiety-focused flow.
	ConditionAnxiety Condition = "anxiety"
	// ConditionLowMood is the low-mood / behavioral-activation flow.
	ConditionLowMood Condition = "lowMood"
)

// Personality identifies one of the fixed communication styles.
type Personality string

const (
	// PersonalityNeutral is the balanced baseline style.
	PersonalityNeutral Personality = "neutral"
	// PersonalityConscientiousness is the formal, systematic style.
	PersonalityConscientiousness Personality = "conscientiousness"
	// PersonalityExtraversion is the enthusiastic, informal style.
	PersonalityExtraversion Personality = "extraversion"
)

// Error variables for better error handling and testability
var (
	ErrUnknownCondition   = errors.New("unknown condition")
	ErrUnknownPersonality = errors.New("unknown personality")
	ErrSessionNotStarted  = errors.New("no session in progress")
	ErrSessionInProgress  = errors.New("session already in progress")
	ErrSessionComplete    = errors.New("session already complete")
)

// IsValidCondition checks if the given condition is supported.
func IsValidCondition(c Condition) bool {
	switch c {
	case ConditionStress, ConditionAnxiety, ConditionLowMood:
		return true
	default:
		return false
	}
}

// IsValidPersonality checks if the given personality is supported.
func IsValidPersonality(p Personality) bool {
	switch p {
	case PersonalityNeutral, PersonalityConscientiousness, PersonalityExtraversion:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable name used in journals and headers.
func (c Condition) DisplayName() string {
	switch c {
	case ConditionStress:
		return "Stress"
	case ConditionAnxiety:
		return "Anxiety"
	case ConditionLowMood:
		return "Low Mood"
	default:
		return string(c)
	}
}

// DisplayName returns the human-readable name used in journals and headers.
func (p Personality) DisplayName() string {
	switch p {
	case PersonalityNeutral:
		return "Neutral"
	case PersonalityConscientiousness:
		return "High Conscientiousness"
	case PersonalityExtraversion:
		return "High Extraversion"
	default:
		return string(p)
	}
}

// Speaker identifies who produced a transcript message.
type Speaker string

const (
	// SpeakerUser marks a participant message.
	SpeakerUser Speaker = "user"
	// SpeakerBot marks a system-generated message.
	SpeakerBot Speaker = "bot"
)

// Message is a single entry in a session transcript.
type Message struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	StepID    string    `json:"step_id,omitempty"` // set on user answers
	Timestamp time.Time `json:"timestamp"`
}

// Progress summarizes how far a session has advanced.
type Progress struct {
	Condition   Condition   `json:"condition"`
	Personality Personality `json:"personality"`
	CurrentStep int         `json:"current_step"`
	TotalSteps  int         `json:"total_steps"`
	Answered    int         `json:"answered"`
	Completed   bool        `json:"completed"`
}

// SessionRecord is the persisted form of a finalized session.
type SessionRecord struct {
	ID          string            `json:"id"`
	Participant string            `json:"participant_id"`
	Condition   Condition         `json:"condition"`
	Personality Personality       `json:"personality"`
	Answers     map[string]string `json:"answers"`
	Analytics   SessionAnalytics  `json:"analytics"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
	Completed   bool              `json:"completed"`
}

// SessionAnalytics aggregates response quality metrics over a session.
type SessionAnalytics struct {
	TotalResponses    int     `json:"total_responses"`
	TotalWordCount    int     `json:"total_word_count"`
	AvgResponseLength float64 `json:"avg_response_length"`
	AvgQualityScore   float64 `json:"avg_quality_score"`
	AvgEmotionalDepth float64 `json:"avg_emotional_depth"`
	AvgInsightLevel   float64 `json:"avg_insight_level"`
	// ProgressIndicators holds raw occurrence counts of progress
	// vocabulary across all answers joined into one text.
	ProgressIndicators map[string]float64 `json:"progress_indicators,omitempty"`
	// TherapeuticOutcomes holds the percentage of responses showing each
	// outcome dimension (cognitive restructuring, emotional processing, ...).
	TherapeuticOutcomes map[string]float64 `json:"therapeutic_outcomes,omitempty"`
}

// Sentiment is the coarse polarity label attached to an answer.
type Sentiment string

const (
	// SentimentPositive indicates clearly positive polarity.
	SentimentPositive Sentiment = "positive"
	// SentimentNeutral indicates mixed or weak polarity.
	SentimentNeutral Sentiment = "neutral"
	// SentimentNegative indicates clearly negative polarity.
	SentimentNegative Sentiment = "negative"
)

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
	// APIStatusRejected indicates user input was rejected by validation.
	APIStatusRejected APIStatus = "rejected"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{
		response: APIResponse{},
	}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithResult(result).
		Build()
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithMessage(message).
		WithResult(result).
		Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		Build()
}

// Rejected creates a rejected API response carrying the validation
// reason and the turn data the client needs to retry.
func Rejected(reason string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusRejected).
		WithMessage(reason).
		WithResult(result).
		Build()
}
