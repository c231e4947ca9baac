// Package analysis validates and scores free-text answers against
// heuristic therapeutic criteria. Everything here is a pure function of
// the input text; no external services and no session state.
package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation bounds for a single answer.
const (
	MinResponseLength = 10
	MaxResponseLength = 2000
	MinResponseWords  = 3
	MaxResponseWords  = 500
	// MinLexicalDiversity is the minimum unique/total word ratio once a
	// response exceeds five words.
	MinLexicalDiversity = 0.3
)

// Reject reasons surfaced verbatim to the user.
const (
	ReasonEmpty        = "Please provide a response to continue."
	ReasonTooShort     = "Please provide a more detailed response (at least 10 characters)."
	ReasonTooLong      = "Response is too long. Please keep it under 2000 characters."
	ReasonTooFewWords  = "Please provide at least 3 words in your response."
	ReasonTooManyWords = "Response is too long. Please keep it under 500 words."
	ReasonUnsafe       = "Your response contains content that requires professional support. Please consider reaching out to a mental health professional or crisis helpline."
	ReasonMinimal      = "Please provide a more detailed response to help us understand your experience better."
	ReasonLowVariety   = "Please provide a more varied response with different thoughts and details."
)

// unsafePatterns is the safety gate: short, deliberately non-exhaustive,
// matched case-insensitively as whole-word phrases. The scope of this
// list is intentionally unchanged from the research protocol.
var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(kill|die|death|suicide|harm)\s+myself\b`),
	regexp.MustCompile(`\bsuicide\b`),
	regexp.MustCompile(`\bharm\s+others\b`),
	regexp.MustCompile(`\bviolent\b.*\bthoughts\b`),
	regexp.MustCompile(`\bsubstance\s+abuse\b`),
}

// minimalReplies is the closed set of low-information acknowledgements.
var minimalReplies = map[string]bool{
	"yes": true, "no": true, "maybe": true, "idk": true,
	"i don't know": true, "nothing": true, "not sure": true,
	"dunno": true, "nope": true, "yep": true, "fine": true,
	"ok": true, "okay": true,
}

// ValidationResult reports whether an answer was accepted and, if not,
// the user-facing reason.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func reject(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}

// Validate applies the acceptance rules in order; the first failure
// wins. It never mutates anything and is safe to call repeatedly.
func Validate(text string) ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return reject(ReasonEmpty)
	}
	// Length bounds count characters, not bytes, so multibyte text is
	// measured the same as ASCII.
	runes := utf8.RuneCountInString(trimmed)
	if runes < MinResponseLength {
		return reject(ReasonTooShort)
	}
	if runes > MaxResponseLength {
		return reject(ReasonTooLong)
	}

	words := strings.Fields(trimmed)
	if len(words) < MinResponseWords {
		return reject(ReasonTooFewWords)
	}
	if len(words) > MaxResponseWords {
		return reject(ReasonTooManyWords)
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range unsafePatterns {
		if pattern.MatchString(lower) {
			return reject(ReasonUnsafe)
		}
	}

	if isMinimalReply(lower, words) {
		return reject(ReasonMinimal)
	}

	if len(words) > 5 && lexicalDiversity(words) < MinLexicalDiversity {
		return reject(ReasonLowVariety)
	}

	return ValidationResult{Valid: true}
}

// isMinimalReply reports whether the text is a short acknowledgement:
// at most two words with any word (or the whole phrase) drawn from the
// closed minimal-reply set. Longer texts, including the three-word
// "i don't know", are left to the other rules.
func isMinimalReply(lower string, words []string) bool {
	if len(words) > 2 {
		return false
	}
	if minimalReplies[lower] {
		return true
	}
	for _, w := range words {
		if minimalReplies[strings.ToLower(w)] {
			return true
		}
	}
	return false
}

// lexicalDiversity is the unique/total word ratio, case-insensitive.
func lexicalDiversity(words []string) float64 {
	unique := make(map[string]bool, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = true
	}
	return float64(len(unique)) / float64(len(words))
}
