package analysis

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidate_AcceptsDetailedResponse(t *testing.T) {
	result := Validate("I felt overwhelmed at work because my manager moved the deadline up by a week.")
	if !result.Valid {
		t.Errorf("expected valid, got rejection: %q", result.Reason)
	}
	if result.Reason != "" {
		t.Errorf("expected empty reason on accept, got %q", result.Reason)
	}
}

func TestValidate_RejectionRules(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "", ReasonEmpty},
		{"whitespace only", "   \n\t  ", ReasonEmpty},
		{"too short", "bad day", ReasonTooShort},
		{"too long", strings.Repeat("a", 2001), ReasonTooLong},
		{"too few words", "overwhelmed today", ReasonTooFewWords},
		{"self harm phrase", "sometimes i want to harm myself badly", ReasonUnsafe},
		{"suicide keyword", "i keep thinking about suicide these days", ReasonUnsafe},
		{"harm others", "i have urges to harm others sometimes", ReasonUnsafe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)
			if result.Valid {
				t.Fatalf("expected rejection for %q", tt.input)
			}
			if result.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, result.Reason)
			}
		})
	}
}

func TestValidate_WordCountBounds(t *testing.T) {
	// 501 single-character words: under the character cap but over the
	// word cap, and the word rule fires before the diversity rule.
	result := Validate(strings.TrimSpace(strings.Repeat("w ", 501)))
	if result.Valid || result.Reason != ReasonTooManyWords {
		t.Errorf("expected too-many-words rejection, got valid=%v reason=%q", result.Valid, result.Reason)
	}
}

func TestValidate_MinimalReply(t *testing.T) {
	// Three words clear the minimal-reply gate even when the whole
	// phrase is a closed-set acknowledgement.
	result := Validate("i don't know")
	if !result.Valid {
		t.Errorf("expected %q to be valid, got rejection: %q", "i don't know", result.Reason)
	}

	// Three substantive words pass as well.
	result = Validate("deadlines stress everything")
	if !result.Valid {
		t.Errorf("expected valid, got rejection: %q", result.Reason)
	}
}

func TestIsMinimalReply(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"okay", true},
		{"not sure", true},
		{"yes really", true},
		{"i don't know", false},
		{"genuinely unsure today", false},
	}
	for _, tt := range tests {
		lower := strings.ToLower(tt.input)
		if got := isMinimalReply(lower, strings.Fields(lower)); got != tt.want {
			t.Errorf("isMinimalReply(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidate_CountsCharactersNotBytes(t *testing.T) {
	// 200 distinct Cyrillic words: under 1,800 runes but nearly 3,000
	// bytes. The character cap must apply to runes, not bytes.
	var b strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "мысль%d тревога%d ", i, i)
	}
	long := strings.TrimSpace(b.String())
	if utf8.RuneCountInString(long) > MaxResponseLength || len(long) <= MaxResponseLength {
		t.Fatalf("test input has %d runes and %d bytes, want runes <= %d < bytes",
			utf8.RuneCountInString(long), len(long), MaxResponseLength)
	}
	result := Validate(long)
	if !result.Valid {
		t.Errorf("expected long multibyte response to be valid, got rejection: %q", result.Reason)
	}

	// Eleven Cyrillic runes clear the minimum length; word count then
	// rejects it.
	result = Validate("день плохой")
	if result.Valid || result.Reason != ReasonTooFewWords {
		t.Errorf("expected too-few-words rejection, got valid=%v reason=%q", result.Valid, result.Reason)
	}

	// Nine runes fall below the minimum despite being seventeen bytes.
	result = Validate("ночь тиха")
	if result.Valid || result.Reason != ReasonTooShort {
		t.Errorf("expected too-short rejection, got valid=%v reason=%q", result.Valid, result.Reason)
	}
}

func TestValidate_LexicalDiversity(t *testing.T) {
	// Six words, two unique: diversity 1/3 stays above the threshold.
	result := Validate("work work work stress stress stress")
	if !result.Valid {
		t.Errorf("expected diversity 0.33 to pass, got rejection: %q", result.Reason)
	}

	// Eight words, two unique: diversity 0.25 fails.
	result = Validate("work work work work stress stress stress stress")
	if result.Valid || result.Reason != ReasonLowVariety {
		t.Errorf("expected low-variety rejection, got valid=%v reason=%q", result.Valid, result.Reason)
	}

	// Five words never trigger the diversity check.
	result = Validate("work work work work work")
	if !result.Valid {
		t.Errorf("expected five-word repeat to pass, got rejection: %q", result.Reason)
	}
}

func TestValidate_OrderOfRules(t *testing.T) {
	// A short answer containing an unsafe keyword is rejected for
	// length first; rules apply in order.
	result := Validate("suicide")
	if result.Reason != ReasonTooShort {
		t.Errorf("expected length rejection before safety, got %q", result.Reason)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	input := "I noticed my heart racing before the meeting started."
	first := Validate(input)
	second := Validate(input)
	if first != second {
		t.Errorf("repeated validation differed: %+v vs %+v", first, second)
	}
}
