package analysis

import (
	"testing"

	"github.com/reflectlab/JournalPipe/internal/models"
)

func TestLocalSentiment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.Sentiment
	}{
		{"positive", "I felt calm and hopeful after the walk, even proud of myself.", models.SentimentPositive},
		{"negative", "I was anxious and overwhelmed, everything felt hopeless.", models.SentimentNegative},
		{"mixed", "I was anxious at first but calm by the end.", models.SentimentNeutral},
		{"no signal", "The meeting ran from nine until noon.", models.SentimentNeutral},
		{"empty", "", models.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocalSentiment(tt.input); got != tt.want {
				t.Errorf("LocalSentiment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLocalKeywords(t *testing.T) {
	got := LocalKeywords("The deadline pressure ruined my weekend plans completely.")
	if len(got) != 3 {
		t.Fatalf("expected 3 keywords, got %v", got)
	}
	want := []string{"deadline", "pressure", "ruined"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLocalKeywords_Deduplicates(t *testing.T) {
	got := LocalKeywords("Work, work, work. Deadlines and work.")
	for i, kw := range got {
		for j := i + 1; j < len(got); j++ {
			if kw == got[j] {
				t.Errorf("duplicate keyword %q", kw)
			}
		}
	}
}

func TestLocalKeywords_StopwordFallback(t *testing.T) {
	// Only stopwords qualify, so the filter relaxes rather than
	// returning nothing.
	got := LocalKeywords("this that when what")
	if len(got) == 0 {
		t.Error("expected fallback keywords, got none")
	}
}

func TestLocalKeywords_ShortWordsSkipped(t *testing.T) {
	if got := LocalKeywords("it is so far ok"); len(got) != 0 {
		t.Errorf("expected no keywords from short words, got %v", got)
	}
}
