package journal

import (
	"strings"
	"time"

	"github.com/reflectlab/JournalPipe/internal/flow"
	"github.com/reflectlab/JournalPipe/internal/models"
)

// ExportMetadata describes an exported session.
type ExportMetadata struct {
	Condition            models.Condition   `json:"condition"`
	Personality          models.Personality `json:"personality"`
	ExportDate           time.Time          `json:"export_date"`
	ResponseCount        int                `json:"response_count"`
	CompletionPercentage float64            `json:"completion_percentage"`
	Filename             string             `json:"filename"`
}

// ExportAnalysis summarizes the answer text for research use.
type ExportAnalysis struct {
	AvgResponseLength     float64  `json:"avg_response_length"`
	TotalWordCount        int      `json:"total_word_count"`
	KeyInsightsIdentified int      `json:"key_insights_identified"`
	TherapeuticThemes     []string `json:"therapeutic_themes"`
}

// Export is the structured journal export.
type Export struct {
	Metadata  ExportMetadata    `json:"metadata"`
	Responses map[string]string `json:"responses"`
	Analysis  ExportAnalysis    `json:"analysis"`
}

var insightKeywords = []string{"realize", "understand", "insight", "pattern", "connection", "because"}

// themeKeywords maps a therapeutic theme to vocabulary that signals it.
var themeKeywords = []struct {
	theme    string
	keywords []string
}{
	{"self_compassion", []string{"kind to myself", "self-care", "forgive myself", "compassion"}},
	{"cognitive_restructuring", []string{"balanced thought", "realistic", "evidence", "challenge"}},
	{"behavioral_activation", []string{"activity", "action", "do something", "engage"}},
	{"mindfulness", []string{"present", "aware", "notice", "mindful"}},
	{"coping_strategies", []string{"cope", "manage", "strategy", "technique"}},
	{"support_seeking", []string{"support", "help", "friend", "family"}},
}

// ExportData builds the structured export for a session's answers.
func ExportData(condition models.Condition, p models.Personality, answers map[string]string, now time.Time) (Export, error) {
	f, err := flow.GetFlow(condition)
	if err != nil {
		return Export{}, err
	}

	export := Export{
		Metadata: ExportMetadata{
			Condition:            condition,
			Personality:          p,
			ExportDate:           now,
			ResponseCount:        len(answers),
			CompletionPercentage: float64(len(answers)) / float64(f.Len()) * 100,
			Filename:             Filename(condition, p, now),
		},
		Responses: answers,
		Analysis: ExportAnalysis{
			KeyInsightsIdentified: countInsights(answers),
			TherapeuticThemes:     identifyThemes(answers),
		},
	}

	var totalChars int
	for _, text := range answers {
		totalChars += len(text)
		export.Analysis.TotalWordCount += len(strings.Fields(text))
	}
	if len(answers) > 0 {
		export.Analysis.AvgResponseLength = float64(totalChars) / float64(len(answers))
	}
	return export, nil
}

func countInsights(answers map[string]string) int {
	count := 0
	for _, text := range answers {
		lower := strings.ToLower(text)
		for _, kw := range insightKeywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
	}
	return count
}

func identifyThemes(answers map[string]string) []string {
	parts := make([]string, 0, len(answers))
	for _, text := range answers {
		parts = append(parts, text)
	}
	all := strings.ToLower(strings.Join(parts, " "))

	var themes []string
	for _, t := range themeKeywords {
		for _, kw := range t.keywords {
			if strings.Contains(all, kw) {
				themes = append(themes, t.theme)
				break
			}
		}
	}
	return themes
}
