package analysis

import (
	"regexp"
	"strings"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// Analysis holds the quality metrics computed for a single answer.
// All scores are on a 0..100 scale.
type Analysis struct {
	WordCount             int            `json:"word_count"`
	CharacterCount        int            `json:"character_count"`
	SentenceCount         int            `json:"sentence_count"`
	TherapeuticIndicators map[string]int `json:"therapeutic_indicators"`
	EmotionalDepth        float64        `json:"emotional_depth"`
	SpecificityScore      float64        `json:"specificity_score"`
	InsightLevel          float64        `json:"insight_level"`
	CategoryRelevance     float64        `json:"category_relevance"`
	ReadabilityScore      float64        `json:"readability_score"`
	OverallQualityScore   float64        `json:"overall_quality_score"`
}

// therapeuticIndicators groups engagement vocabulary by the dimension
// it signals. Counts are whole-word occurrence counts, not presence.
var therapeuticIndicators = map[string][]string{
	"self_awareness": {
		"i realize", "i notice", "i understand", "i recognize", "i see",
		"pattern", "connection", "relationship", "impact", "effect",
		"trigger", "cause", "lead to", "result in",
	},
	"emotional_processing": {
		"feel", "felt", "emotion", "emotional", "mood", "feelings",
		"anxious", "sad", "angry", "frustrated", "overwhelmed",
		"hopeful", "calm", "peaceful", "content", "relieved",
	},
	"cognitive_restructuring": {
		"thought", "think", "believe", "assumption", "expectation",
		"realistic", "balanced", "alternative", "different way",
		"perspective", "viewpoint", "evidence", "proof",
	},
	"behavioral_insight": {
		"behavior", "action", "reaction", "response", "habit",
		"avoid", "escape", "withdraw", "engage", "participate",
		"cope", "manage", "handle", "deal with",
	},
	"future_orientation": {
		"will", "plan", "goal", "hope", "expect", "next time",
		"future", "tomorrow", "later", "going to", "intend",
	},
	"self_compassion": {
		"kind to myself", "forgive myself", "understanding",
		"gentle", "patient", "compassionate", "accepting",
		"human", "normal", "understandable",
	},
}

var emotionWords = []string{
	"feel", "felt", "emotion", "emotional", "mood", "feelings",
	"anxious", "nervous", "worried", "scared", "afraid",
	"sad", "depressed", "hopeless", "empty", "numb",
	"angry", "frustrated", "irritated", "annoyed",
	"happy", "joyful", "content", "peaceful", "calm",
	"excited", "enthusiastic", "motivated", "hopeful",
	"overwhelmed", "stressed", "tense", "relaxed",
}

var personalEmotionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i feel`),
	regexp.MustCompile(`i felt`),
	regexp.MustCompile(`i am`),
	regexp.MustCompile(`i'm`),
	regexp.MustCompile(`i was`),
	regexp.MustCompile(`made me feel`),
	regexp.MustCompile(`it feels`),
	regexp.MustCompile(`feeling`),
}

var specificityIndicators = []string{
	"when", "where", "how", "why", "what", "who",
	"because", "since", "due to", "as a result",
	"for example", "such as", "like", "including",
	"specifically", "particularly", "especially",
}

var concretePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+\b`),
	regexp.MustCompile(`\b(yesterday|today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	regexp.MustCompile(`\b(morning|afternoon|evening|night)\b`),
	regexp.MustCompile(`\b(home|work|school|office|gym|store)\b`),
}

var insightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i realize`),
	regexp.MustCompile(`i understand`),
	regexp.MustCompile(`i see`),
	regexp.MustCompile(`i notice`),
	regexp.MustCompile(`i recognize`),
	regexp.MustCompile(`i learned`),
	regexp.MustCompile(`i discovered`),
	regexp.MustCompile(`pattern`),
	regexp.MustCompile(`connection`),
	regexp.MustCompile(`relationship`),
	regexp.MustCompile(`this shows`),
	regexp.MustCompile(`this means`),
	regexp.MustCompile(`this suggests`),
	regexp.MustCompile(`because`),
	regexp.MustCompile(`since`),
	regexp.MustCompile(`as a result`),
	regexp.MustCompile(`therefore`),
	regexp.MustCompile(`leads to`),
	regexp.MustCompile(`causes`),
	regexp.MustCompile(`triggers`),
	regexp.MustCompile(`affects`),
}

var causalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`if.*then`),
	regexp.MustCompile(`when.*i`),
	regexp.MustCompile(`because.*i`),
	regexp.MustCompile(`this makes me`),
	regexp.MustCompile(`which leads to`),
	regexp.MustCompile(`resulting in`),
}

// categoryKeywords maps a question category to the vocabulary expected
// in an on-topic answer. Categories absent from this table score 50.
var categoryKeywords = map[string][]string{
	"Situation/Trigger":     {"situation", "event", "happened", "occurred", "trigger", "when"},
	"Thoughts":              {"thought", "think", "believe", "mind", "ideas", "opinion"},
	"Emotions":              {"feel", "emotion", "mood", "emotional", "feelings"},
	"Behaviors":             {"did", "action", "behavior", "react", "response", "avoid"},
	"Physical Reactions":    {"body", "physical", "symptoms", "tension", "heart", "breathing"},
	"Cognitive Distortions": {"thinking", "pattern", "assumption", "belief"},
	"Examine Evidence":      {"evidence", "proof", "support", "fact", "true", "reality"},
	"Balanced Thought":      {"balanced", "realistic", "alternative", "different", "helpful"},
	"Action Planning":       {"plan", "action", "step", "do", "will", "going to"},
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)
var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Analyze computes all quality metrics for a single answer in the
// context of its question category.
func Analyze(text, category string) Analysis {
	a := Analysis{
		WordCount:             len(strings.Fields(text)),
		CharacterCount:        len(text),
		SentenceCount:         len(sentenceSplitter.Split(text, -1)) - 1,
		TherapeuticIndicators: countTherapeuticIndicators(text),
		EmotionalDepth:        assessEmotionalDepth(text),
		SpecificityScore:      assessSpecificity(text),
		InsightLevel:          assessInsightLevel(text),
		CategoryRelevance:     assessCategoryRelevance(text, category),
		ReadabilityScore:      calculateReadability(text),
	}
	a.OverallQualityScore = qualityScore(a)
	return a
}

func countTherapeuticIndicators(text string) map[string]int {
	lower := strings.ToLower(text)
	counts := make(map[string]int, len(therapeuticIndicators))
	for category, indicators := range therapeuticIndicators {
		count := 0
		for _, indicator := range indicators {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(indicator) + `\b`)
			count += len(re.FindAllString(lower, -1))
		}
		counts[category] = count
	}
	return counts
}

// assessEmotionalDepth scores emotion vocabulary plus first-person
// emotional framing, normalized by response length.
func assessEmotionalDepth(text string) float64 {
	lower := strings.ToLower(text)

	emotionCount := 0
	for _, w := range emotionWords {
		if strings.Contains(lower, w) {
			emotionCount++
		}
	}

	personalCount := 0
	for _, p := range personalEmotionPatterns {
		if p.MatchString(lower) {
			personalCount++
		}
	}

	wordCount := float64(len(strings.Fields(text)))
	return clamp100(float64(emotionCount+personalCount*2) / maxf(wordCount/10, 1) * 100)
}

func assessSpecificity(text string) float64 {
	lower := strings.ToLower(text)

	specificityCount := 0
	for _, ind := range specificityIndicators {
		if strings.Contains(lower, ind) {
			specificityCount++
		}
	}

	concreteCount := 0
	for _, p := range concretePatterns {
		if p.MatchString(lower) {
			concreteCount++
		}
	}

	wordCount := float64(len(strings.Fields(text)))
	return clamp100(float64(specificityCount+concreteCount) / maxf(wordCount/15, 1) * 100)
}

func assessInsightLevel(text string) float64 {
	lower := strings.ToLower(text)

	insightCount := 0
	for _, p := range insightPatterns {
		if p.MatchString(lower) {
			insightCount++
		}
	}

	causalCount := 0
	for _, p := range causalPatterns {
		if p.MatchString(lower) {
			causalCount++
		}
	}

	wordCount := float64(len(strings.Fields(text)))
	return clamp100(float64(insightCount+causalCount*2) / maxf(wordCount/20, 1) * 100)
}

func assessCategoryRelevance(text, category string) float64 {
	keywords, ok := categoryKeywords[category]
	if !ok || len(keywords) == 0 {
		return 50.0
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return clamp100(float64(hits) / float64(len(keywords)) * 100)
}

// calculateReadability is a Flesch reading-ease estimate clamped to
// 0..100. Responses without sentence-ending punctuation score 0.
func calculateReadability(text string) float64 {
	sentences := len(sentenceSplitter.Split(text, -1)) - 1
	words := len(strings.Fields(text))
	syllables := countSyllables(text)

	if sentences == 0 || words == 0 {
		return 0.0
	}

	score := 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*(float64(syllables)/float64(words))
	return clamp100(score)
}

// countSyllables estimates syllables per word by counting vowel groups,
// subtracting one for a trailing silent e, with a floor of one.
func countSyllables(text string) int {
	total := 0
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		count := 0
		prevVowel := false
		for _, r := range word {
			isVowel := strings.ContainsRune("aeiouy", r)
			if isVowel && !prevVowel {
				count++
			}
			prevVowel = isVowel
		}
		if strings.HasSuffix(word, "e") && count > 1 {
			count--
		}
		if count < 1 {
			count = 1
		}
		total += count
	}
	return total
}

func qualityScore(a Analysis) float64 {
	wordScore := clamp100(float64(a.WordCount-5) / 95 * 100)
	return 0.1*wordScore +
		0.25*a.EmotionalDepth +
		0.2*a.SpecificityScore +
		0.25*a.InsightLevel +
		0.2*a.CategoryRelevance
}

// FeedbackSuggestions returns style-matched prompts for deepening an
// answer that scored low on depth, specificity, or insight.
func FeedbackSuggestions(a Analysis, personality models.Personality) []string {
	var suggestions []string

	if a.EmotionalDepth < 30 {
		switch personality {
		case models.PersonalityExtraversion:
			suggestions = append(suggestions, "I'd love to hear more about what you were feeling! Emotions are such an important part of understanding our experiences.")
		case models.PersonalityConscientiousness:
			suggestions = append(suggestions, "To enhance our analysis, consider providing more detailed information about your emotional responses to this situation.")
		default:
			suggestions = append(suggestions, "Consider sharing more about the emotions you experienced in this situation.")
		}
	}

	if a.SpecificityScore < 40 {
		switch personality {
		case models.PersonalityExtraversion:
			suggestions = append(suggestions, "Can you paint me a picture with more details? I'm really interested in the specifics of what happened!")
		case models.PersonalityConscientiousness:
			suggestions = append(suggestions, "Providing more specific details will significantly improve our systematic analysis of this situation.")
		default:
			suggestions = append(suggestions, "Adding more specific details would help us better understand your experience.")
		}
	}

	if a.InsightLevel < 30 {
		switch personality {
		case models.PersonalityExtraversion:
			suggestions = append(suggestions, "What insights are coming up for you? I'm excited to hear what connections you're making!")
		case models.PersonalityConscientiousness:
			suggestions = append(suggestions, "Consider examining the patterns and connections between your thoughts, emotions, and behaviors in this situation.")
		default:
			suggestions = append(suggestions, "Try to explore what patterns or connections you notice in this experience.")
		}
	}

	return suggestions
}

var progressPatterns = map[string]*regexp.Regexp{
	"self_awareness_growth": regexp.MustCompile(`i (realize|understand|see|notice)`),
	"emotional_processing":  regexp.MustCompile(`(feel|felt|emotion)`),
	"behavioral_insights":   regexp.MustCompile(`(behavior|action|react|response)`),
	"future_planning":       regexp.MustCompile(`(will|plan|going to|next time)`),
	"coping_strategies":     regexp.MustCompile(`(cope|manage|handle|strategy)`),
}

// TherapeuticProgress counts progress-indicator occurrences across all
// answers joined into one text.
func TherapeuticProgress(answers map[string]string) map[string]float64 {
	parts := make([]string, 0, len(answers))
	for _, text := range answers {
		parts = append(parts, text)
	}
	joined := strings.ToLower(strings.Join(parts, " "))

	progress := make(map[string]float64, len(progressPatterns))
	for name, pattern := range progressPatterns {
		progress[name] = float64(len(pattern.FindAllString(joined, -1)))
	}
	return progress
}

// outcomePhrases marks each outcome dimension with the vocabulary whose
// presence in an answer counts toward it.
var outcomePhrases = map[string][]string{
	"cognitive_restructuring_evidence": {"balanced", "realistic", "alternative", "different way"},
	"emotional_processing_depth":       {"feel", "emotion", "mood", "feelings"},
	"behavioral_insights":              {"behavior", "action", "react", "response"},
	"self_awareness_growth":            {"realize", "understand", "notice", "pattern"},
	"coping_strategy_development":      {"cope", "manage", "strategy", "plan"},
}

// TherapeuticOutcomes scores each outcome dimension as the percentage
// of answers containing at least one of its marker phrases.
func TherapeuticOutcomes(answers map[string]string) map[string]float64 {
	if len(answers) == 0 {
		return map[string]float64{}
	}

	outcomes := make(map[string]float64, len(outcomePhrases))
	for name := range outcomePhrases {
		outcomes[name] = 0
	}
	for _, text := range answers {
		lower := strings.ToLower(text)
		for name, phrases := range outcomePhrases {
			for _, phrase := range phrases {
				if strings.Contains(lower, phrase) {
					outcomes[name]++
					break
				}
			}
		}
	}

	total := float64(len(answers))
	for name := range outcomes {
		outcomes[name] = outcomes[name] / total * 100
	}
	return outcomes
}

// SessionAnalytics aggregates per-answer metrics over a completed
// session. Answers are analyzed with a "General" category, so relevance
// contributes its default.
func SessionAnalytics(answers map[string]string) models.SessionAnalytics {
	analytics := models.SessionAnalytics{
		TotalResponses:      len(answers),
		ProgressIndicators:  TherapeuticProgress(answers),
		TherapeuticOutcomes: TherapeuticOutcomes(answers),
	}
	if len(answers) == 0 {
		return analytics
	}

	var totalQuality, totalDepth, totalInsight float64
	for _, text := range answers {
		a := Analyze(text, "General")
		totalQuality += a.OverallQualityScore
		totalDepth += a.EmotionalDepth
		totalInsight += a.InsightLevel
		analytics.TotalWordCount += a.WordCount
	}

	n := float64(len(answers))
	analytics.AvgQualityScore = totalQuality / n
	analytics.AvgEmotionalDepth = totalDepth / n
	analytics.AvgInsightLevel = totalInsight / n
	analytics.AvgResponseLength = float64(analytics.TotalWordCount) / n

	return analytics
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
