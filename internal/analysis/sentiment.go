package analysis

import (
	"strings"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// Sentiment polarity thresholds on a -1..1 scale.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// positiveLexicon and negativeLexicon are small polarity word lists for
// the offline fallback. They cover the vocabulary that shows up in
// reflective answers, not general-purpose sentiment.
var positiveLexicon = map[string]bool{
	"good": true, "great": true, "better": true, "best": true,
	"happy": true, "hopeful": true, "calm": true, "peaceful": true,
	"relaxed": true, "relieved": true, "confident": true, "proud": true,
	"grateful": true, "thankful": true, "excited": true, "love": true,
	"enjoy": true, "enjoyed": true, "positive": true, "optimistic": true,
	"improved": true, "improving": true, "accomplished": true,
	"motivated": true, "supported": true, "capable": true, "strong": true,
}

var negativeLexicon = map[string]bool{
	"bad": true, "worse": true, "worst": true, "sad": true,
	"anxious": true, "worried": true, "scared": true, "afraid": true,
	"angry": true, "frustrated": true, "stressed": true, "stressful": true,
	"overwhelmed": true, "hopeless": true, "helpless": true, "tired": true,
	"exhausted": true, "lonely": true, "depressed": true, "upset": true,
	"terrible": true, "awful": true, "hate": true, "failure": true,
	"failed": true, "negative": true, "difficult": true, "hard": true,
	"painful": true, "hurt": true, "numb": true, "empty": true,
}

// stopwords filters function words out of keyword extraction.
var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"been": true, "were": true, "they": true, "them": true, "their": true,
	"would": true, "could": true, "should": true, "about": true,
	"when": true, "what": true, "because": true, "really": true,
	"very": true, "just": true, "like": true, "then": true, "than": true,
	"there": true, "where": true, "which": true, "while": true,
	"myself": true, "felt": true, "feel": true, "feeling": true,
}

// LocalSentiment classifies polarity from the word lists without any
// external service. Ties and weak signals are neutral.
func LocalSentiment(text string) models.Sentiment {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return models.SentimentNeutral
	}

	positive, negative := 0, 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"")
		if positiveLexicon[w] {
			positive++
		}
		if negativeLexicon[w] {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return models.SentimentNeutral
	}

	polarity := float64(positive-negative) / float64(total)
	switch {
	case polarity > positiveThreshold:
		return models.SentimentPositive
	case polarity < negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// LocalKeywords picks up to three distinct content words from the text:
// alphabetic, longer than three characters, stopwords skipped. If the
// filter leaves nothing, it retries without the stopword filter.
func LocalKeywords(text string) []string {
	keywords := extractKeywords(text, true)
	if len(keywords) == 0 {
		keywords = extractKeywords(text, false)
	}
	return keywords
}

func extractKeywords(text string, filterStopwords bool) []string {
	var keywords []string
	seen := make(map[string]bool)

	for _, w := range strings.Fields(text) {
		w = strings.ToLower(strings.Trim(w, ".,!?;:'\""))
		if len(w) <= 3 || !isAlpha(w) || seen[w] {
			continue
		}
		if filterStopwords && stopwords[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
		if len(keywords) == 3 {
			break
		}
	}
	return keywords
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
