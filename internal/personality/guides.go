package personality

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// GuideStore holds long-form style-guide text per personality and
// reference text per condition, loaded once at startup from external
// files. The store only feeds the external feedback generator; when a
// file is missing the corresponding lookups simply report absence and
// local composition remains fully available.
type GuideStore struct {
	styleGuides   map[models.Personality]string
	conditionRefs map[models.Condition]string
}

// Section markers inside the style-guide file. Text before the first
// marker belongs to the neutral guide.
const (
	conscientiousnessMarker = "2. HIGH CONSCIENTIOUSNESS TEMPLATE"
	extraversionMarker      = "3. HIGH EXTRAVERSION TEMPLATE"
)

// Condition section markers inside the reference file, with the excerpt
// length retained per section.
const conditionRefExcerpt = 1500

var conditionMarkers = map[models.Condition]string{
	models.ConditionStress:  "User with stress condition:",
	models.ConditionAnxiety: "User with anxious condition:",
	models.ConditionLowMood: "User with low mood condition:",
}

// NewGuideStore returns an empty store; all lookups report absence.
func NewGuideStore() *GuideStore {
	return &GuideStore{
		styleGuides:   make(map[models.Personality]string),
		conditionRefs: make(map[models.Condition]string),
	}
}

// LoadGuides reads the style-guide and condition-reference files. Any
// file that is missing or malformed is skipped with a warning; the
// returned store is always usable.
func LoadGuides(styleGuidePath, conditionRefPath string) *GuideStore {
	gs := NewGuideStore()

	if styleGuidePath != "" {
		if err := gs.loadStyleGuides(styleGuidePath); err != nil {
			slog.Warn("personality.LoadGuides: style guide file unavailable, external feedback styling disabled", "path", styleGuidePath, "error", err)
		}
	}
	if conditionRefPath != "" {
		if err := gs.loadConditionRefs(conditionRefPath); err != nil {
			slog.Warn("personality.LoadGuides: condition reference file unavailable", "path", conditionRefPath, "error", err)
		}
	}
	return gs
}

func (gs *GuideStore) loadStyleGuides(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read style guide file: %w", err)
	}
	text := string(content)

	parts := strings.SplitN(text, conscientiousnessMarker, 2)
	gs.styleGuides[models.PersonalityNeutral] = strings.TrimSpace(parts[0])
	if len(parts) < 2 {
		return fmt.Errorf("style guide file missing section marker %q", conscientiousnessMarker)
	}

	rest := strings.SplitN(parts[1], extraversionMarker, 2)
	gs.styleGuides[models.PersonalityConscientiousness] = conscientiousnessMarker + "\n" + strings.TrimSpace(rest[0])
	if len(rest) < 2 {
		return fmt.Errorf("style guide file missing section marker %q", extraversionMarker)
	}
	gs.styleGuides[models.PersonalityExtraversion] = extraversionMarker + "\n" + strings.TrimSpace(rest[1])

	slog.Info("personality.GuideStore: style guides loaded", "path", path, "personalities", len(gs.styleGuides))
	return nil
}

func (gs *GuideStore) loadConditionRefs(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read condition reference file: %w", err)
	}
	text := string(content)

	for condition, marker := range conditionMarkers {
		start := strings.Index(text, marker)
		if start == -1 {
			slog.Warn("personality.GuideStore: condition section not found", "condition", condition, "marker", marker)
			continue
		}
		end := start + conditionRefExcerpt
		if end > len(text) {
			end = len(text)
		}
		gs.conditionRefs[condition] = text[start:end]
	}

	slog.Info("personality.GuideStore: condition references loaded", "path", path, "conditions", len(gs.conditionRefs))
	return nil
}

// StyleGuide returns the long-form style guide for a personality.
func (gs *GuideStore) StyleGuide(p models.Personality) (string, bool) {
	guide, ok := gs.styleGuides[p]
	return guide, ok
}

// ConditionReference returns the reference excerpt for a condition.
func (gs *GuideStore) ConditionReference(c models.Condition) (string, bool) {
	ref, ok := gs.conditionRefs[c]
	return ref, ok
}
