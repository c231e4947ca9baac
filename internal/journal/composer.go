// Package journal renders a completed (or partial) session into a
// Markdown journal entry plus a structured research export.
//
// Rendering is a total function over any subset of answers: missing
// keys fall back to generic placeholder phrases and never fail the
// render.
package journal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reflectlab/JournalPipe/internal/flow"
	"github.com/reflectlab/JournalPipe/internal/models"
	"github.com/reflectlab/JournalPipe/internal/personality"
)

// conditionTemplate carries the fixed per-condition framing text.
type conditionTemplate struct {
	title string
	intro string
}

var conditionTemplates = map[models.Condition]conditionTemplate{
	models.ConditionStress: {
		title: "Stress Management CBT Session",
		intro: "This session explored stress triggers and coping strategies using the CBT 5-Part Model.",
	},
	models.ConditionAnxiety: {
		title: "Anxiety Management CBT Session",
		intro: "This session examined anxious thoughts and developed confidence-building strategies.",
	},
	models.ConditionLowMood: {
		title: "Low Mood Recovery CBT Session",
		intro: "This session addressed negative thoughts and focused on rebuilding positive momentum.",
	},
}

// summaryKeys lists, per condition, the answer keys the narrative
// summary draws on and the placeholder used when a key is unanswered.
var summaryKeys = map[models.Condition]map[string]string{
	models.ConditionStress: {
		"situation":        "a challenging situation",
		"hot_thought":      "a distressing thought",
		"emotions":         "difficult emotions",
		"behaviors":        "stress responses",
		"physical":         "physical symptoms",
		"balanced_thought": "a more balanced perspective",
		"new_belief":       "a healthier belief",
		"helpful_action":   "positive action steps",
	},
	models.ConditionAnxiety: {
		"situation":        "an anxiety-provoking situation",
		"hot_thought":      "an anxious thought",
		"fear":             "a specific fear",
		"emotions":         "anxious feelings",
		"behaviors":        "anxiety responses",
		"physical":         "physical anxiety symptoms",
		"balanced_thought": "a more realistic perspective",
		"new_belief":       "an empowering belief",
		"small_step":       "a gradual exposure step",
	},
	models.ConditionLowMood: {
		"trigger":              "a mood trigger",
		"hot_thought":          "a painful thought",
		"emotions":             "low mood feelings",
		"behaviors":            "mood-related behaviors",
		"physical":             "physical symptoms",
		"balanced_perspective": "a compassionate perspective",
		"new_belief":           "a healthier self-belief",
		"tomorrow_activity":    "a mood-lifting activity",
	},
}

// actionKeyPreference orders the answer keys that can supply the
// committed action in the reflection section.
var actionKeyPreference = []string{"helpful_action", "small_step", "tomorrow_activity"}

// Render produces the full Markdown journal for a session. Answers may
// cover any subset of the flow's steps.
func Render(condition models.Condition, p models.Personality, answers map[string]string, now time.Time) (string, error) {
	slog.Debug("journal.Render: rendering journal", "condition", condition, "personality", p, "answers", len(answers))

	f, err := flow.GetFlow(condition)
	if err != nil {
		return "", err
	}
	profile, err := personality.GetProfile(p)
	if err != nil {
		return "", err
	}
	template := conditionTemplates[condition]

	var b strings.Builder
	writeHeader(&b, condition, p, template, now)
	writeSections(&b, f, answers)
	writeSummary(&b, condition, answers)
	writeReflection(&b, answers)
	writeFooter(&b, profile, now)
	return b.String(), nil
}

// Filename returns the suggested download name for a journal.
func Filename(condition models.Condition, p models.Personality, now time.Time) string {
	return fmt.Sprintf("cbt-journal-%s-%s-%s.md", condition, p, now.Format("2006-01-02"))
}

func writeHeader(b *strings.Builder, condition models.Condition, p models.Personality, template conditionTemplate, now time.Time) {
	fmt.Fprintf(b, "# %s\n\n", template.title)
	fmt.Fprintf(b, "**Session Date:** %s\n", now.Format("January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(b, "**Condition Focus:** %s\n", condition.DisplayName())
	fmt.Fprintf(b, "**Chatbot Personality:** %s\n", p.DisplayName())
	b.WriteString("**Session Type:** Cognitive Behavioral Therapy (CBT) Journaling\n\n")
	b.WriteString("---\n\n## Session Overview\n\n")
	b.WriteString(template.intro)
	b.WriteString("\n\n---\n\n")
}

// writeSections groups answered questions by category in the flow's
// first-appearance order.
func writeSections(b *strings.Builder, f *flow.Flow, answers map[string]string) {
	for _, category := range f.Categories() {
		var answered []flow.Step
		for _, step := range f.Steps {
			if step.Category != category {
				continue
			}
			if _, ok := answers[step.ID]; ok {
				answered = append(answered, step)
			}
		}
		if len(answered) == 0 {
			continue
		}

		fmt.Fprintf(b, "## %s\n\n", category)
		for _, step := range answered {
			fmt.Fprintf(b, "**Q:** %s\n\n", step.Prompt)
			fmt.Fprintf(b, "**A:** %s\n\n", answers[step.ID])
		}
		b.WriteString("---\n\n")
	}
}

// keyAnswer returns the answer for a summary key, or its placeholder.
func keyAnswer(condition models.Condition, answers map[string]string, key string) string {
	if v, ok := answers[key]; ok && v != "" {
		return v
	}
	return summaryKeys[condition][key]
}

func writeSummary(b *strings.Builder, condition models.Condition, answers map[string]string) {
	b.WriteString("## Session Summary\n\n")

	k := func(key string) string { return keyAnswer(condition, answers, key) }
	switch condition {
	case models.ConditionStress:
		fmt.Fprintf(b, "Through this CBT exploration, you examined a stressful experience involving **%s**. "+
			"Your most distressing thought was: *\"%s\"*, which contributed to feelings of **%s** and led to behaviors such as **%s**.\n\n",
			k("situation"), k("hot_thought"), k("emotions"), k("behaviors"))
		fmt.Fprintf(b, "Physically, you experienced **%s**, demonstrating the mind-body connection in stress responses.\n\n", k("physical"))
		fmt.Fprintf(b, "By examining the evidence and challenging unhelpful thinking patterns, you developed a more balanced perspective: *\"%s\"*. "+
			"You also identified a new, empowering belief: *\"%s\"* and committed to taking action through **%s**.\n\n",
			k("balanced_thought"), k("new_belief"), k("helpful_action"))
		b.WriteString("This reflection demonstrates that stress involves not just external events, but how we interpret and respond to them. " +
			"You've gained valuable insights for managing future stressful situations more effectively.\n")
	case models.ConditionAnxiety:
		fmt.Fprintf(b, "This session explored your anxiety around **%s**, with your core fear being **%s**. "+
			"Your most distressing thought was: *\"%s\"*, which triggered **%s** and led to behaviors like **%s**.\n\n",
			k("situation"), k("fear"), k("hot_thought"), k("emotions"), k("behaviors"))
		fmt.Fprintf(b, "You experienced physical symptoms including **%s**, highlighting anxiety's impact on the body.\n\n", k("physical"))
		fmt.Fprintf(b, "Through evidence examination, you developed a more balanced perspective: *\"%s\"*. "+
			"You're working toward the empowering belief that *\"%s\"* and have committed to taking a small step forward: **%s**.\n\n",
			k("balanced_thought"), k("new_belief"), k("small_step"))
		b.WriteString("This process reveals that anxiety often involves overestimating danger while underestimating your coping abilities. " +
			"You have more resilience and capability than your anxious mind suggests.\n")
	case models.ConditionLowMood:
		fmt.Fprintf(b, "Your low mood was triggered by **%s**, leading to the painful thought: *\"%s\"*. "+
			"This contributed to feelings of **%s** and behaviors such as **%s**.\n\n",
			k("trigger"), k("hot_thought"), k("emotions"), k("behaviors"))
		fmt.Fprintf(b, "You also noticed physical symptoms like **%s**, showing how mood affects the entire body.\n\n", k("physical"))
		fmt.Fprintf(b, "Through compassionate self-examination, you developed a more balanced perspective: *\"%s\"*. "+
			"You're cultivating the healthier belief that *\"%s\"* and have planned to engage in **%s** to support your mood.\n\n",
			k("balanced_perspective"), k("new_belief"), k("tomorrow_activity"))
		b.WriteString("This reflection shows that depression often involves a harsh inner critic. " +
			"By challenging these thoughts and planning positive activities, you're taking meaningful steps toward self-compassion and recovery.\n")
	}

	b.WriteString("\n---\n\n")
}

func writeReflection(b *strings.Builder, answers map[string]string) {
	b.WriteString(`## Key Insights and Reflections

Through this CBT journaling process, several important patterns and insights emerged:

### Thought-Emotion-Behavior Connection
This session highlighted the interconnected nature of thoughts, emotions, and behaviors. By identifying and examining automatic thoughts, you gained awareness of how cognitive patterns influence your emotional and behavioral responses.

### Evidence-Based Thinking
You practiced evaluating thoughts objectively, considering both supporting and contradicting evidence. This skill helps develop more balanced, realistic perspectives rather than accepting thoughts at face value.

### Cognitive Restructuring
You successfully challenged unhelpful thinking patterns and developed more adaptive, compassionate ways of viewing yourself and your situation.

### Actionable Insights
You identified concrete steps you can take to apply these insights in daily life, moving from reflection to practical implementation.

---

`)

	if belief, ok := answers["new_belief"]; ok {
		fmt.Fprintf(b, "### New Empowering Belief\n*\"%s\"*\n\nThis new belief represents a significant shift toward self-compassion and realistic self-assessment.\n\n", belief)
	}

	for _, key := range actionKeyPreference {
		if action, ok := answers[key]; ok {
			fmt.Fprintf(b, "### Committed Action\n**%s**\n\nThis commitment represents your intention to translate insights into meaningful behavioral change.\n\n", action)
			break
		}
	}

	b.WriteString("---\n\n")
}

func writeFooter(b *strings.Builder, profile *personality.Profile, now time.Time) {
	b.WriteString("## Final Reflection\n\n")
	b.WriteString(profile.JournalClosing)
	b.WriteString("\n\n### Next Steps\n")
	b.WriteString(`1. **Review** this journal entry regularly to reinforce insights
2. **Practice** the balanced thoughts and coping strategies identified
3. **Implement** the action steps you've committed to
4. **Monitor** your progress and celebrate small wins
5. **Return** to these techniques when facing similar challenges

### Session Completion
`)
	fmt.Fprintf(b, "**Date:** %s\n", now.Format("January 2, 2006"))
	b.WriteString("**Duration:** CBT Therapeutic Writing Session\n")
	b.WriteString("**Focus:** Cognitive restructuring and insight development\n\n")
	b.WriteString("---\n\n")
	b.WriteString("*This journal entry was generated from your CBT session responses and serves as a personal reference for ongoing mental health support. Keep this record for future reflection and progress tracking.*\n")
}
