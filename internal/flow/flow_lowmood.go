package flow

import "github.com/reflectlab/JournalPipe/internal/models"

// lowMoodFlow pairs cognitive work on the inner critic with behavioral
// activation: activity review, one planned activity, and small wins.
var lowMoodFlow = &Flow{
	Condition: models.ConditionLowMood,
	Intro:     "Excellent! Let's understand your low mood through the CBT 5-Part Model. We'll explore the connections between your thoughts, feelings, and behaviors to find pathways to feeling better.",
	Steps: []Step{
		{ID: "trigger", Prompt: "What situation, interaction, or thought triggered your low mood recently?", Category: "Situation/Trigger"},
		{ID: "thoughts", Prompt: "What was going through your mind at that moment?", Category: "Thoughts"},
		{ID: "hot_thought", Prompt: "What was the most painful or convincing thought? (\"hot thought\")", Category: "Thoughts"},
		{ID: "meaning", Prompt: "What did that thought mean about you, your life, or your future?", Category: "Thoughts"},
		{ID: "emotions", Prompt: "What emotions did you feel? (e.g., sad, hopeless, empty, guilty, numb)", Category: "Moods"},
		{ID: "mood_rating", Prompt: "Rate each mood from 0–100%.", Category: "Moods"},
		{ID: "behaviors", Prompt: "What did you do—or avoid doing—because you felt this way?", Category: "Behaviors"},
		{ID: "withdrawal", Prompt: "Did you withdraw, isolate, stop doing enjoyable or necessary activities?", Category: "Behaviors"},
		{ID: "physical", Prompt: "What physical symptoms did you notice? (e.g., fatigue, heaviness, sleep or appetite changes, slowed movement)", Category: "Physical Reactions"},
		{ID: "negative_beliefs", Prompt: "What were you telling yourself about your worth, future, or abilities? (e.g., \"I'm a failure,\" \"Nothing will change\")", Category: "Core Negative Beliefs"},
		{ID: "thinking_errors", Prompt: "Were you making thinking errors like all-or-nothing thinking, mental filter, overgeneralization, labeling, or hopelessness?", Category: "Thinking Errors"},
		{ID: "evidence_for", Prompt: "What is the factual evidence that supports this thought?", Category: "Examine Evidence"},
		{ID: "evidence_against", Prompt: "What evidence contradicts it or offers a different view?", Category: "Examine Evidence"},
		{ID: "friend_advice", Prompt: "If a friend said this about themselves, what would you say to them?", Category: "Examine Evidence"},
		{ID: "balanced_perspective", Prompt: "Based on the evidence, what's a more balanced or constructive way to view the situation or yourself?", Category: "Balanced Perspective"},
		{ID: "belief_strength", Prompt: "How much do you believe this new thought (0–100%)?", Category: "Balanced Perspective"},
		{ID: "recent_activities", Prompt: "What activities (if any) did you do today or recently?", Category: "Activity Review"},
		{ID: "positive_activities", Prompt: "Which activities gave you even a small sense of pleasure, accomplishment, or connection?", Category: "Activity Review"},
		{ID: "tomorrow_activity", Prompt: "What is one small, meaningful activity you could do tomorrow that may improve your mood?", Category: "Behavioral Activation"},
		{ID: "obstacles", Prompt: "What obstacles might make it hard to follow through—and how could you handle them?", Category: "Behavioral Activation"},
		{ID: "deep_belief", Prompt: "What belief do you hold about yourself that may be contributing to your mood? (e.g., \"I'm not good enough\")", Category: "Deep-Seated Beliefs"},
		{ID: "belief_source", Prompt: "Where do you think that belief came from—family, experiences, rejection, failure?", Category: "Deep-Seated Beliefs"},
		{ID: "belief_impact", Prompt: "How has this belief impacted your life and relationships over time?", Category: "Deep-Seated Beliefs"},
		{ID: "new_belief", Prompt: "What new belief would you like to hold about yourself? (e.g., \"I have value regardless of what I achieve\")", Category: "Healthier Beliefs"},
		{ID: "evidence_list", Prompt: "List 10 small pieces of evidence or moments that support this new belief.", Category: "Healthier Beliefs"},
		{ID: "life_difference", Prompt: "What would be different in your life if you believed this more deeply?", Category: "Healthier Beliefs"},
		{ID: "next_24_hours", Prompt: "What's one thing you can do in the next 24 hours to support your mental health or lift your mood?", Category: "Small Wins"},
		{ID: "support", Prompt: "Who or what could support you in doing this?", Category: "Small Wins"},
		{ID: "future_reminder", Prompt: "What reminder would you like to give yourself next time your mood feels low?", Category: "Future Resilience"},
	},
}
