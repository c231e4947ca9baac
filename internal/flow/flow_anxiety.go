package flow

import "github.com/reflectlab/JournalPipe/internal/models"

// anxietyFlow examines anxious predictions and safety behaviors before
// building balanced thoughts, graded exposure steps, and new beliefs.
var anxietyFlow = &Flow{
	Condition: models.ConditionAnxiety,
	Intro:     "Perfect! We'll examine your anxiety using CBT's comprehensive framework. This will help us understand your fears and develop strategies to manage them effectively.",
	Steps: []Step{
		{ID: "situation", Prompt: "What recent situation or event made you feel anxious?", Category: "Situation/Trigger"},
		{ID: "anticipation", Prompt: "Was there something you were anticipating, avoiding, or fearing?", Category: "Situation/Trigger"},
		{ID: "thoughts", Prompt: "What thoughts were running through your mind at that time?", Category: "Thoughts"},
		{ID: "hot_thought", Prompt: "What was the most distressing or believable thought? (\"hot thought\")", Category: "Thoughts"},
		{ID: "fear", Prompt: "What were you afraid might happen?", Category: "Thoughts"},
		{ID: "emotions", Prompt: "What emotions did you feel? (e.g., nervous, scared, panicky, uneasy)", Category: "Emotions"},
		{ID: "emotion_intensity", Prompt: "Rate the intensity of each emotion from 0–100%.", Category: "Emotions"},
		{ID: "behaviors", Prompt: "What did you do—or avoid doing—because of the anxiety?", Category: "Behaviors"},
		{ID: "safety_behaviors", Prompt: "Did you engage in safety behaviors (e.g., checking, avoiding, escaping, seeking reassurance)?", Category: "Behaviors"},
		{ID: "physical", Prompt: "What physical symptoms did you notice? (e.g., tight chest, rapid heartbeat, sweating, dizziness, nausea)", Category: "Physical Reactions"},
		{ID: "predictions", Prompt: "What did you think would go wrong? What's the worst-case scenario your mind predicted?", Category: "Anxious Predictions"},
		{ID: "thinking_traps", Prompt: "Are you experiencing thinking patterns like catastrophizing, fortune telling, mind reading, overgeneralizing, intolerance of uncertainty, or shoulds/musts?", Category: "Thinking Traps"},
		{ID: "coping_strategies", Prompt: "What do you usually do to cope with anxiety (e.g., avoid, seek reassurance, prepare excessively)?", Category: "Safety Behaviors"},
		{ID: "strategy_effectiveness", Prompt: "Do these strategies reduce anxiety in the long run—or maintain it?", Category: "Safety Behaviors"},
		{ID: "evidence_for", Prompt: "What is the actual evidence that supports your anxious thought or prediction?", Category: "Examine Evidence"},
		{ID: "evidence_against", Prompt: "What is the evidence that contradicts it or offers another explanation?", Category: "Examine Evidence"},
		{ID: "friend_perspective", Prompt: "If a friend had this thought, what would you say to help them gain perspective?", Category: "Examine Evidence"},
		{ID: "balanced_thought", Prompt: "What's a more balanced way to think about this situation?", Category: "Balanced Thought"},
		{ID: "belief_rating", Prompt: "On a scale of 0–100%, how much do you believe this new thought?", Category: "Balanced Thought"},
		{ID: "avoidance", Prompt: "Is there something you've been avoiding due to fear?", Category: "Facing Fears"},
		{ID: "small_step", Prompt: "What is one small step you could take to face this fear gradually?", Category: "Facing Fears"},
		{ID: "coping_strategy", Prompt: "What calming strategy might help you in similar situations? (e.g., breathing, grounding, mindfulness)", Category: "Coping Strategy"},
		{ID: "deeper_belief", Prompt: "Is there a deeper belief behind your anxiety? (e.g., \"If I'm not in control, something bad will happen\")", Category: "Underlying Beliefs"},
		{ID: "belief_origin", Prompt: "Where might this belief come from—past experiences, upbringing, messages from others?", Category: "Underlying Beliefs"},
		{ID: "belief_impact", Prompt: "How has this belief shaped your reactions and decisions over time?", Category: "Underlying Beliefs"},
		{ID: "new_belief", Prompt: "What is a new, empowering belief you'd like to hold? (e.g., \"Uncertainty is uncomfortable but tolerable\")", Category: "New Beliefs"},
		{ID: "supporting_evidence", Prompt: "List 10 small experiences or facts from your life that support this new belief.", Category: "New Beliefs"},
		{ID: "life_change", Prompt: "What would change in your life if you believed this more often?", Category: "New Beliefs"},
		{ID: "key_learning", Prompt: "What's one thing you learned from this reflection that you want to remember?", Category: "Progress"},
		{ID: "weekly_action", Prompt: "What can you do this week to reinforce your progress?", Category: "Progress"},
	},
}
