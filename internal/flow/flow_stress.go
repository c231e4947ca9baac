package flow

import "github.com/reflectlab/JournalPipe/internal/models"

// stressFlow walks the CBT 5-Part Model for a stressful situation:
// trigger, thoughts, mood, behaviors, and physical reactions, followed
// by evidence examination, belief work, and action planning.
var stressFlow = &Flow{
	Condition: models.ConditionStress,
	Intro:     "Great choice! Let's explore your stress using the CBT 5-Part Model. We'll examine how your situation, thoughts, emotions, behaviors, and physical reactions are all connected.",
	Steps: []Step{
		{ID: "situation", Prompt: "What happened recently that triggered your stress?", Category: "Situation/Trigger"},
		{ID: "specific_event", Prompt: "Was there a specific event, deadline, interaction, or change?", Category: "Situation/Trigger"},
		{ID: "personal_stress", Prompt: "What made this situation feel stressful to you personally?", Category: "Situation/Trigger"},
		{ID: "thoughts_moment", Prompt: "What went through your mind at the moment you started feeling stressed?", Category: "Thoughts"},
		{ID: "hot_thought", Prompt: "What was the most distressing or believable thought? (Your \"hot thought\")", Category: "Thoughts"},
		{ID: "emotions", Prompt: "What emotions did you feel? (e.g., anxious, overwhelmed, frustrated, helpless)", Category: "Mood"},
		{ID: "mood_rating", Prompt: "Rate each mood from 0–100%.", Category: "Mood"},
		{ID: "behaviors", Prompt: "What did you do (or avoid doing) as a result of feeling stressed?", Category: "Behaviors"},
		{ID: "avoidance", Prompt: "Did you procrastinate, shut down, lash out, overwork, or escape?", Category: "Behaviors"},
		{ID: "physical", Prompt: "What physical symptoms did you notice? (e.g., muscle tension, headache, fatigue, nausea, racing heart)", Category: "Physical Reactions"},
		{ID: "assumptions", Prompt: "What assumptions were you making about yourself, others, or the situation?", Category: "Automatic Thoughts"},
		{ID: "distortions", Prompt: "Are you using any of these common thinking traps? (Catastrophizing, All-or-Nothing, Mind Reading, Overgeneralization, Shoulds/Musts)", Category: "Cognitive Distortions"},
		{ID: "evidence_for", Prompt: "What is the factual evidence that supports this thought?", Category: "Examine Evidence"},
		{ID: "evidence_against", Prompt: "What is the evidence that challenges or contradicts this thought?", Category: "Examine Evidence"},
		{ID: "friend_advice", Prompt: "What would you say to a friend if they were thinking the same thing in this situation?", Category: "Examine Evidence"},
		{ID: "balanced_thought", Prompt: "Based on the evidence, what's a more realistic or helpful way of viewing this situation?", Category: "Balanced Thought"},
		{ID: "believability", Prompt: "How believable is this new thought to you right now? (0–100%)", Category: "Balanced Thought"},
		{ID: "deeper_belief", Prompt: "Is there a deeper belief making this harder to cope with? (e.g., \"If I don't achieve, I'm worthless\")", Category: "Deeper Beliefs"},
		{ID: "belief_origin", Prompt: "Where do you think this belief came from—family, school, culture, or past experiences?", Category: "Deeper Beliefs"},
		{ID: "belief_influence", Prompt: "How has this belief influenced your life over time?", Category: "Deeper Beliefs"},
		{ID: "belief_meaning_self", Prompt: "If this belief were true, what would it mean about you?", Category: "Deeper Beliefs"},
		{ID: "helpful_action", Prompt: "What's one small, specific action you can take this week to reduce your stress?", Category: "Action Planning"},
		{ID: "action_steps", Prompt: "List a few manageable steps to help you follow through.", Category: "Action Planning"},
		{ID: "control_parts", Prompt: "What parts of this situation are within your control, and what parts are outside of your control?", Category: "Action Planning"},
		{ID: "past_strategies", Prompt: "What strengths or past strategies have helped you manage similar stress before?", Category: "Action Planning"},
		{ID: "belief_outcome", Prompt: "When you challenged this belief, did the outcome match your prediction? Did anything positive or unexpected happen?", Category: "Healthier Beliefs"},
		{ID: "new_belief", Prompt: "What new belief would you like to adopt about yourself, others, or life?", Category: "Healthier Beliefs"},
		{ID: "belief_evidence", Prompt: "Write down 10 small pieces of evidence that support this new belief.", Category: "Healthier Beliefs"},
	},
}
