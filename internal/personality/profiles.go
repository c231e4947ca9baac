package personality

import "github.com/reflectlab/JournalPipe/internal/models"

// Profile bundles all style data for one personality. Profiles are
// immutable after load; every personality carries its own phrase bank,
// lookup tables, and fixed welcome/closing text.
type Profile struct {
	ID models.Personality
	// PhraseBank holds feedback templates with optional {context},
	// {category_context}, and {insight} slots. Selection is by step
	// index modulo bank size, never random, so per-personality tone
	// stays comparable across sessions.
	PhraseBank      []string
	Welcome         string
	Closing         string
	JournalClosing  string
	CategoryContext map[string]string
	CategoryInsight map[string]string
	// StepInsights are bucketed by step index: <5, <10, else.
	StepInsights [3]string
	// QuestionLeadIns prefix the next question; empty for neutral.
	QuestionLeadIns []string
}

var neutralProfile = &Profile{
	ID: models.PersonalityNeutral,
	PhraseBank: []string{
		"Thank you for sharing that. {context} Let's continue exploring this together.",
		"I appreciate you taking the time to reflect on this. Your response helps us understand the situation better.",
		"That's helpful information. {insight} Let's move forward with the next aspect.",
		"Thank you for being open about your experience. This kind of reflection can be valuable for understanding patterns.",
		"I understand. {category_context} Let's continue examining this.",
	},
	Welcome:        "Hello, I'm here to guide you through a CBT journaling session. This process will help you explore your thoughts, feelings, and responses to recent experiences. Please select the area you'd like to focus on today.",
	Closing:        "Thank you for taking time for your mental health today. Remember, self-reflection is a continuous process that can help you develop better coping strategies.",
	JournalClosing: "Remember that CBT is a process of ongoing practice. The insights gained today provide a foundation for continued growth and self-understanding.",
	CategoryContext: map[string]string{
		"Situation/Trigger":     "Understanding the trigger is an important first step.",
		"Thoughts":              "Identifying these thoughts is an important part of the process.",
		"Emotions":              "Recognizing your emotional responses helps us understand your experience.",
		"Behaviors":             "Understanding your behavioral responses provides insight into coping patterns.",
		"Physical Reactions":    "Physical symptoms often reflect our mental state.",
		"Cognitive Distortions": "Recognizing thinking patterns is valuable for developing awareness.",
		"Examine Evidence":      "This evaluation process helps develop balanced perspectives.",
		"Balanced Thought":      "Creating alternative thoughts is a key CBT skill.",
		"Action Planning":       "Planning concrete actions helps translate insights into practice.",
	},
	CategoryInsight: map[string]string{
		"Thoughts":           "Identifying these thoughts helps us understand your mental patterns.",
		"Emotions":           "Understanding emotional responses is key to the CBT process.",
		"Behaviors":          "Behavioral patterns often reflect our internal states.",
		"Physical Reactions": "The mind-body connection is an important aspect to explore.",
	},
	StepInsights: [3]string{
		"This information helps build our understanding.",
		"We're making good progress in this exploration.",
		"This reflection process is helping develop important insights.",
	},
}

var conscientiousnessProfile = &Profile{
	ID: models.PersonalityConscientiousness,
	PhraseBank: []string{
		"Excellent work providing that detailed information. Your thorough response demonstrates genuine commitment to this self-examination process. Let's systematically proceed to analyze the next component.",
		"Outstanding reflection. I particularly appreciate the specificity of your response - this level of detail will significantly enhance our analysis. Now, let's methodically examine the next aspect.",
		"Thank you for that comprehensive response. Your careful consideration of this question shows dedication to understanding these patterns thoroughly. We'll now progress systematically to the next element.",
		"Superb insight. The thoroughness of your reflection indicates you're taking this process seriously, which is absolutely crucial for meaningful progress. Let's continue with our structured approach.",
		"Excellent self-awareness demonstrated in your response. This methodical exploration of your experience will provide valuable insights for developing effective coping strategies. Proceeding to our next structured component.",
	},
	Welcome:        "Welcome to this comprehensive CBT journaling session. I'm here to guide you through a systematic, evidence-based process that will help you thoroughly analyze your thoughts, emotions, and behavioral patterns. This structured approach will provide you with valuable insights and actionable strategies. Please select your primary area of focus so we can begin this methodical exploration.",
	Closing:        "Congratulations on completing this comprehensive self-examination process. Your dedication to this systematic approach demonstrates excellent commitment to your mental health and personal development. Remember, consistent application of these evidence-based techniques will yield the most significant long-term benefits for your wellbeing.",
	JournalClosing: "Your systematic approach to this CBT process demonstrates excellent commitment to personal development. Consistent application of these evidence-based techniques will yield significant long-term benefits for your mental health and wellbeing.",
	CategoryContext: map[string]string{
		"Situation/Trigger":     "Systematic analysis of triggers provides crucial foundational data for our comprehensive examination.",
		"Thoughts":              "Methodical identification of cognitive patterns enables thorough analysis of your thought processes.",
		"Emotions":              "Precise emotional assessment is essential for comprehensive understanding of your affective responses.",
		"Behaviors":             "Detailed behavioral analysis provides critical insights into your response patterns and coping mechanisms.",
		"Physical Reactions":    "Systematic documentation of physiological responses enhances our comprehensive assessment.",
		"Cognitive Distortions": "Rigorous examination of thinking patterns is fundamental to evidence-based cognitive restructuring.",
		"Examine Evidence":      "This systematic evaluation process is essential for developing well-founded, balanced perspectives.",
		"Balanced Thought":      "Structured cognitive reframing represents a core evidence-based therapeutic technique.",
		"Action Planning":       "Strategic action planning ensures systematic implementation of therapeutic insights.",
	},
	CategoryInsight: map[string]string{
		"Thoughts":           "Systematic thought identification enables comprehensive cognitive analysis.",
		"Emotions":           "Methodical emotional assessment provides essential diagnostic clarity.",
		"Behaviors":          "Structured behavioral analysis yields crucial therapeutic insights.",
		"Physical Reactions": "Systematic physiological assessment enhances diagnostic precision.",
	},
	StepInsights: [3]string{
		"This foundational information will inform our subsequent systematic analysis.",
		"We're building a comprehensive understanding through methodical examination.",
		"This systematic approach ensures thorough therapeutic progress.",
	},
	QuestionLeadIns: []string{
		"Proceeding to the next logical step:",
		"For our next point of analysis:",
		"To continue our systematic review:",
		"The next item on our agenda is:",
	},
}

var extraversionProfile = &Profile{
	ID: models.PersonalityExtraversion,
	PhraseBank: []string{
		"Wow, thank you so much for sharing that with me! I really appreciate your openness - it takes courage to dive into these feelings. You're doing such great work here! Let's keep this momentum going together!",
		"That's fantastic that you're exploring this so openly! I'm genuinely excited to help you work through this. Your willingness to share is really inspiring! Let's dive into the next part - I think you're going to find this really helpful!",
		"Amazing reflection! I love how thoughtful you're being about this whole process. Seriously, you should be proud of yourself for taking the time to do this work! Ready for the next step? I think this is going to be really insightful!",
		"This is so great - you're really connecting with the process! I can tell you're putting genuine effort into understanding yourself better, and that's absolutely wonderful! Let's keep up this fantastic energy and explore the next aspect together!",
		"I'm really impressed by your honesty and self-awareness! It's exciting to see someone engage so fully with this process. You're building such valuable insights about yourself! Let's continue this journey together - I'm here to support you every step of the way!",
	},
	Welcome:        "Hey there! I'm so excited to work with you today on this CBT journaling adventure! This is going to be such a valuable experience for understanding yourself better and building some awesome coping strategies. I'm here to guide you through every step, and I genuinely can't wait to see what insights we discover together! So, what area would you like to dive into today? Let's make this session amazing!",
	Closing:        "Wow, what an incredible session we just had together! I'm genuinely so proud of you for putting in this effort and being so open about your experiences. You've shown real courage and commitment to your mental health today! Remember, every small step counts, and you're building something really meaningful here. Keep up the fantastic work, and remember - I'm always here whenever you need support! You've got this!",
	JournalClosing: "What an amazing journey of self-discovery you've completed today! Your openness and courage in exploring these thoughts and feelings is truly inspiring. Remember, every small step counts, and you're building something really meaningful for your mental health!",
	CategoryContext: map[string]string{
		"Situation/Trigger":     "I love that you're diving right into understanding what sparked these feelings!",
		"Thoughts":              "This is so important - getting clear on these thoughts is going to be super helpful!",
		"Emotions":              "You're doing amazing work exploring these emotions - this is really valuable stuff!",
		"Behaviors":             "I'm so glad we're looking at this together - understanding your responses is incredibly insightful!",
		"Physical Reactions":    "This mind-body connection stuff is fascinating, and you're really getting it!",
		"Cognitive Distortions": "You're being so brave examining these thinking patterns - this is powerful work!",
		"Examine Evidence":      "I love this part - we're like detectives uncovering the real story here!",
		"Balanced Thought":      "This is so exciting - you're building new, healthier ways of thinking!",
		"Action Planning":       "Yes! I'm thrilled we're moving into action mode - this is where the magic happens!",
	},
	CategoryInsight: map[string]string{
		"Thoughts":           "Getting clear on thoughts is so empowering!",
		"Emotions":           "Understanding emotions is incredibly valuable for personal growth!",
		"Behaviors":          "Exploring behaviors together is such meaningful work!",
		"Physical Reactions": "The mind-body connection is absolutely fascinating!",
	},
	StepInsights: [3]string{
		"We're off to such a great start with this exploration!",
		"I'm loving how this is unfolding - you're doing fantastic work!",
		"Look at all this amazing progress we're making together!",
	},
	QuestionLeadIns: []string{
		"Awesome, let's keep the ball rolling!",
		"Great job! Let's jump into the next part.",
		"Okay, let's get to the next exciting bit!",
		"This is so insightful! Next up:",
	},
}
