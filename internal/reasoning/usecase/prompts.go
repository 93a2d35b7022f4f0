package usecase

import "fmt"

const dailySummaryPrompt = `Generate a professional daily learning-journal entry.

DATA:
%s

Write in first-person, past tense, formal tone. Include:
- What I worked on
- What I learned
- Challenges and solutions

Length: 150-200 words.`

const weeklySummaryPrompt = `Generate a professional weekly learning-journal entry.

DATA:
%s

Write in first-person, past tense, formal academic tone. Include:
- Overview of the week
- Key concepts learned
- Projects/tasks completed
- Challenges faced and solutions
- Skills developed

Length: 300-400 words. Make it sound human-written, not AI-generated.`

const monthlySummaryPrompt = `Generate a professional monthly learning report.

DATA:
%s

Write in first-person, formal academic tone. Include:
- Monthly overview
- Major achievements
- Technical skills acquired
- Projects completed
- Future goals

Length: 500-600 words.`

func buildSummaryPrompt(mode, data string) string {
	switch mode {
	case "weekly":
		return fmt.Sprintf(weeklySummaryPrompt, data)
	case "monthly":
		return fmt.Sprintf(monthlySummaryPrompt, data)
	default:
		return fmt.Sprintf(dailySummaryPrompt, data)
	}
}

func buildExplainPrompt(conceptName, learnedConcepts, studiedAs string) string {
	if learnedConcepts == "" {
		learnedConcepts = "basic programming"
	}
	studiedNote := ""
	if studiedAs != "" {
		studiedNote = fmt.Sprintf("\n- They have already studied this as %q; deepen their understanding instead of introducing it from scratch", studiedAs)
	}
	return fmt.Sprintf(`Explain the concept "%s" to a learner studying it.

IMPORTANT CONTEXT:
- They already know: %s%s

Provide:
1. Clear definition
2. How it relates to what they already know
3. Practical example
4. Common pitfalls

Keep it conversational, encouraging, and practical. Maximum 250 words.`, conceptName, learnedConcepts, studiedNote)
}

func buildGuidancePrompt(history string) string {
	return fmt.Sprintf(`Based on this learner's journal history, suggest what they should learn next.

HISTORY:
%s

Provide:
1. Assessment of current progress
2. Recommended next topics to learn
3. Prioritization and reasoning
4. Specific resources or practice suggestions

Be encouraging and specific. Maximum 200 words.`, history)
}
