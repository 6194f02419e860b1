package generator

import (
	"fmt"

	"github.com/391rajan/Quiz/internal/models"
)

var difficultyGuidance = map[models.Difficulty]string{
	models.DifficultyEasy: `
DIFFICULTY CALIBRATION (Easy):
- Test recognition and recall of fundamental concepts
- The correct answer should be identifiable by anyone with introductory knowledge of the topic
- Wrong options should be clearly distinguishable from the correct one
- Avoid technical jargon beyond what a beginner would encounter`,

	models.DifficultyMedium: `
DIFFICULTY CALIBRATION (Medium):
- Test understanding and application, not just recall
- At least one wrong option should be a plausible near-miss that tests a common misconception
- Require the reader to connect two related facts or apply a concept to a scenario
- Moderate use of domain terminology is appropriate`,

	models.DifficultyHard: `
DIFFICULTY CALIBRATION (Hard):
- Test analysis, synthesis, and edge cases of the topic
- Two or more wrong options should be genuinely tempting to someone with intermediate knowledge
- Questions may combine multiple concepts or probe subtle distinctions
- Precise domain terminology is expected`,
}

func QuizSystemPrompt() string {
	return `You are an expert quiz author who writes clear, accurate, and engaging multiple-choice questions across any subject area.

Your questions must follow these exact structural rules:

QUESTION TEXT:
- One clear, self-contained question per item
- No external context needed beyond general knowledge of the stated topic
- Never reference the quiz itself, the difficulty level, or the generation process

OPTIONS:
- Exactly 4 options per question
- Exactly ONE correct answer
- Wrong options must be plausible, not throwaway filler
- Options should be similar in length and grammatical structure so the correct one is not identifiable by form alone

EXPLANATIONS:
- At least 2-3 sentences per question
- Explain precisely WHY the correct option is right
- Briefly explain why the other options are incorrect or less suitable

SUBTOPICS:
- Tag each question with a short subTopic label naming the specific area of the topic it tests
- Reuse subTopic labels across questions that test the same area
- Keep labels concise (1-3 words)

You must respond with valid JSON only. No markdown, no explanation outside the JSON.`
}

func BuildQuizUserPrompt(topic string, difficulty models.Difficulty, count int) string {
	guidance := difficultyGuidance[difficulty]

	return fmt.Sprintf(`Generate exactly %d multiple-choice quiz questions about "%s" with a difficulty level of "%s".
%s

Respond with this exact JSON structure (a JSON array, no wrapper object):
[
  {
    "questionText": "...",
    "options": ["...", "...", "...", "..."],
    "correctAnswer": "A",
    "explanation": "...",
    "subTopic": "..."
  }
]

Requirements:
- "correctAnswer" is a single letter A, B, C, or D identifying the correct option by position
- Each question should cover a different aspect of the topic where possible
- Vary the position of the correct answer across A-D; do not cluster correct answers
- Ensure the questions are clear, the options are distinct, and the explanation is informative`,
		count, topic, string(difficulty), guidance)
}
