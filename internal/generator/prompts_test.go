package generator

import (
	"strings"
	"testing"

	"github.com/391rajan/Quiz/internal/models"
)

func TestAllDifficultiesHaveGuidance(t *testing.T) {
	for difficulty := range models.ValidDifficulties {
		guidance := difficultyGuidance[difficulty]
		if guidance == "" {
			t.Errorf("difficulty %q has no calibration guidance defined", difficulty)
		}
	}
}

func TestQuizSystemPrompt(t *testing.T) {
	prompt := QuizSystemPrompt()

	required := []string{"4 options", "ONE correct answer", "JSON", "OPTIONS", "EXPLANATIONS", "SUBTOPICS"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("quiz system prompt missing keyword %q", keyword)
		}
	}
}

func TestBuildQuizUserPrompt(t *testing.T) {
	prompt := BuildQuizUserPrompt("World War II", models.DifficultyMedium, 7)

	required := []string{"7", "World War II", "medium", "questionText", "options", "correctAnswer", "explanation", "subTopic"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("quiz user prompt missing keyword %q", keyword)
		}
	}

	// Should contain the difficulty calibration block
	if !strings.Contains(prompt, "DIFFICULTY CALIBRATION") {
		t.Error("quiz user prompt should contain difficulty calibration section")
	}
}

func TestBuildQuizUserPrompt_DifficultyVariants(t *testing.T) {
	easy := BuildQuizUserPrompt("Chemistry", models.DifficultyEasy, 5)
	hard := BuildQuizUserPrompt("Chemistry", models.DifficultyHard, 5)

	if easy == hard {
		t.Error("easy and hard prompts should differ in calibration guidance")
	}
	if !strings.Contains(easy, "recall") {
		t.Error("easy prompt should mention recall")
	}
	if !strings.Contains(hard, "edge cases") {
		t.Error("hard prompt should mention edge cases")
	}
}
