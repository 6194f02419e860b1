package generator

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

type GeneratedQuestion struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	SubTopic      string   `json:"subTopic"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseResponse(responseBody string) ([]GeneratedQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var validAnswerLetters = map[string]bool{"A": true, "B": true, "C": true, "D": true}

func validateQuestions(questions []GeneratedQuestion) error {
	var errs []string

	if len(questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in response"}}
	}

	correctAnswerCounts := make(map[string]int)

	for i, q := range questions {
		qNum := i + 1

		if q.QuestionText == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty questionText", qNum))
		}

		if len(q.Options) != 4 {
			errs = append(errs, fmt.Sprintf("question %d: expected 4 options, got %d", qNum, len(q.Options)))
		} else {
			for j, opt := range q.Options {
				if strings.TrimSpace(opt) == "" {
					errs = append(errs, fmt.Sprintf("question %d: option %d is empty", qNum, j+1))
				}
			}
		}

		if !validAnswerLetters[q.CorrectAnswer] {
			errs = append(errs, fmt.Sprintf("question %d: invalid correctAnswer %q", qNum, q.CorrectAnswer))
		}

		if q.Explanation == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}

		if q.SubTopic == "" {
			log.Printf("WARNING: question %d missing subTopic", qNum)
		}

		correctAnswerCounts[q.CorrectAnswer]++
	}

	// Warn (but don't reject) if correct answers are clustered
	for letter, count := range correctAnswerCounts {
		if count > 3 && len(questions) >= 5 {
			log.Printf("WARNING: correct answer %q appears %d times in batch of %d questions", letter, count, len(questions))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
