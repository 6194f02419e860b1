package generator

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func validQuestionsJSON(count int) string {
	correctAnswers := []string{"A", "B", "C", "D"}
	questions := make([]GeneratedQuestion, count)

	for i := 0; i < count; i++ {
		questions[i] = GeneratedQuestion{
			QuestionText: "Which of the following statements about photosynthesis is accurate?",
			Options: []string{
				"It converts light energy into chemical energy",
				"It occurs only at night",
				"It consumes oxygen and releases carbon dioxide",
				"It takes place exclusively in animal cells",
			},
			CorrectAnswer: correctAnswers[i%4],
			Explanation:   "Photosynthesis converts light energy into chemical energy stored in glucose. The other options describe cellular respiration or are simply false.",
			SubTopic:      "plant biology",
		}
	}

	data, _ := json.Marshal(questions)
	return string(data)
}

func TestParseResponse_ValidJSON(t *testing.T) {
	input := validQuestionsJSON(5)

	questions, err := ParseResponse(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != 5 {
		t.Errorf("expected 5 questions, got %d", len(questions))
	}

	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		if q.CorrectAnswer == "" {
			t.Errorf("question %d: empty correctAnswer", i+1)
		}
		if q.SubTopic == "" {
			t.Errorf("question %d: empty subTopic", i+1)
		}
	}
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	input := "```json\n" + validQuestionsJSON(3) + "\n```"

	questions, err := ParseResponse(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}

	if len(questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(questions))
	}
}

func TestParseResponse_MissingOption(t *testing.T) {
	questions := []GeneratedQuestion{
		{
			QuestionText: "What is the capital of France?",
			Options:      []string{"Paris", "Lyon", "Marseille"}, // only 3
			CorrectAnswer: "A",
			Explanation:  "Paris is the capital of France. The other cities are large but not the capital.",
			SubTopic:     "geography",
		},
	}
	data, _ := json.Marshal(questions)

	_, err := ParseResponse(string(data))
	if err == nil {
		t.Fatal("expected validation error for missing option")
	}

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}

	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "expected 4 options") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about 4 options, got: %v", ve.Errors)
	}
}

func TestParseResponse_InvalidCorrectAnswer(t *testing.T) {
	questions := []GeneratedQuestion{
		{
			QuestionText:  "What is the capital of France?",
			Options:       []string{"Paris", "Lyon", "Marseille", "Nice"},
			CorrectAnswer: "E",
			Explanation:   "Paris is the capital of France. The other cities are large but not the capital.",
			SubTopic:      "geography",
		},
	}
	data, _ := json.Marshal(questions)

	_, err := ParseResponse(string(data))
	if err == nil {
		t.Fatal("expected validation error for invalid correctAnswer")
	}

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}

	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "invalid correctAnswer") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about invalid correctAnswer, got: %v", ve.Errors)
	}
}

func TestParseResponse_EmptyExplanation(t *testing.T) {
	questions := []GeneratedQuestion{
		{
			QuestionText:  "What is the capital of France?",
			Options:       []string{"Paris", "Lyon", "Marseille", "Nice"},
			CorrectAnswer: "A",
			Explanation:   "",
			SubTopic:      "geography",
		},
	}
	data, _ := json.Marshal(questions)

	_, err := ParseResponse(string(data))
	if err == nil {
		t.Fatal("expected validation error for empty explanation")
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	_, err := ParseResponse("this is not json at all")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	// A parse failure must not surface as a ValidationError
	var ve *ValidationError
	if isValidationError(err, &ve) {
		t.Fatal("expected parse error, not ValidationError")
	}
}

func TestParseResponse_EmptyArray(t *testing.T) {
	_, err := ParseResponse("[]")
	if err == nil {
		t.Fatal("expected validation error for empty question array")
	}
}

func TestParseResponse_MissingSubTopicIsTolerated(t *testing.T) {
	questions := []GeneratedQuestion{
		{
			QuestionText:  "What is the capital of France?",
			Options:       []string{"Paris", "Lyon", "Marseille", "Nice"},
			CorrectAnswer: "A",
			Explanation:   "Paris is the capital of France. The other cities are large but not the capital.",
			SubTopic:      "",
		},
	}
	data, _ := json.Marshal(questions)

	parsed, err := ParseResponse(string(data))
	if err != nil {
		t.Fatalf("expected missing subTopic to be tolerated, got: %v", err)
	}
	if parsed[0].SubTopic != "" {
		t.Errorf("expected empty subTopic, got %q", parsed[0].SubTopic)
	}
}

func TestMockClient_ProducesParseableOutput(t *testing.T) {
	client := NewMockClient()
	resp, err := client.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("mock generate failed: %v", err)
	}

	questions, err := ParseResponse(resp.Content)
	if err != nil {
		t.Fatalf("mock output failed to parse: %v", err)
	}
	if len(questions) == 0 {
		t.Fatal("mock output contained no questions")
	}
}

// isValidationError checks if err is a *ValidationError via type assertion
func isValidationError(err error, target **ValidationError) bool {
	ve, ok := err.(*ValidationError)
	if ok && target != nil {
		*target = ve
	}
	return ok
}
