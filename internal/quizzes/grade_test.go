package quizzes

import (
	"testing"

	"github.com/391rajan/Quiz/internal/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: 1, CorrectAnswer: "A", SubTopic: "algebra"},
		{ID: 2, CorrectAnswer: "B", SubTopic: "algebra"},
		{ID: 3, CorrectAnswer: "C", SubTopic: "geometry"},
		{ID: 4, CorrectAnswer: "D", SubTopic: ""},
	}
}

func TestGradeSubmission_AllCorrect(t *testing.T) {
	submitted := []models.SubmittedAnswer{
		{QuestionID: 1, Answer: "A"},
		{QuestionID: 2, Answer: "B"},
		{QuestionID: 3, Answer: "C"},
		{QuestionID: 4, Answer: "D"},
	}

	score, records := GradeSubmission(sampleQuestions(), submitted)

	if score != 4 {
		t.Errorf("expected score 4, got %d", score)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	for i, r := range records {
		if !r.IsCorrect {
			t.Errorf("record %d: expected correct", i)
		}
		if r.UserAnswer == nil {
			t.Errorf("record %d: expected non-nil user answer", i)
		}
	}
}

func TestGradeSubmission_Mixed(t *testing.T) {
	submitted := []models.SubmittedAnswer{
		{QuestionID: 1, Answer: "A"},
		{QuestionID: 2, Answer: "C"},
		{QuestionID: 3, Answer: "C"},
		{QuestionID: 4, Answer: "A"},
	}

	score, records := GradeSubmission(sampleQuestions(), submitted)

	if score != 2 {
		t.Errorf("expected score 2, got %d", score)
	}
	if records[1].IsCorrect {
		t.Error("question 2 answered C against correct B should be incorrect")
	}
	if records[1].UserAnswer == nil || *records[1].UserAnswer != "C" {
		t.Error("question 2 should record the submitted answer C")
	}
}

func TestGradeSubmission_UnansweredQuestions(t *testing.T) {
	submitted := []models.SubmittedAnswer{
		{QuestionID: 1, Answer: "A"},
	}

	score, records := GradeSubmission(sampleQuestions(), submitted)

	if score != 1 {
		t.Errorf("expected score 1, got %d", score)
	}
	if len(records) != 4 {
		t.Fatalf("expected a record for every question, got %d", len(records))
	}

	for _, r := range records[1:] {
		if r.UserAnswer != nil {
			t.Errorf("question %d: unanswered question should have nil user answer", r.QuestionID)
		}
		if r.IsCorrect {
			t.Errorf("question %d: unanswered question should be incorrect", r.QuestionID)
		}
	}
}

func TestGradeSubmission_UnknownQuestionIDIgnored(t *testing.T) {
	submitted := []models.SubmittedAnswer{
		{QuestionID: 99, Answer: "A"},
		{QuestionID: 1, Answer: "A"},
	}

	score, records := GradeSubmission(sampleQuestions(), submitted)

	if score != 1 {
		t.Errorf("expected score 1, got %d", score)
	}
	if len(records) != 4 {
		t.Errorf("expected 4 records, got %d", len(records))
	}
	for _, r := range records {
		if r.QuestionID == 99 {
			t.Error("answer for unknown question should not produce a record")
		}
	}
}

func TestGradeSubmission_SubTopicInherited(t *testing.T) {
	submitted := []models.SubmittedAnswer{
		{QuestionID: 1, Answer: "B"},
		{QuestionID: 3, Answer: "C"},
	}

	_, records := GradeSubmission(sampleQuestions(), submitted)

	if records[0].SubTopic != "algebra" {
		t.Errorf("expected subTopic 'algebra', got %q", records[0].SubTopic)
	}
	if records[2].SubTopic != "geometry" {
		t.Errorf("expected subTopic 'geometry', got %q", records[2].SubTopic)
	}
	if records[3].SubTopic != "" {
		t.Errorf("question without subTopic should record empty, got %q", records[3].SubTopic)
	}
}

func TestGradeSubmission_EmptyQuiz(t *testing.T) {
	score, records := GradeSubmission(nil, nil)

	if score != 0 {
		t.Errorf("expected score 0, got %d", score)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
