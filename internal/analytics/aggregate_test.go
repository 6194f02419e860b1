package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/391rajan/Quiz/internal/models"
)

func strPtr(s string) *string { return &s }

func attempt(id int64, topic string, score, total int, taken time.Time) models.AttemptWithTopic {
	return models.AttemptWithTopic{
		ID:             id,
		QuizID:         id * 10,
		Score:          score,
		TotalQuestions: total,
		DateTaken:      taken,
		Topic:          strPtr(topic),
	}
}

func orphanAttempt(id int64, score, total int, taken time.Time) models.AttemptWithTopic {
	return models.AttemptWithTopic{
		ID:             id,
		QuizID:         id * 10,
		Score:          score,
		TotalQuestions: total,
		DateTaken:      taken,
		Topic:          nil,
	}
}

func TestBuildAnalytics_EmptyInput(t *testing.T) {
	resp := BuildAnalytics(nil)

	if resp.Message == "" {
		t.Error("expected empty-state message")
	}
	if len(resp.Analytics) != 0 {
		t.Errorf("expected empty analytics map, got %d entries", len(resp.Analytics))
	}
	if len(resp.WeakTopics) != 0 || len(resp.StrongTopics) != 0 || len(resp.QuizHistory) != 0 {
		t.Error("expected empty lists for user with no attempts")
	}
	if resp.OverallScore != (models.OverallScore{}) {
		t.Errorf("expected zeroed overall score, got %+v", resp.OverallScore)
	}
}

func TestBuildAnalytics_ScoreConservation(t *testing.T) {
	now := time.Now()
	attempts := []models.AttemptWithTopic{
		attempt(1, "Go", 3, 5, now),
		attempt(2, "Go", 5, 5, now),
		attempt(3, "SQL", 2, 10, now),
		orphanAttempt(4, 9, 10, now),
	}

	resp := BuildAnalytics(attempts)

	if resp.OverallScore.TotalScore != 10 {
		t.Errorf("expected totalScore 10 over non-orphaned attempts, got %d", resp.OverallScore.TotalScore)
	}
	if resp.OverallScore.TotalQuestions != 20 {
		t.Errorf("expected totalQuestions 20 over non-orphaned attempts, got %d", resp.OverallScore.TotalQuestions)
	}
	if resp.OverallScore.Percentage != 50 {
		t.Errorf("expected percentage 50, got %v", resp.OverallScore.Percentage)
	}
}

func TestBuildAnalytics_ThresholdBoundaries(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name       string
		score      int
		total      int
		wantWeak   bool
		wantStrong bool
	}{
		{"exactly 60 is neither", 60, 100, false, false},
		{"just below 60 is weak", 5999, 10000, true, false},
		{"exactly 80 is strong", 80, 100, false, true},
		{"just below 80 is neither", 79, 100, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := BuildAnalytics([]models.AttemptWithTopic{
				attempt(1, "Topic", tt.score, tt.total, now),
			})

			gotWeak := len(resp.WeakTopics) == 1
			gotStrong := len(resp.StrongTopics) == 1
			if gotWeak != tt.wantWeak {
				t.Errorf("weak = %v, want %v", gotWeak, tt.wantWeak)
			}
			if gotStrong != tt.wantStrong {
				t.Errorf("strong = %v, want %v", gotStrong, tt.wantStrong)
			}
		})
	}
}

func TestBuildAnalytics_OrphanExclusion(t *testing.T) {
	now := time.Now()
	attempts := []models.AttemptWithTopic{
		attempt(1, "Go", 8, 10, now),
		orphanAttempt(2, 0, 10, now),
	}

	resp := BuildAnalytics(attempts)

	if len(resp.Analytics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(resp.Analytics))
	}
	if _, ok := resp.Analytics["Go"]; !ok {
		t.Error("expected 'Go' topic in analytics")
	}
	if resp.OverallScore.TotalScore != 8 || resp.OverallScore.TotalQuestions != 10 {
		t.Errorf("orphan leaked into overall score: %+v", resp.OverallScore)
	}
	if len(resp.QuizHistory) != 1 {
		t.Errorf("orphan leaked into history: %d entries", len(resp.QuizHistory))
	}
}

func TestBuildAnalytics_AllOrphaned(t *testing.T) {
	now := time.Now()
	resp := BuildAnalytics([]models.AttemptWithTopic{
		orphanAttempt(1, 5, 10, now),
		orphanAttempt(2, 3, 10, now),
	})

	if len(resp.Analytics) != 0 {
		t.Errorf("expected empty analytics, got %d entries", len(resp.Analytics))
	}
	if resp.OverallScore.Percentage != 0 {
		t.Errorf("expected percentage 0, got %v", resp.OverallScore.Percentage)
	}
	if len(resp.QuizHistory) != 0 {
		t.Errorf("expected empty history, got %d entries", len(resp.QuizHistory))
	}
}

func TestBuildAnalytics_HistoryOrdering(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	attempts := []models.AttemptWithTopic{
		attempt(1, "Go", 5, 10, jan),
		attempt(2, "Go", 5, 10, mar),
		attempt(3, "Go", 5, 10, feb),
	}

	resp := BuildAnalytics(attempts)

	want := []time.Time{mar, feb, jan}
	if len(resp.QuizHistory) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(resp.QuizHistory))
	}
	for i, entry := range resp.QuizHistory {
		if !entry.DateTaken.Equal(want[i]) {
			t.Errorf("history[%d] = %v, want %v", i, entry.DateTaken, want[i])
		}
	}
}

func TestBuildAnalytics_SubTopicAttribution(t *testing.T) {
	now := time.Now()

	// Biology overall: 5/9 correct = 55.56% -> weak.
	// Genetics 1/4 = 25% -> included; Ecology 4/5 = 80% -> excluded.
	a := attempt(1, "Biology", 5, 9, now)
	a.Answers = []models.AnswerRecord{
		{QuestionID: 1, IsCorrect: true, SubTopic: "Genetics"},
		{QuestionID: 2, IsCorrect: false, SubTopic: "Genetics"},
		{QuestionID: 3, IsCorrect: false, SubTopic: "Genetics"},
		{QuestionID: 4, IsCorrect: false, SubTopic: "Genetics"},
		{QuestionID: 5, IsCorrect: true, SubTopic: "Ecology"},
		{QuestionID: 6, IsCorrect: true, SubTopic: "Ecology"},
		{QuestionID: 7, IsCorrect: true, SubTopic: "Ecology"},
		{QuestionID: 8, IsCorrect: true, SubTopic: "Ecology"},
		{QuestionID: 9, IsCorrect: false, SubTopic: "Ecology"},
	}

	resp := BuildAnalytics([]models.AttemptWithTopic{a})

	if len(resp.WeakTopics) != 1 {
		t.Fatalf("expected 1 weak topic, got %d", len(resp.WeakTopics))
	}
	subs := resp.WeakTopics[0].SubTopics
	if len(subs) != 1 {
		t.Fatalf("expected 1 weak subtopic, got %d", len(subs))
	}
	if subs[0].SubTopic != "Genetics" {
		t.Errorf("expected weak subtopic 'Genetics', got %q", subs[0].SubTopic)
	}
	if subs[0].Correct != 1 || subs[0].Total != 4 {
		t.Errorf("expected Genetics 1/4, got %d/%d", subs[0].Correct, subs[0].Total)
	}
	if subs[0].AverageScore != 25 {
		t.Errorf("expected Genetics average 25, got %v", subs[0].AverageScore)
	}
}

func TestBuildAnalytics_UnlabeledAnswersIgnored(t *testing.T) {
	now := time.Now()

	a := attempt(1, "History", 0, 4, now)
	a.Answers = []models.AnswerRecord{
		{QuestionID: 1, IsCorrect: false, SubTopic: ""},
		{QuestionID: 2, IsCorrect: false, SubTopic: ""},
		{QuestionID: 3, IsCorrect: false, SubTopic: "Ancient Rome"},
		{QuestionID: 4, IsCorrect: false, SubTopic: "Ancient Rome"},
	}

	resp := BuildAnalytics([]models.AttemptWithTopic{a})

	if len(resp.WeakTopics) != 1 {
		t.Fatalf("expected 1 weak topic, got %d", len(resp.WeakTopics))
	}
	subs := resp.WeakTopics[0].SubTopics
	if len(subs) != 1 {
		t.Fatalf("expected only the labeled subtopic, got %d", len(subs))
	}
	if subs[0].Total != 2 {
		t.Errorf("unlabeled answers should not count: expected total 2, got %d", subs[0].Total)
	}
}

func TestBuildAnalytics_CombinedAverage(t *testing.T) {
	now := time.Now()
	attempts := []models.AttemptWithTopic{
		attempt(1, "JavaScript Basics", 1, 4, now),
		attempt(2, "JavaScript Basics", 4, 4, now),
	}

	resp := BuildAnalytics(attempts)

	summary, ok := resp.Analytics["JavaScript Basics"]
	if !ok {
		t.Fatal("expected 'JavaScript Basics' in analytics")
	}
	if summary.AverageScore != 62.5 {
		t.Errorf("expected average 62.5, got %v", summary.AverageScore)
	}
	if summary.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", summary.Attempts)
	}
	if summary.IncorrectAnswers != 3 {
		t.Errorf("expected 3 incorrect answers, got %d", summary.IncorrectAnswers)
	}

	// 62.5 sits in [60, 80): neither weak nor strong.
	if len(resp.WeakTopics) != 0 || len(resp.StrongTopics) != 0 {
		t.Error("62.5%% average should be neither weak nor strong")
	}
	if resp.OverallScore.TotalScore != 5 || resp.OverallScore.TotalQuestions != 8 || resp.OverallScore.Percentage != 62.5 {
		t.Errorf("unexpected overall score: %+v", resp.OverallScore)
	}
}

func TestBuildAnalytics_WeakAndStrongMessages(t *testing.T) {
	now := time.Now()
	attempts := []models.AttemptWithTopic{
		attempt(1, "Chemistry", 1, 4, now),
		attempt(2, "Physics", 9, 10, now),
	}

	resp := BuildAnalytics(attempts)

	if len(resp.WeakTopics) != 1 {
		t.Fatalf("expected 1 weak topic, got %d", len(resp.WeakTopics))
	}
	wantReason := "You scored an average of 25.00% on this topic, with 3 incorrect answers over 1 attempts. Focus on this area!"
	if resp.WeakTopics[0].Reason != wantReason {
		t.Errorf("reason = %q, want %q", resp.WeakTopics[0].Reason, wantReason)
	}

	if len(resp.StrongTopics) != 1 {
		t.Fatalf("expected 1 strong topic, got %d", len(resp.StrongTopics))
	}
	wantMessage := "Excellent! You scored an average of 90.00% on this topic. Keep up the great work!"
	if resp.StrongTopics[0].Message != wantMessage {
		t.Errorf("message = %q, want %q", resp.StrongTopics[0].Message, wantMessage)
	}
}

func TestBuildAnalytics_Deterministic(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	attempts := []models.AttemptWithTopic{
		attempt(1, "Zoology", 1, 10, now),
		attempt(2, "Astronomy", 2, 10, now.Add(time.Hour)),
		attempt(3, "Botany", 3, 10, now.Add(2*time.Hour)),
	}

	first := BuildAnalytics(attempts)
	second := BuildAnalytics(attempts)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results for repeated aggregation")
	}

	// Weak topics come out in lexical topic order.
	var topics []string
	for _, w := range first.WeakTopics {
		topics = append(topics, w.Topic)
	}
	want := []string{"Astronomy", "Botany", "Zoology"}
	if !reflect.DeepEqual(topics, want) {
		t.Errorf("weak topic order = %v, want %v", topics, want)
	}
}
